package importing

// HeaderRows is the number of header rows above the first data row.
const HeaderRows = 1

// RawRow is one spreadsheet data row in template column order. Cells are
// strings, numbers or nil.
type RawRow []any

// Cell returns the value at idx, or nil when the row is shorter.
func (r RawRow) Cell(idx int) any {
	if idx < 0 || idx >= len(r) {
		return nil
	}
	return r[idx]
}

// ResolvedRef is the entity a free-text reference resolved to.
type ResolvedRef struct {
	ID   string `json:"id"`
	Code string `json:"code,omitempty"`
	Name string `json:"name"`
}

// ParsedRow wraps a normalized row with its validation outcome.
type ParsedRow[T any] struct {
	RowIndex int                    `json:"row_index"`
	Data     T                      `json:"data"`
	Errors   []string               `json:"errors"`
	Refs     map[string]ResolvedRef `json:"refs,omitempty"`
}

func (r ParsedRow[T]) IsValid() bool {
	return len(r.Errors) == 0
}

// RefID returns the resolved id for field, or "" when it did not resolve.
func (r ParsedRow[T]) RefID(field string) string {
	return r.Refs[field].ID
}

// FirstError returns the first validation message, or "".
func (r ParsedRow[T]) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0]
}

// Preview is the parsed row set held for one session.
type Preview[T any] struct {
	Rows []ParsedRow[T] `json:"rows"`
}

func (p Preview[T]) ValidRows() []ParsedRow[T] {
	out := make([]ParsedRow[T], 0, len(p.Rows))
	for _, row := range p.Rows {
		if row.IsValid() {
			out = append(out, row)
		}
	}
	return out
}

func (p Preview[T]) Counts() (valid, invalid int) {
	for _, row := range p.Rows {
		if row.IsValid() {
			valid++
		} else {
			invalid++
		}
	}
	return valid, invalid
}
