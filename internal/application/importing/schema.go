package importing

// Column is one template column. Its position in Schema.Columns is the
// import contract.
type Column struct {
	Header  string
	Example string
	Width   float64
}

// Field reads one text value out of a typed row.
type Field[T any] struct {
	Label string
	Value func(T) string
}

// RefSpec declares a free-text reference resolved against a collection.
type RefSpec[T any] struct {
	Key      string
	Label    string
	Source   Source
	Value    func(T) string
	Required bool
}

// Rule returns zero or more messages for a decoded row.
type Rule[T any] func(row T) []string

// Schema is the declarative description of one importable entity: column
// order, decoding, required fields, natural key, references and rules.
type Schema[T any] struct {
	Entity     string
	Sheet      string
	Columns    []Column
	Decode     func(RawRow) T
	Required   []Field[T]
	Key        Field[T]
	References []RefSpec[T]
	Rules      []Rule[T]
}

func (s Schema[T]) Headers() []string {
	out := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		out[i] = col.Header
	}
	return out
}

// Sources lists the reference collections the schema needs, in declaration
// order and without repeats.
func (s Schema[T]) Sources() []Source {
	var out []Source
	seen := map[Source]bool{}
	for _, ref := range s.References {
		if !seen[ref.Source] {
			seen[ref.Source] = true
			out = append(out, ref.Source)
		}
	}
	return out
}
