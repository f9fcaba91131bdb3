package importing

import (
	"fmt"
	"strings"
)

// Parser turns raw rows into a preview for one schema using a session's
// reference lookup.
type Parser[T any] struct {
	schema Schema[T]
	lookup *Lookup
}

func NewParser[T any](schema Schema[T], lookup *Lookup) *Parser[T] {
	return &Parser[T]{schema: schema, lookup: lookup}
}

func (p *Parser[T]) Parse(rows []RawRow) Preview[T] {
	detector := NewDuplicateDetector()
	parsed := make([]ParsedRow[T], 0, len(rows))

	for i, raw := range rows {
		rowIndex := i + 1 + HeaderRows
		data := p.schema.Decode(raw)
		errs := make([]string, 0)

		for _, field := range p.schema.Required {
			if strings.TrimSpace(field.Value(data)) == "" {
				errs = append(errs, fmt.Sprintf("%s is required", field.Label))
			}
		}

		if len(errs) == 0 && p.schema.Key.Value != nil {
			key := p.schema.Key.Value(data)
			if first, dup := detector.Check(key, rowIndex); dup {
				errs = append(errs, fmt.Sprintf("Duplicate %s '%s' (first seen at row %d)",
					strings.ToLower(p.schema.Key.Label), key, first))
			}
		}

		refs := make(map[string]ResolvedRef)
		for _, ref := range p.schema.References {
			text := strings.TrimSpace(ref.Value(data))
			if text == "" {
				if ref.Required {
					errs = append(errs, fmt.Sprintf("%s is required", ref.Label))
				}
				continue
			}
			entry, ok := p.lookup.Resolve(ref.Source, text)
			if !ok {
				errs = append(errs, ReferenceError{Label: ref.Label, Value: text}.Error())
				continue
			}
			refs[ref.Key] = ResolvedRef{ID: entry.ID, Code: entry.Code, Name: entry.Name}
		}

		for _, rule := range p.schema.Rules {
			errs = append(errs, rule(data)...)
		}

		parsed = append(parsed, ParsedRow[T]{
			RowIndex: rowIndex,
			Data:     data,
			Errors:   errs,
			Refs:     refs,
		})
	}

	return Preview[T]{Rows: parsed}
}
