package partner

import (
	"fmt"
	"regexp"

	"github.com/bizdash/import-service/internal/application/importing"
)

const Entity = "partners"

var taxCodePattern = regexp.MustCompile(`^\d{10}(-\d{3})?$`)

func NewSchema() importing.Schema[Row] {
	return importing.Schema[Row]{
		Entity: Entity,
		Sheet:  "Partners",
		Columns: []importing.Column{
			{Header: "Name", Example: "Công ty TNHH ABC", Width: 36},
			{Header: "Short name", Example: "ABC", Width: 14},
			{Header: "Tax code", Example: "0101234567", Width: 16},
			{Header: "Industry", Example: "Technology", Width: 16},
			{Header: "Type", Example: "Customer", Width: 12},
			{Header: "Address", Example: "12 Láng Hạ, Hà Nội", Width: 36},
			{Header: "Phone", Example: "0241234567", Width: 14},
			{Header: "Email", Example: "contact@abc.vn", Width: 24},
			{Header: "Contact person", Example: "Trần Thị B", Width: 24},
		},
		Decode: Decode,
		Required: []importing.Field[Row]{
			{Label: "Name", Value: func(r Row) string { return r.Name }},
		},
		Key: importing.Field[Row]{Label: "Name", Value: func(r Row) string { return r.Name }},
		Rules: []importing.Rule[Row]{
			importing.OptionalEmail("Email", func(r Row) string { return r.Email }),
			taxCodeRule,
		},
	}
}

func taxCodeRule(r Row) []string {
	if r.TaxCode == "" || taxCodePattern.MatchString(r.TaxCode) {
		return nil
	}
	return []string{fmt.Sprintf("Tax code '%s' must be 10 digits or 10-3 digits", r.TaxCode)}
}
