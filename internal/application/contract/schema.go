package contract

import "github.com/bizdash/import-service/internal/application/importing"

const Entity = "contracts"

// Keys under which resolved references are stored on a parsed row.
const (
	RefUnit        = "unitId"
	RefCustomer    = "customerId"
	RefSalesperson = "salespersonId"
)

// NewSchema describes the contract sheet. The column order is the template.
func NewSchema() importing.Schema[Row] {
	return importing.Schema[Row]{
		Entity: Entity,
		Sheet:  "Contracts",
		Columns: []importing.Column{
			{Header: "Title", Example: "Hợp đồng cung cấp phần mềm", Width: 36},
			{Header: "Type", Example: "Output", Width: 12},
			{Header: "Partner", Example: "Công ty ABC", Width: 28},
			{Header: "Unit code", Example: "HN01", Width: 12},
			{Header: "Salesperson", Example: "Nguyễn Văn A", Width: 24},
			{Header: "Value", Example: "150000000", Width: 16},
			{Header: "Estimated cost", Example: "90000000", Width: 16},
			{Header: "Signed date", Example: "15/01/2024", Width: 14},
			{Header: "Start date", Example: "01/02/2024", Width: 14},
			{Header: "End date", Example: "31/12/2024", Width: 14},
			{Header: "Status", Example: "Đang thực hiện", Width: 16},
			{Header: "Category", Example: "Main", Width: 14},
		},
		Decode: Decode,
		Required: []importing.Field[Row]{
			{Label: "Title", Value: func(r Row) string { return r.Title }},
		},
		Key: importing.Field[Row]{Label: "Title", Value: func(r Row) string { return r.Title }},
		References: []importing.RefSpec[Row]{
			{Key: RefUnit, Label: "Unit", Source: importing.SourceUnits, Required: true,
				Value: func(r Row) string { return r.UnitCode }},
			{Key: RefCustomer, Label: "Partner", Source: importing.SourcePartners, Required: true,
				Value: func(r Row) string { return r.PartnerName }},
			{Key: RefSalesperson, Label: "Salesperson", Source: importing.SourceEmployees,
				Value: func(r Row) string { return r.SalespersonName }},
		},
		Rules: []importing.Rule[Row]{
			importing.NonNegative("Value", func(r Row) float64 { return r.Value }),
			importing.NonNegative("Estimated cost", func(r Row) float64 { return r.EstimatedCost }),
			importing.OptionalDate("Signed date", func(r Row) string { return r.SignedDate }),
			importing.OptionalDate("Start date", func(r Row) string { return r.StartDate }),
			importing.OptionalDate("End date", func(r Row) string { return r.EndDate }),
			importing.DateOrder("Start date", "End date",
				func(r Row) string { return r.StartDate },
				func(r Row) string { return r.EndDate }),
		},
	}
}
