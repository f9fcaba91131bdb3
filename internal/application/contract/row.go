package contract

import (
	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/contract"
)

// Column positions in the contract template.
const (
	colTitle = iota
	colType
	colPartner
	colUnitCode
	colSalesperson
	colValue
	colEstimatedCost
	colSignedDate
	colStartDate
	colEndDate
	colStatus
	colCategory
)

// Row is one normalized contract line of an uploaded sheet.
type Row struct {
	Title           string  `json:"title"`
	Type            string  `json:"type"`
	PartnerName     string  `json:"partner_name"`
	UnitCode        string  `json:"unit_code"`
	SalespersonName string  `json:"salesperson_name"`
	Value           float64 `json:"value"`
	EstimatedCost   float64 `json:"estimated_cost"`
	SignedDate      string  `json:"signed_date"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	Category        string  `json:"category"`
}

// StatusLabels reads free-text status labels. Negated labels are listed
// before the positive ones they contain.
var StatusLabels = importing.KeywordTable{
	Entries: []importing.Keyword{
		{Value: string(domain.StatusCompleted), Tokens: []string{"complete", "hoàn thành", "done"}},
		{Value: string(domain.StatusExpired), Tokens: []string{"inactive", "cancel", "hủy", "expired", "hết hạn", "hết hiệu lực"}},
		{Value: string(domain.StatusActive), Tokens: []string{"active", "hiệu lực", "đang thực hiện"}},
		{Value: string(domain.StatusPending), Tokens: []string{"pending", "chờ"}},
	},
	Fallback: string(domain.StatusPending),
}

var TypeLabels = importing.KeywordTable{
	Entries: []importing.Keyword{
		{Value: string(domain.TypeInput), Tokens: []string{"input", "đầu vào", "mua"}},
	},
	Fallback: string(domain.TypeOutput),
}

var CategoryLabels = importing.KeywordTable{
	Entries: []importing.Keyword{
		{Value: string(domain.CategorySubcontract), Tokens: []string{"sub", "phụ", "thầu phụ"}},
	},
	Fallback: string(domain.CategoryMain),
}

// Decode projects a raw template row onto Row.
func Decode(raw importing.RawRow) Row {
	return Row{
		Title:           importing.Text(raw.Cell(colTitle)),
		Type:            TypeLabels.Normalize(raw.Cell(colType)),
		PartnerName:     importing.Text(raw.Cell(colPartner)),
		UnitCode:        importing.Text(raw.Cell(colUnitCode)),
		SalespersonName: importing.Text(raw.Cell(colSalesperson)),
		Value:           importing.Number(raw.Cell(colValue)),
		EstimatedCost:   importing.Number(raw.Cell(colEstimatedCost)),
		SignedDate:      importing.NormalizeDate(raw.Cell(colSignedDate)),
		StartDate:       importing.NormalizeDate(raw.Cell(colStartDate)),
		EndDate:         importing.NormalizeDate(raw.Cell(colEndDate)),
		Status:          StatusLabels.Normalize(raw.Cell(colStatus)),
		Category:        CategoryLabels.Normalize(raw.Cell(colCategory)),
	}
}
