package partner

import (
	"github.com/bizdash/import-service/internal/application/importing"
	domain "github.com/bizdash/import-service/internal/domain/partner"
)

const (
	colName = iota
	colShortName
	colTaxCode
	colIndustry
	colType
	colAddress
	colPhone
	colEmail
	colContact
)

// Row is one normalized partner line of an uploaded sheet.
type Row struct {
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	TaxCode       string `json:"tax_code"`
	Industry      string `json:"industry"`
	Type          string `json:"type"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	ContactPerson string `json:"contact_person"`
}

var TypeLabels = importing.KeywordTable{
	Entries: []importing.Keyword{
		{Value: string(domain.TypeSupplier), Tokens: []string{"supplier", "nhà cung cấp", "ncc"}},
		{Value: string(domain.TypeBoth), Tokens: []string{"both", "cả hai"}},
	},
	Fallback: string(domain.TypeCustomer),
}

// IndustryLabels coerces anything outside the closed set to Other.
var IndustryLabels = importing.KeywordTable{
	Entries: []importing.Keyword{
		{Value: string(domain.IndustryTechnology), Tokens: []string{"technology", "công nghệ"}},
		{Value: string(domain.IndustryConstruction), Tokens: []string{"construction", "xây dựng"}},
		{Value: string(domain.IndustryManufacturing), Tokens: []string{"manufacturing", "sản xuất"}},
		{Value: string(domain.IndustryTrading), Tokens: []string{"trading", "thương mại"}},
		{Value: string(domain.IndustryFinance), Tokens: []string{"finance", "tài chính"}},
		{Value: string(domain.IndustryEducation), Tokens: []string{"education", "giáo dục"}},
		{Value: string(domain.IndustryHealthcare), Tokens: []string{"healthcare", "y tế"}},
	},
	Fallback: string(domain.IndustryOther),
}

func Decode(raw importing.RawRow) Row {
	return Row{
		Name:          importing.Text(raw.Cell(colName)),
		ShortName:     importing.Text(raw.Cell(colShortName)),
		TaxCode:       importing.Text(raw.Cell(colTaxCode)),
		Industry:      IndustryLabels.Normalize(raw.Cell(colIndustry)),
		Type:          TypeLabels.Normalize(raw.Cell(colType)),
		Address:       importing.Text(raw.Cell(colAddress)),
		Phone:         importing.Text(raw.Cell(colPhone)),
		Email:         importing.Text(raw.Cell(colEmail)),
		ContactPerson: importing.Text(raw.Cell(colContact)),
	}
}
