package partner

import "strings"

type Industry string

const (
	IndustryTechnology    Industry = "Technology"
	IndustryConstruction  Industry = "Construction"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryTrading       Industry = "Trading"
	IndustryFinance       Industry = "Finance"
	IndustryEducation     Industry = "Education"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryOther         Industry = "Other"
)

type Type string

const (
	TypeCustomer Type = "Customer"
	TypeSupplier Type = "Supplier"
	TypeBoth     Type = "Both"
)

type Partner struct {
	ID            string
	Name          string
	ShortName     string
	TaxCode       string
	Industry      Industry
	Type          Type
	Address       string
	Phone         string
	Email         string
	ContactPerson string
}

func New(p Partner) (Partner, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Partner{}, ErrMissingName
	}
	if p.Industry == "" {
		p.Industry = IndustryOther
	}
	if p.Type == "" {
		p.Type = TypeCustomer
	}
	return p, nil
}
