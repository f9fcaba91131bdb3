package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusActive    Status = "Active"
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusExpired   Status = "Expired"
)

// Type tells sales contracts (output) from purchase contracts (input).
type Type string

const (
	TypeOutput Type = "Output"
	TypeInput  Type = "Input"
)

type Category string

const (
	CategoryMain        Category = "Main"
	CategorySubcontract Category = "Subcontract"
)

type Contract struct {
	ID            string
	Code          string
	Title         string
	Type          Type
	PartnerID     string
	UnitID        string
	SalespersonID string
	Value         decimal.Decimal
	EstimatedCost decimal.Decimal
	SignedDate    *time.Time
	StartDate     *time.Time
	EndDate       *time.Time
	Status        Status
	Category      Category
}

func New(c Contract) (Contract, error) {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return Contract{}, ErrMissingTitle
	}
	if c.UnitID == "" {
		return Contract{}, ErrMissingUnit
	}
	if c.PartnerID == "" {
		return Contract{}, ErrMissingPartner
	}
	if c.Value.IsNegative() || c.EstimatedCost.IsNegative() {
		return Contract{}, ErrNegativeAmount
	}
	if c.Status == "" {
		c.Status = StatusPending
	}
	return c, nil
}

// FormatCode renders the human-readable contract number, scoped to a unit
// and a year.
func FormatCode(unitCode string, year, seq int) string {
	return fmt.Sprintf("%s-%d-%03d", strings.ToUpper(strings.TrimSpace(unitCode)), year, seq)
}
