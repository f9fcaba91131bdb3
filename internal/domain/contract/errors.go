package contract

import "errors"

var (
	ErrMissingTitle   = errors.New("contract title is required")
	ErrMissingUnit    = errors.New("contract unit is required")
	ErrMissingPartner = errors.New("contract partner is required")
	ErrNegativeAmount = errors.New("contract amounts must not be negative")
)
