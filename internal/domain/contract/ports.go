package contract

import "context"

type Repository interface {
	Create(ctx context.Context, c Contract) (Contract, error)
}

// SequenceAllocator hands out the next contract number for a unit and year.
// Each call consumes a number.
type SequenceAllocator interface {
	NextSequence(ctx context.Context, unitID string, year int) (int, error)
}
