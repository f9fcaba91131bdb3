package importrun

import "context"

type Repository interface {
	Create(ctx context.Context, run Run) (string, error)
	GetByID(ctx context.Context, id string) (*Run, error)
}
