package partner

import "context"

type Repository interface {
	Create(ctx context.Context, p Partner) (Partner, error)
	ListAll(ctx context.Context) ([]Partner, error)
}
