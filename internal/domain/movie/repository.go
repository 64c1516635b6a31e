package movie

import "context"

type Repository interface {
	Create(ctx context.Context, m *Movie) (int64, error)
	FindByID(ctx context.Context, id int64) (*Detail, error)
	List(ctx context.Context, params ListParams) ([]*Movie, int64, error)
	Update(ctx context.Context, m *Movie) error
	Delete(ctx context.Context, id int64) error
}
