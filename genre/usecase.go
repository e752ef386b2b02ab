package genre

import "context"

type Service interface {
	ListGenres(ctx context.Context) ([]Genre, error)
	GetGenre(ctx context.Context, id int64) (Genre, error)
}

type Repository interface {
	AllGenres(ctx context.Context) ([]Genre, error)
	GetByID(ctx context.Context, id int64) (Genre, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListGenres(ctx context.Context) ([]Genre, error) {
	return uc.r.AllGenres(ctx)
}

func (uc *Usecase) GetGenre(ctx context.Context, id int64) (Genre, error) {
	if id <= 0 {
		return Genre{}, ErrGenreNotFound
	}
	return uc.r.GetByID(ctx, id)
}
