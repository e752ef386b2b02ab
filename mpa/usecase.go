package mpa

import "context"

type Service interface {
	ListRatings(ctx context.Context) ([]Rating, error)
	GetRating(ctx context.Context, id int64) (Rating, error)
}

type Repository interface {
	AllRatings(ctx context.Context) ([]Rating, error)
	GetByID(ctx context.Context, id int64) (Rating, error)
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) ListRatings(ctx context.Context) ([]Rating, error) {
	return uc.r.AllRatings(ctx)
}

func (uc *Usecase) GetRating(ctx context.Context, id int64) (Rating, error) {
	if id <= 0 {
		return Rating{}, ErrRatingNotFound
	}
	return uc.r.GetByID(ctx, id)
}
