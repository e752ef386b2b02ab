package memory

import (
	"context"
	"filmorate/genre"
	"filmorate/mpa"
	"slices"
)

// GenreRepository serves the fixed genre catalog.
type GenreRepository struct{}

func NewGenreRepository() *GenreRepository {
	return &GenreRepository{}
}

func (r *GenreRepository) AllGenres(_ context.Context) ([]genre.Genre, error) {
	return slices.Clone(genre.Catalog), nil
}

func (r *GenreRepository) GetByID(_ context.Context, id int64) (genre.Genre, error) {
	i := slices.IndexFunc(genre.Catalog, func(g genre.Genre) bool { return g.ID == id })
	if i < 0 {
		return genre.Genre{}, genre.ErrGenreNotFound
	}
	return genre.Catalog[i], nil
}

// RatingRepository serves the fixed MPA rating catalog.
type RatingRepository struct{}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{}
}

func (r *RatingRepository) AllRatings(_ context.Context) ([]mpa.Rating, error) {
	return slices.Clone(mpa.Catalog), nil
}

func (r *RatingRepository) GetByID(_ context.Context, id int64) (mpa.Rating, error) {
	i := slices.IndexFunc(mpa.Catalog, func(m mpa.Rating) bool { return m.ID == id })
	if i < 0 {
		return mpa.Rating{}, mpa.ErrRatingNotFound
	}
	return mpa.Catalog[i], nil
}
