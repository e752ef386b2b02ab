package postgres

import (
	"context"
	"errors"
	"filmorate/genre"
	"filmorate/mpa"

	"gorm.io/gorm"
)

type GenreModel struct {
	ID   int64  `gorm:"column:genre_id;primaryKey"`
	Name string `gorm:"not null"`
}

func (GenreModel) TableName() string {
	return "genre"
}

type RatingModel struct {
	ID   int64  `gorm:"column:mpa_rating_id;primaryKey"`
	Name string `gorm:"not null"`
}

func (RatingModel) TableName() string {
	return "mpa_rating"
}

// GenreRepository implements genre.Repository over the seeded genre table.
type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) AllGenres(ctx context.Context) ([]genre.Genre, error) {
	var models []GenreModel
	if err := r.db.WithContext(ctx).Order("genre_id").Find(&models).Error; err != nil {
		return nil, err
	}

	genres := make([]genre.Genre, len(models))
	for i, model := range models {
		genres[i] = genre.Genre{ID: model.ID, Name: model.Name}
	}
	return genres, nil
}

func (r *GenreRepository) GetByID(ctx context.Context, id int64) (genre.Genre, error) {
	var model GenreModel
	if err := r.db.WithContext(ctx).Where("genre_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return genre.Genre{}, genre.ErrGenreNotFound
		}
		return genre.Genre{}, err
	}
	return genre.Genre{ID: model.ID, Name: model.Name}, nil
}

// RatingRepository implements mpa.Repository over the seeded mpa_rating table.
type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) AllRatings(ctx context.Context) ([]mpa.Rating, error) {
	var models []RatingModel
	if err := r.db.WithContext(ctx).Order("mpa_rating_id").Find(&models).Error; err != nil {
		return nil, err
	}

	ratings := make([]mpa.Rating, len(models))
	for i, model := range models {
		ratings[i] = mpa.Rating{ID: model.ID, Name: model.Name}
	}
	return ratings, nil
}

func (r *RatingRepository) GetByID(ctx context.Context, id int64) (mpa.Rating, error) {
	var model RatingModel
	if err := r.db.WithContext(ctx).Where("mpa_rating_id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return mpa.Rating{}, mpa.ErrRatingNotFound
		}
		return mpa.Rating{}, err
	}
	return mpa.Rating{ID: model.ID, Name: model.Name}, nil
}
