package postgres

import (
	"context"
	"errors"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/mpa"
	"filmorate/user"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
)

// FilmModel represents the database model for films.
// search_vector is generated in SQL migration and not mapped here.
type FilmModel struct {
	ID          int64     `gorm:"column:film_id;primaryKey"`
	Name        string    `gorm:"not null"`
	Description string    `gorm:"not null;default:''"`
	ReleaseDate time.Time `gorm:"type:date;not null"`
	Duration    int       `gorm:"not null"`
}

func (FilmModel) TableName() string {
	return "films"
}

type FilmRatingModel struct {
	FilmID      int64 `gorm:"primaryKey"`
	MpaRatingID int64 `gorm:"not null"`
}

func (FilmRatingModel) TableName() string {
	return "film_mpa_rating"
}

type FilmGenreModel struct {
	FilmID  int64 `gorm:"primaryKey"`
	GenreID int64 `gorm:"primaryKey"`
}

func (FilmGenreModel) TableName() string {
	return "film_genre"
}

type LikeModel struct {
	FilmID int64 `gorm:"primaryKey"`
	UserID int64 `gorm:"primaryKey"`
}

func (LikeModel) TableName() string {
	return "likes"
}

// FilmRepository implements film.Repository interface.
// MPA and genre associations live in join tables and are rewritten together
// with the film row.
type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

func (r *FilmRepository) CreateFilm(ctx context.Context, f film.Film) (film.Film, error) {
	model := toModelFilm(f)
	model.ID = 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return err
		}
		return writeAssociations(tx, model.ID, f)
	})
	if err != nil {
		return film.Film{}, err
	}

	f.ID = model.ID
	f.Likes = []int64{}
	return f, nil
}

func (r *FilmRepository) UpdateFilm(ctx context.Context, f film.Film) (film.Film, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&FilmModel{}).Where("film_id = ?", f.ID).Updates(map[string]interface{}{
			"name":         f.Name,
			"description":  f.Description,
			"release_date": toTime(f.ReleaseDate),
			"duration":     f.Duration,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return film.ErrFilmNotFound
		}

		if err := tx.Where("film_id = ?", f.ID).Delete(&FilmRatingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", f.ID).Delete(&FilmGenreModel{}).Error; err != nil {
			return err
		}
		return writeAssociations(tx, f.ID, f)
	})
	if err != nil {
		return film.Film{}, err
	}
	return r.GetByID(ctx, f.ID)
}

func (r *FilmRepository) GetByID(ctx context.Context, id int64) (film.Film, error) {
	var model FilmModel

	err := r.db.WithContext(ctx).Where("film_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return film.Film{}, film.ErrFilmNotFound
		}
		return film.Film{}, err
	}

	films, err := r.hydrate(ctx, []FilmModel{model})
	if err != nil {
		return film.Film{}, err
	}
	return films[0], nil
}

func (r *FilmRepository) AllFilms(ctx context.Context) ([]film.Film, error) {
	var models []FilmModel
	if err := r.db.WithContext(ctx).Order("film_id").Find(&models).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, models)
}

func (r *FilmRepository) DeleteFilm(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("film_id = ?", id).Delete(&FilmModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return film.ErrFilmNotFound
	}
	return nil
}

func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	const sql = `INSERT INTO likes (film_id, user_id) VALUES (?, ?) ON CONFLICT DO NOTHING`

	if err := r.db.WithContext(ctx).Exec(sql, filmID, userID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return r.missingLikeSide(ctx, filmID)
		}
		return err
	}
	return nil
}

func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&LikeModel{}).Error
}

// Search runs a full-text query over film names and descriptions,
// best matches first.
func (r *FilmRepository) Search(ctx context.Context, query string, limit int) ([]film.Film, error) {
	const sql = `
SELECT film_id, name, description, release_date, duration
FROM films
WHERE search_vector @@ websearch_to_tsquery('english', ?)
ORDER BY ts_rank(search_vector, websearch_to_tsquery('english', ?)) DESC, film_id
LIMIT ?`

	var models []FilmModel
	if err := r.db.WithContext(ctx).Raw(sql, query, query, limit).Scan(&models).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, models)
}

// missingLikeSide reports which end of a like does not exist.
func (r *FilmRepository) missingLikeSide(ctx context.Context, filmID int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&FilmModel{}).Where("film_id = ?", filmID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return film.ErrFilmNotFound
	}
	return user.ErrUserNotFound
}

type filmRatingRow struct {
	FilmID      int64
	MpaRatingID int64
	Name        string
}

type filmGenreRow struct {
	FilmID  int64
	GenreID int64
	Name    string
}

// hydrate attaches likes, ratings and genres to models using one query per
// relation.
func (r *FilmRepository) hydrate(ctx context.Context, models []FilmModel) ([]film.Film, error) {
	films := make([]film.Film, len(models))
	if len(models) == 0 {
		return films, nil
	}

	ids := make([]int64, len(models))
	index := make(map[int64]int, len(models))
	for i, model := range models {
		ids[i] = model.ID
		index[model.ID] = i
		films[i] = toDomainFilm(model)
	}

	db := r.db.WithContext(ctx)

	var likes []LikeModel
	if err := db.Where("film_id IN ?", ids).Order("film_id, user_id").Find(&likes).Error; err != nil {
		return nil, err
	}
	for _, l := range likes {
		f := &films[index[l.FilmID]]
		f.Likes = append(f.Likes, l.UserID)
	}

	var ratings []filmRatingRow
	err := db.Table("film_mpa_rating AS fm").
		Select("fm.film_id, fm.mpa_rating_id, m.name").
		Joins("JOIN mpa_rating AS m ON m.mpa_rating_id = fm.mpa_rating_id").
		Where("fm.film_id IN ?", ids).
		Scan(&ratings).Error
	if err != nil {
		return nil, err
	}
	for _, row := range ratings {
		films[index[row.FilmID]].Mpa = &mpa.Rating{ID: row.MpaRatingID, Name: row.Name}
	}

	var genres []filmGenreRow
	err = db.Table("film_genre AS fg").
		Select("fg.film_id, fg.genre_id, g.name").
		Joins("JOIN genre AS g ON g.genre_id = fg.genre_id").
		Where("fg.film_id IN ?", ids).
		Order("fg.film_id, fg.genre_id").
		Scan(&genres).Error
	if err != nil {
		return nil, err
	}
	for _, row := range genres {
		f := &films[index[row.FilmID]]
		f.Genres = append(f.Genres, genre.Genre{ID: row.GenreID, Name: row.Name})
	}

	return films, nil
}

func writeAssociations(tx *gorm.DB, filmID int64, f film.Film) error {
	if f.Mpa != nil {
		err := tx.Create(&FilmRatingModel{FilmID: filmID, MpaRatingID: f.Mpa.ID}).Error
		if err != nil {
			if isForeignKeyViolation(err) {
				return film.ErrUnknownMpa
			}
			return err
		}
	}

	genreIDs := f.GenreIDs()
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]FilmGenreModel, len(genreIDs))
	for i, id := range genreIDs {
		rows[i] = FilmGenreModel{FilmID: filmID, GenreID: id}
	}
	if err := tx.Create(&rows).Error; err != nil {
		if isForeignKeyViolation(err) {
			return film.ErrUnknownGenre
		}
		return err
	}
	return nil
}

func toDomainFilm(model FilmModel) film.Film {
	return film.Film{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		ReleaseDate: civil.DateOf(model.ReleaseDate),
		Duration:    model.Duration,
		Likes:       []int64{},
		Genres:      []genre.Genre{},
	}
}

func toModelFilm(f film.Film) FilmModel {
	return FilmModel{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: toTime(f.ReleaseDate),
		Duration:    f.Duration,
	}
}
