package memory

import (
	"context"
	"filmorate/film"
	"filmorate/user"
	"slices"
	"strings"
)

type FilmRepository struct {
	s *Store
}

func (r *FilmRepository) CreateFilm(_ context.Context, f film.Film) (film.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastFilmID++
	f.ID = r.s.lastFilmID
	f.Likes = []int64{}
	f = copyFilm(f)
	r.s.films[f.ID] = f

	return copyFilm(f), nil
}

func (r *FilmRepository) UpdateFilm(_ context.Context, f film.Film) (film.Film, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.films[f.ID]
	if !ok {
		return film.Film{}, film.ErrFilmNotFound
	}
	f.Likes = stored.Likes
	f = copyFilm(f)
	r.s.films[f.ID] = f

	return copyFilm(f), nil
}

func (r *FilmRepository) GetByID(_ context.Context, id int64) (film.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.films[id]
	if !ok {
		return film.Film{}, film.ErrFilmNotFound
	}
	return copyFilm(f), nil
}

func (r *FilmRepository) AllFilms(_ context.Context) ([]film.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	films := make([]film.Film, 0, len(r.s.films))
	for _, id := range sortedKeys(r.s.films) {
		films = append(films, copyFilm(r.s.films[id]))
	}
	return films, nil
}

func (r *FilmRepository) DeleteFilm(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.films[id]; !ok {
		return film.ErrFilmNotFound
	}
	delete(r.s.films, id)
	return nil
}

func (r *FilmRepository) AddLike(_ context.Context, filmID, userID int64) error {
	return r.updateLikes(filmID, userID, addID)
}

func (r *FilmRepository) RemoveLike(_ context.Context, filmID, userID int64) error {
	return r.updateLikes(filmID, userID, removeID)
}

// Search matches query case-insensitively against film names and
// descriptions, ordered by ID.
func (r *FilmRepository) Search(_ context.Context, query string, limit int) ([]film.Film, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	query = strings.ToLower(query)
	films := make([]film.Film, 0)
	for _, id := range sortedKeys(r.s.films) {
		if len(films) == limit {
			break
		}
		f := r.s.films[id]
		if strings.Contains(strings.ToLower(f.Name), query) ||
			strings.Contains(strings.ToLower(f.Description), query) {
			films = append(films, copyFilm(f))
		}
	}
	return films, nil
}

func (r *FilmRepository) updateLikes(filmID, userID int64, apply func([]int64, int64) []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.films[filmID]
	if !ok {
		return film.ErrFilmNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return user.ErrUserNotFound
	}

	f.Likes = apply(f.Likes, userID)
	r.s.films[filmID] = f
	return nil
}

func copyFilm(f film.Film) film.Film {
	f.Likes = slices.Clone(f.Likes)
	if f.Likes == nil {
		f.Likes = []int64{}
	}
	f.Genres = slices.Clone(f.Genres)
	if f.Mpa != nil {
		rating := *f.Mpa
		f.Mpa = &rating
	}
	return f
}
