package memory

import (
	"filmorate/film"
	"filmorate/user"
	"slices"
	"sync"
)

// Store keeps films and users in process memory. Films and users share one
// lock so that removing a user can also drop its likes and friend links.
type Store struct {
	mu sync.RWMutex

	films      map[int64]film.Film
	users      map[int64]user.User
	lastFilmID int64
	lastUserID int64
}

func NewStore() *Store {
	return &Store{
		films: make(map[int64]film.Film),
		users: make(map[int64]user.User),
	}
}

func (s *Store) Films() *FilmRepository {
	return &FilmRepository{s: s}
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{s: s}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// addID inserts id into the ascending set ids.
func addID(ids []int64, id int64) []int64 {
	i, found := slices.BinarySearch(ids, id)
	if found {
		return ids
	}
	return slices.Insert(slices.Clone(ids), i, id)
}

// removeID deletes id from the ascending set ids.
func removeID(ids []int64, id int64) []int64 {
	i, found := slices.BinarySearch(ids, id)
	if !found {
		return ids
	}
	return slices.Delete(slices.Clone(ids), i, i+1)
}
