package genre

import "filmorate/errs"

var ErrGenreNotFound = errs.Errorf(errs.ENOTFOUND, "genre: not found")

// Genre is a classification tag attachable to a film.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is the fixed set of genres seeded into every storage backend.
var Catalog = []Genre{
	{ID: 1, Name: "Comedy"},
	{ID: 2, Name: "Drama"},
	{ID: 3, Name: "Animation"},
	{ID: 4, Name: "Thriller"},
	{ID: 5, Name: "Documentary"},
	{ID: 6, Name: "Action"},
}
