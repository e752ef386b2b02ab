package mpa

import "filmorate/errs"

var ErrRatingNotFound = errs.Errorf(errs.ENOTFOUND, "mpa: rating not found")

// Rating is a Motion Picture Association content-rating category.
type Rating struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Catalog is the fixed set of ratings seeded into every storage backend.
var Catalog = []Rating{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}
