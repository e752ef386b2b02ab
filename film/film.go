package film

import (
	"filmorate/errs"
	"filmorate/genre"
	"filmorate/mpa"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

const MaxDescriptionLength = 200

// CinemaBirthday is the date of the first public film screening. Release dates
// must be strictly after it.
var CinemaBirthday = civil.Date{Year: 1895, Month: time.December, Day: 28}

var (
	ErrInvalidName        = errs.Errorf(errs.EINVALID, "film: name must not be blank")
	ErrDescriptionTooLong = errs.Errorf(errs.EINVALID, "film: description must be at most %d characters", MaxDescriptionLength)
	ErrInvalidReleaseDate = errs.Errorf(errs.EINVALID, "film: release date must be after %s", CinemaBirthday)
	ErrInvalidDuration    = errs.Errorf(errs.EINVALID, "film: duration must be positive")
	ErrUnknownMpa         = errs.Errorf(errs.EINVALID, "film: unknown mpa rating")
	ErrUnknownGenre       = errs.Errorf(errs.EINVALID, "film: unknown genre")
	ErrInvalidCount       = errs.Errorf(errs.EINVALID, "film: count must be positive")
	ErrInvalidQuery       = errs.Errorf(errs.EINVALID, "film: invalid search query")
	ErrFilmNotFound       = errs.Errorf(errs.ENOTFOUND, "film: not found")
)

type Film struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ReleaseDate civil.Date `json:"releaseDate"`
	// Duration in minutes.
	Duration int `json:"duration"`
	// Likes holds the IDs of users who liked the film, ascending.
	Likes  []int64       `json:"likes"`
	Mpa    *mpa.Rating   `json:"mpa"`
	Genres []genre.Genre `json:"genres"`
}

func (f Film) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrInvalidName
	}

	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if f.ReleaseDate.IsZero() || !f.ReleaseDate.IsValid() || !f.ReleaseDate.After(CinemaBirthday) {
		return ErrInvalidReleaseDate
	}

	if f.Duration <= 0 {
		return ErrInvalidDuration
	}

	return nil
}

func (f Film) LikeCount() int {
	return len(f.Likes)
}

func (f Film) LikedBy(userID int64) bool {
	_, found := slices.BinarySearch(f.Likes, userID)
	return found
}

// GenreIDs returns the distinct genre IDs of f, ascending.
func (f Film) GenreIDs() []int64 {
	ids := make([]int64, 0, len(f.Genres))
	for _, g := range f.Genres {
		ids = append(ids, g.ID)
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

// withSets replaces nil collections so they encode as empty JSON arrays.
func (f Film) withSets() Film {
	if f.Likes == nil {
		f.Likes = []int64{}
	}
	if f.Genres == nil {
		f.Genres = []genre.Genre{}
	}
	return f
}

// ByPopularity orders films by like count descending, then by ID.
func ByPopularity(a, b Film) int {
	if n := b.LikeCount() - a.LikeCount(); n != 0 {
		return n
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}
