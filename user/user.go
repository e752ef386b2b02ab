package user

import (
	"filmorate/errs"
	"slices"
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail       = errs.Errorf(errs.EINVALID, "user: invalid email")
	ErrInvalidLogin       = errs.Errorf(errs.EINVALID, "user: login must not be blank or contain spaces")
	ErrInvalidBirthday    = errs.Errorf(errs.EINVALID, "user: birthday must be in the past")
	ErrSelfFriendship     = errs.Errorf(errs.EINVALID, "user: cannot befriend yourself")
	ErrUserNotFound       = errs.Errorf(errs.ENOTFOUND, "user: not found")
	ErrEmailAlreadyExists = errs.Errorf(errs.ECONFLICT, "user: email already exists")
)

var validate = validator.New()

type User struct {
	ID       int64      `json:"id"`
	Email    string     `json:"email"`
	Login    string     `json:"login"`
	Name     string     `json:"name"`
	Birthday civil.Date `json:"birthday"`
	// Friends holds the IDs this user has befriended, ascending.
	Friends []int64 `json:"friends"`
}

// Normalize trims the editable fields and falls back to the login when the
// display name is blank.
func (u User) Normalize() User {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		u.Name = u.Login
	}
	return u
}

// Validate checks u against the calendar day today.
func (u User) Validate(today civil.Date) error {
	if err := validateEmail(u.Email); err != nil {
		return err
	}

	if err := validateLogin(u.Login); err != nil {
		return err
	}

	if u.Birthday.IsZero() || !u.Birthday.IsValid() || !u.Birthday.Before(today) {
		return ErrInvalidBirthday
	}

	return nil
}

func (u User) HasFriend(id int64) bool {
	_, found := slices.BinarySearch(u.Friends, id)
	return found
}

func validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrInvalidEmail
	}
	if err := validate.Var(email, "email"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func validateLogin(login string) error {
	if strings.TrimSpace(login) == "" || strings.IndexFunc(login, unicode.IsSpace) >= 0 {
		return ErrInvalidLogin
	}
	return nil
}

// CommonFriends returns the IDs present in both friend sets, ascending.
func CommonFriends(a, b User) []int64 {
	common := make([]int64, 0)
	for _, id := range a.Friends {
		if b.HasFriend(id) {
			common = append(common, id)
		}
	}
	return common
}
