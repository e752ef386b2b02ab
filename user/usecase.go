package user

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
)

type Service interface {
	AddUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, id, friendID int64) (User, error)
	RemoveFriend(ctx context.Context, id, friendID int64) (User, error)
	ListFriends(ctx context.Context, id int64) ([]User, error)
	CommonFriends(ctx context.Context, id, otherID int64) ([]User, error)
}

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	// GetByIDs returns the existing users among ids ordered by ID.
	GetByIDs(ctx context.Context, ids []int64) ([]User, error)
	AllUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, id, friendID int64) error
	RemoveFriend(ctx context.Context, id, friendID int64) error
}

type Usecase struct {
	r   Repository
	now func() time.Time
}

// Option configures a Usecase.
type Option func(*Usecase)

// WithClock sets the clock birthdays are checked against.
func WithClock(now func() time.Time) Option {
	return func(uc *Usecase) {
		uc.now = now
	}
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r: r,
		now: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) AddUser(ctx context.Context, u User) (User, error) {
	u = u.Normalize()
	if err := u.Validate(civil.DateOf(uc.now())); err != nil {
		return User{}, err
	}
	u.ID = 0
	u.Friends = nil
	return uc.r.CreateUser(ctx, u)
}

func (uc *Usecase) UpdateUser(ctx context.Context, u User) (User, error) {
	if u.ID <= 0 {
		return User{}, ErrUserNotFound
	}
	u = u.Normalize()
	if err := u.Validate(civil.DateOf(uc.now())); err != nil {
		return User{}, err
	}
	return uc.r.UpdateUser(ctx, u)
}

func (uc *Usecase) GetUser(ctx context.Context, id int64) (User, error) {
	if id <= 0 {
		return User{}, ErrUserNotFound
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) ListUsers(ctx context.Context) ([]User, error) {
	return uc.r.AllUsers(ctx)
}

func (uc *Usecase) DeleteUser(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrUserNotFound
	}
	return uc.r.DeleteUser(ctx, id)
}

func (uc *Usecase) AddFriend(ctx context.Context, id, friendID int64) (User, error) {
	if err := uc.checkPair(ctx, id, friendID); err != nil {
		return User{}, err
	}
	if err := uc.r.AddFriend(ctx, id, friendID); err != nil {
		return User{}, err
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) RemoveFriend(ctx context.Context, id, friendID int64) (User, error) {
	if err := uc.checkPair(ctx, id, friendID); err != nil {
		return User{}, err
	}
	if err := uc.r.RemoveFriend(ctx, id, friendID); err != nil {
		return User{}, err
	}
	return uc.r.GetByID(ctx, id)
}

func (uc *Usecase) ListFriends(ctx context.Context, id int64) ([]User, error) {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(u.Friends) == 0 {
		return []User{}, nil
	}
	return uc.r.GetByIDs(ctx, u.Friends)
}

func (uc *Usecase) CommonFriends(ctx context.Context, id, otherID int64) ([]User, error) {
	u, err := uc.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	other, err := uc.GetUser(ctx, otherID)
	if err != nil {
		return nil, err
	}

	ids := CommonFriends(u, other)
	if len(ids) == 0 {
		return []User{}, nil
	}
	return uc.r.GetByIDs(ctx, ids)
}

// checkPair makes sure both ends of a friendship exist.
func (uc *Usecase) checkPair(ctx context.Context, id, friendID int64) error {
	if id == friendID {
		return ErrSelfFriendship
	}
	if _, err := uc.GetUser(ctx, id); err != nil {
		return err
	}
	if _, err := uc.GetUser(ctx, friendID); err != nil {
		return err
	}
	return nil
}
