// nolint: funlen
package user_test

import (
	"context"
	"filmorate/user"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock User Repository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(user.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AddFriend(ctx context.Context, id, friendID int64) error {
	args := m.Called(ctx, id, friendID)
	return args.Error(0)
}

func (m *MockUserRepository) RemoveFriend(ctx context.Context, id, friendID int64) error {
	args := m.Called(ctx, id, friendID)
	return args.Error(0)
}

func birthday() civil.Date {
	return civil.Date{Year: 1990, Month: time.March, Day: 14}
}

// TEST AddUser
func TestAddUser(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should add new user", func(t *testing.T) {
		u := user.User{
			Email:    "john@mail.com",
			Login:    "john",
			Name:     "John",
			Birthday: birthday(),
		}
		created := u
		created.ID = 1

		r.On("CreateUser", mock.Anything, u).Return(created, nil).Once()

		result, err := uc.AddUser(context.Background(), u)

		assert.NoError(t, err, "expected no error when adding user")
		assert.Equal(t, int64(1), result.ID)
		r.AssertExpectations(t)
	})

	t.Run("should use login when name is blank", func(t *testing.T) {
		u := user.User{
			Email:    "jane@mail.com",
			Login:    "jane",
			Name:     "   ",
			Birthday: birthday(),
		}
		expected := u
		expected.Name = "jane"

		r.On("CreateUser", mock.Anything, expected).Return(expected, nil).Once()

		result, err := uc.AddUser(context.Background(), u)

		assert.NoError(t, err)
		assert.Equal(t, "jane", result.Name)
		r.AssertExpectations(t)
	})

	t.Run("should ignore client supplied id and friends", func(t *testing.T) {
		u := user.User{
			ID:       42,
			Email:    "bob@mail.com",
			Login:    "bob",
			Name:     "Bob",
			Birthday: birthday(),
			Friends:  []int64{1, 2},
		}
		expected := u
		expected.ID = 0
		expected.Friends = nil

		r.On("CreateUser", mock.Anything, expected).Return(expected, nil).Once()

		_, err := uc.AddUser(context.Background(), u)

		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	tests := []struct {
		name     string
		u        user.User
		expected error
	}{
		{
			name:     "should fail on empty email",
			u:        user.User{Login: "john", Birthday: birthday()},
			expected: user.ErrInvalidEmail,
		},
		{
			name:     "should fail on malformed email",
			u:        user.User{Email: "john.mail.com", Login: "john", Birthday: birthday()},
			expected: user.ErrInvalidEmail,
		},
		{
			name:     "should fail on blank login",
			u:        user.User{Email: "john@mail.com", Login: "  ", Birthday: birthday()},
			expected: user.ErrInvalidLogin,
		},
		{
			name:     "should fail on login with spaces",
			u:        user.User{Email: "john@mail.com", Login: "john doe", Birthday: birthday()},
			expected: user.ErrInvalidLogin,
		},
		{
			name:     "should fail on missing birthday",
			u:        user.User{Email: "john@mail.com", Login: "john"},
			expected: user.ErrInvalidBirthday,
		},
		{
			name:     "should fail on future birthday",
			u:        user.User{Email: "john@mail.com", Login: "john", Birthday: civil.Date{Year: 3000, Month: time.January, Day: 1}},
			expected: user.ErrInvalidBirthday,
		},
		{
			name:     "should fail on birthday today",
			u:        user.User{Email: "john@mail.com", Login: "john", Birthday: civil.Date{Year: 2024, Month: time.June, Day: 1}},
			expected: user.ErrInvalidBirthday,
		},
	}

	fixed := user.NewUsecase(r, user.WithClock(func() time.Time {
		return time.Date(2024, time.June, 1, 23, 59, 0, 0, time.UTC)
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fixed.AddUser(context.Background(), tt.u)

			assert.Equal(t, tt.expected, err)
			r.AssertNotCalled(t, "CreateUser", mock.Anything, tt.u)
		})
	}
}

func TestAddUser_Clock(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r, user.WithClock(func() time.Time {
		return time.Date(2024, time.June, 1, 0, 0, 1, 0, time.UTC)
	}))

	t.Run("should accept birthday the day before", func(t *testing.T) {
		u := user.User{Email: "john@mail.com", Login: "john", Name: "John", Birthday: civil.Date{Year: 2024, Month: time.May, Day: 31}}
		r.On("CreateUser", mock.Anything, u).Return(user.User{ID: 1}, nil).Once()

		_, err := uc.AddUser(context.Background(), u)

		assert.NoError(t, err)
		r.AssertExpectations(t)
	})

	t.Run("should reject birthday equal to clock date on update", func(t *testing.T) {
		u := user.User{ID: 1, Email: "john@mail.com", Login: "john", Name: "John", Birthday: civil.Date{Year: 2024, Month: time.June, Day: 1}}

		_, err := uc.UpdateUser(context.Background(), u)

		assert.Equal(t, user.ErrInvalidBirthday, err)
		r.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
	})
}

// TEST UpdateUser
func TestUpdateUser(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should update existing user", func(t *testing.T) {
		u := user.User{ID: 3, Email: "new@mail.com", Login: "newlogin", Name: "New", Birthday: birthday()}
		r.On("UpdateUser", mock.Anything, u).Return(u, nil).Once()

		result, err := uc.UpdateUser(context.Background(), u)

		assert.NoError(t, err)
		assert.Equal(t, u, result)
		r.AssertExpectations(t)
	})

	t.Run("should fail without id", func(t *testing.T) {
		u := user.User{Email: "new@mail.com", Login: "newlogin", Birthday: birthday()}

		_, err := uc.UpdateUser(context.Background(), u)

		assert.Equal(t, user.ErrUserNotFound, err)
	})

	t.Run("should propagate not found from repository", func(t *testing.T) {
		u := user.User{ID: 9999, Email: "ghost@mail.com", Login: "ghost", Name: "ghost", Birthday: birthday()}
		r.On("UpdateUser", mock.Anything, u).Return(user.User{}, user.ErrUserNotFound).Once()

		_, err := uc.UpdateUser(context.Background(), u)

		assert.ErrorIs(t, err, user.ErrUserNotFound)
		r.AssertExpectations(t)
	})
}

// TEST friends
func TestAddFriend(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	alice := user.User{ID: 1, Login: "alice"}
	bob := user.User{ID: 2, Login: "bob"}

	t.Run("should add friend and return updated user", func(t *testing.T) {
		updated := alice
		updated.Friends = []int64{2}

		r.On("GetByID", mock.Anything, int64(1)).Return(alice, nil).Once()
		r.On("GetByID", mock.Anything, int64(2)).Return(bob, nil).Once()
		r.On("AddFriend", mock.Anything, int64(1), int64(2)).Return(nil).Once()
		r.On("GetByID", mock.Anything, int64(1)).Return(updated, nil).Once()

		result, err := uc.AddFriend(context.Background(), 1, 2)

		require.NoError(t, err)
		assert.Equal(t, []int64{2}, result.Friends)
		r.AssertExpectations(t)
	})

	t.Run("should reject self friendship", func(t *testing.T) {
		_, err := uc.AddFriend(context.Background(), 1, 1)

		assert.Equal(t, user.ErrSelfFriendship, err)
		r.AssertNotCalled(t, "AddFriend", mock.Anything, int64(1), int64(1))
	})

	t.Run("should fail when friend does not exist", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(1)).Return(alice, nil).Once()
		r.On("GetByID", mock.Anything, int64(404)).Return(user.User{}, user.ErrUserNotFound).Once()

		_, err := uc.AddFriend(context.Background(), 1, 404)

		assert.ErrorIs(t, err, user.ErrUserNotFound)
		r.AssertNotCalled(t, "AddFriend", mock.Anything, int64(1), int64(404))
	})
}

func TestRemoveFriend(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	alice := user.User{ID: 1, Login: "alice", Friends: []int64{2}}
	bob := user.User{ID: 2, Login: "bob"}

	r.On("GetByID", mock.Anything, int64(1)).Return(alice, nil).Once()
	r.On("GetByID", mock.Anything, int64(2)).Return(bob, nil).Once()
	r.On("RemoveFriend", mock.Anything, int64(1), int64(2)).Return(nil).Once()
	r.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1, Login: "alice"}, nil).Once()

	result, err := uc.RemoveFriend(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Empty(t, result.Friends)
	r.AssertExpectations(t)
}

func TestListFriends(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should resolve friend ids", func(t *testing.T) {
		friends := []user.User{{ID: 2, Login: "bob"}, {ID: 3, Login: "carol"}}
		r.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1, Friends: []int64{2, 3}}, nil).Once()
		r.On("GetByIDs", mock.Anything, []int64{2, 3}).Return(friends, nil).Once()

		result, err := uc.ListFriends(context.Background(), 1)

		assert.NoError(t, err)
		assert.Equal(t, friends, result)
		r.AssertExpectations(t)
	})

	t.Run("should return empty list for user without friends", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(5)).Return(user.User{ID: 5}, nil).Once()

		result, err := uc.ListFriends(context.Background(), 5)

		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestCommonFriends(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should intersect friend sets", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1, Friends: []int64{2, 3, 5}}, nil).Once()
		r.On("GetByID", mock.Anything, int64(4)).Return(user.User{ID: 4, Friends: []int64{3, 5, 6}}, nil).Once()
		common := []user.User{{ID: 3}, {ID: 5}}
		r.On("GetByIDs", mock.Anything, []int64{3, 5}).Return(common, nil).Once()

		result, err := uc.CommonFriends(context.Background(), 1, 4)

		assert.NoError(t, err)
		assert.Equal(t, common, result)
		r.AssertExpectations(t)
	})

	t.Run("should return empty list when nothing in common", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(1)).Return(user.User{ID: 1, Friends: []int64{2}}, nil).Once()
		r.On("GetByID", mock.Anything, int64(4)).Return(user.User{ID: 4, Friends: []int64{6}}, nil).Once()

		result, err := uc.CommonFriends(context.Background(), 1, 4)

		assert.NoError(t, err)
		assert.Empty(t, result)
		r.AssertExpectations(t)
	})
}

// TEST ListUsers
func TestListUsers(t *testing.T) {
	r := new(MockUserRepository)
	uc := user.NewUsecase(r)

	t.Run("should return list of users", func(t *testing.T) {
		users := []user.User{
			{ID: 1, Login: "john", Email: "john@mail.com"},
			{ID: 2, Login: "jane", Email: "jane@mail.com"},
		}

		r.On("AllUsers", mock.Anything).Return(users, nil).Once()

		result, err := uc.ListUsers(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, users, result)
		r.AssertExpectations(t)
	})
}

func TestCommonFriendIDs(t *testing.T) {
	a := user.User{Friends: []int64{1, 2, 3, 7}}
	b := user.User{Friends: []int64{2, 7, 9}}

	assert.Equal(t, []int64{2, 7}, user.CommonFriends(a, b))
	assert.Empty(t, user.CommonFriends(a, user.User{}))
}
