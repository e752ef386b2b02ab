package memory

import (
	"context"
	"filmorate/user"
	"slices"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) CreateUser(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.lastUserID++
	u.ID = r.s.lastUserID
	u.Friends = []int64{}
	r.s.users[u.ID] = u

	return copyUser(u), nil
}

func (r *UserRepository) UpdateUser(_ context.Context, u user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[u.ID]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	u.Friends = stored.Friends
	r.s.users[u.ID] = u

	return copyUser(u), nil
}

func (r *UserRepository) GetByID(_ context.Context, id int64) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByIDs(_ context.Context, ids []int64) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make([]user.User, 0, len(sorted))
	for _, id := range sorted {
		if u, ok := r.s.users[id]; ok {
			users = append(users, copyUser(u))
		}
	}
	return users, nil
}

func (r *UserRepository) AllUsers(_ context.Context) ([]user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]user.User, 0, len(r.s.users))
	for _, id := range sortedKeys(r.s.users) {
		users = append(users, copyUser(r.s.users[id]))
	}
	return users, nil
}

func (r *UserRepository) DeleteUser(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.s.users, id)

	for otherID, other := range r.s.users {
		if other.HasFriend(id) {
			other.Friends = removeID(other.Friends, id)
			r.s.users[otherID] = other
		}
	}
	for filmID, f := range r.s.films {
		if f.LikedBy(id) {
			f.Likes = removeID(f.Likes, id)
			r.s.films[filmID] = f
		}
	}
	return nil
}

func (r *UserRepository) AddFriend(_ context.Context, id, friendID int64) error {
	return r.updateFriends(id, friendID, addID)
}

func (r *UserRepository) RemoveFriend(_ context.Context, id, friendID int64) error {
	return r.updateFriends(id, friendID, removeID)
}

func (r *UserRepository) updateFriends(id, friendID int64, apply func([]int64, int64) []int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	if _, ok := r.s.users[friendID]; !ok {
		return user.ErrUserNotFound
	}

	u.Friends = apply(u.Friends, friendID)
	r.s.users[id] = u
	return nil
}

func copyUser(u user.User) user.User {
	u.Friends = slices.Clone(u.Friends)
	if u.Friends == nil {
		u.Friends = []int64{}
	}
	return u
}
