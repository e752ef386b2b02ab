package postgres

import (
	"context"
	"errors"
	"filmorate/user"
	"time"

	"cloud.google.com/go/civil"
	"gorm.io/gorm"
)

const usersEmailKey = "users_email_key"

// UserModel represents the database model for users
type UserModel struct {
	ID       int64     `gorm:"column:user_id;primaryKey"`
	Email    string    `gorm:"not null"`
	Login    string    `gorm:"not null"`
	Name     string    `gorm:"not null;default:''"`
	Birthday time.Time `gorm:"type:date;not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// FriendshipModel is a directed edge: UserID has added FriendID.
type FriendshipModel struct {
	UserID   int64 `gorm:"primaryKey"`
	FriendID int64 `gorm:"primaryKey"`
}

func (FriendshipModel) TableName() string {
	return "friendship"
}

// UserRepository implements user.Repository interface
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts u and returns it with the generated ID.
func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	model := toModelUser(u)
	model.ID = 0
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err, usersEmailKey) {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, err
	}
	return toDomainUser(model, []int64{}), nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	result := r.db.WithContext(ctx).Model(&UserModel{}).Where("user_id = ?", u.ID).Updates(map[string]interface{}{
		"email":    u.Email,
		"login":    u.Login,
		"name":     u.Name,
		"birthday": toTime(u.Birthday),
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error, usersEmailKey) {
			return user.User{}, user.ErrEmailAlreadyExists
		}
		return user.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return user.User{}, user.ErrUserNotFound
	}
	return r.GetByID(ctx, u.ID)
}

// GetByID fetches a user with its friend IDs.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	var model UserModel

	err := r.db.WithContext(ctx).Where("user_id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	friends, err := r.friendsOf(ctx, []int64{id})
	if err != nil {
		return user.User{}, err
	}
	return toDomainUser(model, friends[id]), nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	if len(ids) == 0 {
		return []user.User{}, nil
	}
	return r.find(ctx, r.db.WithContext(ctx).Where("user_id IN ?", ids))
}

// AllUsers fetches all users from the database
func (r *UserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) AddFriend(ctx context.Context, id, friendID int64) error {
	const sql = `INSERT INTO friendship (user_id, friend_id) VALUES (?, ?) ON CONFLICT DO NOTHING`

	if err := r.db.WithContext(ctx).Exec(sql, id, friendID).Error; err != nil {
		if isForeignKeyViolation(err) {
			return user.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (r *UserRepository) RemoveFriend(ctx context.Context, id, friendID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", id, friendID).
		Delete(&FriendshipModel{}).Error
}

func (r *UserRepository) find(ctx context.Context, q *gorm.DB) ([]user.User, error) {
	var models []UserModel
	if err := q.Order("user_id").Find(&models).Error; err != nil {
		return nil, err
	}

	ids := make([]int64, len(models))
	for i, model := range models {
		ids[i] = model.ID
	}
	friends, err := r.friendsOf(ctx, ids)
	if err != nil {
		return nil, err
	}

	users := make([]user.User, len(models))
	for i, model := range models {
		users[i] = toDomainUser(model, friends[model.ID])
	}
	return users, nil
}

// friendsOf loads the friend IDs of every user in ids with one query.
func (r *UserRepository) friendsOf(ctx context.Context, ids []int64) (map[int64][]int64, error) {
	friends := make(map[int64][]int64, len(ids))
	if len(ids) == 0 {
		return friends, nil
	}

	var edges []FriendshipModel
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Order("user_id, friend_id").
		Find(&edges).Error
	if err != nil {
		return nil, err
	}

	for _, e := range edges {
		friends[e.UserID] = append(friends[e.UserID], e.FriendID)
	}
	return friends, nil
}

func toDomainUser(model UserModel, friends []int64) user.User {
	if friends == nil {
		friends = []int64{}
	}
	return user.User{
		ID:       model.ID,
		Email:    model.Email,
		Login:    model.Login,
		Name:     model.Name,
		Birthday: civil.DateOf(model.Birthday),
		Friends:  friends,
	}
}

func toModelUser(u user.User) UserModel {
	return UserModel{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: toTime(u.Birthday),
	}
}

func toTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}
