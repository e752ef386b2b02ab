package dynamodb

import (
	"cmp"
	"context"
	"errors"
	"filmorate/errs"
	"filmorate/user"
	"fmt"
	"slices"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const usersSequence = "users"

// UserRepository stores users keyed by numeric id. Friend IDs are kept on the
// user item as a number set.
type UserRepository struct {
	client     API
	table      string
	filmsTable string
	ids        *Counter
}

type userItem struct {
	ID       int64   `dynamodbav:"id"`
	Email    string  `dynamodbav:"email"`
	Login    string  `dynamodbav:"login"`
	Name     string  `dynamodbav:"name"`
	Birthday string  `dynamodbav:"birthday"`
	Friends  []int64 `dynamodbav:"friends,numberset,omitempty"`
}

// NewUserRepository creates a user repository. filmsTable is used to drop the
// likes of deleted users.
func NewUserRepository(client API, table, filmsTable string, ids *Counter) *UserRepository {
	return &UserRepository{
		client:     client,
		table:      table,
		filmsTable: filmsTable,
		ids:        ids,
	}
}

func (r *UserRepository) CreateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	id, err := r.ids.Next(ctx, usersSequence)
	if err != nil {
		return user.User{}, err
	}
	u.ID = id
	u.Friends = []int64{}

	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: marshal user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return user.User{}, errs.Errorf(errs.ECONFLICT, "user %d already exists", id)
		}
		return user.User{}, fmt.Errorf("dynamodb: put user: %w", err)
	}

	return u, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u user.User) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              idKey(u.ID),
		UpdateExpression: aws.String("SET email = :email, login = :login, #name = :name, birthday = :birthday"),
		ExpressionAttributeNames: map[string]string{
			"#name": "name",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email":    &types.AttributeValueMemberS{Value: u.Email},
			":login":    &types.AttributeValueMemberS{Value: u.Login},
			":name":     &types.AttributeValueMemberS{Value: u.Name},
			":birthday": &types.AttributeValueMemberS{Value: u.Birthday.String()},
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
		ReturnValues:        types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("dynamodb: update user: %w", err)
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}
	return toDomainUser(item)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (user.User, error) {
	if err := validateTable(r.table); err != nil {
		return user.User{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: get user: %w", err)
	}
	if len(out.Item) == 0 {
		return user.User{}, user.ErrUserNotFound
	}

	var item userItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return user.User{}, fmt.Errorf("dynamodb: unmarshal user: %w", err)
	}
	return toDomainUser(item)
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]user.User, error) {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	users := make([]user.User, 0, len(sorted))
	for _, id := range sorted {
		u, err := r.GetByID(ctx, id)
		if errors.Is(err, user.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) AllUsers(ctx context.Context) ([]user.User, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	items, err := scanAll[userItem](ctx, r.client, &dynamodb.ScanInput{TableName: &r.table}, "users")
	if err != nil {
		return nil, err
	}

	users := make([]user.User, 0, len(items))
	for _, item := range items {
		u, err := toDomainUser(item)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	slices.SortFunc(users, func(a, b user.User) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return users, nil
}

// DeleteUser removes the user item, then drops the user from other friend
// sets and from film likes. The cleanup is not atomic with the delete.
func (r *UserRepository) DeleteUser(ctx context.Context, id int64) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           &r.table,
		Key:                 idKey(id),
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("dynamodb: delete user: %w", err)
	}

	if err := removeFromSets(ctx, r.client, r.table, "friends", id); err != nil {
		return err
	}
	if r.filmsTable != "" {
		return removeFromSets(ctx, r.client, r.filmsTable, "likes", id)
	}
	return nil
}

func (r *UserRepository) AddFriend(ctx context.Context, id, friendID int64) error {
	if _, err := r.GetByID(ctx, friendID); err != nil {
		return err
	}
	return r.updateFriends(ctx, "ADD", id, friendID)
}

func (r *UserRepository) RemoveFriend(ctx context.Context, id, friendID int64) error {
	return r.updateFriends(ctx, "DELETE", id, friendID)
}

func (r *UserRepository) updateFriends(ctx context.Context, action string, id, friendID int64) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              idKey(id),
		UpdateExpression: aws.String(action + " friends :ids"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids": numberSet(friendID),
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("dynamodb: update friends: %w", err)
	}
	return nil
}

// removeFromSets deletes id from the number set attr of every item in table
// that contains it.
func removeFromSets(ctx context.Context, client API, table, attr string, id int64) error {
	type keyItem struct {
		ID int64 `dynamodbav:"id"`
	}

	holders, err := scanAll[keyItem](ctx, client, &dynamodb.ScanInput{
		TableName:                &table,
		ProjectionExpression:     aws.String("id"),
		FilterExpression:         aws.String("contains(#attr, :id)"),
		ExpressionAttributeNames: map[string]string{"#attr": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": numberValue(id),
		},
	}, table)
	if err != nil {
		return err
	}

	for _, h := range holders {
		_, err := client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                &table,
			Key:                      idKey(h.ID),
			UpdateExpression:         aws.String("DELETE #attr :ids"),
			ExpressionAttributeNames: map[string]string{"#attr": attr},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":ids": numberSet(id),
			},
		})
		if err != nil {
			return fmt.Errorf("dynamodb: remove %d from %s.%s: %w", id, table, attr, err)
		}
	}
	return nil
}

func toUserItem(u user.User) userItem {
	return userItem{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday.String(),
		Friends:  nonEmptySet(u.Friends),
	}
}

func toDomainUser(item userItem) (user.User, error) {
	birthday, err := civil.ParseDate(item.Birthday)
	if err != nil {
		return user.User{}, fmt.Errorf("dynamodb: parse birthday: %w", err)
	}

	friends := slices.Clone(item.Friends)
	if friends == nil {
		friends = []int64{}
	}
	slices.Sort(friends)

	return user.User{
		ID:       item.ID,
		Email:    item.Email,
		Login:    item.Login,
		Name:     item.Name,
		Birthday: birthday,
		Friends:  friends,
	}, nil
}
