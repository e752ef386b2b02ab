package dynamodb

import (
	"cmp"
	"context"
	"filmorate/errs"
	"filmorate/film"
	"filmorate/genre"
	"filmorate/mpa"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const filmsSequence = "films"

// FilmRepository stores films keyed by numeric id. Likes and genre IDs are
// number sets on the film item; catalog names are resolved on read.
type FilmRepository struct {
	client  API
	table   string
	ids     *Counter
	genres  genre.Repository
	ratings mpa.Repository
}

type filmItem struct {
	ID          int64   `dynamodbav:"id"`
	Name        string  `dynamodbav:"name"`
	Description string  `dynamodbav:"description"`
	ReleaseDate string  `dynamodbav:"release_date"`
	Duration    int     `dynamodbav:"duration"`
	MpaID       int64   `dynamodbav:"mpa_id,omitempty"`
	GenreIDs    []int64 `dynamodbav:"genre_ids,numberset,omitempty"`
	Likes       []int64 `dynamodbav:"likes,numberset,omitempty"`
}

func NewFilmRepository(client API, table string, ids *Counter, genres genre.Repository, ratings mpa.Repository) *FilmRepository {
	return &FilmRepository{
		client:  client,
		table:   table,
		ids:     ids,
		genres:  genres,
		ratings: ratings,
	}
}

func (r *FilmRepository) CreateFilm(ctx context.Context, f film.Film) (film.Film, error) {
	if err := validateTable(r.table); err != nil {
		return film.Film{}, err
	}

	id, err := r.ids.Next(ctx, filmsSequence)
	if err != nil {
		return film.Film{}, err
	}
	f.ID = id
	f.Likes = []int64{}

	av, err := attributevalue.MarshalMap(toFilmItem(f))
	if err != nil {
		return film.Film{}, fmt.Errorf("dynamodb: marshal film: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &r.table,
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return film.Film{}, errs.Errorf(errs.ECONFLICT, "film %d already exists", id)
		}
		return film.Film{}, fmt.Errorf("dynamodb: put film: %w", err)
	}

	return f, nil
}

// UpdateFilm rewrites every attribute except likes.
func (r *FilmRepository) UpdateFilm(ctx context.Context, f film.Film) (film.Film, error) {
	if err := validateTable(r.table); err != nil {
		return film.Film{}, err
	}

	set := []string{
		"#name = :name",
		"description = :description",
		"release_date = :release_date",
		"#duration = :duration",
	}
	values := map[string]types.AttributeValue{
		":name":         &types.AttributeValueMemberS{Value: f.Name},
		":description":  &types.AttributeValueMemberS{Value: f.Description},
		":release_date": &types.AttributeValueMemberS{Value: f.ReleaseDate.String()},
		":duration":     numberValue(int64(f.Duration)),
	}
	var remove []string

	if f.Mpa != nil {
		set = append(set, "mpa_id = :mpa_id")
		values[":mpa_id"] = numberValue(f.Mpa.ID)
	} else {
		remove = append(remove, "mpa_id")
	}

	if ids := f.GenreIDs(); len(ids) > 0 {
		set = append(set, "genre_ids = :genre_ids")
		values[":genre_ids"] = numberSet(ids...)
	} else {
		remove = append(remove, "genre_ids")
	}

	expr := "SET " + strings.Join(set, ", ")
	if len(remove) > 0 {
		expr += " REMOVE " + strings.Join(remove, ", ")
	}

	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              idKey(f.ID),
		UpdateExpression: aws.String(expr),
		ExpressionAttributeNames: map[string]string{
			"#name":     "name",
			"#duration": "duration",
		},
		ExpressionAttributeValues: values,
		ConditionExpression:       aws.String("attribute_exists(id)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionFailed(err) {
			return film.Film{}, film.ErrFilmNotFound
		}
		return film.Film{}, fmt.Errorf("dynamodb: update film: %w", err)
	}

	var item filmItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return film.Film{}, fmt.Errorf("dynamodb: unmarshal film: %w", err)
	}
	return r.toDomainFilm(ctx, item)
}

func (r *FilmRepository) GetByID(ctx context.Context, id int64) (film.Film, error) {
	if err := validateTable(r.table); err != nil {
		return film.Film{}, err
	}

	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &r.table,
		Key:            idKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return film.Film{}, fmt.Errorf("dynamodb: get film: %w", err)
	}
	if len(out.Item) == 0 {
		return film.Film{}, film.ErrFilmNotFound
	}

	var item filmItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return film.Film{}, fmt.Errorf("dynamodb: unmarshal film: %w", err)
	}
	return r.toDomainFilm(ctx, item)
}

func (r *FilmRepository) AllFilms(ctx context.Context) ([]film.Film, error) {
	if err := validateTable(r.table); err != nil {
		return nil, err
	}

	items, err := scanAll[filmItem](ctx, r.client, &dynamodb.ScanInput{TableName: &r.table}, "films")
	if err != nil {
		return nil, err
	}
	return r.toDomainFilms(ctx, items)
}

func (r *FilmRepository) DeleteFilm(ctx context.Context, id int64) error {
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
			return film.ErrFilmNotFound
		}
		return fmt.Errorf("dynamodb: delete film: %w", err)
	}
	return nil
}

func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	return r.updateLikes(ctx, "ADD", filmID, userID)
}

func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return r.updateLikes(ctx, "DELETE", filmID, userID)
}

// Search scans the table and matches query case-insensitively against names
// and descriptions, ordered by ID.
func (r *FilmRepository) Search(ctx context.Context, query string, limit int) ([]film.Film, error) {
	films, err := r.AllFilms(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	found := make([]film.Film, 0)
	for _, f := range films {
		if len(found) == limit {
			break
		}
		if strings.Contains(strings.ToLower(f.Name), query) ||
			strings.Contains(strings.ToLower(f.Description), query) {
			found = append(found, f)
		}
	}
	return found, nil
}

func (r *FilmRepository) updateLikes(ctx context.Context, action string, filmID, userID int64) error {
	if err := validateTable(r.table); err != nil {
		return err
	}

	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        &r.table,
		Key:              idKey(filmID),
		UpdateExpression: aws.String(action + " likes :ids"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ids": numberSet(userID),
		},
		ConditionExpression: aws.String("attribute_exists(id)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return film.ErrFilmNotFound
		}
		return fmt.Errorf("dynamodb: update likes: %w", err)
	}
	return nil
}

func (r *FilmRepository) toDomainFilms(ctx context.Context, items []filmItem) ([]film.Film, error) {
	films := make([]film.Film, 0, len(items))
	for _, item := range items {
		f, err := r.toDomainFilm(ctx, item)
		if err != nil {
			return nil, err
		}
		films = append(films, f)
	}
	slices.SortFunc(films, func(a, b film.Film) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return films, nil
}

func (r *FilmRepository) toDomainFilm(ctx context.Context, item filmItem) (film.Film, error) {
	released, err := civil.ParseDate(item.ReleaseDate)
	if err != nil {
		return film.Film{}, fmt.Errorf("dynamodb: parse release date: %w", err)
	}

	f := film.Film{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		ReleaseDate: released,
		Duration:    item.Duration,
		Likes:       slices.Sorted(slices.Values(item.Likes)),
		Genres:      make([]genre.Genre, 0, len(item.GenreIDs)),
	}
	if f.Likes == nil {
		f.Likes = []int64{}
	}

	if item.MpaID != 0 {
		rating, err := r.ratings.GetByID(ctx, item.MpaID)
		if err != nil {
			return film.Film{}, err
		}
		f.Mpa = &rating
	}

	for _, id := range slices.Sorted(slices.Values(item.GenreIDs)) {
		g, err := r.genres.GetByID(ctx, id)
		if err != nil {
			return film.Film{}, err
		}
		f.Genres = append(f.Genres, g)
	}

	return f, nil
}

func toFilmItem(f film.Film) filmItem {
	item := filmItem{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate.String(),
		Duration:    f.Duration,
		GenreIDs:    nonEmptySet(f.GenreIDs()),
		Likes:       nonEmptySet(f.Likes),
	}
	if f.Mpa != nil {
		item.MpaID = f.Mpa.ID
	}
	return item
}
