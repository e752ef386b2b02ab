package mpa_test

import (
	"context"
	"filmorate/mpa"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) AllRatings(ctx context.Context) ([]mpa.Rating, error) {
	args := m.Called(ctx)
	return args.Get(0).([]mpa.Rating), args.Error(1)
}

func (m *MockRatingRepository) GetByID(ctx context.Context, id int64) (mpa.Rating, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(mpa.Rating), args.Error(1)
}

func TestListRatings(t *testing.T) {
	r := new(MockRatingRepository)
	uc := mpa.NewUsecase(r)

	r.On("AllRatings", mock.Anything).Return(mpa.Catalog, nil).Once()

	result, err := uc.ListRatings(context.Background())

	assert.NoError(t, err)
	assert.Len(t, result, 5)
	assert.Equal(t, "PG-13", result[2].Name)
	r.AssertExpectations(t)
}

func TestGetRating(t *testing.T) {
	r := new(MockRatingRepository)
	uc := mpa.NewUsecase(r)

	t.Run("should return rating by id", func(t *testing.T) {
		r.On("GetByID", mock.Anything, int64(5)).Return(mpa.Rating{ID: 5, Name: "NC-17"}, nil).Once()

		result, err := uc.GetRating(context.Background(), 5)

		assert.NoError(t, err)
		assert.Equal(t, mpa.Rating{ID: 5, Name: "NC-17"}, result)
		r.AssertExpectations(t)
	})

	t.Run("should reject negative id", func(t *testing.T) {
		_, err := uc.GetRating(context.Background(), -1)

		assert.Equal(t, mpa.ErrRatingNotFound, err)
	})
}
