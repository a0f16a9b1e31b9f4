package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mesa/internal/database"
	"mesa/internal/models"
)

func TestCleanCuisineStyle(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`['Italian', 'Pizza']`, "Italian, Pizza"},
		{`["French", "Cafe"]`, "French, Cafe"},
		{"Thai", "Thai"},
		{"", ""},
		{"[]", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanCuisineStyle(tt.raw))
	}
}

func newCatalog(t *testing.T) *RestaurantService {
	t.Helper()
	db, err := database.ConnectInMemory()
	require.NoError(t, err)

	rating := 4.5
	reviews := 120
	seedRows := []models.Restaurant{
		{Name: "Trattoria Roma", City: "Rome", CuisineStyle: `['Italian', 'Mediterranean']`, Rating: &rating, NumberOfReviews: &reviews},
		{Name: "Golden Dragon", City: "Paris", CuisineStyle: `['Chinese']`},
		{Name: "Le Petit Cafe", City: "Paris", CuisineStyle: `['French', 'Cafe']`},
	}
	require.NoError(t, db.Create(&seedRows).Error)
	return NewRestaurantService(db)
}

func TestSearchRestaurants(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	page, err := svc.Search(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Restaurants, 3)
	assert.Equal(t, "Italian, Mediterranean", page.Restaurants[0].CuisineStyle)

	page, err = svc.Search(ctx, "paris", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)

	page, err = svc.Search(ctx, "chinese", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Restaurants, 1)
	assert.Equal(t, "Golden Dragon", page.Restaurants[0].Name)
}

func TestSearchPaginationBounds(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	page, err := svc.Search(ctx, "", 0, 500)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, maxPageSize, page.PageSize)

	page, err = svc.Search(ctx, "", 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total)
	assert.Len(t, page.Restaurants, 1)
}

func TestGetRestaurant(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	r, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Trattoria Roma", r.Name)

	_, err = svc.Get(ctx, 999)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
