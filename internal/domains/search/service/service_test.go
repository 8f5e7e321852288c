package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	bizmodel "localbiz-backend/internal/domains/business/model"
	"localbiz-backend/internal/domains/category"
)

type mockBusinesses struct{ mock.Mock }

func (m *mockBusinesses) SearchAll(ctx context.Context, search, location string) ([]bizmodel.Business, error) {
	args := m.Called(ctx, search, location)
	list, _ := args.Get(0).([]bizmodel.Business)
	return list, args.Error(1)
}
func (m *mockBusinesses) GlobalSearch(ctx context.Context, q string) ([]bizmodel.Business, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]bizmodel.Business)
	return list, args.Error(1)
}
func (m *mockBusinesses) LocationSuggestions(ctx context.Context, q string) ([]string, error) {
	args := m.Called(ctx, q)
	list, _ := args.Get(0).([]string)
	return list, args.Error(1)
}

type mockCategories struct{ mock.Mock }

func (m *mockCategories) List(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}
func (m *mockCategories) Search(ctx context.Context, term string, limit int) ([]category.Category, error) {
	args := m.Called(ctx, term, limit)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}

func mediaURL(key string) string { return "/media/" + key }

func TestGlobalShortQuery(t *testing.T) {
	b, c := &mockBusinesses{}, &mockCategories{}
	svc := NewSearchService(b, c, mediaURL)

	for _, q := range []string{"", "a", "  p  "} {
		res, err := svc.Global(context.Background(), q)
		require.NoError(t, err)
		assert.Nil(t, res, q)
	}
	b.AssertNotCalled(t, "GlobalSearch", mock.Anything, mock.Anything)
}

func TestGlobalBuildsHits(t *testing.T) {
	b, c := &mockBusinesses{}, &mockCategories{}
	svc := NewSearchService(b, c, mediaURL)

	img := "images/x.jpg"
	b.On("GlobalSearch", mock.Anything, "pizza").Return([]bizmodel.Business{
		{Name: "Joe's Pizza", Slug: "joes-pizza", City: "Springfield", State: "IL", CategoryName: "Food", FeaturedImage: &img},
		{Name: "Pizza Cart", Slug: "pizza-cart", City: "Springfield", State: "IL"},
	}, nil)
	c.On("Search", mock.Anything, "pizza", GlobalCategoryLimit).Return([]category.Category{
		{Name: "Pizza", Slug: "pizza", BusinessCount: 2},
	}, nil)

	res, err := svc.Global(context.Background(), " pizza ")
	require.NoError(t, err)
	require.Len(t, res.Businesses, 2)

	first := res.Businesses[0]
	assert.Equal(t, "/businesses/joes-pizza/", first.URL)
	assert.Equal(t, "Springfield, IL", first.Location)
	require.NotNil(t, first.Category)
	assert.Equal(t, "Food", *first.Category)
	require.NotNil(t, first.Image)
	assert.Equal(t, "/media/images/x.jpg", *first.Image)

	assert.Nil(t, res.Businesses[1].Category)
	assert.Nil(t, res.Businesses[1].Image)

	require.Len(t, res.Categories, 1)
	assert.Equal(t, CategoryHit{Name: "Pizza", URL: "/categories/pizza/", BusinessCount: 2}, res.Categories[0])
}

func TestPageReturnsAllCategories(t *testing.T) {
	b, c := &mockBusinesses{}, &mockCategories{}
	svc := NewSearchService(b, c, mediaURL)

	b.On("SearchAll", mock.Anything, "coffee", "").Return([]bizmodel.Business{{Name: "Bean"}}, nil)
	c.On("List", mock.Anything).Return([]category.Category{{Name: "Cafe"}, {Name: "Food"}}, nil)

	res, err := svc.Page(context.Background(), "coffee", "")
	require.NoError(t, err)
	assert.Len(t, res.Businesses, 1)
	assert.Len(t, res.Categories, 2)
}

func TestLocationsDelegates(t *testing.T) {
	b, c := &mockBusinesses{}, &mockCategories{}
	svc := NewSearchService(b, c, mediaURL)

	b.On("LocationSuggestions", mock.Anything, "spr").Return([]string{"Springfield, IL"}, nil)

	got, err := svc.Locations(context.Background(), "spr")
	require.NoError(t, err)
	assert.Equal(t, []string{"Springfield, IL"}, got)
}
