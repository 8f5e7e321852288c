package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"localbiz-backend/internal/domains/category"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, c *category.Category) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockRepo) FindBySlug(ctx context.Context, slug string) (*category.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(*category.Category)
	return c, args.Error(1)
}
func (m *mockRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}
func (m *mockRepo) ListWithCounts(ctx context.Context) ([]category.Category, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}
func (m *mockRepo) ListPaged(ctx context.Context, limit, offset int) ([]category.Category, int, error) {
	args := m.Called(ctx, limit, offset)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Int(1), args.Error(2)
}
func (m *mockRepo) ListFirst(ctx context.Context, limit int) ([]category.Category, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}
func (m *mockRepo) SearchActive(ctx context.Context, term string, limit int) ([]category.Category, error) {
	args := m.Called(ctx, term, limit)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}
func (m *mockRepo) TopByBusinessCount(ctx context.Context, limit int) ([]category.Category, error) {
	args := m.Called(ctx, limit)
	list, _ := args.Get(0).([]category.Category)
	return list, args.Error(1)
}
func (m *mockRepo) Count(ctx context.Context, activeOnly bool) (int, error) {
	args := m.Called(ctx, activeOnly)
	return args.Int(0), args.Error(1)
}
func (m *mockRepo) Delete(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func TestCreateGeneratesUniqueSlug(t *testing.T) {
	repo := &mockRepo{}
	svc := NewCategoryService(repo)

	repo.On("SlugExists", mock.Anything, "home-garden").Return(true, nil)
	repo.On("SlugExists", mock.Anything, "home-garden-1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*category.Category")).Return(nil)

	c, err := svc.Create(context.Background(), category.CreateRequest{Name: "Home & Garden"})
	require.NoError(t, err)
	assert.Equal(t, "home-garden-1", c.Slug)
	assert.True(t, c.IsActive)
	assert.NotEqual(t, uuid.Nil, c.ID)
}

func TestCreateExplicitSlugConflict(t *testing.T) {
	repo := &mockRepo{}
	svc := NewCategoryService(repo)

	repo.On("Create", mock.Anything, mock.Anything).Return(category.ErrSlugExists)

	inactive := false
	_, err := svc.Create(context.Background(), category.CreateRequest{Name: "Food", Slug: "food", IsActive: &inactive})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "slug")
	repo.AssertNotCalled(t, "SlugExists", mock.Anything, mock.Anything)
}

func TestCreateValidation(t *testing.T) {
	svc := NewCategoryService(&mockRepo{})

	_, err := svc.Create(context.Background(), category.CreateRequest{Name: ""})
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "name")

	_, err = svc.Create(context.Background(), category.CreateRequest{Name: "Food", Slug: "bad slug!"})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "slug")
}

func TestSearchBlankTerm(t *testing.T) {
	repo := &mockRepo{}
	svc := NewCategoryService(repo)

	list, err := svc.Search(context.Background(), "   ", 3)
	require.NoError(t, err)
	assert.Empty(t, list)
	repo.AssertNotCalled(t, "SearchActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestTeaserUsesHomeSize(t *testing.T) {
	repo := &mockRepo{}
	svc := NewCategoryService(repo)
	repo.On("ListFirst", mock.Anything, category.HomeTeaserSize).Return([]category.Category{{Name: "A"}}, nil)

	list, err := svc.Teaser(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	repo.AssertExpectations(t)
}
