package category_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paddockhq/paddock/internal/forum/category"
	"github.com/paddockhq/paddock/internal/platform/apperr"
	"github.com/paddockhq/paddock/pkg/pointer"
)

type fakeRepository struct {
	categories map[int64]*category.Category
	nextID     int64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{categories: map[int64]*category.Category{}, nextID: 1}
}

func (r *fakeRepository) ListCategories(context.Context) ([]*category.Category, error) {
	list := make([]*category.Category, 0, len(r.categories))
	for _, c := range r.categories {
		list = append(list, c)
	}
	return list, nil
}

func (r *fakeRepository) GetCategoryByID(_ context.Context, id int64) (*category.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, apperr.NotFound("Category not found")
	}
	return c, nil
}

func (r *fakeRepository) GetCategoryBySlug(_ context.Context, slug string) (*category.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, apperr.NotFound("Category not found")
}

func (r *fakeRepository) CreateCategory(_ context.Context, c *category.Category) error {
	c.ID = r.nextID
	r.nextID++
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepository) UpdateCategory(_ context.Context, c *category.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *fakeRepository) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return apperr.NotFound("Category not found")
	}
	delete(r.categories, id)
	return nil
}

func newService(repo category.Repository) *category.Service {
	return category.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreateCategory_DerivesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		input    string
		wantSlug string
	}{
		{"simple", "General", "general"},
		{"spaces", "Race Weekends", "race-weekends"},
		{"punctuation", "Tyres & Strategy", "tyres-strategy"},
		{"accents", "Sébastien's Corner", "sebastien-s-corner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created, err := service.CreateCategory(ctx, category.CreateInput{Name: tt.input})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, created.Slug)
		})
	}
}

func TestUpdateCategory_RenameRefreshesSlug(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, category.CreateInput{
		Name:        "Old Name",
		Description: pointer.To("about old things"),
	})
	require.NoError(t, err)
	assert.Equal(t, "old-name", created.Slug)

	// rename regenerates the slug, untouched description survives
	updated, err := service.UpdateCategory(ctx, created.ID, category.UpdateInput{
		Name: pointer.To("New Name"),
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new-name", updated.Slug)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "about old things", *updated.Description)

	// description-only update leaves the slug alone
	updated, err = service.UpdateCategory(ctx, created.ID, category.UpdateInput{
		Description: pointer.To("fresh description"),
	})
	require.NoError(t, err)
	assert.Equal(t, "new-name", updated.Slug)
}

func TestGetCategoryBySlug(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, category.CreateInput{Name: "Technical Talk"})
	require.NoError(t, err)

	found, err := service.GetCategoryBySlug(ctx, "technical-talk")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetCategoryBySlug(ctx, "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestDeleteCategory(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)
	ctx := context.Background()

	created, err := service.CreateCategory(ctx, category.CreateInput{Name: "Doomed"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteCategory(ctx, created.ID))
	assert.Empty(t, repo.categories)

	err = service.DeleteCategory(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
