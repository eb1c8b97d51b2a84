package category

import (
	"context"
	"log/slog"

	"github.com/paddockhq/paddock/pkg/slug"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.repo.ListCategories(context)
}

func (service *Service) GetCategory(context context.Context, id int64) (*Category, error) {
	return service.repo.GetCategoryByID(context, id)
}

func (service *Service) GetCategoryBySlug(context context.Context, s string) (*Category, error) {
	return service.repo.GetCategoryBySlug(context, s)
}

type CreateInput struct {
	Name        string
	Description *string
}

func (service *Service) CreateCategory(context context.Context, input CreateInput) (*Category, error) {
	category := &Category{
		Name:        input.Name,
		Description: input.Description,
		Slug:        slug.From(input.Name),
	}

	if err := service.repo.CreateCategory(context, category); err != nil {
		return nil, err
	}

	service.logger.Info("category_created", slog.Int64("category_id", category.ID), slog.String("slug", category.Slug))
	return category, nil
}

type UpdateInput struct {
	Name        *string
	Description *string
}

func (service *Service) UpdateCategory(context context.Context, id int64, input UpdateInput) (*Category, error) {
	category, err := service.repo.GetCategoryByID(context, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.From(*input.Name)
	}
	if input.Description != nil {
		category.Description = input.Description
	}

	if err := service.repo.UpdateCategory(context, category); err != nil {
		return nil, err
	}

	return category, nil
}

func (service *Service) DeleteCategory(context context.Context, id int64) error {
	if err := service.repo.DeleteCategory(context, id); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.Int64("category_id", id))
	return nil
}
