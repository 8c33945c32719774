// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"foodmedia/internal/cache"
	"foodmedia/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category reference data.
type CategoryRepository interface {
	List(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// List returns all categories, cached since they change only via seeding.
func (r *categoryRepository) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := cache.CacheAside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", name)
		}
		return nil, models.NewInternalError(err)
	}
	return &category, nil
}

// GetByIDs resolves a set of category ids to rows. Categories are seed
// reference data, so an id that resolves to nothing is the caller's mistake
// and comes back as NotFound naming the first missing id.
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Category, error) {
	if len(ids) == 0 {
		return []models.Category{}, nil
	}

	var categories []models.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if len(categories) != len(ids) {
		found := make(map[uint]struct{}, len(categories))
		for _, c := range categories {
			found[c.ID] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, models.NewNotFoundError("Category", id)
			}
		}
	}

	return categories, nil
}
