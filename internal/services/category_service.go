// Package services – CategoryService
//
// Manages the category catalogue: create, read, update, delete. Uniqueness of
// names is enforced by the database; deletes are refused while items still
// reference the category.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// CategoryService provides category CRUD on top of the repo layer.
type CategoryService struct {
	DB *gorm.DB
}

// CategoryInput carries caller-supplied category fields. Nil pointers on
// update mean "leave unchanged".
type CategoryInput struct {
	Name        *string
	Description *string
	IsActive    *bool
}

// Create inserts a new category. Fails with Validation on a blank name and
// Conflict when the name is already taken.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, domain.NewValidationError(
			"Category name cannot be empty",
			map[string]any{"name": name},
		)
	}
	c := &domain.Category{Name: name, IsActive: true}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := repo.CreateCategory(ctx, s.DB, c); err != nil {
		if isDuplicate(err) {
			return nil, domain.NewConflictError(
				"Category with this name already exists",
				map[string]any{"name": name},
			)
		}
		return nil, domain.NewDatabaseError(
			"Failed to create category",
			map[string]any{"name": name}, err,
		)
	}
	return c, nil
}

// Get fetches a category by id, or NotFound.
func (s *CategoryService) Get(ctx context.Context, id int) (*domain.Category, error) {
	if err := positiveID("category_id", id); err != nil {
		return nil, err
	}
	c, err := repo.GetCategory(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, domain.NewNotFoundError("Category not found",
				map[string]any{"category_id": id})
		}
		return nil, domain.NewDatabaseError("Failed to retrieve category",
			map[string]any{"category_id": id}, err)
	}
	return c, nil
}

// List returns categories with offset/limit paging, active ones only unless
// activeOnly is false.
func (s *CategoryService) List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Category, error) {
	cats, err := repo.ListCategories(ctx, s.DB, activeOnly, offset, limit)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to retrieve categories", nil, err)
	}
	return cats, nil
}

// Update applies the provided fields to an existing category. Fails with
// NotFound for a missing id and Conflict when renaming onto a taken name.
func (s *CategoryService) Update(ctx context.Context, id int, in CategoryInput) (*domain.Category, error) {
	if err := positiveID("category_id", id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError(
				"Category name cannot be empty",
				map[string]any{"name": *in.Name},
			)
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.IsActive != nil {
		fields["is_active"] = *in.IsActive
	}
	if len(fields) > 0 {
		if err := repo.UpdateCategory(ctx, s.DB, id, fields); err != nil {
			switch {
			case errors.Is(err, repo.ErrNotFound):
				return nil, domain.NewNotFoundError("Category not found",
					map[string]any{"category_id": id})
			case isDuplicate(err):
				return nil, domain.NewConflictError(
					"Category with this name already exists",
					map[string]any{"name": fields["name"]},
				)
			default:
				return nil, domain.NewDatabaseError("Failed to update category",
					map[string]any{"category_id": id}, err)
			}
		}
	}
	return s.Get(ctx, id)
}

// Delete removes a category. Fails with NotFound for a missing id and
// Conflict while items still reference it.
func (s *CategoryService) Delete(ctx context.Context, id int) error {
	if err := positiveID("category_id", id); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetCategory(ctx, tx, id); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return domain.NewNotFoundError("Category not found",
					map[string]any{"category_id": id})
			}
			return domain.NewDatabaseError("Failed to retrieve category",
				map[string]any{"category_id": id}, err)
		}
		n, err := repo.CountItemsInCategory(ctx, tx, id)
		if err != nil {
			return domain.NewDatabaseError("Failed to delete category",
				map[string]any{"category_id": id}, err)
		}
		if n > 0 {
			return domain.NewConflictError(
				"Cannot delete category with existing items",
				map[string]any{"category_id": id, "item_count": n},
			)
		}
		if err := repo.DeleteCategory(ctx, tx, id); err != nil {
			return domain.NewDatabaseError("Failed to delete category",
				map[string]any{"category_id": id}, err)
		}
		return nil
	})
}
