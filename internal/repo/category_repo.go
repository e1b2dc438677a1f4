// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Category
// model.
//
// Error semantics match the rest of the package: ErrNotFound for missing
// rows, raw gorm errors otherwise (including unique-name violations, which
// the service layer maps to a Conflict).
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
)

// CreateCategory inserts a new category row. The unique name index surfaces
// duplicates as a raw DB error.
func CreateCategory(ctx context.Context, db *gorm.DB, c *domain.Category) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	return db.WithContext(ctx).Create(c).Error
}

// GetCategory fetches a category by id, or ErrNotFound.
func GetCategory(ctx context.Context, db *gorm.DB, id int) (*domain.Category, error) {
	var c domain.Category
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns categories ordered by name, optionally restricted to
// active ones, with offset/limit paging (limit <= 0 disables the limit).
func ListCategories(ctx context.Context, db *gorm.DB, activeOnly bool, offset, limit int) ([]domain.Category, error) {
	q := db.WithContext(ctx).Model(&domain.Category{}).Order("name asc")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := []domain.Category{}
	err := q.Find(&out).Error
	return out, err
}

// UpdateCategory applies the non-nil fields to the category row. It returns
// ErrNotFound when the id does not exist.
func UpdateCategory(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes the category row by id.
func DeleteCategory(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

// CountItemsInCategory returns the number of items referencing categoryID.
// Used to refuse deleting a category that still has items.
func CountItemsInCategory(ctx context.Context, db *gorm.DB, categoryID int) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Item{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}
