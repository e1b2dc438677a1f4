// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Item model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
)

// ItemFilter narrows an item listing. Nil pointer fields mean "no filter";
// Limit <= 0 disables the limit.
type ItemFilter struct {
	CategoryID    int
	AvailableOnly bool
	MinPrice      *float64
	MaxPrice      *float64
	Limit         int
	Offset        int
}

// CreateItem inserts a new item row with UTC timestamps.
func CreateItem(ctx context.Context, db *gorm.DB, it *domain.Item) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	return db.WithContext(ctx).Create(it).Error
}

// GetItem fetches an item by id with its category preloaded, or ErrNotFound.
func GetItem(ctx context.Context, db *gorm.DB, id int) (*domain.Item, error) {
	var it domain.Item
	err := db.WithContext(ctx).
		Preload("Category").
		First(&it, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems returns items matching the filter, newest first.
func ListItems(ctx context.Context, db *gorm.DB, filter ItemFilter) ([]domain.Item, error) {
	q := db.WithContext(ctx).Model(&domain.Item{}).Order("created_at desc")
	if filter.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	if filter.CategoryID > 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.MinPrice != nil {
		q = q.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		q = q.Where("price <= ?", *filter.MaxPrice)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	out := []domain.Item{}
	err := q.Find(&out).Error
	return out, err
}

// UpdateItem applies the given column values to the item row. It returns
// ErrNotFound when the id does not exist.
func UpdateItem(ctx context.Context, db *gorm.DB, id int, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Item{}).
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

// DeleteItem removes the item row by id.
func DeleteItem(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Delete(&domain.Item{}, "id = ?", id).Error
}
