// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Favorite
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a favorite is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - Duplicate (user_id, item_id) pairs rely on the database unique index
//     and surface as a raw DB error. The service layer translates that into
//     a domain Conflict error.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// FavoriteFilter narrows a favorites listing. Zero values mean "no filter";
// Limit <= 0 disables the limit.
type FavoriteFilter struct {
	Category string
	IsPublic *bool
	Limit    int
	Offset   int
}

// CreateFavorite inserts a favorite row. CreatedAt is set to UTC. The unique
// (user_id, item_id) index makes a concurrent double-add fail here rather
// than producing a second row.
func CreateFavorite(ctx context.Context, db *gorm.DB, f *domain.Favorite) error {
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(f).Error
}

// GetFavorite fetches a favorite by primary key, or ErrNotFound.
func GetFavorite(ctx context.Context, db *gorm.DB, id int) (*domain.Favorite, error) {
	var f domain.Favorite
	if err := db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// FindFavorite returns the favorite for the (userID, itemID) pair, or
// ErrNotFound when the pair is absent.
func FindFavorite(ctx context.Context, db *gorm.DB, userID, itemID int) (*domain.Favorite, error) {
	var f domain.Favorite
	err := db.WithContext(ctx).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListFavorites returns the user's favorites, most recent first, narrowed by
// the filter. An empty result is a valid outcome, not an error.
func ListFavorites(ctx context.Context, db *gorm.DB, userID int, filter FavoriteFilter) ([]domain.Favorite, error) {
	q := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc")
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.IsPublic != nil {
		q = q.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	out := []domain.Favorite{}
	err := q.Find(&out).Error
	return out, err
}

// ListFavoritesByItem returns every favorite referencing itemID.
func ListFavoritesByItem(ctx context.Context, db *gorm.DB, itemID int) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	err := db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// DeleteFavorite removes the row by primary key. Existence and ownership are
// checked by the service layer before calling this.
func DeleteFavorite(ctx context.Context, db *gorm.DB, id int) error {
	return db.WithContext(ctx).Delete(&domain.Favorite{}, "id = ?", id).Error
}

// SearchFavorites matches item names case-insensitively against term,
// ordered by creation time descending, with offset/limit paging.
func SearchFavorites(ctx context.Context, db *gorm.DB, term string, limit, offset int) ([]domain.Favorite, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	out := []domain.Favorite{}
	q := db.WithContext(ctx).
		Where("LOWER(item_name) LIKE ?", pattern).
		Order("created_at desc")
	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
