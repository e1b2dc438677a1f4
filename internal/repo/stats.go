// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate/statistics queries used by the
// analytics and search endpoints. Each function is context-aware and safe to
// call from services or handlers.
package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
)

// ItemFavoriteCount is one row of the "most favorited" ranking.
type ItemFavoriteCount struct {
	ItemID    int    `json:"item_id"`
	ItemName  string `json:"item_name"`
	Favorites int64  `json:"favorites"`
}

// MostFavoritedItems returns the top items by favorite count, joined with the
// items table for the current menu name. Items with no favorites are omitted.
func MostFavoritedItems(ctx context.Context, db *gorm.DB, limit int) ([]ItemFavoriteCount, error) {
	if limit <= 0 {
		limit = 5
	}
	out := []ItemFavoriteCount{}
	err := db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Select("favorites.item_id AS item_id, items.name AS item_name, COUNT(favorites.id) AS favorites").
		Joins("JOIN items ON items.id = favorites.item_id").
		Group("favorites.item_id, items.name").
		Order("favorites DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}

// AllFavoriteTimestamps returns the creation times of every favorite, used to
// bucket activity by hour of day and by calendar day. The scan is bounded by
// the favorites table size, which is small for this workload.
func AllFavoriteTimestamps(ctx context.Context, db *gorm.DB) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	err := db.WithContext(ctx).
		Select("id", "created_at").
		Find(&out).Error
	return out, err
}

// BumpSearchStat increments the counter for term, inserting the row on first
// sight. Runs inside a transaction so concurrent bumps do not lose counts.
func BumpSearchStat(ctx context.Context, db *gorm.DB, term string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st domain.SearchStat
		err := tx.Where("term = ?", term).First(&st).Error
		switch {
		case err == nil:
			return tx.Model(&st).Update("search_count", gorm.Expr("search_count + 1")).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&domain.SearchStat{Term: term, SearchCount: 1}).Error
		default:
			return err
		}
	})
}

// TopSearchTerms returns the most searched terms, highest count first.
func TopSearchTerms(ctx context.Context, db *gorm.DB, limit int) ([]domain.SearchStat, error) {
	if limit <= 0 {
		limit = 10
	}
	out := []domain.SearchStat{}
	err := db.WithContext(ctx).
		Order("search_count desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
