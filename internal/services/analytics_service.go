// Package services – AnalyticsService
//
// Small read-only aggregations over the favorites table: the most favorited
// items, activity by hour of day, and the per-day trend. Hour/day bucketing
// is done in Go so the queries stay portable across SQLite and Postgres.
package services

import (
	"context"
	"sort"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// AnalyticsService answers aggregate questions about favorites.
type AnalyticsService struct {
	DB *gorm.DB
}

// MostFavorited returns the top items by favorite count (default top 5).
func (s *AnalyticsService) MostFavorited(ctx context.Context, limit int) ([]repo.ItemFavoriteCount, error) {
	rows, err := repo.MostFavoritedItems(ctx, s.DB, limit)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to compute most favorited items", nil, err)
	}
	return rows, nil
}

// HourBucket is one "HH:00" activity bucket.
type HourBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

// ActiveHours buckets favorite creation times by hour of day ("HH:00"),
// sorted by hour. Hours with no activity are omitted.
func (s *AnalyticsService) ActiveHours(ctx context.Context) ([]HourBucket, error) {
	favs, err := repo.AllFavoriteTimestamps(ctx, s.DB)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to compute active hours", nil, err)
	}
	counts := map[string]int{}
	for _, f := range favs {
		counts[f.CreatedAt.UTC().Format("15:00")]++
	}
	return sortedBuckets(counts), nil
}

// DayBucket is one calendar-day activity bucket.
type DayBucket struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Trending buckets favorite creation times by calendar day ("YYYY-MM-DD"),
// sorted chronologically.
func (s *AnalyticsService) Trending(ctx context.Context) ([]DayBucket, error) {
	favs, err := repo.AllFavoriteTimestamps(ctx, s.DB)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to compute trending items", nil, err)
	}
	counts := map[string]int{}
	for _, f := range favs {
		counts[f.CreatedAt.UTC().Format("2006-01-02")]++
	}
	out := make([]DayBucket, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayBucket{Day: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out, nil
}

func sortedBuckets(counts map[string]int) []HourBucket {
	out := make([]HourBucket, 0, len(counts))
	for h, n := range counts {
		out = append(out, HourBucket{Hour: h, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}
