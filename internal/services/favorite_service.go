// Package services – FavoriteService
//
// This file implements the FavoriteService, the most rule-heavy unit of the
// backend. It validates ids and names, enforces the one-favorite-per-
// (user, item) invariant, checks ownership on delete, and normalizes
// persistence failures into classified domain errors. Handlers receive either
// a result or a *domain.Error; the service never shapes HTTP responses.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// FavoriteService implements the use-cases around user favorites. Each call
// performs at most one read-then-act sequence against the store; the unique
// (user_id, item_id) index serializes racing adds so exactly one succeeds.
type FavoriteService struct {
	// DB is the database handle used for all favorite operations.
	DB *gorm.DB
}

// AddFavoriteInput carries the caller-supplied fields for a new favorite.
type AddFavoriteInput struct {
	UserID     int
	ItemID     int
	ItemName   string
	Category   string
	Rating     *float64
	Experience string
	// IsPublic defaults to true when nil.
	IsPublic *bool
}

// DeletedFavorite is the confirmation payload for a successful delete.
type DeletedFavorite struct {
	ID       int    `json:"id"`
	UserID   int    `json:"user_id"`
	ItemName string `json:"item_name"`
}

// FavoriteStatus reports whether a user has favorited an item, with the
// matching record's fields when present.
type FavoriteStatus struct {
	UserID      int              `json:"user_id"`
	ItemID      int              `json:"item_id"`
	IsFavorited bool             `json:"is_favorited"`
	FavoriteID  *int             `json:"favorite_id,omitempty"`
	Favorite    *domain.Favorite `json:"favorite_details,omitempty"`
}

// positiveID returns a Validation error when id is not a positive integer.
// field names the offending input in the error details.
func positiveID(field string, id int) *domain.Error {
	if id > 0 {
		return nil
	}
	return domain.NewValidationError(
		"Invalid "+strings.ReplaceAll(field, "_", " ")+" provided",
		map[string]any{field: id, "requirement": "must be a positive integer"},
	)
}

// Add creates a favorite for (in.UserID, in.ItemID).
//
// Failure contract:
//   - Validation: non-positive user/item id, blank item name, rating outside 1–5.
//   - Conflict: a favorite already exists for the pair; details carry the
//     existing record's id.
//   - Database: any other persistence failure, with the attempted ids in details.
func (s *FavoriteService) Add(ctx context.Context, in AddFavoriteInput) (*domain.Favorite, error) {
	if err := positiveID("user_id", in.UserID); err != nil {
		return nil, err
	}
	if err := positiveID("item_id", in.ItemID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		return nil, domain.NewValidationError(
			"Item name cannot be empty",
			map[string]any{"item_name": in.ItemName},
		)
	}
	if in.Rating != nil && (*in.Rating < 1 || *in.Rating > 5) {
		return nil, domain.NewValidationError(
			"Rating must be between 1 and 5",
			map[string]any{"rating": *in.Rating},
		)
	}

	// Read-then-act duplicate check; the unique index backstops the race.
	existing, err := repo.FindFavorite(ctx, s.DB, in.UserID, in.ItemID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, s.dbError("Failed to add favorite item to database", in.UserID, in.ItemID, err)
	}
	if existing != nil {
		return nil, conflictExisting(in.UserID, in.ItemID, existing.ID)
	}

	isPublic := true
	if in.IsPublic != nil {
		isPublic = *in.IsPublic
	}
	fav := &domain.Favorite{
		UserID:     in.UserID,
		ItemID:     in.ItemID,
		ItemName:   name,
		Category:   strings.TrimSpace(in.Category),
		Rating:     in.Rating,
		Experience: in.Experience,
		IsPublic:   isPublic,
	}
	if err := repo.CreateFavorite(ctx, s.DB, fav); err != nil {
		if isDuplicate(err) {
			// Lost the race: another add for the same pair landed first.
			// Re-read so the conflict detail still names the winner's id.
			if winner, ferr := repo.FindFavorite(ctx, s.DB, in.UserID, in.ItemID); ferr == nil {
				return nil, conflictExisting(in.UserID, in.ItemID, winner.ID)
			}
			return nil, domain.NewConflictError(
				"Favorite already exists for this user and item",
				map[string]any{"user_id": in.UserID, "item_id": in.ItemID},
			)
		}
		return nil, s.dbError("Failed to add favorite item to database", in.UserID, in.ItemID, err)
	}
	return fav, nil
}

// List returns the user's favorites, optionally narrowed by category,
// public/private flag, and limit/offset. An empty page is a valid result.
func (s *FavoriteService) List(ctx context.Context, userID int, filter repo.FavoriteFilter) ([]domain.Favorite, error) {
	if err := positiveID("user_id", userID); err != nil {
		return nil, err
	}
	favs, err := repo.ListFavorites(ctx, s.DB, userID, filter)
	if err != nil {
		return nil, domain.NewDatabaseError(
			"Failed to retrieve favorites from database",
			map[string]any{"user_id": userID}, err,
		)
	}
	return favs, nil
}

// Delete removes favoriteID on behalf of requestingUserID.
//
// Failure contract:
//   - Validation: non-positive ids.
//   - NotFound: no favorite with favoriteID.
//   - Unauthorized: favorite owned by a different user; details name both
//     the owner and the requester. The record is left untouched.
//
// The existence/ownership check and the delete run in one transaction so a
// concurrent delete cannot slip between them.
func (s *FavoriteService) Delete(ctx context.Context, favoriteID, requestingUserID int) (*DeletedFavorite, error) {
	if err := positiveID("favorite_id", favoriteID); err != nil {
		return nil, err
	}
	if err := positiveID("user_id", requestingUserID); err != nil {
		return nil, err
	}

	var deleted *DeletedFavorite
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fav, err := repo.GetFavorite(ctx, tx, favoriteID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return domain.NewNotFoundError(
					"Favorite not found",
					map[string]any{"favorite_id": favoriteID},
				)
			}
			return err
		}
		if fav.UserID != requestingUserID {
			return domain.NewUnauthorizedError(
				"Not authorized to delete this favorite",
				map[string]any{
					"favorite_id":              favoriteID,
					"requested_by_user":        requestingUserID,
					"favorite_belongs_to_user": fav.UserID,
				},
			)
		}
		if err := repo.DeleteFavorite(ctx, tx, favoriteID); err != nil {
			return err
		}
		deleted = &DeletedFavorite{ID: fav.ID, UserID: fav.UserID, ItemName: fav.ItemName}
		return nil
	})
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, de
		}
		return nil, domain.NewDatabaseError(
			"Failed to delete favorite from database",
			map[string]any{"favorite_id": favoriteID, "user_id": requestingUserID}, err,
		)
	}
	return deleted, nil
}

// ListForItem returns every favorite referencing itemID, possibly empty.
func (s *FavoriteService) ListForItem(ctx context.Context, itemID int) ([]domain.Favorite, error) {
	if err := positiveID("item_id", itemID); err != nil {
		return nil, err
	}
	favs, err := repo.ListFavoritesByItem(ctx, s.DB, itemID)
	if err != nil {
		return nil, domain.NewDatabaseError(
			"Failed to retrieve item favorites from database",
			map[string]any{"item_id": itemID}, err,
		)
	}
	return favs, nil
}

// Status reports whether userID has favorited itemID, including the matching
// record's id and descriptive fields when present.
func (s *FavoriteService) Status(ctx context.Context, userID, itemID int) (*FavoriteStatus, error) {
	if err := positiveID("user_id", userID); err != nil {
		return nil, err
	}
	if err := positiveID("item_id", itemID); err != nil {
		return nil, err
	}
	st := &FavoriteStatus{UserID: userID, ItemID: itemID}
	fav, err := repo.FindFavorite(ctx, s.DB, userID, itemID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return st, nil
		}
		return nil, domain.NewDatabaseError(
			"Failed to check favorite status",
			map[string]any{"user_id": userID, "item_id": itemID}, err,
		)
	}
	st.IsFavorited = true
	st.FavoriteID = &fav.ID
	st.Favorite = fav
	return st, nil
}

// dbError wraps a persistence failure with the attempted ids.
func (s *FavoriteService) dbError(msg string, userID, itemID int, err error) *domain.Error {
	return domain.NewDatabaseError(msg, map[string]any{
		"user_id": userID,
		"item_id": itemID,
	}, err)
}

// conflictExisting builds the duplicate-pair conflict with the pre-existing
// record's id in the details.
func conflictExisting(userID, itemID, existingID int) *domain.Error {
	return domain.NewConflictError(
		"Favorite already exists for this user and item",
		map[string]any{
			"user_id":              userID,
			"item_id":              itemID,
			"existing_favorite_id": existingID,
		},
	)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
