package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:bakerysvc_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA foreign_keys=ON;")
	if err := db.AutoMigrate(
		&domain.Category{}, &domain.Item{}, &domain.Favorite{},
		&domain.User{}, &domain.SearchStat{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// kindOf asserts err is a *domain.Error and returns it.
func kindOf(t *testing.T, err error, want domain.ErrorKind) *domain.Error {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("expected *domain.Error, got %T: %v", err, err)
	}
	if de.Kind != want {
		t.Fatalf("kind = %q, want %q (message: %s)", de.Kind, want, de.Message)
	}
	return de
}

func TestFavorite_Add_RejectsNonPositiveIDs(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	for _, tc := range []struct {
		name  string
		in    AddFavoriteInput
		field string
	}{
		{"zero user", AddFavoriteInput{UserID: 0, ItemID: 1, ItemName: "Rye"}, "user_id"},
		{"negative user", AddFavoriteInput{UserID: -3, ItemID: 1, ItemName: "Rye"}, "user_id"},
		{"zero item", AddFavoriteInput{UserID: 1, ItemID: 0, ItemName: "Rye"}, "item_id"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tc.in)
			de := kindOf(t, err, domain.KindValidation)
			if _, ok := de.Details[tc.field]; !ok {
				t.Fatalf("details should name %q: %v", tc.field, de.Details)
			}
			if de.Details["requirement"] != "must be a positive integer" {
				t.Fatalf("requirement detail missing: %v", de.Details)
			}
		})
	}
}

func TestFavorite_Add_RejectsBlankNameAndBadRating(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	_, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 1, ItemName: "   "})
	de := kindOf(t, err, domain.KindValidation)
	if de.Message != "Item name cannot be empty" {
		t.Fatalf("message = %q", de.Message)
	}

	for _, r := range []float64{0.5, 5.5, -1} {
		rating := r
		_, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 1, ItemName: "Rye", Rating: &rating})
		de := kindOf(t, err, domain.KindValidation)
		if de.Message != "Rating must be between 1 and 5" {
			t.Fatalf("rating %v: message = %q", r, de.Message)
		}
	}
}

func TestFavorite_Add_PersistsWithDefaults(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	rating := 4.5
	fav, err := svc.Add(ctx, AddFavoriteInput{
		UserID:     1,
		ItemID:     5,
		ItemName:   "  Croissant  ",
		Category:   "Pastries",
		Rating:     &rating,
		Experience: "Flaky",
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if fav.ID == 0 {
		t.Fatalf("expected assigned ID")
	}
	if fav.ItemName != "Croissant" {
		t.Fatalf("name not trimmed: %q", fav.ItemName)
	}
	if !fav.IsPublic {
		t.Fatalf("IsPublic should default to true")
	}
	if fav.Rating == nil || *fav.Rating != 4.5 {
		t.Fatalf("rating = %v", fav.Rating)
	}
}

func TestFavorite_Add_DuplicateConflictNamesExistingID(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	first, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 5, ItemName: "Croissant"})
	if err != nil {
		t.Fatalf("first Add: %v", err)
	}

	_, err = svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 5, ItemName: "Croissant"})
	de := kindOf(t, err, domain.KindConflict)
	if de.Message != "Favorite already exists for this user and item" {
		t.Fatalf("message = %q", de.Message)
	}
	if de.Details["existing_favorite_id"] != first.ID {
		t.Fatalf("details should carry the existing id: %v", de.Details)
	}

	// Still exactly one row for the pair.
	var n int64
	svc.DB.Model(&domain.Favorite{}).Where("user_id = ? AND item_id = ?", 1, 5).Count(&n)
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestFavorite_List_EmptyAndFiltered(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	favs, err := svc.List(ctx, 9, repo.FavoriteFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favs) != 0 {
		t.Fatalf("expected empty list, got %d", len(favs))
	}

	if _, err := svc.Add(ctx, AddFavoriteInput{UserID: 9, ItemID: 1, ItemName: "Rye", Category: "Breads"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(ctx, AddFavoriteInput{UserID: 9, ItemID: 2, ItemName: "Eclair", Category: "Pastries"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	favs, err = svc.List(ctx, 9, repo.FavoriteFilter{Category: "Breads"})
	if err != nil {
		t.Fatalf("List(category): %v", err)
	}
	if len(favs) != 1 || favs[0].ItemName != "Rye" {
		t.Fatalf("filtered list: %+v", favs)
	}

	_, err = svc.List(ctx, 0, repo.FavoriteFilter{})
	kindOf(t, err, domain.KindValidation)
}

func TestFavorite_Delete_NotFound(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}

	_, err := svc.Delete(context.Background(), 12345, 1)
	de := kindOf(t, err, domain.KindNotFound)
	if de.Message != "Favorite not found" {
		t.Fatalf("message = %q", de.Message)
	}
	if de.Details["favorite_id"] != 12345 {
		t.Fatalf("details = %v", de.Details)
	}
}

func TestFavorite_Delete_UnauthorizedKeepsRecord(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	fav, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 5, ItemName: "Croissant"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, err = svc.Delete(ctx, fav.ID, 2)
	de := kindOf(t, err, domain.KindUnauthorized)
	if de.Details["requested_by_user"] != 2 || de.Details["favorite_belongs_to_user"] != 1 {
		t.Fatalf("details should name both users: %v", de.Details)
	}

	// The favorite must survive.
	if _, err := repo.GetFavorite(ctx, svc.DB, fav.ID); err != nil {
		t.Fatalf("favorite should still exist: %v", err)
	}
}

func TestFavorite_Delete_OwnerSucceedsThenListEmpty(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	fav, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 5, ItemName: "Croissant"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	deleted, err := svc.Delete(ctx, fav.ID, 1)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted.ID != fav.ID || deleted.UserID != 1 || deleted.ItemName != "Croissant" {
		t.Fatalf("unexpected confirmation: %+v", deleted)
	}

	favs, err := svc.List(ctx, 1, repo.FavoriteFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(favs) != 0 {
		t.Fatalf("expected empty list after delete, got %d", len(favs))
	}

	// Deleting again reports not found, not a silent success.
	_, err = svc.Delete(ctx, fav.ID, 1)
	kindOf(t, err, domain.KindNotFound)
}

func TestFavorite_Status(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	st, err := svc.Status(ctx, 1, 5)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.IsFavorited || st.FavoriteID != nil {
		t.Fatalf("expected not favorited: %+v", st)
	}

	fav, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 5, ItemName: "Croissant"})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	st, err = svc.Status(ctx, 1, 5)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if !st.IsFavorited || st.FavoriteID == nil || *st.FavoriteID != fav.ID {
		t.Fatalf("expected favorited with id %d: %+v", fav.ID, st)
	}
	if st.Favorite == nil || st.Favorite.ItemName != "Croissant" {
		t.Fatalf("expected favorite details: %+v", st.Favorite)
	}
}

func TestFavorite_ListForItem(t *testing.T) {
	svc := &FavoriteService{DB: newTestDB(t)}
	ctx := context.Background()

	for uid := 1; uid <= 3; uid++ {
		if _, err := svc.Add(ctx, AddFavoriteInput{UserID: uid, ItemID: 7, ItemName: "Baguette"}); err != nil {
			t.Fatalf("Add uid=%d: %v", uid, err)
		}
	}
	if _, err := svc.Add(ctx, AddFavoriteInput{UserID: 1, ItemID: 8, ItemName: "Rye"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	favs, err := svc.ListForItem(ctx, 7)
	if err != nil {
		t.Fatalf("ListForItem: %v", err)
	}
	if len(favs) != 3 {
		t.Fatalf("len = %d, want 3", len(favs))
	}

	_, err = svc.ListForItem(ctx, -1)
	kindOf(t, err, domain.KindValidation)
}
