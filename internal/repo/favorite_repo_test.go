package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avasil/go-bakery-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedFavorite(t *testing.T, db *gorm.DB, userID, itemID int, name string) *domain.Favorite {
	t.Helper()
	f := &domain.Favorite{UserID: userID, ItemID: itemID, ItemName: name, IsPublic: true}
	if err := CreateFavorite(context.Background(), db, f); err != nil {
		t.Fatalf("seed favorite (%d,%d): %v", userID, itemID, err)
	}
	return f
}

func TestCreateFavorite_SetsCreatedAtAndID(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})

	f := &domain.Favorite{UserID: 1, ItemID: 2, ItemName: "Croissant", IsPublic: true}
	if err := CreateFavorite(context.Background(), db, f); err != nil {
		t.Fatalf("CreateFavorite: %v", err)
	}
	if f.ID == 0 {
		t.Fatalf("expected assigned ID, got 0")
	}
	if f.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt to be set")
	}
}

func TestCreateFavorite_DuplicatePairFailsOnIndex(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})
	seedFavorite(t, db, 1, 2, "Croissant")

	err := CreateFavorite(context.Background(), db, &domain.Favorite{
		UserID: 1, ItemID: 2, ItemName: "Croissant",
	})
	if err == nil {
		t.Fatalf("expected unique index violation for duplicate (user,item)")
	}

	// A different user may favorite the same item.
	if err := CreateFavorite(context.Background(), db, &domain.Favorite{
		UserID: 3, ItemID: 2, ItemName: "Croissant",
	}); err != nil {
		t.Fatalf("same item, different user should insert: %v", err)
	}
}

func TestGetFavorite_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})

	_, err := GetFavorite(context.Background(), db, 999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFindFavorite_ByPair(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})
	want := seedFavorite(t, db, 7, 9, "Baguette")

	got, err := FindFavorite(context.Background(), db, 7, 9)
	if err != nil {
		t.Fatalf("FindFavorite: %v", err)
	}
	if got.ID != want.ID || got.ItemName != "Baguette" {
		t.Fatalf("unexpected favorite: %+v", got)
	}

	if _, err := FindFavorite(context.Background(), db, 7, 10); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent pair, got %v", err)
	}
}

func TestListFavorites_FiltersAndOrder(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})

	old := &domain.Favorite{
		UserID: 1, ItemID: 1, ItemName: "Rye", Category: "Breads",
		IsPublic: true, CreatedAt: time.Now().UTC().Add(-time.Hour),
	}
	if err := CreateFavorite(context.Background(), db, old); err != nil {
		t.Fatalf("seed: %v", err)
	}
	hidden := &domain.Favorite{
		UserID: 1, ItemID: 2, ItemName: "Eclair", Category: "Pastries",
		IsPublic: false, CreatedAt: time.Now().UTC().Add(-30 * time.Minute),
	}
	if err := CreateFavorite(context.Background(), db, hidden); err != nil {
		t.Fatalf("seed: %v", err)
	}
	newest := seedFavorite(t, db, 1, 3, "Croissant")
	seedFavorite(t, db, 2, 3, "Croissant") // other user, must not appear

	all, err := ListFavorites(context.Background(), db, 1, FavoriteFilter{})
	if err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].ID != newest.ID {
		t.Fatalf("expected newest first, got %+v", all[0])
	}

	breads, err := ListFavorites(context.Background(), db, 1, FavoriteFilter{Category: "Breads"})
	if err != nil {
		t.Fatalf("ListFavorites(category): %v", err)
	}
	if len(breads) != 1 || breads[0].ItemName != "Rye" {
		t.Fatalf("category filter: %+v", breads)
	}

	pub := true
	public, err := ListFavorites(context.Background(), db, 1, FavoriteFilter{IsPublic: &pub})
	if err != nil {
		t.Fatalf("ListFavorites(is_public): %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("public filter len = %d, want 2", len(public))
	}

	page, err := ListFavorites(context.Background(), db, 1, FavoriteFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListFavorites(page): %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("page len = %d, want 1", len(page))
	}
}

func TestListFavorites_EmptyIsNotError(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})

	favs, err := ListFavorites(context.Background(), db, 42, FavoriteFilter{})
	if err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if favs == nil || len(favs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", favs)
	}
}

func TestListFavoritesByItem(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})
	seedFavorite(t, db, 1, 5, "Croissant")
	seedFavorite(t, db, 2, 5, "Croissant")
	seedFavorite(t, db, 3, 6, "Baguette")

	favs, err := ListFavoritesByItem(context.Background(), db, 5)
	if err != nil {
		t.Fatalf("ListFavoritesByItem: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("len = %d, want 2", len(favs))
	}
}

func TestDeleteFavorite_RemovesRow(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})
	f := seedFavorite(t, db, 1, 5, "Croissant")

	if err := DeleteFavorite(context.Background(), db, f.ID); err != nil {
		t.Fatalf("DeleteFavorite: %v", err)
	}
	if _, err := GetFavorite(context.Background(), db, f.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestSearchFavorites_CaseInsensitive(t *testing.T) {
	db := newRepoDB(t, &domain.Favorite{})
	seedFavorite(t, db, 1, 1, "Chocolate Croissant")
	seedFavorite(t, db, 2, 2, "Plain CROISSANT")
	seedFavorite(t, db, 3, 3, "Baguette")

	favs, err := SearchFavorites(context.Background(), db, "croissant", 10, 0)
	if err != nil {
		t.Fatalf("SearchFavorites: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("len = %d, want 2", len(favs))
	}

	none, err := SearchFavorites(context.Background(), db, "sourdough", 10, 0)
	if err != nil {
		t.Fatalf("SearchFavorites: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}
