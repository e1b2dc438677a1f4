package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
	"github.com/avasil/go-bakery-backend/internal/services"
)

// ---------- test DB ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:bakery_handlers_%s?mode=memory&cache=shared", uuid.NewString())

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
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// ---------- tiny stubs for uninvolved services ----------

type stubCatSvc struct{}

func (stubCatSvc) Create(context.Context, services.CategoryInput) (*domain.Category, error) {
	return nil, nil
}
func (stubCatSvc) Get(context.Context, int) (*domain.Category, error) { return nil, nil }
func (stubCatSvc) List(context.Context, bool, int, int) ([]domain.Category, error) {
	return nil, nil
}
func (stubCatSvc) Update(context.Context, int, services.CategoryInput) (*domain.Category, error) {
	return nil, nil
}
func (stubCatSvc) Delete(context.Context, int) error { return nil }

type stubItemSvc struct{}

func (stubItemSvc) Create(context.Context, services.ItemInput) (*domain.Item, error) {
	return nil, nil
}
func (stubItemSvc) Get(context.Context, int) (*domain.Item, error) { return nil, nil }
func (stubItemSvc) List(context.Context, repo.ItemFilter) ([]domain.Item, error) {
	return nil, nil
}
func (stubItemSvc) Update(context.Context, int, services.ItemInput) (*domain.Item, error) {
	return nil, nil
}
func (stubItemSvc) Delete(context.Context, int) error { return nil }
func (stubItemSvc) SetAvailability(context.Context, int, bool) (*domain.Item, error) {
	return nil, nil
}
func (stubItemSvc) SetStock(context.Context, int, int) (*domain.Item, error) { return nil, nil }

type stubAuthSvc struct{}

func (stubAuthSvc) Signup(context.Context, string, string) (*domain.User, error) { return nil, nil }
func (stubAuthSvc) Login(context.Context, string, string) (*services.TokenPair, error) {
	return nil, nil
}

type stubSearchSvc struct{}

func (stubSearchSvc) Search(context.Context, string, int, int) ([]domain.Favorite, error) {
	return nil, nil
}
func (stubSearchSvc) MostSearched(context.Context, int) ([]string, error) { return nil, nil }

type stubStatsSvc struct{}

func (stubStatsSvc) MostFavorited(context.Context, int) ([]repo.ItemFavoriteCount, error) {
	return nil, nil
}
func (stubStatsSvc) ActiveHours(context.Context) ([]services.HourBucket, error) { return nil, nil }
func (stubStatsSvc) Trending(context.Context) ([]services.DayBucket, error)    { return nil, nil }

// Flexible favorite service stub for error-path tests
type stubFavSvc struct {
	add    func(context.Context, services.AddFavoriteInput) (*domain.Favorite, error)
	list   func(context.Context, int, repo.FavoriteFilter) ([]domain.Favorite, error)
	delete func(context.Context, int, int) (*services.DeletedFavorite, error)
}

func (s stubFavSvc) Add(ctx context.Context, in services.AddFavoriteInput) (*domain.Favorite, error) {
	if s.add != nil {
		return s.add(ctx, in)
	}
	return &domain.Favorite{ID: 1, UserID: in.UserID, ItemID: in.ItemID, ItemName: in.ItemName}, nil
}

func (s stubFavSvc) List(ctx context.Context, userID int, f repo.FavoriteFilter) ([]domain.Favorite, error) {
	if s.list != nil {
		return s.list(ctx, userID, f)
	}
	return nil, nil
}

func (s stubFavSvc) Delete(ctx context.Context, favID, uid int) (*services.DeletedFavorite, error) {
	if s.delete != nil {
		return s.delete(ctx, favID, uid)
	}
	return &services.DeletedFavorite{ID: favID, UserID: uid}, nil
}

func (s stubFavSvc) ListForItem(context.Context, int) ([]domain.Favorite, error) { return nil, nil }

func (s stubFavSvc) Status(context.Context, int, int) (*services.FavoriteStatus, error) {
	return nil, nil
}

// newFavHandlers builds Handlers with a real favorites service over db and
// stubs for everything else.
func newFavHandlers(db *gorm.DB) *Handlers {
	return New(&services.FavoriteService{DB: db}, stubCatSvc{}, stubItemSvc{},
		stubAuthSvc{}, stubSearchSvc{}, stubStatsSvc{}, false)
}

func favRouter(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/favorites", h.AddFavorite)
	r.GET("/favorites/user/:user_id", h.ListFavorites)
	r.DELETE("/favorites/:id", h.DeleteFavorite)
	r.GET("/favorites/item/:item_id/users", h.ListItemFavoriters)
	r.GET("/favorites/user/:user_id/item/:item_id", h.FavoriteStatus)
	return r
}

// ---------- AddFavorite ----------

func TestAddFavorite_BadJSON_422(t *testing.T) {
	r := favRouter(newFavHandlers(newHandlerDB(t)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/favorites", bytes.NewBufferString("{bad"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad json -> %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Type != "ValidationError" {
		t.Fatalf("type = %q", env.Error.Type)
	}
}

func TestAddFavorite_Success_Then_Duplicate(t *testing.T) {
	r := favRouter(newFavHandlers(newHandlerDB(t)))
	body := `{"user_id":1,"item_id":5,"item_name":"  Croissant  ","rating":4.5}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/favorites", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
	}
	var fav domain.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &fav); err != nil {
		t.Fatalf("json: %v", err)
	}
	if fav.ItemName != "Croissant" || fav.UserID != 1 || !fav.IsPublic {
		t.Fatalf("unexpected favorite: %+v", fav)
	}

	// Same pair again -> 409 naming the existing record
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/favorites", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate -> %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Type != "ConflictError" {
		t.Fatalf("type = %q", env.Error.Type)
	}
	if env.Error.Details["existing_favorite_id"] != float64(fav.ID) {
		t.Fatalf("details = %v", env.Error.Details)
	}
}

func TestAddFavorite_InvalidIDs_400(t *testing.T) {
	r := favRouter(newFavHandlers(newHandlerDB(t)))

	// Zero and missing values must reach the service and come back as 400
	// with the field-specific detail, never as a 422 binding failure.
	cases := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"negative user_id", `{"user_id":-2,"item_id":5,"item_name":"Croissant"}`, "Invalid user id provided"},
		{"zero user_id", `{"user_id":0,"item_id":5,"item_name":"Croissant"}`, "Invalid user id provided"},
		{"omitted user_id", `{"item_id":5,"item_name":"Croissant"}`, "Invalid user id provided"},
		{"zero item_id", `{"user_id":1,"item_id":0,"item_name":"Croissant"}`, "Invalid item id provided"},
		{"empty item_name", `{"user_id":1,"item_id":5,"item_name":""}`, "Item name cannot be empty"},
		{"blank item_name", `{"user_id":1,"item_id":5,"item_name":"   "}`, "Item name cannot be empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/favorites", bytes.NewBufferString(tc.body))
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d body=%s", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Error.Type != "ValidationError" {
				t.Fatalf("type = %q", env.Error.Type)
			}
			if env.Error.Message != tc.wantMsg {
				t.Fatalf("message = %q, want %q", env.Error.Message, tc.wantMsg)
			}
			if strings.Contains(tc.wantMsg, "Invalid") && env.Error.Details["requirement"] != "must be a positive integer" {
				t.Fatalf("details = %v", env.Error.Details)
			}
		})
	}
}

// ---------- ListFavorites ----------

func TestListFavorites_BadParam_Success_Empty(t *testing.T) {
	db := newHandlerDB(t)
	r := favRouter(newFavHandlers(db))

	// not an int -> 422
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites/user/abc", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad param -> %d", w.Code)
	}

	// seed two favorites, one private
	svc := &services.FavoriteService{DB: db}
	ctx := context.Background()
	priv := false
	if _, err := svc.Add(ctx, services.AddFavoriteInput{UserID: 3, ItemID: 1, ItemName: "Rye"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Add(ctx, services.AddFavoriteInput{UserID: 3, ItemID: 2, ItemName: "Scone", IsPublic: &priv}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/favorites/user/3?is_public=true", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d body=%s", w.Code, w.Body.String())
	}
	var favs []domain.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &favs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(favs) != 1 || favs[0].ItemName != "Rye" {
		t.Fatalf("filtered list = %+v", favs)
	}

	// user with nothing favorited -> 200 with empty array
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/favorites/user/99", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("empty list -> %d", w.Code)
	}
	if body := w.Body.String(); body != "[]" && body != "[]\n" {
		t.Fatalf("empty list body = %q", body)
	}
}

// ---------- DeleteFavorite ----------

func TestDeleteFavorite_Ownership_Flow(t *testing.T) {
	db := newHandlerDB(t)
	r := favRouter(newFavHandlers(db))

	svc := &services.FavoriteService{DB: db}
	fav, err := svc.Add(context.Background(), services.AddFavoriteInput{UserID: 1, ItemID: 7, ItemName: "Tart"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	path := fmt.Sprintf("/favorites/%d", fav.ID)

	// another user -> 401
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("X-User-ID", "2")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("foreign delete -> %d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Error.Type != "UnauthorizedError" {
		t.Fatalf("type = %q", env.Error.Type)
	}

	// owner -> 200 with confirmation payload
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("X-User-ID", "1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("owner delete -> %d body=%s", w.Code, w.Body.String())
	}
	var out DeleteFavoriteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if out.Message != "Favorite deleted successfully" || out.Deleted == nil || out.Deleted.ID != fav.ID {
		t.Fatalf("confirmation = %+v", out)
	}

	// already gone -> 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, path, nil)
	req.Header.Set("X-User-ID", "1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete -> %d", w.Code)
	}
}

func TestDeleteFavorite_RequesterFromQuery(t *testing.T) {
	var gotFav, gotUser int
	h := New(stubFavSvc{
		delete: func(_ context.Context, favID, uid int) (*services.DeletedFavorite, error) {
			gotFav, gotUser = favID, uid
			return &services.DeletedFavorite{ID: favID, UserID: uid}, nil
		},
	}, stubCatSvc{}, stubItemSvc{}, stubAuthSvc{}, stubSearchSvc{}, stubStatsSvc{}, false)
	r := favRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/favorites/12?user_id=4", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("delete -> %d", w.Code)
	}
	if gotFav != 12 || gotUser != 4 {
		t.Fatalf("service args: fav=%d user=%d", gotFav, gotUser)
	}
}

// ---------- Status + item favoriters ----------

func TestFavoriteStatus_BeforeAndAfter(t *testing.T) {
	db := newHandlerDB(t)
	r := favRouter(newFavHandlers(db))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites/user/1/item/9", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status -> %d", w.Code)
	}
	var st services.FavoriteStatus
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if st.IsFavorited || st.FavoriteID != nil {
		t.Fatalf("unexpected status before: %+v", st)
	}

	svc := &services.FavoriteService{DB: db}
	fav, err := svc.Add(context.Background(), services.AddFavoriteInput{UserID: 1, ItemID: 9, ItemName: "Brioche"})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/favorites/user/1/item/9", nil)
	r.ServeHTTP(w, req)
	if err := json.Unmarshal(w.Body.Bytes(), &st); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !st.IsFavorited || st.FavoriteID == nil || *st.FavoriteID != fav.ID {
		t.Fatalf("unexpected status after: %+v", st)
	}
}

func TestListItemFavoriters(t *testing.T) {
	db := newHandlerDB(t)
	r := favRouter(newFavHandlers(db))

	svc := &services.FavoriteService{DB: db}
	ctx := context.Background()
	for uid := 1; uid <= 3; uid++ {
		if _, err := svc.Add(ctx, services.AddFavoriteInput{UserID: uid, ItemID: 4, ItemName: "Pretzel"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/favorites/item/4/users", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("favoriters -> %d", w.Code)
	}
	var favs []domain.Favorite
	if err := json.Unmarshal(w.Body.Bytes(), &favs); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(favs) != 3 {
		t.Fatalf("got %d favoriters, want 3", len(favs))
	}
}
