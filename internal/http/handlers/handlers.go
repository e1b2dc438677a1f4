// Package handlers – endpoint wiring.
//
// This file declares the service contracts consumed by the HTTP layer and the
// Handlers aggregate that binds them. Handlers are transport-thin: they parse
// and validate transport input, call application services, and hand failures
// to the error responder in respond.go.
package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
	"github.com/avasil/go-bakery-backend/internal/services"
	"github.com/avasil/go-bakery-backend/internal/utils"
)

// FavoriteService defines the favorites use-cases consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type FavoriteService interface {
	Add(ctx context.Context, in services.AddFavoriteInput) (*domain.Favorite, error)
	List(ctx context.Context, userID int, filter repo.FavoriteFilter) ([]domain.Favorite, error)
	Delete(ctx context.Context, favoriteID, requestingUserID int) (*services.DeletedFavorite, error)
	ListForItem(ctx context.Context, itemID int) ([]domain.Favorite, error)
	Status(ctx context.Context, userID, itemID int) (*services.FavoriteStatus, error)
}

// CategoryService defines category catalogue operations.
type CategoryService interface {
	Create(ctx context.Context, in services.CategoryInput) (*domain.Category, error)
	Get(ctx context.Context, id int) (*domain.Category, error)
	List(ctx context.Context, activeOnly bool, offset, limit int) ([]domain.Category, error)
	Update(ctx context.Context, id int, in services.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id int) error
}

// ItemService defines menu item operations.
type ItemService interface {
	Create(ctx context.Context, in services.ItemInput) (*domain.Item, error)
	Get(ctx context.Context, id int) (*domain.Item, error)
	List(ctx context.Context, filter repo.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, id int, in services.ItemInput) (*domain.Item, error)
	Delete(ctx context.Context, id int) error
	SetAvailability(ctx context.Context, id int, available bool) (*domain.Item, error)
	SetStock(ctx context.Context, id int, quantity int) (*domain.Item, error)
}

// AuthService defines account and token operations.
type AuthService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
}

// SearchService defines favorite search operations.
type SearchService interface {
	Search(ctx context.Context, term string, limit, offset int) ([]domain.Favorite, error)
	MostSearched(ctx context.Context, limit int) ([]string, error)
}

// AnalyticsService defines aggregate reporting operations.
type AnalyticsService interface {
	MostFavorited(ctx context.Context, limit int) ([]repo.ItemFavoriteCount, error)
	ActiveHours(ctx context.Context) ([]services.HourBucket, error)
	Trending(ctx context.Context) ([]services.DayBucket, error)
}

// Handlers groups the HTTP endpoints for the bakery API. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	favSvc    FavoriteService
	catSvc    CategoryService
	itemSvc   ItemService
	authSvc   AuthService
	searchSvc SearchService
	statsSvc  AnalyticsService

	// verbose exposes raw error internals in envelopes; never enable in
	// production.
	verbose bool
}

// New constructs a Handlers instance bound to the given services. verbose
// switches the error responder into diagnostic mode.
func New(fav FavoriteService, cat CategoryService, item ItemService, auth AuthService, search SearchService, stats AnalyticsService, verbose bool) *Handlers {
	return &Handlers{
		favSvc:    fav,
		catSvc:    cat,
		itemSvc:   item,
		authSvc:   auth,
		searchSvc: search,
		statsSvc:  stats,
		verbose:   verbose,
	}
}

// userID resolves the requesting user: auth middleware context first, then
// the X-User-ID demo header (tests use it), then the user_id query
// parameter. Returns 0 when no identity is present, which downstream
// validation rejects.
func userID(c *gin.Context) int {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(int); ok && id > 0 {
			return id
		}
	}
	if c != nil && c.Request != nil {
		if h := strings.TrimSpace(c.GetHeader("X-User-ID")); h != "" {
			if id, err := strconv.Atoi(h); err == nil {
				return id
			}
		}
	}
	return utils.AtoiDefault(c.Query("user_id"), 0)
}

// pathInt parses a path parameter as an int. On failure it writes a 422
// envelope naming the parameter and returns ok=false.
func pathInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		failParam(c, name, "value is not a valid integer")
		return 0, false
	}
	return v, true
}

// clampLimitOffset parses limit/offset query params with defaults and a hard
// cap on the page size.
func clampLimitOffset(c *gin.Context) (limit, offset int) {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)
	limit = utils.AtoiDefault(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset = utils.AtoiDefault(c.Query("offset"), 0)
	if offset < 0 {
		offset = 0
	}
	return
}

// boolQuery parses an optional boolean query parameter; nil when absent or
// unparseable.
func boolQuery(c *gin.Context, name string) *bool {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil
	}
	return &b
}

// floatQuery parses an optional float query parameter; nil when absent or
// unparseable.
func floatQuery(c *gin.Context, name string) *float64 {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}
