// Favorite HTTP handlers.
//
// This file exposes the REST endpoints for user favorites:
//   - POST   /favorites                             (add)
//   - GET    /favorites/user/{user_id}              (list, filtered, paged)
//   - DELETE /favorites/{id}                        (delete, owner only)
//   - GET    /favorites/item/{item_id}/users        (who favorited an item)
//   - GET    /favorites/user/{user_id}/item/{item_id} (favorited status)
//
// Handlers are transport-thin: they parse parameters, bind payloads, call
// the favorites service, and let the error responder shape every failure.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/http/middleware"
	"github.com/avasil/go-bakery-backend/internal/repo"
	"github.com/avasil/go-bakery-backend/internal/services"
)

// AddFavoriteRequest is the JSON payload for creating a favorite. The id and
// name fields carry no binding rules: missing or zero values must reach the
// service so it can reject them with the field-specific validation details.
type AddFavoriteRequest struct {
	UserID   int    `json:"user_id" example:"1"`
	ItemID   int    `json:"item_id" example:"5"`
	ItemName string `json:"item_name" example:"Croissant"`
	Category string `json:"category" example:"Pastries"`
	// Rating is 1–5 when provided.
	Rating     *float64 `json:"rating" binding:"omitempty,gte=1,lte=5" example:"4.5"`
	Experience string   `json:"experience" example:"Flaky and buttery"`
	IsPublic   *bool    `json:"is_public" example:"true"`
}

// DeleteFavoriteResponse confirms a successful delete.
type DeleteFavoriteResponse struct {
	Message string                    `json:"message" example:"Favorite deleted successfully"`
	Deleted *services.DeletedFavorite `json:"deleted_favorite"`
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Add a favorite
// @Description Bookmarks a menu item for a user. At most one favorite may exist per (user, item) pair.
// @Tags        Favorites
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.AddFavoriteRequest  true  "Favorite payload"
//
// @Success     201  {object} domain.Favorite
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid ids or name"
// @Failure     409  {object} handlers.ErrorEnvelope "Favorite already exists"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /favorites [post]
func (h *Handlers) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}

	fav, err := h.favSvc.Add(c.Request.Context(), services.AddFavoriteInput{
		UserID:     req.UserID,
		ItemID:     req.ItemID,
		ItemName:   req.ItemName,
		Category:   req.Category,
		Rating:     req.Rating,
		Experience: req.Experience,
		IsPublic:   req.IsPublic,
	})
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	middleware.FavoritesCreated.Inc()
	ok(c, http.StatusCreated, fav)
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List a user's favorites
// @Description Returns the user's favorites, newest first. Supports category and is_public filters plus limit/offset paging. An empty list is a valid result.
// @Tags        Favorites
// @Produce     json
//
// @Param       user_id    path   int     true  "User ID"        minimum(1)
// @Param       category   query  string  false "Filter by category"
// @Param       is_public  query  bool    false "Filter by visibility"
// @Param       limit      query  int     false "Page size"      minimum(1) maximum(100) default(10)
// @Param       offset     query  int     false "Page offset"    minimum(0) default(0)
//
// @Success     200  {array}  domain.Favorite
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid user id"
// @Failure     422  {object} handlers.ErrorEnvelope "Non-integer user id"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /favorites/user/{user_id} [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	uid, okParam := pathInt(c, "user_id")
	if !okParam {
		return
	}
	limit, offset := clampLimitOffset(c)
	favs, err := h.favSvc.List(c.Request.Context(), uid, repo.FavoriteFilter{
		Category: c.Query("category"),
		IsPublic: boolQuery(c, "is_public"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, favs)
}

// DeleteFavorite godoc
// @ID          deleteFavorite
// @Summary     Delete a favorite
// @Description Removes a favorite. Only the owning user may delete it; the requester is taken from the auth context, X-User-ID header, or user_id query parameter.
// @Tags        Favorites
// @Produce     json
//
// @Param       id       path   int  true  "Favorite ID"  minimum(1)
// @Param       user_id  query  int  false "Requesting user (when unauthenticated)"
//
// @Success     200  {object} handlers.DeleteFavoriteResponse
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid ids"
// @Failure     401  {object} handlers.ErrorEnvelope "Favorite owned by another user"
// @Failure     404  {object} handlers.ErrorEnvelope "Favorite not found"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /favorites/{id} [delete]
func (h *Handlers) DeleteFavorite(c *gin.Context) {
	favID, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	deleted, err := h.favSvc.Delete(c.Request.Context(), favID, userID(c))
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	middleware.FavoritesDeleted.Inc()
	ok(c, http.StatusOK, DeleteFavoriteResponse{
		Message: "Favorite deleted successfully",
		Deleted: deleted,
	})
}

// ListItemFavoriters godoc
// @ID          listItemFavoriters
// @Summary     List favorites of an item
// @Description Returns every favorite record referencing the item, possibly empty.
// @Tags        Favorites
// @Produce     json
//
// @Param       item_id  path  int  true  "Item ID"  minimum(1)
//
// @Success     200  {array}  domain.Favorite
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid item id"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /favorites/item/{item_id}/users [get]
func (h *Handlers) ListItemFavoriters(c *gin.Context) {
	itemID, okParam := pathInt(c, "item_id")
	if !okParam {
		return
	}
	favs, err := h.favSvc.ListForItem(c.Request.Context(), itemID)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, favs)
}

// FavoriteStatus godoc
// @ID          favoriteStatus
// @Summary     Check favorited status
// @Description Reports whether the user has favorited the item, with the matching record when present.
// @Tags        Favorites
// @Produce     json
//
// @Param       user_id  path  int  true  "User ID"  minimum(1)
// @Param       item_id  path  int  true  "Item ID"  minimum(1)
//
// @Success     200  {object} services.FavoriteStatus
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid ids"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /favorites/user/{user_id}/item/{item_id} [get]
func (h *Handlers) FavoriteStatus(c *gin.Context) {
	uid, okParam := pathInt(c, "user_id")
	if !okParam {
		return
	}
	itemID, okParam := pathInt(c, "item_id")
	if !okParam {
		return
	}
	st, err := h.favSvc.Status(c.Request.Context(), uid, itemID)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, st)
}
