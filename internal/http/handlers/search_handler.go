// Search HTTP handlers.
//
// Endpoints:
//   - GET /search/favorites      (name search with paging, tracked)
//   - GET /search/most-searched  (term popularity ranking)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/utils"
)

// SearchFavorites godoc
// @ID          searchFavorites
// @Summary     Search favorites by item name
// @Description Case-insensitive substring match over favorite item names, newest first. Each search bumps the term's popularity counter.
// @Tags        Search
// @Produce     json
// @Param       item_name  query  string  true  "Search term"  minLength(1)
// @Param       limit      query  int     false "Page size"    default(10)
// @Param       offset     query  int     false "Page offset"  default(0)
// @Success     200  {array}  domain.Favorite
// @Failure     400  {object} handlers.ErrorEnvelope "Empty term"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /search/favorites [get]
func (h *Handlers) SearchFavorites(c *gin.Context) {
	limit, offset := clampLimitOffset(c)
	favs, err := h.searchSvc.Search(c.Request.Context(), c.Query("item_name"), limit, offset)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, favs)
}

// MostSearched godoc
// @ID          mostSearched
// @Summary     Most searched terms
// @Tags        Search
// @Produce     json
// @Param       limit  query  int  false "Number of terms"  default(10)
// @Success     200  {array}  string
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /search/most-searched [get]
func (h *Handlers) MostSearched(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 10)
	terms, err := h.searchSvc.MostSearched(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, terms)
}
