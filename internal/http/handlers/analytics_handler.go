// Analytics HTTP handlers.
//
// Read-only aggregate endpoints over the favorites table:
//   - GET /analytics/most-favorited
//   - GET /analytics/active-hours
//   - GET /analytics/trending-items
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/utils"
)

// MostFavorited godoc
// @ID          mostFavorited
// @Summary     Most favorited items
// @Tags        Analytics
// @Produce     json
// @Param       limit  query  int  false "Number of items"  default(5)
// @Success     200  {array}  repo.ItemFavoriteCount
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /analytics/most-favorited [get]
func (h *Handlers) MostFavorited(c *gin.Context) {
	limit := utils.AtoiDefault(c.Query("limit"), 5)
	rows, err := h.statsSvc.MostFavorited(c.Request.Context(), limit)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, rows)
}

// ActiveHours godoc
// @ID          activeHours
// @Summary     Favorite activity by hour of day
// @Tags        Analytics
// @Produce     json
// @Success     200  {array}  services.HourBucket
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /analytics/active-hours [get]
func (h *Handlers) ActiveHours(c *gin.Context) {
	buckets, err := h.statsSvc.ActiveHours(c.Request.Context())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, buckets)
}

// TrendingItems godoc
// @ID          trendingItems
// @Summary     Favorite activity by day
// @Tags        Analytics
// @Produce     json
// @Success     200  {array}  services.DayBucket
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /analytics/trending-items [get]
func (h *Handlers) TrendingItems(c *gin.Context) {
	buckets, err := h.statsSvc.Trending(c.Request.Context())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, buckets)
}
