// Item HTTP handlers.
//
// Endpoints:
//   - POST   /items
//   - GET    /items                      (filtered, paged)
//   - GET    /items/{id}
//   - PUT    /items/{id}
//   - DELETE /items/{id}
//   - PATCH  /items/{id}/availability
//   - PATCH  /items/{id}/stock
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/repo"
	"github.com/avasil/go-bakery-backend/internal/services"
	"github.com/avasil/go-bakery-backend/internal/utils"
)

// ItemRequest is the JSON payload for creating or updating an item. On
// update, absent fields are left unchanged.
type ItemRequest struct {
	Name            *string  `json:"name" binding:"omitempty,min=1,max=200" example:"Sourdough Loaf"`
	Description     *string  `json:"description" example:"24h fermented"`
	Price           *float64 `json:"price" binding:"omitempty,gt=0" example:"4.20"`
	CategoryID      *int     `json:"category_id" binding:"omitempty,gt=0" example:"1"`
	ImageURL        *string  `json:"image_url" example:"https://cdn.example.com/sourdough.jpg"`
	IsAvailable     *bool    `json:"is_available" example:"true"`
	StockQuantity   *int     `json:"stock_quantity" binding:"omitempty,gte=0" example:"12"`
	Ingredients     *string  `json:"ingredients" example:"flour, water, salt"`
	Allergens       *string  `json:"allergens" example:"gluten"`
	PreparationTime *int     `json:"preparation_time" binding:"omitempty,gt=0" example:"30"`
}

func (r ItemRequest) input() services.ItemInput {
	return services.ItemInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		CategoryID:      r.CategoryID,
		ImageURL:        r.ImageURL,
		IsAvailable:     r.IsAvailable,
		StockQuantity:   r.StockQuantity,
		Ingredients:     r.Ingredients,
		Allergens:       r.Allergens,
		PreparationTime: r.PreparationTime,
	}
}

// SetAvailabilityRequest toggles an item's availability.
type SetAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required" example:"false"`
}

// SetStockRequest replaces an item's stock quantity.
type SetStockRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"12"`
}

// CreateItem godoc
// @ID          createItem
// @Summary     Create an item
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ItemRequest  true  "Item payload"
// @Success     201  {object} domain.Item
// @Failure     400  {object} handlers.ErrorEnvelope "Invalid fields"
// @Failure     404  {object} handlers.ErrorEnvelope "Category not found"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items [post]
func (h *Handlers) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	it, err := h.itemSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusCreated, it)
}

// ListItems godoc
// @ID          listItems
// @Summary     List items
// @Description Returns items, newest first. Filters: category_id, available_only (default true), min_price, max_price; limit/offset paging.
// @Tags        Items
// @Produce     json
// @Param       category_id     query  int    false "Filter by category"
// @Param       available_only  query  bool   false "Only available items"  default(true)
// @Param       min_price       query  number false "Minimum price"
// @Param       max_price       query  number false "Maximum price"
// @Param       limit           query  int    false "Page size"             default(10)
// @Param       offset          query  int    false "Page offset"           default(0)
// @Success     200  {array}  domain.Item
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items [get]
func (h *Handlers) ListItems(c *gin.Context) {
	availableOnly := true
	if v := boolQuery(c, "available_only"); v != nil {
		availableOnly = *v
	}
	limit, offset := clampLimitOffset(c)
	items, err := h.itemSvc.List(c.Request.Context(), repo.ItemFilter{
		CategoryID:    utils.AtoiDefault(c.Query("category_id"), 0),
		AvailableOnly: availableOnly,
		MinPrice:      floatQuery(c, "min_price"),
		MaxPrice:      floatQuery(c, "max_price"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, items)
}

// GetItem godoc
// @ID          getItem
// @Summary     Get an item
// @Tags        Items
// @Produce     json
// @Param       id  path  int  true  "Item ID"
// @Success     200  {object} domain.Item
// @Failure     404  {object} handlers.ErrorEnvelope "Item not found"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items/{id} [get]
func (h *Handlers) GetItem(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	it, err := h.itemSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, it)
}

// UpdateItem godoc
// @ID          updateItem
// @Summary     Update an item
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id    path  int                   true  "Item ID"
// @Param       body  body  handlers.ItemRequest  true  "Fields to change"
// @Success     200  {object} domain.Item
// @Failure     404  {object} handlers.ErrorEnvelope "Item or category not found"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items/{id} [put]
func (h *Handlers) UpdateItem(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	it, err := h.itemSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, it)
}

// DeleteItem godoc
// @ID          deleteItem
// @Summary     Delete an item
// @Tags        Items
// @Produce     json
// @Param       id  path  int  true  "Item ID"
// @Success     200  {object} map[string]string
// @Failure     404  {object} handlers.ErrorEnvelope "Item not found"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items/{id} [delete]
func (h *Handlers) DeleteItem(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	if err := h.itemSvc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Item deleted successfully"})
}

// SetItemAvailability godoc
// @ID          setItemAvailability
// @Summary     Toggle item availability
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id    path  int                             true  "Item ID"
// @Param       body  body  handlers.SetAvailabilityRequest true  "Availability flag"
// @Success     200  {object} domain.Item
// @Failure     404  {object} handlers.ErrorEnvelope "Item not found"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items/{id}/availability [patch]
func (h *Handlers) SetItemAvailability(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	var req SetAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	it, err := h.itemSvc.SetAvailability(c.Request.Context(), id, *req.Available)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, it)
}

// SetItemStock godoc
// @ID          setItemStock
// @Summary     Update item stock
// @Tags        Items
// @Accept      json
// @Produce     json
// @Param       id    path  int                       true  "Item ID"
// @Param       body  body  handlers.SetStockRequest  true  "New quantity"
// @Success     200  {object} domain.Item
// @Failure     400  {object} handlers.ErrorEnvelope "Negative quantity"
// @Failure     404  {object} handlers.ErrorEnvelope "Item not found"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /items/{id}/stock [patch]
func (h *Handlers) SetItemStock(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	var req SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	it, err := h.itemSvc.SetStock(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, it)
}
