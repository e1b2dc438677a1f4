// Category HTTP handlers.
//
// Endpoints:
//   - POST   /categories
//   - GET    /categories          (paged, active-only by default)
//   - GET    /categories/{id}
//   - PUT    /categories/{id}
//   - DELETE /categories/{id}     (refused while items remain)
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avasil/go-bakery-backend/internal/services"
)

// CategoryRequest is the JSON payload for creating or updating a category.
// On update, absent fields are left unchanged.
type CategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100" example:"Pastries"`
	Description *string `json:"description" example:"Laminated doughs and sweet bakes"`
	IsActive    *bool   `json:"is_active" example:"true"`
}

func (r CategoryRequest) input() services.CategoryInput {
	return services.CategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

// CreateCategory godoc
// @ID          createCategory
// @Summary     Create a category
// @Tags        Categories
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CategoryRequest  true  "Category payload"
// @Success     201  {object} domain.Category
// @Failure     400  {object} handlers.ErrorEnvelope "Blank name"
// @Failure     409  {object} handlers.ErrorEnvelope "Name already exists"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /categories [post]
func (h *Handlers) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	cat, err := h.catSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusCreated, cat)
}

// ListCategories godoc
// @ID          listCategories
// @Summary     List categories
// @Description Returns categories ordered by name. active_only=false includes inactive ones.
// @Tags        Categories
// @Produce     json
// @Param       active_only  query  bool  false "Only active categories"  default(true)
// @Param       limit        query  int   false "Page size"               default(10)
// @Param       offset       query  int   false "Page offset"             default(0)
// @Success     200  {array}  domain.Category
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	activeOnly := true
	if v := boolQuery(c, "active_only"); v != nil {
		activeOnly = *v
	}
	limit, offset := clampLimitOffset(c)
	cats, err := h.catSvc.List(c.Request.Context(), activeOnly, offset, limit)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, cats)
}

// GetCategory godoc
// @ID          getCategory
// @Summary     Get a category
// @Tags        Categories
// @Produce     json
// @Param       id  path  int  true  "Category ID"
// @Success     200  {object} domain.Category
// @Failure     404  {object} handlers.ErrorEnvelope "Category not found"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /categories/{id} [get]
func (h *Handlers) GetCategory(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	cat, err := h.catSvc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// UpdateCategory godoc
// @ID          updateCategory
// @Summary     Update a category
// @Tags        Categories
// @Accept      json
// @Produce     json
// @Param       id    path  int                       true  "Category ID"
// @Param       body  body  handlers.CategoryRequest  true  "Fields to change"
// @Success     200  {object} domain.Category
// @Failure     404  {object} handlers.ErrorEnvelope "Category not found"
// @Failure     409  {object} handlers.ErrorEnvelope "Name already exists"
// @Failure     422  {object} handlers.ErrorEnvelope "Malformed payload"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /categories/{id} [put]
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBinding(c, err)
		return
	}
	cat, err := h.catSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, cat)
}

// DeleteCategory godoc
// @ID          deleteCategory
// @Summary     Delete a category
// @Description Removes an empty category. Categories that still have items are refused with 409.
// @Tags        Categories
// @Produce     json
// @Param       id  path  int  true  "Category ID"
// @Success     200  {object} map[string]string
// @Failure     404  {object} handlers.ErrorEnvelope "Category not found"
// @Failure     409  {object} handlers.ErrorEnvelope "Category still has items"
// @Failure     500  {object} handlers.ErrorEnvelope "Internal server error"
// @Router      /categories/{id} [delete]
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, okParam := pathInt(c, "id")
	if !okParam {
		return
	}
	if err := h.catSvc.Delete(c.Request.Context(), id); err != nil {
		fail(c, h.verbose, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"message": "Category deleted successfully", "category_id": strconv.Itoa(id)})
}
