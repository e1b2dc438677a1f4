// Package services – ItemService
//
// Manages menu items: CRUD plus the availability and stock toggles. Creating
// or re-categorizing an item verifies the target category exists.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/avasil/go-bakery-backend/internal/domain"
	"github.com/avasil/go-bakery-backend/internal/repo"
)

// ItemService provides item CRUD and stock management on top of the repo
// layer.
type ItemService struct {
	DB *gorm.DB
}

// ItemInput carries caller-supplied item fields. Nil pointers on update mean
// "leave unchanged".
type ItemInput struct {
	Name            *string
	Description     *string
	Price           *float64
	CategoryID      *int
	ImageURL        *string
	IsAvailable     *bool
	StockQuantity   *int
	Ingredients     *string
	Allergens       *string
	PreparationTime *int
}

// Create inserts a new item after verifying the target category exists.
func (s *ItemService) Create(ctx context.Context, in ItemInput) (*domain.Item, error) {
	name := ""
	if in.Name != nil {
		name = strings.TrimSpace(*in.Name)
	}
	if name == "" {
		return nil, domain.NewValidationError("Item name cannot be empty",
			map[string]any{"name": name})
	}
	if in.Price == nil || *in.Price <= 0 {
		return nil, domain.NewValidationError("Item price must be positive",
			map[string]any{"price": in.Price})
	}
	if in.CategoryID == nil || *in.CategoryID <= 0 {
		return nil, domain.NewValidationError("Invalid category ID provided",
			map[string]any{"category_id": in.CategoryID, "requirement": "must be a positive integer"})
	}
	if _, err := repo.GetCategory(ctx, s.DB, *in.CategoryID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, domain.NewNotFoundError("Category not found",
				map[string]any{"category_id": *in.CategoryID})
		}
		return nil, domain.NewDatabaseError("Failed to create item",
			map[string]any{"category_id": *in.CategoryID}, err)
	}

	it := &domain.Item{
		Name:        name,
		Price:       *in.Price,
		CategoryID:  *in.CategoryID,
		IsAvailable: true,
	}
	if in.Description != nil {
		it.Description = *in.Description
	}
	if in.ImageURL != nil {
		it.ImageURL = *in.ImageURL
	}
	if in.IsAvailable != nil {
		it.IsAvailable = *in.IsAvailable
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.NewValidationError("Stock quantity cannot be negative",
				map[string]any{"stock_quantity": *in.StockQuantity})
		}
		it.StockQuantity = *in.StockQuantity
	}
	if in.Ingredients != nil {
		it.Ingredients = *in.Ingredients
	}
	if in.Allergens != nil {
		it.Allergens = *in.Allergens
	}
	if in.PreparationTime != nil {
		if *in.PreparationTime <= 0 {
			return nil, domain.NewValidationError("Preparation time must be positive",
				map[string]any{"preparation_time": *in.PreparationTime})
		}
		it.PreparationTime = *in.PreparationTime
	}
	if err := repo.CreateItem(ctx, s.DB, it); err != nil {
		return nil, domain.NewDatabaseError("Failed to create item",
			map[string]any{"name": name}, err)
	}
	return it, nil
}

// Get fetches an item by id, or NotFound.
func (s *ItemService) Get(ctx context.Context, id int) (*domain.Item, error) {
	if err := positiveID("item_id", id); err != nil {
		return nil, err
	}
	it, err := repo.GetItem(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, domain.NewNotFoundError("Item not found",
				map[string]any{"item_id": id})
		}
		return nil, domain.NewDatabaseError("Failed to retrieve item",
			map[string]any{"item_id": id}, err)
	}
	return it, nil
}

// List returns items matching the filter.
func (s *ItemService) List(ctx context.Context, filter repo.ItemFilter) ([]domain.Item, error) {
	items, err := repo.ListItems(ctx, s.DB, filter)
	if err != nil {
		return nil, domain.NewDatabaseError("Failed to retrieve items", nil, err)
	}
	return items, nil
}

// Update applies the provided fields to an existing item. A category change
// verifies the new category exists first.
func (s *ItemService) Update(ctx context.Context, id int, in ItemInput) (*domain.Item, error) {
	if err := positiveID("item_id", id); err != nil {
		return nil, err
	}
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("Item name cannot be empty",
				map[string]any{"name": *in.Name})
		}
		fields["name"] = name
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, domain.NewValidationError("Item price must be positive",
				map[string]any{"price": *in.Price})
		}
		fields["price"] = *in.Price
	}
	if in.CategoryID != nil {
		if _, err := repo.GetCategory(ctx, s.DB, *in.CategoryID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, domain.NewNotFoundError("Category not found",
					map[string]any{"category_id": *in.CategoryID})
			}
			return nil, domain.NewDatabaseError("Failed to update item",
				map[string]any{"item_id": id}, err)
		}
		fields["category_id"] = *in.CategoryID
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.IsAvailable != nil {
		fields["is_available"] = *in.IsAvailable
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, domain.NewValidationError("Stock quantity cannot be negative",
				map[string]any{"stock_quantity": *in.StockQuantity})
		}
		fields["stock_quantity"] = *in.StockQuantity
	}
	if in.Ingredients != nil {
		fields["ingredients"] = *in.Ingredients
	}
	if in.Allergens != nil {
		fields["allergens"] = *in.Allergens
	}
	if in.PreparationTime != nil {
		if *in.PreparationTime <= 0 {
			return nil, domain.NewValidationError("Preparation time must be positive",
				map[string]any{"preparation_time": *in.PreparationTime})
		}
		fields["preparation_time"] = *in.PreparationTime
	}
	if len(fields) > 0 {
		if err := repo.UpdateItem(ctx, s.DB, id, fields); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, domain.NewNotFoundError("Item not found",
					map[string]any{"item_id": id})
			}
			return nil, domain.NewDatabaseError("Failed to update item",
				map[string]any{"item_id": id}, err)
		}
	}
	return s.Get(ctx, id)
}

// Delete removes an item by id, or NotFound.
func (s *ItemService) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := repo.DeleteItem(ctx, s.DB, id); err != nil {
		return domain.NewDatabaseError("Failed to delete item",
			map[string]any{"item_id": id}, err)
	}
	return nil
}

// SetAvailability flips the is_available flag.
func (s *ItemService) SetAvailability(ctx context.Context, id int, available bool) (*domain.Item, error) {
	return s.Update(ctx, id, ItemInput{IsAvailable: &available})
}

// SetStock replaces the stock quantity. Fails with Validation when quantity
// is negative.
func (s *ItemService) SetStock(ctx context.Context, id int, quantity int) (*domain.Item, error) {
	if quantity < 0 {
		return nil, domain.NewValidationError("Stock quantity cannot be negative",
			map[string]any{"stock_quantity": quantity})
	}
	return s.Update(ctx, id, ItemInput{StockQuantity: &quantity})
}
