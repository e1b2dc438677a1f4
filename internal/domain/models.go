// Package domain defines the persistence models for categories, menu items,
// favorites, users, and search statistics. These types are mapped with GORM
// and form the core data layer of the bakery backend.
package domain

import "time"

// Category groups menu items (e.g. "Breads", "Pastries"). Category names are
// unique; inactive categories are hidden from default listings but retained
// for existing items.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Name: unique category name (1–100 chars).
//   - Description: optional free text.
//   - IsActive: soft visibility flag (default true).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Category struct {
	ID          int       `json:"id"          gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name"        gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"is_active"   gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// Item is a single product on the bakery menu. Every item belongs to exactly
// one category; availability and stock are managed independently of the
// descriptive fields.
type Item struct {
	ID          int     `json:"id"           gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name"         gorm:"type:varchar(200);not null;index"`
	Description string  `json:"description"  gorm:"type:text"`
	Price       float64 `json:"price"        gorm:"not null"`
	CategoryID  int     `json:"category_id"  gorm:"not null;index"`
	ImageURL    string  `json:"image_url"    gorm:"type:varchar(500)"`
	IsAvailable bool    `json:"is_available" gorm:"not null;default:true"`
	// StockQuantity counts units on hand; it never goes negative.
	StockQuantity int    `json:"stock_quantity" gorm:"not null;default:0"`
	Ingredients   string `json:"ingredients"    gorm:"type:text"`
	Allergens     string `json:"allergens"      gorm:"type:varchar(500)"`
	// PreparationTime is in minutes; zero means unspecified.
	PreparationTime int       `json:"preparation_time,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Category is the owning category. Items block deletion of their category.
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Item.
func (Item) TableName() string { return "items" }

// Favorite is a user's bookmark of a menu item, optionally annotated with a
// rating (1–5), a free-text note, and a public/private flag.
//
// Invariants:
//   - At most one favorite per (user_id, item_id) pair, enforced by a unique
//     index so a racing double-add resolves to one row and one conflict.
//   - Only the owning user may delete a favorite.
//
// A favorite is immutable once created; the only transitions are create and
// delete.
type Favorite struct {
	ID       int    `json:"id"        gorm:"primaryKey;autoIncrement"`
	UserID   int    `json:"user_id"   gorm:"not null;index;uniqueIndex:ux_fav_user_item,priority:1"`
	ItemID   int    `json:"item_id"   gorm:"not null;index;uniqueIndex:ux_fav_user_item,priority:2"`
	ItemName string `json:"item_name" gorm:"type:varchar(200);not null"`
	Category string `json:"category,omitempty" gorm:"type:varchar(100)"`
	// Rating is 1–5 when present; nil means unrated.
	Rating     *float64  `json:"rating,omitempty"`
	Experience string    `json:"experience,omitempty" gorm:"type:text"`
	IsPublic   bool      `json:"is_public" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// User is an account that can authenticate and own favorites. Passwords are
// stored only as bcrypt hashes.
type User struct {
	ID           int       `json:"id"       gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"type:varchar(64);not null;uniqueIndex"`
	PasswordHash string    `json:"-"        gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// SearchStat tracks how often a search term has been queried, feeding the
// "most searched" endpoint. Terms are stored lowercased.
type SearchStat struct {
	ID          int    `json:"id"           gorm:"primaryKey;autoIncrement"`
	Term        string `json:"term"         gorm:"type:varchar(200);not null;uniqueIndex"`
	SearchCount int    `json:"search_count" gorm:"not null;default:0"`
}

// TableName returns the database table name for SearchStat.
func (SearchStat) TableName() string { return "search_stats" }
