package domain

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products in the catalog. A category may only be deleted
// while no product references it.
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Product is a sellable catalog entry. Prices are whole guaraníes, so
// totals stay in exact integer arithmetic.
//
// CategoryID is nil for uncategorized products; when set it must reference
// an existing category.
type Product struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Price        int64      `json:"price" db:"price"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty" db:"category_id"`
	CategoryName string     `json:"category_name,omitempty" db:"category_name"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
