package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Condition is the state of the item as declared by the seller.
// Tags unknown to this service are passed through unchanged.
type Condition string

const (
	ConditionNew  Condition = "new"
	ConditionUsed Condition = "used"
)

// Product is a single marketplace listing as stored by the backend.
type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Images       []string        `json:"images"`
	Condition    Condition       `json:"condition"`
	LocationName *string         `json:"location_name,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ProductWithDistance is a product annotated with its distance from the searcher.
// Distance is set only for radius searches and is expressed in meters.
type ProductWithDistance struct {
	Product

	Distance *float64 `json:"distance,omitempty"`
}
