package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// taxMultiplier is applied to unit prices to derive price_with_tax.
var taxMultiplier = decimal.New(11, -1)

type Collection struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	FeaturedProductID *int64 `json:"featured_product_id,omitempty"`
	ProductsCount     int64  `json:"products_count"`
}

type Promotion struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Discount    float64 `json:"discount"`
}

type Product struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Slug         string          `json:"slug"`
	Description  string          `json:"description"`
	Inventory    int             `json:"inventory"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	PriceWithTax decimal.Decimal `json:"price_with_tax"`
	CollectionID int64           `json:"collection"`
	LastUpdate   time.Time       `json:"last_update"`
	Promotions   []Promotion     `json:"promotions,omitempty"`
}

// ApplyTax fills PriceWithTax from UnitPrice.
func (p *Product) ApplyTax() {
	p.PriceWithTax = p.UnitPrice.Mul(taxMultiplier).Round(2)
}

// SimpleProduct is the product snapshot embedded in cart lines and order items.
type SimpleProduct struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Review struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"-"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

type CreateProductRequest struct {
	Title        string          `json:"title" validate:"required,max=255"`
	Slug         string          `json:"slug" validate:"required,max=255"`
	Description  string          `json:"description"`
	Inventory    int             `json:"inventory" validate:"required,min=1"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CollectionID int64           `json:"collection" validate:"required,gt=0"`
}

type UpdateProductRequest struct {
	Title        *string          `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Slug         *string          `json:"slug,omitempty" validate:"omitempty,min=1,max=255"`
	Description  *string          `json:"description,omitempty"`
	Inventory    *int             `json:"inventory,omitempty" validate:"omitempty,min=1"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	CollectionID *int64           `json:"collection,omitempty" validate:"omitempty,gt=0"`
}

type CollectionRequest struct {
	Title             string `json:"title" validate:"required,max=255"`
	FeaturedProductID *int64 `json:"featured_product_id,omitempty" validate:"omitempty,gt=0"`
}

type CreatePromotionRequest struct {
	Description string  `json:"description" validate:"required,max=255"`
	Discount    float64 `json:"discount" validate:"gte=0"`
}

type AttachPromotionRequest struct {
	PromotionID int64 `json:"promotion_id" validate:"required,gt=0"`
}

type CreateReviewRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"required"`
}
