package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID         int64           `json:"id"`
	Product    SimpleProduct   `json:"product"`
	Quantity   int             `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CalculateTotal prices the line from the product's current unit price.
func (i *CartItem) CalculateTotal() {
	i.TotalPrice = i.Product.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	ID         uuid.UUID       `json:"id"`
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (c *Cart) CalculateTotal() {
	total := decimal.Zero

	for i := range c.Items {
		c.Items[i].CalculateTotal()
		total = total.Add(c.Items[i].TotalPrice)
	}

	c.TotalPrice = total
}

type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,min=1,max=32767"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=32767"`
}
