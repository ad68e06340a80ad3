package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
	PaymentStatusFailed   PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}

	return false
}

type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"-"`
	Product   SimpleProduct   `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Subtotal uses the unit price frozen on the item, never the live product price.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customer"`
	PlacedAt      time.Time       `json:"placed_at"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Items         []OrderItem     `json:"items"`
	Total         decimal.Decimal `json:"total"`
}

func (o *Order) CalculateTotal() {
	total := decimal.Zero

	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}

	o.Total = total
}

type CreateOrderRequest struct {
	CartID uuid.UUID `json:"cart_id" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=pending complete failed"`
}
