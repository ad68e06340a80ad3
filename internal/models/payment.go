package models

import "time"

type Payment struct {
	ID          string        `json:"id"`
	OrderID     int64         `json:"order_id"`
	AmountCents int64         `json:"amount_cents"`
	Currency    string        `json:"currency"`
	Status      PaymentStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type CreatePaymentRequest struct {
	OrderID int64 `json:"order_id" validate:"required,gt=0"`
}

type PaymentResponse struct {
	Payment      *Payment `json:"payment"`
	ClientSecret string   `json:"client_secret,omitempty"`
}
