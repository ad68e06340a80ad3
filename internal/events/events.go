package events

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/models"
)

const OrderCreatedEvent = "order.created"

// OrderCreated is published after a checkout commits.
type OrderCreated struct {
	Order  *models.Order `json:"order"`
	UserID uuid.UUID     `json:"user_id"`
	Email  string        `json:"email"`
}

// Publisher hands events to subscribers. It never reports delivery failures
// to the caller.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated)
}

type Subscriber interface {
	Name() string
	HandleOrderCreated(ctx context.Context, event OrderCreated) error
}
