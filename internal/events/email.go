package events

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-api/internal/api/middleware"
	"github.com/storefront-labs/storefront-api/internal/models"
	repository "github.com/storefront-labs/storefront-api/internal/repositories"
	"github.com/storefront-labs/storefront-api/pkg/sendgrid"
)

// EmailNotifier sends the order confirmation and records it as a notification.
type EmailNotifier struct {
	email sendgrid.EmailService
	repo  repository.NotificationRepository
}

func NewEmailNotifier(email sendgrid.EmailService, repo repository.NotificationRepository) *EmailNotifier {
	return &EmailNotifier{email: email, repo: repo}
}

func (n *EmailNotifier) Name() string {
	return "email"
}

func (n *EmailNotifier) HandleOrderCreated(ctx context.Context, event OrderCreated) error {

	logger := middleware.LoggerFromContext(ctx)

	if event.Email == "" {
		return fmt.Errorf("order %d has no recipient email", event.Order.ID)
	}

	notification := &models.Notification{
		ID:        uuid.New(),
		Type:      models.NotificationTypeEmail,
		Recipient: event.Email,
		Subject:   fmt.Sprintf("Order #%d confirmed", event.Order.ID),
		Content:   orderConfirmation(event.Order),
		Status:    models.StatusPending,
		Metadata:  map[string]string{"order_id": strconv.FormatInt(event.Order.ID, 10)},
	}

	if err := n.repo.CreateNotification(ctx, notification); err != nil {
		return fmt.Errorf("failed to record notification: %w", err)
	}

	sendErr := n.email.Send(ctx, &sendgrid.Message{
		To:      notification.Recipient,
		Subject: notification.Subject,
		Content: notification.Content,
	})

	status, errorMsg := models.StatusSent, ""
	if sendErr != nil {
		status, errorMsg = models.StatusFailed, sendErr.Error()
	}

	if err := n.repo.UpdateNotificationStatus(ctx, notification.ID, status, errorMsg); err != nil {
		logger.Error("Failed to update notification status", slog.String("notificationId", notification.ID.String()), slog.String("error", err.Error()))
	}

	if sendErr != nil {
		return fmt.Errorf("failed to send order confirmation: %w", sendErr)
	}

	return nil
}

func orderConfirmation(order *models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thank you for your order #%d.\n\n", order.ID)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%d x %s @ %s\n", item.Quantity, item.Product.Title, item.UnitPrice.StringFixed(2))
	}

	fmt.Fprintf(&b, "\nTotal: %s\n", order.Total.StringFixed(2))

	return b.String()
}
