package content

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pubsublib "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"
	"github.com/sharlabs/shar-backend/pkg/db/models"
)

const eventAlertCreated = "alert.created"

type alertCreatedEvent struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Priority  string    `json:"priority"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertEvents publishes alert lifecycle events for downstream fan-out
// (push notifications, analytics).
type AlertEvents struct {
	publisher *pubsublib.Publisher
}

// NewAlertEvents wraps the configured alert topic publisher. A nil publisher
// yields a no-op emitter so local setups can run without Pub/Sub.
func NewAlertEvents(publisher *pubsublib.Publisher) *AlertEvents {
	return &AlertEvents{publisher: publisher}
}

// PublishAlertCreated emits an alert.created event and waits for the server ack.
func (e *AlertEvents) PublishAlertCreated(ctx context.Context, alert *models.Alert) error {
	if e == nil || e.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(alertCreatedEvent{
		ID:        alert.ID,
		Title:     alert.Title,
		Priority:  alert.Priority.String(),
		Date:      alert.Date,
		CreatedAt: alert.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encoding alert event: %w", err)
	}

	result := e.publisher.Publish(ctx, &pubsublib.Message{
		Data: payload,
		Attributes: map[string]string{
			"event":    eventAlertCreated,
			"priority": alert.Priority.String(),
		},
	})
	if _, err := result.Get(ctx); err != nil {
		return fmt.Errorf("publishing alert event: %w", err)
	}
	return nil
}
