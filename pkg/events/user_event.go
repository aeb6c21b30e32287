package events

import "time"

// Event types published on the user lifecycle queue.
const (
	UserCreated = "user.created"
	UserUpdated = "user.updated"
	UserDeleted = "user.deleted"
)

// UserEvent is the JSON payload put on the RabbitMQ queue after a
// successful mutation. Consumers (cmd/event_worker) fan it out to
// side effects such as the welcome email.
type UserEvent struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
