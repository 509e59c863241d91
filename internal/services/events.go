package services

import (
	"log/slog"
	"time"
)

// Routing keys of the events published on mutations.
const (
	EventUserRegistered = "user.registered"
	EventMealCreated    = "meal.created"
	EventMealUpdated    = "meal.updated"
	EventMealDeleted    = "meal.deleted"
)

// Event is the payload published for every mutation.
type Event struct {
	Event  string    `json:"event"`
	UserID string    `json:"userId"`
	MealID string    `json:"mealId,omitempty"`
	At     time.Time `json:"at"`
}

// EventPublisher delivers events to a message broker.
type EventPublisher interface {
	PublishEvent(routingKey string, payload interface{}) error
}

// publish is best effort: the store stays the source of truth, so a broker
// failure is logged and never returned.
func publish(events EventPublisher, routingKey, userID, mealID string) {
	if events == nil {
		return
	}
	ev := Event{Event: routingKey, UserID: userID, MealID: mealID, At: time.Now().UTC()}
	if err := events.PublishEvent(routingKey, ev); err != nil {
		slog.Warn("failed to publish event", "event", routingKey, "userId", userID, "mealId", mealID, "error", err)
	}
}
