package events

import (
	"context"
	"time"
)

// Event is the envelope every message published by this service uses.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Event types emitted by the service
const (
	EventRequestCreated    = "request.created"
	EventRequestAccepted   = "request.accepted"
	EventRequestRejected   = "request.rejected"
	EventRequestCompleted  = "request.completed"
	EventRequestCancelled  = "request.cancelled"
	EventVolunteerVerified = "volunteer.verified"
	EventUserDeleted       = "user.deleted"
)

const (
	// EventSource identifies this service in event envelopes
	EventSource = "volunteer-service"

	// EventVersion is the envelope schema version
	EventVersion = "1.0"
)

// Topics events are published to
const (
	TopicRequests      = "volunteer.requests"
	TopicNotifications = "volunteer.notifications"
)

// EventPublisher publishes domain events to the message broker
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event *Event) error
	Close() error
}
