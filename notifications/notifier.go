// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package notifications

import (
	"context"

	uuid "github.com/gofrs/uuid"
)

// Notification represents a single notification to be delivered to a user.
type Notification struct {
	ID       uuid.UUID `json:"id" db:"id"`
	UserID   uuid.UUID `json:"userId" db:"user_id"`
	Type     string    `json:"type" db:"type"`
	ActorID  uuid.UUID `json:"actorId" db:"actor_id"`
	TargetID uuid.UUID `json:"targetId" db:"target_id"`
	Title    string    `json:"title" db:"title"`
	Message  string    `json:"message" db:"message"`
}

// Notifier is the sink interactions dispatch notifications into. Delivery is
// best effort: callers must never let a Notifier failure affect the primary
// write that triggered it.
type Notifier interface {
	CreateNotification(ctx context.Context, notification *Notification) error
}

// NoopNotifier discards all notifications. Useful when the notification
// subsystem is disabled.
type NoopNotifier struct{}

// CreateNotification implements Notifier by doing nothing.
func (NoopNotifier) CreateNotification(ctx context.Context, notification *Notification) error {
	return nil
}
