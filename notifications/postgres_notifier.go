// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/betasocial/beta-api/internal/database/postgres"
)

// postgresNotifier implements Notifier by inserting notification rows.
type postgresNotifier struct {
	client *postgres.Client
}

// NewPostgresNotifier creates a Notifier backed by the notifications table.
func NewPostgresNotifier(client *postgres.Client) Notifier {
	return &postgresNotifier{client: client}
}

// CreateNotification inserts a notification row for the recipient.
func (n *postgresNotifier) CreateNotification(ctx context.Context, notification *Notification) error {
	if notification.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return fmt.Errorf("failed to generate notification ID: %w", err)
		}
		notification.ID = id
	}

	query := `
		INSERT INTO notifications (id, user_id, type, actor_id, target_id, title, message, is_read, created_at)
		VALUES (:id, :user_id, :type, :actor_id, :target_id, :title, :message, false, :created_at)
	`

	insertData := struct {
		Notification
		CreatedAt int64 `db:"created_at"`
	}{
		Notification: *notification,
		CreatedAt:    time.Now().Unix(),
	}

	if _, err := sqlx.NamedExecContext(ctx, n.client.DB(), query, insertData); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}
