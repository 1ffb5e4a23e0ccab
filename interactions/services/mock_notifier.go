// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/betasocial/beta-api/notifications"
)

// MockNotifier is a mock implementation of notifications.Notifier for testing
type MockNotifier struct {
	mock.Mock
}

// CreateNotification mocks the CreateNotification method
func (m *MockNotifier) CreateNotification(ctx context.Context, notification *notifications.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}
