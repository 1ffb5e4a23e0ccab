// Copyright (c) 2025 Beta Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package views

import (
	"context"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/mock"
)

// MockViewRepository is a mock implementation of ViewRepository for testing
type MockViewRepository struct {
	mock.Mock
}

// IncrementViewCount mocks the IncrementViewCount method
func (m *MockViewRepository) IncrementViewCount(ctx context.Context, kind EntityKind, entityID uuid.UUID) error {
	args := m.Called(ctx, kind, entityID)
	return args.Error(0)
}
