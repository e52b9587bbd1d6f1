package mocks

import (
	"context"

	"github.com/dukex/operion-runner/pkg/models"
	"github.com/stretchr/testify/mock"
)

// MockBackend is a mock implementation of orchestrator.Backend interface.
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Run(ctx context.Context, payload *models.RunPayload) (*models.ExecutionAck, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.ExecutionAck), args.Error(1)
}

// MockNotifier is a mock implementation of orchestrator.Notifier interface.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Show(ctx context.Context, notification models.Notification) {
	m.Called(ctx, notification)
}
