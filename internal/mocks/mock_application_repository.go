package mocks

import (
	"context"
	"time"

	"github.com/creostudios/studiosvc/domain"
)

// MockApplicationRepository implements domain.ApplicationRepository interface for testing
type MockApplicationRepository struct {
	CreateFunc          func(ctx context.Context, app *domain.Application) error
	FindByIDFunc        func(ctx context.Context, id uint) (*domain.Application, error)
	ListByUserEmailFunc func(ctx context.Context, email string) ([]domain.Application, error)
	ListAllFunc         func(ctx context.Context) ([]domain.Application, error)
	UpdateStatusFunc    func(ctx context.Context, id uint, status domain.Status) error
	SaveDeliveryFunc    func(ctx context.Context, id uint, payload domain.DeliveryPayload, deliveredAt time.Time) error
}

// NewMockApplicationRepository creates a new MockApplicationRepository with default behaviors
func NewMockApplicationRepository() *MockApplicationRepository {
	return &MockApplicationRepository{}
}

// Create creates a new application
func (m *MockApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, app)
	}
	// Default behavior: success
	return nil
}

// FindByID finds an application by ID
func (m *MockApplicationRepository) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrApplicationNotFound
}

// ListByUserEmail lists applications for a user
func (m *MockApplicationRepository) ListByUserEmail(ctx context.Context, email string) ([]domain.Application, error) {
	if m.ListByUserEmailFunc != nil {
		return m.ListByUserEmailFunc(ctx, email)
	}
	// Default behavior: empty list
	return nil, nil
}

// ListAll lists every application
func (m *MockApplicationRepository) ListAll(ctx context.Context) ([]domain.Application, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	// Default behavior: empty list
	return nil, nil
}

// UpdateStatus updates the status column
func (m *MockApplicationRepository) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	// Default behavior: success
	return nil
}

// SaveDelivery saves the delivery payload and completes the application
func (m *MockApplicationRepository) SaveDelivery(ctx context.Context, id uint, payload domain.DeliveryPayload, deliveredAt time.Time) error {
	if m.SaveDeliveryFunc != nil {
		return m.SaveDeliveryFunc(ctx, id, payload, deliveredAt)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ApplicationRepository = (*MockApplicationRepository)(nil)
