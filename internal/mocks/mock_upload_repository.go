package mocks

import (
	"context"

	"github.com/creostudios/studiosvc/domain"
)

// MockUploadRepository implements domain.UploadRepository interface for testing
type MockUploadRepository struct {
	CreateFunc   func(ctx context.Context, file *domain.UploadedFile) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.UploadedFile, error)
	ListAllFunc  func(ctx context.Context) ([]domain.UploadedFile, error)
}

// NewMockUploadRepository creates a new MockUploadRepository with default behaviors
func NewMockUploadRepository() *MockUploadRepository {
	return &MockUploadRepository{}
}

// Create creates a stored file record
func (m *MockUploadRepository) Create(ctx context.Context, file *domain.UploadedFile) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, file)
	}
	// Default behavior: successful creation
	if file.ID == 0 {
		file.ID = 1
	}
	return nil
}

// FindByID finds a stored file by ID
func (m *MockUploadRepository) FindByID(ctx context.Context, id uint) (*domain.UploadedFile, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: file not found
	return nil, domain.ErrFileNotFound
}

// ListAll lists stored file metadata
func (m *MockUploadRepository) ListAll(ctx context.Context) ([]domain.UploadedFile, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	// Default behavior: no files
	return nil, nil
}

// Compile-time interface compliance verification
var _ domain.UploadRepository = (*MockUploadRepository)(nil)
