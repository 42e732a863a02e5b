package mocks

import (
	"context"

	"github.com/creostudios/studiosvc/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, name, email, password string) (*domain.User, error)
	VerifyEmailFunc    func(ctx context.Context, email, code string) error
	ResendOTPFunc      func(ctx context.Context, email string) error
	LoginFunc          func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	AdminLoginFunc     func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshTokenFunc   func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	LogoutFunc         func(ctx context.Context, sessionID string) error
	GetUserProfileFunc func(ctx context.Context, userID uint) (*domain.User, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &domain.User{ID: 1, Name: name, Email: email, Role: domain.RoleUser}, nil
}

func (m *MockAuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return defaultAuthResult(email, domain.RoleUser), nil
}

func (m *MockAuthService) AdminLogin(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.AdminLoginFunc != nil {
		return m.AdminLoginFunc(ctx, email, password)
	}
	return defaultAuthResult(email, domain.RoleAdmin), nil
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshTokenFunc != nil {
		return m.RefreshTokenFunc(ctx, refreshToken)
	}
	return defaultAuthResult("user@example.com", domain.RoleUser), nil
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockAuthService) GetUserProfile(ctx context.Context, userID uint) (*domain.User, error) {
	if m.GetUserProfileFunc != nil {
		return m.GetUserProfileFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

func defaultAuthResult(email, role string) *domain.AuthResult {
	return &domain.AuthResult{
		User:         &domain.User{ID: 1, Email: email, Role: role, EmailVerified: true},
		AccessToken:  "access_token",
		RefreshToken: "refresh_token",
		SessionID:    "sess_test",
		ExpiresIn:    900,
	}
}

// MockApplicationService implements domain.ApplicationService interface for testing
type MockApplicationService struct {
	SubmitFunc     func(ctx context.Context, app *domain.Application) error
	ListOwnFunc    func(ctx context.Context, email string) ([]domain.Application, error)
	ListAllFunc    func(ctx context.Context) ([]domain.Application, error)
	TransitionFunc func(ctx context.Context, id uint, target domain.Status) (*domain.Application, error)
	DeliverFunc    func(ctx context.Context, id uint, payload domain.DeliveryPayload) (*domain.Application, error)
}

// NewMockApplicationService creates a new MockApplicationService with default behaviors
func NewMockApplicationService() *MockApplicationService {
	return &MockApplicationService{}
}

func (m *MockApplicationService) Submit(ctx context.Context, app *domain.Application) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, app)
	}
	if app.ID == 0 {
		app.ID = 1
	}
	app.Status = domain.StatusPending
	return nil
}

func (m *MockApplicationService) ListOwn(ctx context.Context, email string) ([]domain.Application, error) {
	if m.ListOwnFunc != nil {
		return m.ListOwnFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockApplicationService) ListAll(ctx context.Context) ([]domain.Application, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockApplicationService) Transition(ctx context.Context, id uint, target domain.Status) (*domain.Application, error) {
	if m.TransitionFunc != nil {
		return m.TransitionFunc(ctx, id, target)
	}
	return nil, domain.ErrApplicationNotFound
}

func (m *MockApplicationService) Deliver(ctx context.Context, id uint, payload domain.DeliveryPayload) (*domain.Application, error) {
	if m.DeliverFunc != nil {
		return m.DeliverFunc(ctx, id, payload)
	}
	return nil, domain.ErrApplicationNotFound
}

// MockUploadService implements domain.UploadService interface for testing
type MockUploadService struct {
	StoreFunc func(ctx context.Context, uploadedBy, filename string, data []byte) (*domain.UploadedFile, error)
	FetchFunc func(ctx context.Context, id uint) (*domain.UploadedFile, error)
	ListFunc  func(ctx context.Context) ([]domain.UploadedFile, error)
}

// NewMockUploadService creates a new MockUploadService with default behaviors
func NewMockUploadService() *MockUploadService {
	return &MockUploadService{}
}

func (m *MockUploadService) Store(ctx context.Context, uploadedBy, filename string, data []byte) (*domain.UploadedFile, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, uploadedBy, filename, data)
	}
	return &domain.UploadedFile{ID: 1, OriginalFilename: filename, UploadedBy: uploadedBy, Size: int64(len(data))}, nil
}

func (m *MockUploadService) Fetch(ctx context.Context, id uint) (*domain.UploadedFile, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, id)
	}
	return nil, domain.ErrFileNotFound
}

func (m *MockUploadService) List(ctx context.Context) ([]domain.UploadedFile, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// Compile-time interface compliance verification
var (
	_ domain.AuthService        = (*MockAuthService)(nil)
	_ domain.ApplicationService = (*MockApplicationService)(nil)
	_ domain.UploadService      = (*MockUploadService)(nil)
)
