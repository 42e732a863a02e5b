package domain

import (
	"context"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// ApplicationRepository defines application data access operations
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	FindByID(ctx context.Context, id uint) (*Application, error)
	ListByUserEmail(ctx context.Context, email string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	UpdateStatus(ctx context.Context, id uint, status Status) error
	SaveDelivery(ctx context.Context, id uint, payload DeliveryPayload, deliveredAt time.Time) error
}

// UploadRepository defines stored-file data access operations
type UploadRepository interface {
	Create(ctx context.Context, file *UploadedFile) error
	FindByID(ctx context.Context, id uint) (*UploadedFile, error)
	ListAll(ctx context.Context) ([]UploadedFile, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	VerifyEmail(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	AdminLogin(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetUserProfile(ctx context.Context, userID uint) (*User, error)
}

// OTPService defines verification-code operations
type OTPService interface {
	Generate(ctx context.Context, email string, userID uint) (*OTPRequest, error)
	Verify(ctx context.Context, email, code string) (bool, error)
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// ApplicationService defines the request/triage/delivery workflow
type ApplicationService interface {
	Submit(ctx context.Context, app *Application) error
	ListOwn(ctx context.Context, email string) ([]Application, error)
	ListAll(ctx context.Context) ([]Application, error)
	Transition(ctx context.Context, id uint, target Status) (*Application, error)
	Deliver(ctx context.Context, id uint, payload DeliveryPayload) (*Application, error)
}

// UploadService defines delivery-artifact storage operations
type UploadService interface {
	Store(ctx context.Context, uploadedBy, filename string, data []byte) (*UploadedFile, error)
	Fetch(ctx context.Context, id uint) (*UploadedFile, error)
	List(ctx context.Context) ([]UploadedFile, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	ValidateStrength(password string) error
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID uint, role string, sessionID string) (string, error)
	GenerateRefreshToken(userID uint, role string, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// Mailer defines outbound email operations
type Mailer interface {
	SendOTP(to, code string, ttl time.Duration) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	SeedDefaults() error
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// Token uses carried in the "use" claim
const (
	TokenUseAccess  = "access"
	TokenUseRefresh = "refresh"
)

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	TokenUse  string `json:"use"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// AuditLogger records security and workflow events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}
