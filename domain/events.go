package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Email verification events
	EmailActivationEvent AuditEventType = "EMAIL_ACTIVATED"
	OTPRequestEvent      AuditEventType = "OTP_REQUESTED"
	OTPVerifyFailEvent   AuditEventType = "OTP_VERIFICATION_FAILED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"

	// Workflow events
	ApplicationSubmittedEvent AuditEventType = "APPLICATION_SUBMITTED"
	StatusTransitionEvent     AuditEventType = "APPLICATION_STATUS_CHANGED"
	ApplicationDeliveredEvent AuditEventType = "APPLICATION_DELIVERED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUser sets the acting user
func (e *AuditEvent) WithUser(id uint, email string) *AuditEvent {
	e.UserID = id
	e.Email = email
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
