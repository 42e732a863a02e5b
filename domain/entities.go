package domain

import (
	"strings"
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered client or administrator
type User struct {
	ID            uint
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin reports whether the user holds the administrator role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// OTPRequest represents an email verification code in flight
type OTPRequest struct {
	Email     string
	Code      string
	UserID    uint
	ExpiresAt time.Time
	Attempts  int
}

// Session represents a user session
type Session struct {
	ID        string
	UserID    uint
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Service categories offered by the studio
const (
	ServiceVideoEditing    = "Video Editing"
	ServicePosterDesign    = "Poster Design"
	ServiceWebsiteCreation = "Website Creation"
	ServiceAppDevelopment  = "App Development"
)

// ServiceTypes lists every service category a client may request
var ServiceTypes = []string{
	ServiceVideoEditing,
	ServicePosterDesign,
	ServiceWebsiteCreation,
	ServiceAppDevelopment,
}

// ValidServiceType reports whether s is one of the offered categories
func ValidServiceType(s string) bool {
	for _, t := range ServiceTypes {
		if s == t {
			return true
		}
	}
	return false
}

// Submission limits
const (
	MinProjectDays      = 3
	MaxDescriptionWords = 10000
)

// Application represents a client project request
type Application struct {
	ID                 uint
	ClientName         string
	City               string
	ServiceType        string
	ProjectDescription string
	ReferenceImages    string
	Days               int
	UserEmail          string
	Status             Status
	CreatedAt          time.Time
	Delivery           DeliveryPayload
	DeliveredAt        *time.Time
}

// Validate checks the submission constraints that hold regardless of caller
func (a *Application) Validate() error {
	if a.ClientName == "" || a.City == "" || a.ServiceType == "" {
		return ErrMissingFields
	}
	if !ValidServiceType(a.ServiceType) {
		return ErrInvalidServiceType
	}
	if a.Days < MinProjectDays {
		return ErrDurationTooShort
	}
	if CountWords(a.ProjectDescription) > MaxDescriptionWords {
		return ErrDescriptionTooLong
	}
	return nil
}

// DeliveryPayload carries the final handoff for a completed application.
// Any combination of fields may be set; an empty payload is rejected.
type DeliveryPayload struct {
	FileURL     string
	PackageURL  string
	RepoURL     string
	DeployedURL string
	Notes       string
}

// Empty reports whether no delivery content was provided
func (d DeliveryPayload) Empty() bool {
	return d.FileURL == "" && d.PackageURL == "" && d.RepoURL == "" &&
		d.DeployedURL == "" && d.Notes == ""
}

// CountWords returns the number of whitespace-separated words in s
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// UploadedFile represents a delivery artifact stored in the database
type UploadedFile struct {
	ID               uint
	Filename         string
	OriginalFilename string
	FileType         string
	MimeType         string
	Data             []byte
	Size             int64
	UploadedBy       string
	CreatedAt        time.Time
}
