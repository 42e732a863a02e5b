package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/creostudios/studiosvc/domain"
)

// ApplicationHandlers handles project application HTTP requests
type ApplicationHandlers struct {
	appSvc  domain.ApplicationService
	authSvc domain.AuthService
}

// NewApplicationHandlers creates new application handlers
func NewApplicationHandlers(appSvc domain.ApplicationService, authSvc domain.AuthService) *ApplicationHandlers {
	return &ApplicationHandlers{
		appSvc:  appSvc,
		authSvc: authSvc,
	}
}

// ApplyRequest represents a project application submission
type ApplyRequest struct {
	Name               string `json:"name" binding:"required"`
	City               string `json:"city" binding:"required"`
	ServiceType        string `json:"service_type" binding:"required"`
	ProjectDescription string `json:"project_description"`
	ReferenceImages    string `json:"reference_images"`
	Days               int    `json:"days" binding:"required"`
}

// StatusUpdateRequest represents a triage decision on an application
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// DeliverRequest represents the final handoff for an application
type DeliverRequest struct {
	FileURL     string `json:"file_url"`
	PackageURL  string `json:"package_url"`
	RepoURL     string `json:"repo_url"`
	DeployedURL string `json:"deployed_url"`
	Notes       string `json:"notes"`
}

// currentUserEmail resolves the authenticated user's email from the request
// context. The token carries only the user ID, so this costs one lookup.
func (h *ApplicationHandlers) currentUserEmail(c *gin.Context) (string, bool) {
	userIDStr, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return "", false
	}

	userID, err := strconv.ParseUint(userIDStr.(string), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return "", false
	}

	user, err := h.authSvc.GetUserProfile(c.Request.Context(), uint(userID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return "", false
	}

	return user.Email, true
}

// Apply handles application submission (requires authentication)
func (h *ApplicationHandlers) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email, ok := h.currentUserEmail(c)
	if !ok {
		return
	}

	app := &domain.Application{
		ClientName:         req.Name,
		City:               req.City,
		ServiceType:        req.ServiceType,
		ProjectDescription: req.ProjectDescription,
		ReferenceImages:    req.ReferenceImages,
		Days:               req.Days,
		UserEmail:          email,
	}

	if err := h.appSvc.Submit(c.Request.Context(), app); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, city and service type are required"})
		case errors.Is(err, domain.ErrInvalidServiceType):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown service type"})
		case errors.Is(err, domain.ErrDurationTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project duration must be at least 3 days"})
		case errors.Is(err, domain.ErrDescriptionTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project description exceeds the 10000 word limit"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message":        "Application submitted successfully",
			"application_id": app.ID,
			"status":         app.Status,
		},
	})
}

// List handles listing the caller's own applications (requires authentication)
func (h *ApplicationHandlers) List(c *gin.Context) {
	email, ok := h.currentUserEmail(c)
	if !ok {
		return
	}

	apps, err := h.appSvc.ListOwn(c.Request.Context(), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applicationsJSON(apps)})
}

// ListAll handles the admin listing of every application
func (h *ApplicationHandlers) ListAll(c *gin.Context) {
	apps, err := h.appSvc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applicationsJSON(apps)})
}

// UpdateStatus handles the admin triage decision on an application
func (h *ApplicationHandlers) UpdateStatus(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := domain.ParseStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	app, err := h.appSvc.Transition(c.Request.Context(), id, target)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUnknownStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applicationJSON(*app)})
}

// Deliver handles the admin delivery of a completed application
func (h *ApplicationHandlers) Deliver(c *gin.Context) {
	id, ok := applicationID(c)
	if !ok {
		return
	}

	var req DeliverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payload := domain.DeliveryPayload{
		FileURL:     req.FileURL,
		PackageURL:  req.PackageURL,
		RepoURL:     req.RepoURL,
		DeployedURL: req.DeployedURL,
		Notes:       req.Notes,
	}

	app, err := h.appSvc.Deliver(c.Request.Context(), id, payload)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrApplicationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		case errors.Is(err, domain.ErrEmptyDelivery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery payload is empty"})
		case errors.Is(err, domain.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deliver application"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": applicationJSON(*app)})
}

func applicationID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID"})
		return 0, false
	}
	return uint(id), true
}

func applicationJSON(app domain.Application) gin.H {
	out := gin.H{
		"id":                  app.ID,
		"name":                app.ClientName,
		"city":                app.City,
		"service_type":        app.ServiceType,
		"project_description": app.ProjectDescription,
		"reference_images":    app.ReferenceImages,
		"days":                app.Days,
		"user_email":          app.UserEmail,
		"status":              app.Status,
		"created_at":          app.CreatedAt,
	}
	if app.Status == domain.StatusCompleted {
		out["delivery"] = gin.H{
			"file_url":     app.Delivery.FileURL,
			"package_url":  app.Delivery.PackageURL,
			"repo_url":     app.Delivery.RepoURL,
			"deployed_url": app.Delivery.DeployedURL,
			"notes":        app.Delivery.Notes,
		}
		out["delivered_at"] = app.DeliveredAt
	}
	return out
}

func applicationsJSON(apps []domain.Application) []gin.H {
	out := make([]gin.H, 0, len(apps))
	for _, app := range apps {
		out = append(out, applicationJSON(app))
	}
	return out
}
