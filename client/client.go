package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/creostudios/studiosvc/domain"
)

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Application mirrors the server's application resource
type Application struct {
	ID                 uint       `json:"id"`
	Name               string     `json:"name"`
	City               string     `json:"city"`
	ServiceType        string     `json:"service_type"`
	ProjectDescription string     `json:"project_description"`
	ReferenceImages    string     `json:"reference_images"`
	Days               int        `json:"days"`
	UserEmail          string     `json:"user_email"`
	Status             string     `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	DeliveredAt        *time.Time `json:"delivered_at,omitempty"`
	Delivery           *Delivery  `json:"delivery,omitempty"`
}

// Delivery mirrors the final handoff payload
type Delivery struct {
	FileURL     string `json:"file_url"`
	PackageURL  string `json:"package_url"`
	RepoURL     string `json:"repo_url"`
	DeployedURL string `json:"deployed_url"`
	Notes       string `json:"notes"`
}

// AvailableActions projects the statuses an application can move to next.
// The server still enforces the workflow; this only drives what to offer.
func (a Application) AvailableActions() []domain.Status {
	return domain.Status(a.Status).NextStatuses()
}

// ApplyInput is a project application submission
type ApplyInput struct {
	Name               string `json:"name"`
	City               string `json:"city"`
	ServiceType        string `json:"service_type"`
	ProjectDescription string `json:"project_description"`
	ReferenceImages    string `json:"reference_images"`
	Days               int    `json:"days"`
}

// Validate runs the same submission checks the server applies, so obvious
// mistakes fail before the network.
func (in ApplyInput) Validate() error {
	app := domain.Application{
		ClientName:         in.Name,
		City:               in.City,
		ServiceType:        in.ServiceType,
		ProjectDescription: in.ProjectDescription,
		Days:               in.Days,
	}
	return app.Validate()
}

// Client is a typed client for the Creo Studios API
type Client struct {
	baseURL string
	store   SessionStore
	httpc   *http.Client

	// listGen drops stale application-list responses that finish after a
	// newer request has already been issued
	mu      sync.Mutex
	listGen uint64
}

// New creates a client for the API at baseURL. Credentials live in store;
// pass nil for a fresh in-memory store.
func New(baseURL string, store SessionStore) *Client {
	if store == nil {
		store = NewMemoryStore()
	}
	baseURL = strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL: baseURL,
		store:   store,
		httpc: &http.Client{
			Transport: NewTransport(nil, store, baseURL+"/api/auth/refresh"),
		},
	}
}

// Store exposes the session store backing this client
func (c *Client) Store() SessionStore { return c.store }

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type authData struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresIn    int64   `json:"expires_in"`
	User         Profile `json:"user"`
}

// Register creates an account. A verification code goes out by email;
// VerifyEmail must succeed before Login works. A password mismatch fails
// before any request is made.
func (c *Client) Register(ctx context.Context, name, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	body := map[string]string{
		"name":             name,
		"email":            email,
		"password":         password,
		"confirm_password": confirmPassword,
	}
	return c.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

// VerifyEmail confirms the emailed code
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	body := map[string]string{"email": email, "code": code}
	return c.do(ctx, http.MethodPost, "/api/auth/verify-otp", body, nil)
}

// ResendCode requests a fresh verification code
func (c *Client) ResendCode(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/resend-otp", body, nil)
}

// Login signs in and stores the returned credentials
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.login(ctx, "/api/auth/login", email, password)
}

// AdminLogin signs in to an administrator account
func (c *Client) AdminLogin(ctx context.Context, email, password string) error {
	return c.login(ctx, "/api/auth/admin-login", email, password)
}

func (c *Client) login(ctx context.Context, path, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Data authData `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return err
	}

	c.store.SetAccessToken(out.Data.AccessToken)
	c.store.SetRefreshToken(out.Data.RefreshToken)
	profile := out.Data.User
	c.store.SetProfile(&profile)
	return nil
}

// Logout ends the server session and clears local credentials
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
	c.store.Clear()
	return err
}

// Me fetches the signed-in user's profile
func (c *Client) Me(ctx context.Context) (*Profile, error) {
	var out struct {
		Data Profile `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Apply submits a project application
func (c *Client) Apply(ctx context.Context, in ApplyInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var out struct {
		Data struct {
			ApplicationID uint `json:"application_id"`
		} `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/apply", in, &out); err != nil {
		return 0, err
	}
	return out.Data.ApplicationID, nil
}

// Applications lists the caller's applications, newest first. A response
// that arrives after a later call has started is discarded and reported
// as stale, so the freshest listing always wins.
func (c *Client) Applications(ctx context.Context) ([]Application, error) {
	return c.fetchApplications(ctx, "/api/applications")
}

// AllApplications lists every application (admin only)
func (c *Client) AllApplications(ctx context.Context) ([]Application, error) {
	return c.fetchApplications(ctx, "/api/applications/all")
}

// ErrStaleResponse marks a listing superseded by a newer request
var ErrStaleResponse = fmt.Errorf("stale response: a newer listing was requested")

func (c *Client) fetchApplications(ctx context.Context, path string) ([]Application, error) {
	c.mu.Lock()
	c.listGen++
	gen := c.listGen
	c.mu.Unlock()

	var out struct {
		Data []Application `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}

	c.mu.Lock()
	stale := gen != c.listGen
	c.mu.Unlock()
	if stale {
		return nil, ErrStaleResponse
	}
	return out.Data, nil
}

// SetStatus moves an application to target (admin only)
func (c *Client) SetStatus(ctx context.Context, id uint, target domain.Status) (*Application, error) {
	body := map[string]string{"status": string(target)}
	var out struct {
		Data Application `json:"data"`
	}
	path := fmt.Sprintf("/api/applications/%d/status", id)
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Deliver completes an accepted application with the final handoff (admin only)
func (c *Client) Deliver(ctx context.Context, id uint, d Delivery) (*Application, error) {
	var out struct {
		Data Application `json:"data"`
	}
	path := fmt.Sprintf("/api/applications/%d/deliver", id)
	if err := c.do(ctx, http.MethodPut, path, d, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}
