package e2e

import (
	"net/http"
	"testing"
	"time"
)

func TestRegistrationFlow(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com", "password": "Sup3rSecret!", "confirm_password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	code := env.Codes["maria@example.com"]
	if len(code) != 6 {
		t.Fatalf("expected a 6 digit code by mail, got %q", code)
	}

	// Login before verification is refused
	w = env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email": "maria@example.com", "password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before verification, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": "maria@example.com", "code": code,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on verify, got %d: %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email": "maria@example.com", "password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d: %s", w.Code, w.Body.String())
	}

	d := data(t, w)
	if d["access_token"] == nil || d["refresh_token"] == nil {
		t.Error("expected a token pair after login")
	}
	user := d["user"].(map[string]interface{})
	if user["email"] != "maria@example.com" {
		t.Errorf("expected profile email in login response, got %v", user["email"])
	}
}

func TestRegistrationDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com", "password": "Sup3rSecret!", "confirm_password": "Sup3rSecret!",
	}
	if w := env.request(t, http.MethodPost, "/api/auth/register", body, ""); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	if w := env.request(t, http.MethodPost, "/api/auth/register", body, ""); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate, got %d", w.Code)
	}
}

func TestRegistrationWeakPassword(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com", "password": "weak", "confirm_password": "weak",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for weak password, got %d", w.Code)
	}
}

func TestRegistrationPasswordMismatch(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com",
		"password": "Sup3rSecret!", "confirm_password": "Different1!",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mismatched passwords, got %d: %s", w.Code, w.Body.String())
	}
	if env.Codes["maria@example.com"] != "" {
		t.Error("no verification mail should go out on a mismatch")
	}
}

func TestRegistrationWrongCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com", "password": "Sup3rSecret!", "confirm_password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": "maria@example.com", "code": "000000",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong code, got %d: %s", w.Code, w.Body.String())
	}

	// The right code still works afterwards
	w = env.request(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": "maria@example.com", "code": env.Codes["maria@example.com"],
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with correct code, got %d", w.Code)
	}
}

func TestResendThrottled(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": "Maria Silva", "email": "maria@example.com", "password": "Sup3rSecret!", "confirm_password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	// Immediately asking for another code hits the resend window
	w = env.request(t, http.MethodPost, "/api/auth/resend-otp", map[string]interface{}{
		"email": "maria@example.com",
	}, "")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 inside resend window, got %d", w.Code)
	}

	env.Redis.FastForward(61 * time.Second)

	w = env.request(t, http.MethodPost, "/api/auth/resend-otp", map[string]interface{}{
		"email": "maria@example.com",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after resend window, got %d: %s", w.Code, w.Body.String())
	}
}
