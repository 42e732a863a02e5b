package e2e

import (
	"net/http"
	"testing"
)

func TestProtectedRouteRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	if w := env.request(t, http.MethodGet, "/api/auth/me", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w := env.request(t, http.MethodGet, "/api/auth/me", nil, "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", w.Code)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	w := env.request(t, http.MethodGet, "/api/auth/me", nil, access)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	d := data(t, w)
	if d["email"] != "maria@example.com" {
		t.Errorf("expected own profile, got %v", d["email"])
	}
	if d["role"] != "user" {
		t.Errorf("expected user role, got %v", d["role"])
	}
}

func TestRefreshFlow(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	// The refresh token travels as the bearer credential
	w := env.request(t, http.MethodPost, "/api/auth/refresh", nil, refresh)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on refresh, got %d: %s", w.Code, w.Body.String())
	}
	d := data(t, w)
	newAccess, _ := d["access_token"].(string)
	if newAccess == "" {
		t.Fatal("expected a fresh access token")
	}
	if _, present := d["refresh_token"]; present {
		t.Error("refresh must not mint a new refresh token")
	}

	// The fresh access token works on protected routes
	if w := env.request(t, http.MethodGet, "/api/auth/me", nil, newAccess); w.Code != http.StatusOK {
		t.Errorf("expected fresh token to be accepted, got %d", w.Code)
	}
}

func TestAccessTokenCannotRefresh(t *testing.T) {
	env := newTestEnv(t)
	access, _ := env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	w := env.request(t, http.MethodPost, "/api/auth/refresh", nil, access)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 refreshing with an access token, got %d", w.Code)
	}
}

func TestRefreshTokenCannotAccess(t *testing.T) {
	env := newTestEnv(t)
	_, refresh := env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	w := env.request(t, http.MethodGet, "/api/auth/me", nil, refresh)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 using a refresh token for access, got %d", w.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	access, refresh := env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	if w := env.request(t, http.MethodPost, "/api/auth/logout", nil, access); w.Code != http.StatusOK {
		t.Fatalf("expected 200 on logout, got %d", w.Code)
	}

	// The access token dies with the session even though it has not expired
	if w := env.request(t, http.MethodGet, "/api/auth/me", nil, access); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 after logout, got %d", w.Code)
	}
	// And the refresh token is just as dead
	if w := env.request(t, http.MethodPost, "/api/auth/refresh", nil, refresh); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 refreshing after logout, got %d", w.Code)
	}
}

func TestAdminLoginRejectsClients(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "Maria Silva", "maria@example.com", "Sup3rSecret!")

	// A verified client account with the right password is still not an admin
	w := env.request(t, http.MethodPost, "/api/auth/admin-login", map[string]interface{}{
		"email": "maria@example.com", "password": "Sup3rSecret!",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for non-admin on admin login, got %d", w.Code)
	}
}
