package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/creostudios/studiosvc/domain"
	httpx "github.com/creostudios/studiosvc/internal/http"
	"github.com/creostudios/studiosvc/internal/http/handlers"
	"github.com/creostudios/studiosvc/internal/http/middleware"
	"github.com/creostudios/studiosvc/internal/infrastructure/auth"
	"github.com/creostudios/studiosvc/internal/infrastructure/repositories"
	"github.com/creostudios/studiosvc/internal/mocks"
	"github.com/creostudios/studiosvc/internal/services"
)

const casbinModelPath = "../../../config/casbin_model.conf"

// testEnv wires the full service stack against in-memory backends. Every
// component between the HTTP surface and storage is the real one; only the
// outbound mail leaves the process, and that is captured instead.
type testEnv struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Redis   *miniredis.Miniredis
	UserSvc domain.AuthService
	AppSvc  domain.ApplicationService

	// Codes holds the last verification code sent to each address
	Codes map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	// A shared-cache DSN keeps every pooled connection on the same
	// in-memory database; a plain :memory: DSN gives each connection
	// its own empty one
	dsn := fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(
		&repositories.DBUser{},
		&repositories.DBApplication{},
		&repositories.DBUploadedFile{},
	); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	cas, err := auth.NewCasbinService(db, casbinModelPath)
	if err != nil {
		t.Fatalf("failed to build casbin service: %v", err)
	}
	if err := services.NewPolicyService(cas.E).SeedDefaults(); err != nil {
		t.Fatalf("failed to seed policies: %v", err)
	}

	userRepo := repositories.NewUserRepository(db)
	sessionRepo := repositories.NewSessionRepository(redisClient, 7*24*time.Hour)
	appRepo := repositories.NewApplicationRepository(db)
	uploadRepo := repositories.NewUploadRepository(db)

	env := &testEnv{
		DB:    db,
		Redis: mr,
		Codes: make(map[string]string),
	}

	mailer := mocks.NewMockMailer()
	mailer.SendOTPFunc = func(to, code string, ttl time.Duration) error {
		env.Codes[to] = code
		return nil
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService("e2e-test-secret", "studiosvc-test", 15*time.Minute, 7*24*time.Hour)
	audit := mocks.NewMockAuditLogger()

	otpSvc := services.NewOTPService(mailer, redisClient, services.OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  5,
		ResendWindow: 60 * time.Second,
	})
	authSvc := services.NewAuthService(userRepo, sessionRepo, passwordSvc, tokenSvc, otpSvc, audit, 15*time.Minute, 7*24*time.Hour)
	appSvc := services.NewApplicationService(appRepo, audit)
	uploadSvc := services.NewUploadService(uploadRepo)

	env.UserSvc = authSvc
	env.AppSvc = appSvc

	authH := handlers.NewAuthHandlers(authSvc, otpSvc)
	appH := handlers.NewApplicationHandlers(appSvc, authSvc)
	uploadH := handlers.NewUploadHandlers(uploadSvc, authSvc)

	jwtMW := middleware.NewAuthMW(tokenSvc, sessionRepo)
	casbinMW := middleware.NewCasbinMW(cas.E)

	env.Router = httpx.BuildRouter(httpx.RouterConfig{}, authH, appH, uploadH, jwtMW, casbinMW)

	// Seed the studio administrator the way startup does
	hash, err := passwordSvc.Hash("AdminPass1!")
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	admin := &domain.User{
		Name:          "Studio Admin",
		Email:         "admin@creostudios.local",
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		EmailVerified: true,
	}
	if err := userRepo.Create(t.Context(), admin); err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	return env
}

// postJSON sends a JSON request through the router and returns the recorder
func (env *testEnv) request(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, req)
	return w
}

func data(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out.Data
}

func dataList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var out struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return out.Data
}

// registerAndLogin walks a fresh account through the full onboarding flow
// and returns its access and refresh tokens
func (env *testEnv) registerAndLogin(t *testing.T, name, email, password string) (string, string) {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name": name, "email": email, "password": password, "confirm_password": password,
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}

	code, ok := env.Codes[email]
	if !ok {
		t.Fatalf("no verification code sent to %s", email)
	}

	w = env.request(t, http.MethodPost, "/api/auth/verify-otp", map[string]interface{}{
		"email": email, "code": code,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("verify failed: %d %s", w.Code, w.Body.String())
	}

	w = env.request(t, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email": email, "password": password,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	d := data(t, w)
	return d["access_token"].(string), d["refresh_token"].(string)
}

func (env *testEnv) adminLogin(t *testing.T) string {
	t.Helper()

	w := env.request(t, http.MethodPost, "/api/auth/admin-login", map[string]interface{}{
		"email": "admin@creostudios.local", "password": "AdminPass1!",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	return data(t, w)["access_token"].(string)
}
