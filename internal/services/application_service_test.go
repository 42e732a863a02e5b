package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/creostudios/studiosvc/domain"
	"github.com/creostudios/studiosvc/internal/mocks"
)

func createApplicationServiceForTest(t *testing.T, appRepo domain.ApplicationRepository) domain.ApplicationService {
	t.Helper()

	if appRepo == nil {
		appRepo = mocks.NewMockApplicationRepository()
	}
	return NewApplicationService(appRepo, mocks.NewMockAuditLogger())
}

func TestApplicationServiceImpl_Submit(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(app *domain.Application)
		setupMocks    func(appRepo *mocks.MockApplicationRepository)
		expectedError error
	}{
		{
			name:   "successful submission",
			mutate: func(app *domain.Application) {},
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.CreateFunc = func(ctx context.Context, app *domain.Application) error {
					app.ID = 42
					return nil
				}
			},
			expectedError: nil,
		},
		{
			name: "missing client name",
			mutate: func(app *domain.Application) {
				app.ClientName = ""
			},
			expectedError: domain.ErrMissingFields,
		},
		{
			name: "unknown service type",
			mutate: func(app *domain.Application) {
				app.ServiceType = "Logo Design"
			},
			expectedError: domain.ErrInvalidServiceType,
		},
		{
			name: "deadline below minimum",
			mutate: func(app *domain.Application) {
				app.Days = 2
			},
			expectedError: domain.ErrDurationTooShort,
		},
		{
			name:   "repository failure",
			mutate: func(app *domain.Application) {},
			setupMocks: func(appRepo *mocks.MockApplicationRepository) {
				appRepo.CreateFunc = func(ctx context.Context, app *domain.Application) error {
					return errors.New("database error")
				}
			},
			expectedError: errors.New("failed to create application"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appRepo := mocks.NewMockApplicationRepository()
			if tt.setupMocks != nil {
				tt.setupMocks(appRepo)
			}

			svc := createApplicationServiceForTest(t, appRepo)
			ctx := createTestContext(t)

			app := createPendingApplication(t)
			app.ID = 0
			// Submissions must not carry caller-chosen status or delivery
			app.Status = domain.StatusCompleted
			app.Delivery = domain.DeliveryPayload{Notes: "smuggled"}
			tt.mutate(app)

			err := svc.Submit(ctx, app)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError.Error()) {
					t.Errorf("expected error containing '%s', got '%s'", tt.expectedError.Error(), err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if app.Status != domain.StatusPending {
				t.Errorf("expected status pending after submit, got %s", app.Status)
			}
			if !app.Delivery.Empty() {
				t.Error("expected delivery payload to be cleared on submit")
			}
			if app.ID == 0 {
				t.Error("expected repository-assigned ID")
			}
		})
	}
}

func TestApplicationServiceImpl_Transition(t *testing.T) {
	tests := []struct {
		name          string
		current       domain.Status
		target        domain.Status
		findErr       error
		updateErr     error
		expectedError error
	}{
		{
			name:    "pending to accepted",
			current: domain.StatusPending,
			target:  domain.StatusAccepted,
		},
		{
			name:    "pending to rejected",
			current: domain.StatusPending,
			target:  domain.StatusRejected,
		},
		{
			name:    "accepted to completed",
			current: domain.StatusAccepted,
			target:  domain.StatusCompleted,
		},
		{
			name:          "pending straight to completed",
			current:       domain.StatusPending,
			target:        domain.StatusCompleted,
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "rejected is terminal",
			current:       domain.StatusRejected,
			target:        domain.StatusAccepted,
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "completed is terminal",
			current:       domain.StatusCompleted,
			target:        domain.StatusPending,
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "unknown target status",
			current:       domain.StatusPending,
			target:        domain.Status("archived"),
			expectedError: domain.ErrUnknownStatus,
		},
		{
			name:          "application not found",
			current:       domain.StatusPending,
			target:        domain.StatusAccepted,
			findErr:       domain.ErrApplicationNotFound,
			expectedError: domain.ErrApplicationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appRepo := mocks.NewMockApplicationRepository()
			updated := false
			appRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Application, error) {
				if tt.findErr != nil {
					return nil, tt.findErr
				}
				app := createPendingApplication(t)
				app.Status = tt.current
				return app, nil
			}
			appRepo.UpdateStatusFunc = func(ctx context.Context, id uint, status domain.Status) error {
				updated = true
				return tt.updateErr
			}

			svc := createApplicationServiceForTest(t, appRepo)
			ctx := createTestContext(t)

			app, err := svc.Transition(ctx, 1, tt.target)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if app != nil {
					t.Error("expected nil application on failed transition")
				}
				if errors.Is(tt.expectedError, domain.ErrInvalidTransition) && updated {
					t.Error("illegal transition must not touch the record")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if app.Status != tt.target {
				t.Errorf("expected status %s after transition, got %s", tt.target, app.Status)
			}
			if !updated {
				t.Error("expected UpdateStatus to be called")
			}
		})
	}
}

func TestApplicationServiceImpl_Deliver(t *testing.T) {
	payload := domain.DeliveryPayload{
		RepoURL:     "https://github.com/creostudios/site",
		DeployedURL: "https://client.example.com",
		Notes:       "Credentials sent separately",
	}

	tests := []struct {
		name          string
		current       domain.Status
		payload       domain.DeliveryPayload
		findErr       error
		saveErr       error
		expectedError error
	}{
		{
			name:    "deliver from accepted",
			current: domain.StatusAccepted,
			payload: payload,
		},
		{
			name:          "empty payload rejected",
			current:       domain.StatusAccepted,
			payload:       domain.DeliveryPayload{},
			expectedError: domain.ErrEmptyDelivery,
		},
		{
			name:          "deliver from pending rejected",
			current:       domain.StatusPending,
			payload:       payload,
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "deliver twice rejected",
			current:       domain.StatusCompleted,
			payload:       payload,
			expectedError: domain.ErrInvalidTransition,
		},
		{
			name:          "application not found",
			current:       domain.StatusAccepted,
			payload:       payload,
			findErr:       domain.ErrApplicationNotFound,
			expectedError: domain.ErrApplicationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appRepo := mocks.NewMockApplicationRepository()
			var savedAt time.Time
			appRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Application, error) {
				if tt.findErr != nil {
					return nil, tt.findErr
				}
				app := createPendingApplication(t)
				app.Status = tt.current
				return app, nil
			}
			appRepo.SaveDeliveryFunc = func(ctx context.Context, id uint, p domain.DeliveryPayload, deliveredAt time.Time) error {
				savedAt = deliveredAt
				return tt.saveErr
			}

			svc := createApplicationServiceForTest(t, appRepo)
			ctx := createTestContext(t)

			app, err := svc.Deliver(ctx, 1, tt.payload)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if app != nil {
					t.Error("expected nil application on failed delivery")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if app.Status != domain.StatusCompleted {
				t.Errorf("expected completed status, got %s", app.Status)
			}
			if app.Delivery != tt.payload {
				t.Errorf("expected delivery payload %+v, got %+v", tt.payload, app.Delivery)
			}
			if app.DeliveredAt == nil || !app.DeliveredAt.Equal(savedAt) {
				t.Error("expected DeliveredAt to match the saved timestamp")
			}
		})
	}
}

func TestApplicationServiceImpl_Listing(t *testing.T) {
	own := []domain.Application{*createPendingApplication(t)}
	all := []domain.Application{*createPendingApplication(t), *createPendingApplication(t)}

	appRepo := mocks.NewMockApplicationRepository()
	appRepo.ListByUserEmailFunc = func(ctx context.Context, email string) ([]domain.Application, error) {
		if email == "test@example.com" {
			return own, nil
		}
		return nil, nil
	}
	appRepo.ListAllFunc = func(ctx context.Context) ([]domain.Application, error) {
		return all, nil
	}

	svc := createApplicationServiceForTest(t, appRepo)
	ctx := createTestContext(t)

	got, err := svc.ListOwn(ctx, "test@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 application for owner, got %d", len(got))
	}

	got, err = svc.ListOwn(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no applications for stranger, got %d", len(got))
	}

	got, err = svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 applications in admin listing, got %d", len(got))
	}
}
