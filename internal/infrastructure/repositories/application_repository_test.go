package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/creostudios/studiosvc/domain"
)

func seedApplication(t *testing.T, db *gorm.DB, email string, status domain.Status, createdAt time.Time) uint {
	t.Helper()

	app := &DBApplication{
		ClientName:  "Maria",
		City:        "Lisbon",
		ServiceType: domain.ServiceWebsiteCreation,
		Days:        7,
		UserEmail:   email,
		Status:      string(status),
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	if err := db.Create(app).Error; err != nil {
		t.Fatalf("failed to seed application: %v", err)
	}
	return app.ID
}

func TestApplicationRepositoryImpl_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	app := &domain.Application{
		ClientName:         "Maria",
		City:               "Lisbon",
		ServiceType:        domain.ServicePosterDesign,
		ProjectDescription: "A new brand mark",
		Days:               5,
		UserEmail:          "client@example.com",
		Status:             domain.StatusPending,
	}

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.ID == 0 {
		t.Error("expected generated ID to be written back")
	}
	if app.CreatedAt.IsZero() {
		t.Error("expected creation timestamp to be written back")
	}

	found, err := repo.FindByID(context.Background(), app.ID)
	if err != nil {
		t.Fatalf("failed to read back application: %v", err)
	}
	if found.ServiceType != domain.ServicePosterDesign {
		t.Errorf("expected service type %s, got %s", domain.ServicePosterDesign, found.ServiceType)
	}
	if found.Status != domain.StatusPending {
		t.Errorf("expected pending status, got %s", found.Status)
	}
}

func TestApplicationRepositoryImpl_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.FindByID(context.Background(), 999)
	if err != domain.ErrApplicationNotFound {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}

func TestApplicationRepositoryImpl_ListByUserEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	base := time.Now().Add(-time.Hour)
	seedApplication(t, db, "a@example.com", domain.StatusPending, base)
	newest := seedApplication(t, db, "a@example.com", domain.StatusAccepted, base.Add(30*time.Minute))
	seedApplication(t, db, "b@example.com", domain.StatusPending, base.Add(10*time.Minute))

	apps, err := repo.ListByUserEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
	// Newest first
	if apps[0].ID != newest {
		t.Errorf("expected newest application first, got ID %d", apps[0].ID)
	}
	for _, app := range apps {
		if app.UserEmail != "a@example.com" {
			t.Errorf("listing leaked another user's application: %q", app.UserEmail)
		}
	}

	empty, err := repo.ListByUserEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty listing, got %d", len(empty))
	}
}

func TestApplicationRepositoryImpl_ListAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	base := time.Now().Add(-time.Hour)
	seedApplication(t, db, "a@example.com", domain.StatusPending, base)
	seedApplication(t, db, "b@example.com", domain.StatusRejected, base.Add(time.Minute))

	apps, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}
}

func TestApplicationRepositoryImpl_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		setupData     func(db *gorm.DB) uint
		id            uint
		target        domain.Status
		expectedError error
	}{
		{
			name: "accept pending application",
			setupData: func(db *gorm.DB) uint {
				return seedApplication(t, db, "a@example.com", domain.StatusPending, time.Now())
			},
			target:        domain.StatusAccepted,
			expectedError: nil,
		},
		{
			name: "update missing application",
			setupData: func(db *gorm.DB) uint {
				return 999
			},
			id:            999,
			target:        domain.StatusAccepted,
			expectedError: domain.ErrApplicationNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			id := tt.setupData(db)
			if tt.id != 0 {
				id = tt.id
			}
			repo := NewApplicationRepository(db)

			err := repo.UpdateStatus(context.Background(), id, tt.target)

			if tt.expectedError != nil {
				if err != tt.expectedError {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			var dbApp DBApplication
			if err := db.First(&dbApp, id).Error; err != nil {
				t.Fatalf("failed to read back application: %v", err)
			}
			if dbApp.Status != string(tt.target) {
				t.Errorf("expected status %s, got %s", tt.target, dbApp.Status)
			}
		})
	}
}

func TestApplicationRepositoryImpl_SaveDelivery(t *testing.T) {
	db := setupTestDB(t)
	repo := NewApplicationRepository(db)

	id := seedApplication(t, db, "a@example.com", domain.StatusAccepted, time.Now())

	payload := domain.DeliveryPayload{
		RepoURL:     "https://github.com/creo/site",
		DeployedURL: "https://client.example.com",
		Notes:       "Handover complete",
	}
	deliveredAt := time.Now()

	if err := repo.SaveDelivery(context.Background(), id, payload, deliveredAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	app, err := repo.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to read back application: %v", err)
	}
	// Status and payload land together
	if app.Status != domain.StatusCompleted {
		t.Errorf("expected completed status, got %s", app.Status)
	}
	if app.Delivery != payload {
		t.Errorf("expected delivery payload %+v, got %+v", payload, app.Delivery)
	}
	if app.DeliveredAt == nil {
		t.Fatal("expected delivered_at to be set")
	}

	if err := repo.SaveDelivery(context.Background(), 999, payload, deliveredAt); err != domain.ErrApplicationNotFound {
		t.Errorf("expected ErrApplicationNotFound, got %v", err)
	}
}
