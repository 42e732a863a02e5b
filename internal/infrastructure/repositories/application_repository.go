package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/creostudios/studiosvc/domain"
)

// ApplicationRepositoryImpl implements domain.ApplicationRepository using GORM
type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

// DBApplication represents the database model for Application
type DBApplication struct {
	ID                 uint   `gorm:"primaryKey"`
	ClientName         string `gorm:"size:100"`
	City               string `gorm:"size:100"`
	ServiceType        string `gorm:"size:100"`
	ProjectDescription string `gorm:"type:text"`
	ReferenceImages    string `gorm:"type:text"`
	Days               int
	UserEmail          string `gorm:"index;size:150"`
	Status             string `gorm:"index;size:20;default:pending"`
	DeliveryFileURL    string `gorm:"type:text"`
	DeliveryPackageURL string `gorm:"type:text"`
	DeliveryRepoURL    string `gorm:"type:text"`
	DeliveredSiteURL   string `gorm:"type:text"`
	DeliveryNotes      string `gorm:"type:text"`
	DeliveredAt        *time.Time
	CreatedAt          time.Time `gorm:"index"`
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM
func (DBApplication) TableName() string {
	return "applications"
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) domain.ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

// Create implements domain.ApplicationRepository
func (r *ApplicationRepositoryImpl) Create(ctx context.Context, app *domain.Application) error {
	dbApp := r.domainToDB(app)
	if err := r.db.WithContext(ctx).Create(dbApp).Error; err != nil {
		return err
	}
	app.ID = dbApp.ID
	app.CreatedAt = dbApp.CreatedAt
	return nil
}

// FindByID implements domain.ApplicationRepository
func (r *ApplicationRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Application, error) {
	var dbApp DBApplication
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbApp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbApp), nil
}

// ListByUserEmail implements domain.ApplicationRepository, newest first
func (r *ApplicationRepositoryImpl) ListByUserEmail(ctx context.Context, email string) ([]domain.Application, error) {
	var dbApps []DBApplication
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&dbApps).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainList(dbApps), nil
}

// ListAll implements domain.ApplicationRepository, newest first
func (r *ApplicationRepositoryImpl) ListAll(ctx context.Context) ([]domain.Application, error) {
	var dbApps []DBApplication
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dbApps).Error
	if err != nil {
		return nil, err
	}
	return r.dbToDomainList(dbApps), nil
}

// UpdateStatus implements domain.ApplicationRepository
func (r *ApplicationRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status domain.Status) error {
	res := r.db.WithContext(ctx).Model(&DBApplication{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

// SaveDelivery implements domain.ApplicationRepository. Writing the payload
// and the completed status happens in one statement so a crash can not leave
// a delivered application in the accepted state.
func (r *ApplicationRepositoryImpl) SaveDelivery(ctx context.Context, id uint, payload domain.DeliveryPayload, deliveredAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBApplication{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":               string(domain.StatusCompleted),
		"delivery_file_url":    payload.FileURL,
		"delivery_package_url": payload.PackageURL,
		"delivery_repo_url":    payload.RepoURL,
		"delivered_site_url":   payload.DeployedURL,
		"delivery_notes":       payload.Notes,
		"delivered_at":         deliveredAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

// domainToDB converts domain application to database application
func (r *ApplicationRepositoryImpl) domainToDB(app *domain.Application) *DBApplication {
	return &DBApplication{
		ID:                 app.ID,
		ClientName:         app.ClientName,
		City:               app.City,
		ServiceType:        app.ServiceType,
		ProjectDescription: app.ProjectDescription,
		ReferenceImages:    app.ReferenceImages,
		Days:               app.Days,
		UserEmail:          app.UserEmail,
		Status:             string(app.Status),
		DeliveryFileURL:    app.Delivery.FileURL,
		DeliveryPackageURL: app.Delivery.PackageURL,
		DeliveryRepoURL:    app.Delivery.RepoURL,
		DeliveredSiteURL:   app.Delivery.DeployedURL,
		DeliveryNotes:      app.Delivery.Notes,
		DeliveredAt:        app.DeliveredAt,
	}
}

// dbToDomain converts database application to domain application
func (r *ApplicationRepositoryImpl) dbToDomain(dbApp *DBApplication) *domain.Application {
	return &domain.Application{
		ID:                 dbApp.ID,
		ClientName:         dbApp.ClientName,
		City:               dbApp.City,
		ServiceType:        dbApp.ServiceType,
		ProjectDescription: dbApp.ProjectDescription,
		ReferenceImages:    dbApp.ReferenceImages,
		Days:               dbApp.Days,
		UserEmail:          dbApp.UserEmail,
		Status:             domain.Status(dbApp.Status),
		CreatedAt:          dbApp.CreatedAt,
		Delivery: domain.DeliveryPayload{
			FileURL:     dbApp.DeliveryFileURL,
			PackageURL:  dbApp.DeliveryPackageURL,
			RepoURL:     dbApp.DeliveryRepoURL,
			DeployedURL: dbApp.DeliveredSiteURL,
			Notes:       dbApp.DeliveryNotes,
		},
		DeliveredAt: dbApp.DeliveredAt,
	}
}

func (r *ApplicationRepositoryImpl) dbToDomainList(dbApps []DBApplication) []domain.Application {
	apps := make([]domain.Application, 0, len(dbApps))
	for i := range dbApps {
		apps = append(apps, *r.dbToDomain(&dbApps[i]))
	}
	return apps
}
