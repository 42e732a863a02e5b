package app

import (
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/creostudios/studiosvc/domain"
	"github.com/creostudios/studiosvc/internal/config"
	"github.com/creostudios/studiosvc/internal/infrastructure/audit"
	"github.com/creostudios/studiosvc/internal/infrastructure/auth"
	"github.com/creostudios/studiosvc/internal/infrastructure/database"
	"github.com/creostudios/studiosvc/internal/infrastructure/notifications"
	"github.com/creostudios/studiosvc/internal/infrastructure/repositories"
	"github.com/creostudios/studiosvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Repositories
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	AppRepo     domain.ApplicationRepository
	UploadRepo  domain.UploadRepository

	// Services
	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	Mailer      domain.Mailer
	Audit       domain.AuditLogger
	OTPSvc      domain.OTPService
	AuthSvc     domain.AuthService
	AppSvc      domain.ApplicationService
	UploadSvc   domain.UploadService
	PolicySvc   domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initDatabase(); err != nil {
		return nil, err
	}
	if err := container.initRedis(); err != nil {
		return nil, err
	}

	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient, c.Config.RefreshTTL)
	c.AppRepo = repositories.NewApplicationRepository(c.DB)
	c.UploadRepo = repositories.NewUploadRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService()
	c.TokenSvc = auth.NewJWTService(
		c.Config.JWTSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.Mailer = notifications.NewSMTPMailer(
		c.Config.MailHost,
		c.Config.MailPort,
		c.Config.MailUsername,
		c.Config.MailPassword,
		c.Config.MailFrom,
	)
	c.Audit = audit.NewAuditLogger(log.Logger)

	otpConfig := services.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
	}
	c.OTPSvc = services.NewOTPService(c.Mailer, c.RedisClient, otpConfig)

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Audit,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.AppSvc = services.NewApplicationService(c.AppRepo, c.Audit)
	c.UploadSvc = services.NewUploadService(c.UploadRepo)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
