package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/creostudios/studiosvc/domain"
	"github.com/creostudios/studiosvc/internal/config"
	httpx "github.com/creostudios/studiosvc/internal/http"
	"github.com/creostudios/studiosvc/internal/http/handlers"
	"github.com/creostudios/studiosvc/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.RedisClient.Ping(context.Background()).Err(); err != nil {
		return err
	}

	if err := c.PolicySvc.SeedDefaults(); err != nil {
		return err
	}
	log.Info().Msg("casbin: route policies ready")
	if err := seedAdmin(c); err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthSvc, c.OTPSvc)
	appH := handlers.NewApplicationHandlers(c.AppSvc, c.AuthSvc)
	uploadH := handlers.NewUploadHandlers(c.UploadSvc, c.AuthSvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc, c.SessionRepo)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(httpx.RouterConfig{AllowedOrigins: cfg.AllowedOrigins}, authH, appH, uploadH, jwtMW, casbinMW)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Msg("listening")
	return http.ListenAndServe(addr, r)
}

// seedAdmin creates the configured administrator account if it does not exist
func seedAdmin(c *Container) error {
	if c.Config.AdminEmail == "" || c.Config.AdminPassword == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.UserRepo.FindByEmail(ctx, c.Config.AdminEmail); err == nil {
		return nil
	}

	hash, err := c.PasswordSvc.Hash(c.Config.AdminPassword)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Name:          c.Config.AdminName,
		Email:         c.Config.AdminEmail,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		EmailVerified: true,
	}
	if err := c.UserRepo.Create(ctx, admin); err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("seeded admin account")
	return nil
}
