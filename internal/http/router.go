package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/creostudios/studiosvc/internal/http/handlers"
	"github.com/creostudios/studiosvc/internal/http/middleware"
)

// RouterConfig carries the knobs the router needs from the app config
type RouterConfig struct {
	AllowedOrigins []string
}

func BuildRouter(cfg RouterConfig, ah *handlers.AuthHandlers, aph *handlers.ApplicationHandlers, uh *handlers.UploadHandlers, jwtmw *middleware.AuthMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestIDMiddleware())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/resend-otp", ah.ResendOTP)
	auth.POST("/login", ah.Login)
	auth.POST("/admin-login", ah.AdminLogin)
	auth.POST("/refresh", ah.Refresh)

	// Delivered artifacts are downloadable by link, no login needed
	r.GET("/api/uploads/:id", uh.Download)

	v := r.Group("/api").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)
	v.POST("/apply", aph.Apply)
	v.GET("/applications", aph.List)

	adm := r.Group("/api").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/applications/all", aph.ListAll)
	adm.PUT("/applications/:id/status", aph.UpdateStatus)
	adm.PUT("/applications/:id/deliver", aph.Deliver)
	adm.POST("/upload", uh.Upload)
	adm.GET("/uploads/list", uh.List)

	return r
}
