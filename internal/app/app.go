package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ibrahim11elian/PeakBooker/internal/config"
	httpx "github.com/ibrahim11elian/PeakBooker/internal/http"
	"github.com/ibrahim11elian/PeakBooker/internal/http/handlers"
	"github.com/ibrahim11elian/PeakBooker/internal/http/middleware"
	"github.com/ibrahim11elian/PeakBooker/internal/infrastructure/auth"
	"github.com/ibrahim11elian/PeakBooker/internal/infrastructure/database"
	"github.com/ibrahim11elian/PeakBooker/internal/infrastructure/notifications"
	"github.com/ibrahim11elian/PeakBooker/internal/infrastructure/repositories"
	"github.com/ibrahim11elian/PeakBooker/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	emailSvc := notifications.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	// Repositories
	accountRepo := repositories.NewAccountRepository(gdb)
	refreshRepo := repositories.NewRefreshTokenRepository(rdb, cfg.RefreshTTL)

	authSvc := services.NewAuthService(accountRepo, refreshRepo, passwordSvc, tokenSvc, emailSvc, services.AuthConfig{
		BaseURL:        cfg.BaseURL,
		VerifyTokenTTL: cfg.VerificationTTL,
		ResetTokenTTL:  cfg.ResetTTL,
		Lockout: services.LockoutConfig{
			MaxAttempts: cfg.LockoutMaxAttempts,
			Window:      cfg.LockoutWindow,
			Cooldown:    cfg.LockoutCooldown,
		},
	})

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, accountRepo, cfg.IsProduction())
	authMW := middleware.NewAuthMW(authSvc)

	r := httpx.BuildRouter(authH, authMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
