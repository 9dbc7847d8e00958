package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/ibrahim11elian/PeakBooker/domain"
	"github.com/ibrahim11elian/PeakBooker/internal/http/handlers"
	"github.com/ibrahim11elian/PeakBooker/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, authmw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.GET("/verify-email/:token", ah.VerifyEmail)
	auth.POST("/resend-verification", ah.ResendVerification)
	auth.POST("/login", ah.Login)
	auth.POST("/logout", ah.Logout)
	auth.POST("/logout-all", ah.LogoutAll)
	auth.POST("/refresh", ah.Refresh)
	auth.POST("/forgot-password", ah.ForgotPassword)
	auth.PATCH("/reset-password/:token", ah.ResetPassword)

	protected := r.Group("/auth").Use(authmw.Protect())
	protected.GET("/me", ah.Me)
	protected.DELETE("/me", ah.DeleteMe)
	protected.PATCH("/update-password", ah.UpdatePassword)

	adm := r.Group("/admin").Use(authmw.Protect(), middleware.RequireRoles(domain.RoleAdmin))
	adm.GET("/accounts/:id", ah.GetAccount)

	return r
}
