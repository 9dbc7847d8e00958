package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// SessionCookie is the cookie carrying the access token.
const SessionCookie = "session"

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	accountRepo  domain.AccountRepository
	secureCookie bool
}

// NewAuthHandlers creates new auth handlers. secureCookie should be true in
// production so the session cookie is only sent over https.
func NewAuthHandlers(authSvc domain.AuthService, accountRepo domain.AccountRepository, secureCookie bool) *AuthHandlers {
	return &AuthHandlers{
		authSvc:      authSvc,
		accountRepo:  accountRepo,
		secureCookie: secureCookie,
	}
}

// SignupRequest represents signup request
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// EmailRequest carries a bare email, for resend-verification and
// forgot-password.
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RefreshRequest represents a request carrying a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ResetPasswordRequest represents the reset-password body
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// UpdatePasswordRequest represents the update-password body
type UpdatePasswordRequest struct {
	Password    string `json:"password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// Signup handles account creation
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	message := "Account created, check your email to verify your address."
	if !result.EmailSent {
		message = "Account created, but the verification email could not be sent. Request a new one later."
	}

	c.JSON(http.StatusCreated, gin.H{
		"data": gin.H{
			"message":    message,
			"account":    accountBody(result.Account),
			"email_sent": result.EmailSent,
		},
	})
}

// VerifyEmail handles the emailed verification link
func (h *AuthHandlers) VerifyEmail(c *gin.Context) {
	account, err := h.authSvc.VerifyEmail(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	log.Printf("EMAIL_VERIFIED: account_id=%d email=%s", account.ID, account.Email)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Email verified successfully, you can log in now.",
		},
	})
}

// ResendVerification issues a fresh verification token
func (h *AuthHandlers) ResendVerification(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResendVerification(c.Request.Context(), req.Email); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Verification email sent.",
		},
	})
}

// Login handles credential check and token issuance
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.authSvc.ValidateLoginAttempt(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("LOGIN_FAILED: email=%s error=%v", req.Email, err)
		h.writeError(c, err)
		return
	}

	pair, err := h.authSvc.Login(c.Request.Context(), account)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, pair.AccessToken, time.Duration(pair.ExpiresIn)*time.Second)
	log.Printf("LOGIN: account_id=%d email=%s", account.ID, account.Email)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    pair.ExpiresIn,
			"account":       accountBody(account),
		},
	})
}

// Logout revokes one refresh token and clears the session cookie
func (h *AuthHandlers) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrTokenMissing)
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.writeError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out successfully",
		},
	})
}

// LogoutAll revokes every refresh token of the account
func (h *AuthHandlers) LogoutAll(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrTokenMissing)
		return
	}

	if err := h.authSvc.LogoutAll(c.Request.Context(), req.RefreshToken); err != nil {
		h.writeError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Logged out from all devices",
		},
	})
}

// Refresh rotates the refresh token and mints a new access token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrTokenMissing)
		return
	}

	pair, err := h.authSvc.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, pair.AccessToken, time.Duration(pair.ExpiresIn)*time.Second)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token":  pair.AccessToken,
			"refresh_token": pair.RefreshToken,
			"token_type":    "Bearer",
			"expires_in":    pair.ExpiresIn,
		},
	})
}

// ForgotPassword issues a password-reset token by email
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Token was sent to email!",
		},
	})
}

// ResetPassword consumes the emailed reset token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	accessToken, err := h.authSvc.ResetPassword(c.Request.Context(), c.Param("token"), req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, accessToken, 0)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "The password was reset successfully",
			"token":   accessToken,
		},
	})
}

// UpdatePassword changes the password of the authenticated account
func (h *AuthHandlers) UpdatePassword(c *gin.Context) {
	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeError(c, domain.ErrMissingFields)
		return
	}

	account := currentAccount(c)
	if account == nil {
		h.writeError(c, domain.ErrNotAuthenticated)
		return
	}

	accessToken, err := h.authSvc.UpdatePassword(c.Request.Context(), account.ID, req.Password, req.NewPassword)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.setSessionCookie(c, accessToken, 0)
	log.Printf("PASSWORD_UPDATED: account_id=%d", account.ID)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Password updated successfully",
			"token":   accessToken,
		},
	})
}

// Me returns the authenticated account
func (h *AuthHandlers) Me(c *gin.Context) {
	account := currentAccount(c)
	if account == nil {
		h.writeError(c, domain.ErrNotAuthenticated)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountBody(account),
		},
	})
}

// DeleteMe soft-deactivates the authenticated account
func (h *AuthHandlers) DeleteMe(c *gin.Context) {
	account := currentAccount(c)
	if account == nil {
		h.writeError(c, domain.ErrNotAuthenticated)
		return
	}

	if err := h.authSvc.Deactivate(c.Request.Context(), account.ID); err != nil {
		h.writeError(c, err)
		return
	}

	h.clearSessionCookie(c)
	log.Printf("ACCOUNT_DEACTIVATED: account_id=%d", account.ID)
	c.Status(http.StatusNoContent)
}

// GetAccount returns an account by id, for admins
func (h *AuthHandlers) GetAccount(c *gin.Context) {
	var uri struct {
		ID uint `uri:"id" binding:"required"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountRepo.FindByID(c.Request.Context(), uri.ID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"account": accountBody(account),
			"active":  account.Active,
		},
	})
}

// accountBody shapes an account for responses. The password hash never
// leaves the trusted boundary.
func accountBody(account *domain.Account) gin.H {
	return gin.H{
		"id":       account.ID,
		"name":     account.Name,
		"email":    account.Email,
		"role":     account.Role,
		"photo":    account.Photo,
		"verified": account.Verified,
	}
}

// currentAccount reads the account attached by the protect middleware.
func currentAccount(c *gin.Context) *domain.Account {
	v, exists := c.Get("account")
	if !exists {
		return nil
	}
	account, ok := v.(*domain.Account)
	if !ok {
		return nil
	}
	return account
}

// setSessionCookie sets the http-only session cookie carrying the access
// token. A zero ttl leaves it as a session cookie.
func (h *AuthHandlers) setSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetCookie(SessionCookie, token, int(ttl.Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandlers) clearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", h.secureCookie, true)
}

// writeError maps domain failures to their status-code class. Unknown
// errors are logged in full and answered with a generic message.
func (h *AuthHandlers) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrAccountExists),
		errors.Is(err, domain.ErrAlreadyVerified),
		errors.Is(err, domain.ErrVerificationPending),
		errors.Is(err, domain.ErrTokenInvalidOrExpired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTooManyAttempts):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated),
		errors.Is(err, domain.ErrNotVerified),
		errors.Is(err, domain.ErrStalePassword),
		errors.Is(err, domain.ErrAccountGone),
		errors.Is(err, domain.ErrIncorrectPassword),
		errors.Is(err, domain.ErrTokenMissing),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmailDelivery):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		log.Printf("UNEXPECTED_ERROR: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
