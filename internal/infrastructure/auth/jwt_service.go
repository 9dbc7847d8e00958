package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ibrahim11elian/PeakBooker/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh tokens
// are signed with separate secrets so one class never verifies as the other.
type JWTServiceImpl struct {
	accessSecret  []byte
	refreshSecret []byte
	issuer        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTServiceImpl {
	return &JWTServiceImpl{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		issuer:        issuer,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (j *JWTServiceImpl) WithClock(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// IssueAccess implements domain.TokenService
func (j *JWTServiceImpl) IssueAccess(accountID uint) (string, error) {
	return j.sign(accountID, j.accessSecret, j.accessTTL)
}

// IssueRefresh implements domain.TokenService
func (j *JWTServiceImpl) IssueRefresh(accountID uint) (string, error) {
	return j.sign(accountID, j.refreshSecret, j.refreshTTL)
}

func (j *JWTServiceImpl) sign(accountID uint, secret []byte, ttl time.Duration) (string, error) {
	now := j.now()
	claims := jwt.MapClaims{
		"sub": float64(accountID),
		"iss": j.issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccess implements domain.TokenService
func (j *JWTServiceImpl) VerifyAccess(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.accessSecret)
}

// VerifyRefresh implements domain.TokenService
func (j *JWTServiceImpl) VerifyRefresh(tokenString string) (*domain.TokenClaims, error) {
	return j.verify(tokenString, j.refreshSecret)
}

// AccessTTL implements domain.TokenService
func (j *JWTServiceImpl) AccessTTL() time.Duration {
	return j.accessTTL
}

func (j *JWTServiceImpl) verify(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return secret, nil
	}, jwt.WithTimeFunc(j.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	return &domain.TokenClaims{
		AccountID: uint(sub),
		IssuedAt:  int64(iat),
		ExpiresAt: int64(exp),
	}, nil
}
