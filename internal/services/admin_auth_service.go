package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/slotpicker/internal/picker"
)

var (
	ErrAdminSecretRejected   = errors.New("admin secret rejected")
	ErrAdminTokenInvalid     = errors.New("admin token invalid")
	ErrAdminTokenIssueFailed = errors.New("issue admin token failed")
)

const (
	AdminTokenTTL     = 12 * time.Hour
	adminTokenPurpose = "admin_bookings"
)

type adminClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// AdminAuthService turns a successful secret check into a short-lived signed
// token for the bookings listing. The secret check itself is whatever
// Authorizer the deployment injects.
type AdminAuthService struct {
	authorizer picker.Authorizer
	secretKey  []byte
	now        func() time.Time
}

func NewAdminAuthService(authorizer picker.Authorizer, secretKey string, now func() time.Time) *AdminAuthService {
	if now == nil {
		now = time.Now
	}
	return &AdminAuthService{
		authorizer: authorizer,
		secretKey:  []byte(secretKey),
		now:        now,
	}
}

func (service *AdminAuthService) OpenSession(ctx context.Context, secret string) (string, time.Time, error) {
	if !service.authorizer.Authorize(ctx, secret) {
		return "", time.Time{}, ErrAdminSecretRejected
	}

	issuedAt := service.now()
	expiresAt := issuedAt.Add(AdminTokenTTL)
	claims := adminClaims{
		Purpose: adminTokenPurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(service.secretKey)
	if err != nil {
		return "", time.Time{}, ErrAdminTokenIssueFailed
	}
	return token, expiresAt, nil
}

func (service *AdminAuthService) VerifyToken(raw string) error {
	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (any, error) {
			return service.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(service.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Purpose != adminTokenPurpose {
		return ErrAdminTokenInvalid
	}
	return nil
}
