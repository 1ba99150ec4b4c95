package services

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smlcredit/smlcredit-api/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthService guards the API with the shared admin secret. Callers either
// send the PIN itself on every request, or trade it once for a short-lived
// session token via Login.
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// VerifyPIN checks the presented secret against the configured one.
// With ADMIN_PIN_HASH set the comparison is bcrypt; otherwise it is a
// constant-time plain comparison.
func (s *AuthService) VerifyPIN(pin string) error {
	if pin == "" {
		return ErrUnauthorized
	}
	if s.cfg.AdminPINHash != "" {
		if bcrypt.CompareHashAndPassword([]byte(s.cfg.AdminPINHash), []byte(pin)) != nil {
			return ErrUnauthorized
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(pin), []byte(s.cfg.AdminPIN)) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Login verifies the PIN and mints a session token so the client does not
// have to replay the secret on every request.
func (s *AuthService) Login(pin string) (string, time.Time, error) {
	if err := s.VerifyPIN(pin); err != nil {
		return "", time.Time{}, err
	}

	expiresAt := time.Now().Add(time.Duration(s.cfg.SessionTTLHours) * time.Hour)
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey())
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// ValidateToken checks a session token issued by Login.
func (s *AuthService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return s.signingKey(), nil
	})
	if err != nil || !token.Valid {
		return ErrUnauthorized
	}
	return nil
}

func (s *AuthService) signingKey() []byte {
	if s.cfg.AdminPINHash != "" {
		return []byte(s.cfg.AdminPINHash)
	}
	return []byte(s.cfg.AdminPIN)
}
