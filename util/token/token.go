// Package token issues and verifies the bearer tokens used by the API.
package token

import (
	"time"

	"melodix/config"
	"melodix/database/model"
	"melodix/util/apperr"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the authenticated identity inside a signed token.
type Claims struct {
	UserId string         `json:"userId"`
	Role   model.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Manager signs and verifies HS256 tokens.
type Manager struct {
	secret   []byte
	lifetime time.Duration
}

func NewManager(secret string, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = 72 * time.Hour
	}
	return &Manager{
		secret:   []byte(secret),
		lifetime: lifetime,
	}
}

// Issue creates a signed token for the given user.
func (m *Manager) Issue(userId string, role model.UserRole) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId: userId,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.GetName(),
			Subject:   userId,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify checks the token's signature and expiry. Every failure mode maps to
// the same unauthenticated error so callers cannot distinguish the cause.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthorized
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, apperr.ErrUnauthorized.WithError(err)
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || claims.UserId == "" {
		return nil, apperr.ErrUnauthorized
	}
	return claims, nil
}

var defaultManager *Manager

// Init configures the process-wide manager used by Issue and Verify.
func Init(secret string, lifetime time.Duration) {
	defaultManager = NewManager(secret, lifetime)
}

func Issue(userId string, role model.UserRole) (string, error) {
	return defaultManager.Issue(userId, role)
}

func Verify(tokenString string) (*Claims, error) {
	return defaultManager.Verify(tokenString)
}
