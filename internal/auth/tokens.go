package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/docuvault/docuvault/internal/access"
	"github.com/docuvault/docuvault/internal/config"
	"github.com/docuvault/docuvault/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateAccessToken creates a signed HS256 JWT for the user. The subject
// is the user id; the role id travels as a claim so the middleware can build
// a principal without a store round-trip.
func GenerateAccessToken(cfg *config.Config, u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      u.ID,
		"role":     u.Role,
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// VerifyAccessToken parses and validates a token and returns the principal
// it encodes.
func VerifyAccessToken(cfg *config.Config, raw string) (access.Principal, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !tok.Valid {
		return access.Principal{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return access.Principal{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" {
		return access.Principal{}, ErrInvalidToken
	}
	return access.Principal{ID: sub, Role: role}, nil
}
