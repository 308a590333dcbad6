// Package tokens mints and verifies HS256 development tokens. They let the
// API run end to end on a laptop without Firebase credentials and are never
// accepted in production (see config.DevTokensEnabled).
package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/firetemplate/items-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Issuer is stamped into every development token.
const Issuer = "items-api-dev"

// GenerateDevToken creates a signed development token for the caller
func GenerateDevToken(secret string, c *models.Caller, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("empty signing secret")
	}
	if c == nil || c.UID == "" {
		return "", errors.New("caller uid is required")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   Issuer,
		"sub":   c.UID,
		"name":  c.Name,
		"email": c.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(secret))
}

// DevVerifier checks development tokens signed with a shared secret.
type DevVerifier struct {
	secret []byte
}

func NewDevVerifier(secret string) *DevVerifier {
	return &DevVerifier{secret: []byte(secret)}
}

func (v *DevVerifier) Name() string { return "dev" }

// Verify parses raw, checks signature, issuer and expiry, and returns the caller.
func (v *DevVerifier) Verify(_ context.Context, raw string) (*models.Caller, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("dev token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("dev token: missing sub")
	}
	exp, _ := claims.GetExpirationTime()
	c := &models.Caller{UID: sub, Source: v.Name()}
	c.Email, _ = claims["email"].(string)
	c.Name, _ = claims["name"].(string)
	if exp != nil {
		c.ExpiresAt = exp.Time
	}
	return c, nil
}
