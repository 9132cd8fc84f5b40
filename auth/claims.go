package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"transferadmin/models"
)

// Claims is what the dashboard reads from a backend token. The signature is
// not verified here; the backend remains the authority on every call.
type Claims struct {
	Subject   string
	Role      models.AdminRole
	ExpiresAt *time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes a JWT-shaped token. Opaque tokens return an error and
// callers treat them as carrying no claims.
func ParseClaims(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, err
	}

	c := Claims{
		Subject: tc.Subject,
		Role:    models.AdminRole(tc.Role),
	}
	if tc.ExpiresAt != nil {
		exp := tc.ExpiresAt.Time
		c.ExpiresAt = &exp
	}
	return c, nil
}

func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && !now.Before(*c.ExpiresAt)
}

func (c Claims) IsModerator() bool {
	return c.Role == models.RoleModerator
}
