package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"transferadmin/repository"
)

// TokenKey is the fixed name the backend token is stored under.
const TokenKey = "token"

var ErrNoToken = errors.New("no authentication token")

// Context is the authentication state of one browser session. It is the only
// way the rest of the dashboard reads, writes or clears the backend token.
type Context struct {
	repo      repository.SessionRepository
	sealer    *Sealer
	sessionID string
	now       func() time.Time
}

func (c *Context) SessionID() string {
	return c.sessionID
}

// Token returns the stored token. Expired or unreadable tokens are cleared and
// reported as ErrNoToken.
func (c *Context) Token(ctx context.Context) (string, error) {
	sealed, err := c.repo.Get(ctx, c.sessionID, TokenKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("load token: %w", err)
	}

	token, err := c.sealer.Open(sealed)
	if err != nil {
		slog.WarnContext(ctx, "discarding unreadable session token", "error", err)
		return "", c.evict(ctx)
	}

	if claims, err := ParseClaims(token); err == nil && claims.Expired(c.now()) {
		return "", c.evict(ctx)
	}
	return token, nil
}

func (c *Context) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrNoToken
	}
	sealed, err := c.sealer.Seal(token)
	if err != nil {
		return err
	}
	if err := c.repo.Set(ctx, c.sessionID, TokenKey, sealed); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an empty session is not an error.
func (c *Context) Clear(ctx context.Context) error {
	if err := c.repo.Delete(ctx, c.sessionID, TokenKey); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Claims returns the claims of the stored token; opaque tokens yield zero Claims.
func (c *Context) Claims(ctx context.Context) (Claims, error) {
	token, err := c.Token(ctx)
	if err != nil {
		return Claims{}, err
	}
	claims, err := ParseClaims(token)
	if err != nil {
		return Claims{}, nil
	}
	return claims, nil
}

func (c *Context) evict(ctx context.Context) error {
	if err := c.Clear(ctx); err != nil {
		return err
	}
	return ErrNoToken
}
