package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"transferadmin/form"
	"transferadmin/models"
)

const pathPrefix = "/api"

// TokenSource is the authentication context a Session reads its token from
// and clears on 401.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// Client talks to the transfer backend. It is shared by all sessions; use As
// to make authenticated calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Session is a Client bound to one authentication context.
type Session struct {
	client *Client
	tokens TokenSource
}

func (c *Client) As(tokens TokenSource) *Session {
	return &Session{client: c, tokens: tokens}
}

// Login exchanges credentials for a token. A response without both token and
// user is an error, so callers never persist a partial login.
func (c *Client) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	body, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	data, err := c.send(ctx, http.MethodPost, "/auth/admin/login", nil, bytes.NewReader(body), "application/json", "")
	if err != nil {
		return nil, err
	}

	var result models.LoginResult
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, ErrIncompleteLogin
		}
	}
	if result.Token == "" || result.User == nil {
		return nil, ErrIncompleteLogin
	}
	return &result, nil
}

func (s *Session) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (json.RawMessage, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	data, err := s.client.send(ctx, method, path, query, body, contentType, token)
	if errors.Is(err, ErrUnauthorized) {
		if clearErr := s.tokens.Clear(ctx); clearErr != nil {
			s.client.logger.ErrorContext(ctx, "failed to clear token after 401", "error", clearErr)
		}
	}
	return data, err
}

func (s *Session) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return s.do(ctx, http.MethodGet, path, query, nil, "")
}

func (s *Session) sendJSON(ctx context.Context, method, path string, payload any) (json.RawMessage, error) {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return s.do(ctx, method, path, nil, body, contentType)
}

// Submit sends a form as JSON or multipart, whichever its attachments call for.
func (s *Session) Submit(ctx context.Context, method, path string, sub *form.Submission) (json.RawMessage, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	body, contentType, err := sub.Encode()
	if err != nil {
		return nil, err
	}
	return s.do(ctx, method, path, nil, body, contentType)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, token string) (json.RawMessage, error) {
	u := c.baseURL + pathPrefix + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("token", token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "backend request failed", "method", method, "path", path, "error", err)
		return nil, &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: "read " + path, Err: err}
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	var envelope models.ApiResponse
	decoded := json.Unmarshal(raw, &envelope) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if decoded {
			msg = envelope.Message
		} else {
			msg = strings.TrimSpace(string(raw))
			if len(msg) > 200 {
				msg = msg[:200]
			}
		}
		return nil, &StatusError{Status: resp.StatusCode, Message: msg}
	}

	if !decoded {
		// Not an envelope: hand the body over as the payload.
		return json.RawMessage(raw), nil
	}
	return envelope.Data, nil
}
