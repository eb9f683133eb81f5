// Package auth resolves opaque bearer tokens to stable user identities.
// Session management itself lives in the external identity provider; this
// package only consumes its verification endpoint.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/elevatepath/elevatepath/internal/domain"
)

// Identity is what the provider knows about a verified caller. Subject is
// stable across sessions and keys the local user record.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

type Resolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

type HTTPResolver struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return &HTTPResolver{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Resolve verifies the token against the provider. An invalid or expired
// token maps to domain.ErrUnauthorized.
func (r *HTTPResolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", r.baseURL+"/v1/sessions/verify", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domain.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("verify token: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if result.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	return &Identity{Subject: result.UserID, Email: result.Email, Name: result.Name}, nil
}
