package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// GoTrue validates tokens against a GoTrue (Supabase Auth) server. Each call
// is a round-trip to GET /auth/v1/user.
type GoTrue struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewGoTrue(baseURL, apiKey string, timeout time.Duration) *GoTrue {
	return &GoTrue{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (g *GoTrue) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", g.APIKey)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth server: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthenticated
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("auth server: %d %s", resp.StatusCode, string(body))
	}

	var u goTrueUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode auth user: %w", err)
	}
	id, err := uuid.Parse(u.ID)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return &User{ID: id, Email: u.Email}, nil
}
