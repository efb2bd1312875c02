package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"log/slog"
)

var (
	tokenURL    = "https://oauth2.googleapis.com/token"
	userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type Config struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURI  string `mapstructure:"redirect_uri"`
}

// Identity is the verified result of an authorization code exchange.
type Identity struct {
	ProviderID string
	Email      string
	Name       string
	AvatarURL  string
}

// Verifier exchanges Google OAuth authorization codes for user identity.
type Verifier struct {
	c   *Config
	cli *http.Client
}

func New(c *Config) *Verifier {
	return &Verifier{
		c:   c,
		cli: &http.Client{Timeout: 10 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userinfoResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// VerifyCode exchanges an authorization code for a verified identity.
// Accounts without a verified email are rejected.
func (v *Verifier) VerifyCode(ctx context.Context, code string) (*Identity, error) {
	accessToken, err := v.exchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	ui, err := v.fetchUserinfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !ui.VerifiedEmail {
		return nil, fmt.Errorf("oauth: email not verified")
	}

	return &Identity{
		ProviderID: ui.ID,
		Email:      ui.Email,
		Name:       ui.Name,
		AvatarURL:  ui.Picture,
	}, nil
}

func (v *Verifier) exchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("grant_type", "authorization_code")
	data.Set("code", code)
	data.Set("client_id", v.c.ClientID)
	data.Set("client_secret", v.c.ClientSecret)
	data.Set("redirect_uri", v.c.RedirectURI)
	encoded := data.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("can't create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(encoded)), nil
	}

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		return "", fmt.Errorf("oauth: google unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("oauth: can't read token response")
	}

	if resp.StatusCode != http.StatusOK {
		slog.Default().ErrorContext(ctx, "google token exchange failed",
			slog.Int("status", resp.StatusCode),
		)
		if resp.StatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("oauth: invalid or expired code")
		}
		return "", fmt.Errorf("oauth: google unavailable")
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", fmt.Errorf("oauth: invalid token response")
	}
	return tr.AccessToken, nil
}

func (v *Verifier) fetchUserinfo(ctx context.Context, accessToken string) (*userinfoResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("can't create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := v.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("oauth: can't fetch user info")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Default().ErrorContext(ctx, "google userinfo failed",
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("oauth: can't fetch user info")
	}

	var ui userinfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&ui); err != nil {
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}
	if ui.ID == "" || ui.Email == "" {
		return nil, fmt.Errorf("oauth: invalid userinfo response")
	}
	return &ui, nil
}

// doWithRetry retries once on network errors or 5xx with a short backoff.
func (v *Verifier) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := v.cli.Do(req)
	if err != nil || resp.StatusCode >= 500 {
		if resp != nil {
			resp.Body.Close()
		}
		select {
		case <-time.After(500 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		if req.GetBody != nil {
			body, bodyErr := req.GetBody()
			if bodyErr != nil {
				return nil, bodyErr
			}
			req.Body = body
		}
		resp, err = v.cli.Do(req)
	}
	return resp, err
}
