package bpms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/tugu-digital/dots/internal/application/port"
	"go.uber.org/zap"
)

// refreshMargin is subtracted from the token expiry so a token is never
// handed out moments before it lapses mid-request.
const refreshMargin = 30 * time.Second

// TokenProvider caches one BPMS session token for the whole process and
// refreshes it when the exp claim runs out.
type TokenProvider struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenProvider creates a new token provider
func NewTokenProvider(cfg Config, logger *zap.Logger) *TokenProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &TokenProvider{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Token returns the cached token, fetching a fresh one when the cached
// token is absent or within the refresh margin of its expiry.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != "" && time.Now().Before(p.expiresAt.Add(-refreshMargin)) {
		return p.token, nil
	}

	token, expiresAt, err := p.fetch(ctx)
	if err != nil {
		return "", err
	}

	p.token = token
	p.expiresAt = expiresAt
	p.logger.Info("Refreshed BPMS token", zap.Time("expires_at", expiresAt))
	return token, nil
}

func (p *TokenProvider) fetch(ctx context.Context) (string, time.Time, error) {
	payload, err := json.Marshal(map[string]string{
		"client_id":     p.cfg.ClientID,
		"client_secret": p.cfg.ClientSecret,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to marshal token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/api/token", bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Error("Token request failed", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", time.Time{}, fmt.Errorf("failed to decode token response: %w", err)
	}
	if body.AccessToken == "" {
		return "", time.Time{}, fmt.Errorf("token endpoint returned empty token")
	}

	expiresAt, err := tokenExpiry(body.AccessToken)
	if err != nil {
		p.logger.Warn("Token has no readable expiry, using default lifetime", zap.Error(err))
		expiresAt = time.Now().Add(5 * time.Minute)
	}

	return body.AccessToken, expiresAt, nil
}

// tokenExpiry reads the exp claim without verifying the signature. The
// provider only needs the lifetime; BPMS verifies its own tokens.
func tokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return exp.Time, nil
}

// Verify interface compliance
var _ port.TokenProvider = (*TokenProvider)(nil)
