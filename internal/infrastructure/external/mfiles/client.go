// Package mfiles uploads supporting documents to the M-Files document
// management system.
package mfiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/tugu-digital/dots/internal/application/port"
	"go.uber.org/zap"
)

// Config holds M-Files connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client implements port.DocumentClient
type Client struct {
	cfg    Config
	http   *http.Client
	tokens port.TokenProvider
	logger *zap.Logger
}

// NewClient creates a new M-Files client
func NewClient(cfg Config, tokens port.TokenProvider, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		logger: logger,
	}
}

// Upload sends a document as multipart form data and returns the M-Files
// object id. Group and class select the target vault location; the DOTS
// number ties the document back to its transaction.
func (c *Client) Upload(ctx context.Context, group, class, dotsNumber, fileName string, content io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range map[string]string{
		"group":       group,
		"class":       class,
		"dots_number": dotsNumber,
	} {
		if err := writer.WriteField(field, value); err != nil {
			return "", fmt.Errorf("failed to write form field: %w", err)
		}
	}

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/documents", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("M-Files upload failed", zap.String("file", fileName), zap.Error(err))
		return "", fmt.Errorf("mfiles upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("M-Files returned error status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", data))
		return "", fmt.Errorf("mfiles returned status %d", resp.StatusCode)
	}

	var body struct {
		ObjectID string `json:"object_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if body.ObjectID == "" {
		return "", fmt.Errorf("mfiles returned empty object id")
	}

	c.logger.Info("Document uploaded to M-Files",
		zap.String("file", fileName),
		zap.String("object_id", body.ObjectID))
	return body.ObjectID, nil
}

// Verify interface compliance
var _ port.DocumentClient = (*Client)(nil)
