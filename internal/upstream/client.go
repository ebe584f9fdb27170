// Package upstream is the typed HTTP client for the remote commerce API.
// All business logic (pricing, inventory, coupon validation, order
// persistence, payment-session creation, authentication) lives upstream;
// this package only shapes requests and decodes responses.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// TokenHeader carries the opaque bearer token on every authenticated request.
// The upstream API rejects protected operations when it is absent.
const TokenHeader = "token"

// File is a binary attachment submitted as one part of a multipart form.
type File struct {
	Name    string // original filename
	Content []byte
}

// Client talks to the upstream commerce API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// New creates a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// do issues a JSON request and decodes the response body into out when out is
// non-nil. A nil body sends no payload. Status codes >= 400 are converted to
// *APIError carrying the upstream message field.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	return c.send(req, out)
}

// doMultipart issues a multipart form request. File parts listed in files are
// appended after the value fields; a field the caller leaves out of files is
// omitted entirely so the upstream keeps its stored copy.
func (c *Client) doMultipart(ctx context.Context, method, path, token string, values map[string]string, files map[string]File, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for field, value := range values {
		if err := w.WriteField(field, value); err != nil {
			return fmt.Errorf("write form field %q: %w", field, err)
		}
	}
	for field, file := range files {
		part, err := w.CreateFormFile(field, file.Name)
		if err != nil {
			return fmt.Errorf("create form file %q: %w", field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("write form file %q: %w", field, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set(TokenHeader, token)
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call upstream: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Upstream call completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
