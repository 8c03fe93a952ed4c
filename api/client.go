// Package api is the HTTP client for the meeting-analysis service. Each call
// is a single POST with no retries or caching; failures come back as
// *RequestError.
package api

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"meetlens/models"
)

// Endpoint paths relative to the base URL.
const (
	PathProcess     = "/api/process"
	PathUpload      = "/api/upload"
	PathExportPDF   = "/api/export/pdf"
	PathSendEmail   = "/api/email/send"
	PathCreateEvent = "/api/calendar/create-event"
)

// RequestIDHeader carries a per-call id that also appears in the log.
const RequestIDHeader = "X-Request-ID"

// Client talks to the analysis service.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a Client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitText sends a typed transcript for analysis.
func (c *Client) SubmitText(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResult, error) {
	if req.Participants == nil {
		req.Participants = []string{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis request: %w", err)
	}

	data, err := c.post(ctx, PathProcess, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	return decodeResult(data)
}

// SubmitFile uploads a transcript file as the multipart field "file".
func (c *Client) SubmitFile(ctx context.Context, filename string, content io.Reader) (*models.AnalysisResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing upload form: %w", err)
	}

	data, err := c.post(ctx, PathUpload, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}
	return decodeResult(data)
}

// ExportDocument asks the service to render result as a PDF and returns its bytes.
func (c *Client) ExportDocument(ctx context.Context, result *models.AnalysisResult) ([]byte, error) {
	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis result: %w", err)
	}
	return c.post(ctx, PathExportPDF, "application/json", bytes.NewReader(body))
}

// SendEmail asks the service to mail the analysis to a recipient.
func (c *Client) SendEmail(ctx context.Context, req models.EmailRequest) (*models.Ack, error) {
	return c.postAck(ctx, PathSendEmail, req)
}

// ScheduleEvent asks the service to create a follow-up calendar event.
func (c *Client) ScheduleEvent(ctx context.Context, req models.EventRequest) (*models.Ack, error) {
	if req.Attendees == nil {
		req.Attendees = []string{}
	}
	return c.postAck(ctx, PathCreateEvent, req)
}

func (c *Client) postAck(ctx context.Context, path string, payload interface{}) (*models.Ack, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	data, err := c.post(ctx, path, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	ack := &models.Ack{}
	if len(bytes.TrimSpace(data)) == 0 {
		return ack, nil
	}
	if err := json.Unmarshal(data, ack); err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	return ack, nil
}

func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	requestID := uuid.NewString()
	log := c.log.With().Str("request_id", requestID).Str("path", path).Logger()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(RequestIDHeader, requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("request failed")
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("reading response failed")
		return nil, &RequestError{StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	log.Debug().
		Str("method", http.MethodPost).
		Int("status", resp.StatusCode).
		Int("bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reqErr := newStatusError(resp.StatusCode, data)
		log.Warn().Int("status", resp.StatusCode).Str("detail", reqErr.Message).Msg("request rejected")
		return nil, reqErr
	}

	return data, nil
}

func decodeResult(data []byte) (*models.AnalysisResult, error) {
	result, err := models.ParseAnalysisResult(data)
	if err != nil {
		return nil, &RequestError{Message: err.Error(), Err: err}
	}
	return result, nil
}
