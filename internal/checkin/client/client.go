// Package client is the REST client for the case-management backend. The
// wizard interprets only verified/result/success-vs-failure from the
// responses; retry and backoff stay the backend's problem.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/models"
	"checkin/internal/platform/metrics"
	dErrors "checkin/pkg/domain-errors"
	"checkin/pkg/sentinel"
)

var tracer = otel.Tracer("checkin/client")

// SubmitPayload is the final answer payload posted to the backend.
type SubmitPayload struct {
	StartedAt         time.Time         `json:"startedAt"`
	Device            answers.Device    `json:"device"`
	MentalHealth      string            `json:"mentalHealth"`
	Aspects           []string          `json:"aspects"`
	AspectDetails     map[string]string `json:"aspectDetails"`
	CallbackRequested string            `json:"callbackRequested"`
	CallbackDetails   string            `json:"callbackDetails"`
	IdentityOutcome   string            `json:"identityOutcome"`
}

// PayloadFromSet projects an answer set into the backend contract.
func PayloadFromSet(set *answers.Set) SubmitPayload {
	return SubmitPayload{
		StartedAt:         set.StartedAt,
		Device:            set.Device,
		MentalHealth:      set.MentalHealth,
		Aspects:           set.Aspects,
		AspectDetails:     set.AspectDetails,
		CallbackRequested: set.CallbackRequested,
		CallbackDetails:   set.CallbackDetails,
		IdentityOutcome:   set.IdentityOutcome,
	}
}

// Client talks to the case-management backend over HTTP with a short-lived
// HS256 service token per call.
type Client struct {
	baseURL    string
	signingKey []byte
	httpClient *http.Client
	metrics    *metrics.Metrics
}

func New(baseURL, signingKey string, m *metrics.Metrics) *Client {
	return &Client{
		baseURL:    baseURL,
		signingKey: []byte(signingKey),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		metrics:    m,
	}
}

// GetSubmission fetches the check-in resource. Unknown ids surface as
// sentinel.ErrNotFound and lapsed ones as sentinel.ErrExpired so the gate can
// render the matching outcome.
func (c *Client) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	var out models.Submission
	err := c.call(ctx, "get_submission", http.MethodGet, "/submissions/"+id, nil, &out)
	return out, err
}

// VerifyIdentity asks the backend to check the typed identity details.
func (c *Client) VerifyIdentity(ctx context.Context, id string, details models.VerifyIdentityRequest) (models.VerifyIdentityResult, error) {
	var out models.VerifyIdentityResult
	err := c.call(ctx, "verify_identity", http.MethodPost, "/submissions/"+id+"/verify", details, &out)
	return out, err
}

// AutoVerifyVideo asks the backend to run the automated video identity check
// against the nth recorded clip.
func (c *Client) AutoVerifyVideo(ctx context.Context, id string, n int) (models.AutoVerifyResult, error) {
	var out models.AutoVerifyResult
	path := fmt.Sprintf("/submissions/%s/video/%d/verify", id, n)
	err := c.call(ctx, "auto_verify_video", http.MethodPost, path, nil, &out)
	return out, err
}

// UploadVideo streams a recorded clip to the backend as the nth clip for the
// submission. The body is passed through untouched; the wizard never inspects
// or stores video content.
func (c *Client) UploadVideo(ctx context.Context, id string, n int, contentType string, body io.Reader) error {
	path := fmt.Sprintf("/submissions/%s/video/%d", id, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build upload_video request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, "upload_video", req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// StreamVideo fetches the nth recorded clip for playback. The caller owns the
// returned body.
func (c *Client) StreamVideo(ctx context.Context, id string, n int) (io.ReadCloser, string, error) {
	path := fmt.Sprintf("/submissions/%s/video/%d", id, n)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build stream_video request: %w", err)
	}

	resp, err := c.do(ctx, "stream_video", req)
	if err != nil {
		return nil, "", err
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// SubmitAnswers posts the final answer payload and returns the updated
// resource.
func (c *Client) SubmitAnswers(ctx context.Context, id string, payload SubmitPayload) (models.Submission, error) {
	var out models.Submission
	err := c.call(ctx, "submit_answers", http.MethodPost, "/submissions/"+id+"/answers", payload, &out)
	return out, err
}

func (c *Client) call(ctx context.Context, operation, method, path string, in, out any) error {
	ctx, span := tracer.Start(ctx, "backend."+operation, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", path),
	))
	defer span.End()

	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(ctx, operation, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode %s response: %w", operation, err)
		}
	}
	return nil
}

// do signs, sends and status-checks one backend request. On success the
// response body is open and owned by the caller.
func (c *Client) do(ctx context.Context, operation string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	defer func() {
		if c.metrics != nil {
			c.metrics.BackendCallSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
		}
	}()

	token, err := c.serviceToken()
	if err != nil {
		return nil, fmt.Errorf("sign service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, sentinel.ErrUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, sentinel.ErrNotFound
	case resp.StatusCode == http.StatusGone:
		resp.Body.Close()
		return nil, sentinel.ErrExpired
	case resp.StatusCode == http.StatusConflict:
		resp.Body.Close()
		return nil, sentinel.ErrInvalidState
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, dErrors.New(dErrors.CodeUnauthorized, "backend rejected service credentials")
	case resp.StatusCode >= 400:
		resp.Body.Close()
		return nil, dErrors.New(dErrors.CodeUpstream, fmt.Sprintf("%s returned status %d", operation, resp.StatusCode))
	}
	return resp, nil
}

// serviceToken mints the short-lived bearer token the backend expects from
// this service.
func (c *Client) serviceToken() (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "checkin-wizard",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
	})
	return token.SignedString(c.signingKey)
}
