// Package middleware implements the gate that runs before any wizard page:
// load the check-in resource, refuse wrong lifecycle statuses, and keep
// protected pages behind the session's verification marker. Refusals render
// an outcome in place and stop the chain; nothing downstream executes.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"checkin/internal/audit"
	"checkin/internal/checkin/models"
	"checkin/internal/checkin/render"
	"checkin/internal/checkin/session"
	"checkin/internal/platform/metrics"
	"checkin/pkg/requestcontext"
	"checkin/pkg/sentinel"
)

// ResourceLoader fetches the check-in resource for a submission id.
type ResourceLoader interface {
	GetSubmission(ctx context.Context, id string) (models.Submission, error)
}

type submissionKey struct{}

// GetSubmission retrieves the loaded resource from the context. Only valid
// downstream of Gate.Load.
func GetSubmission(ctx context.Context) models.Submission {
	if s, ok := ctx.Value(submissionKey{}).(models.Submission); ok {
		return s
	}
	return models.Submission{}
}

// WithSubmission injects a loaded resource into a context, for handler tests
// that skip the gate.
func WithSubmission(ctx context.Context, s models.Submission) context.Context {
	return context.WithValue(ctx, submissionKey{}, s)
}

// Gate is the ordered refusal chain.
type Gate struct {
	loader   ResourceLoader
	sessions *session.Service
	renderer *render.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
}

func NewGate(loader ResourceLoader, sessions *session.Service, renderer *render.Renderer, logger *slog.Logger, m *metrics.Metrics, auditor *audit.Publisher) *Gate {
	return &Gate{loader: loader, sessions: sessions, renderer: renderer, logger: logger, metrics: m, audit: auditor}
}

// refused counts and audits one refusal. The event carries only the
// submission id and the refusal outcome.
func (g *Gate) refused(ctx context.Context, submissionID, outcome string) {
	if g.metrics != nil {
		g.metrics.GateRefusals.WithLabelValues(outcome).Inc()
	}
	if g.audit != nil {
		_ = g.audit.Emit(ctx, audit.Event{
			SubmissionID: submissionID,
			Action:       audit.ActionGateRefused,
			Outcome:      outcome,
		})
	}
}

// Load resolves the submission id from the URL, ensures the wizard session
// cookie, and fetches the resource. A missing or unknown id renders not-found
// and halts.
func (g *Gate) Load(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		submissionID := chi.URLParam(r, "submissionID")
		if submissionID == "" {
			g.refused(r.Context(), submissionID, "not_found")
			g.renderer.NotFound(w)
			return
		}

		sessionID, err := g.sessions.Ensure(w, r)
		if err != nil {
			g.logger.ErrorContext(r.Context(), "failed to establish session", "error", err)
			g.renderer.Failure(w, http.StatusInternalServerError, "")
			return
		}

		ctx := requestcontext.WithSubmissionID(r.Context(), submissionID)
		ctx = requestcontext.WithSessionID(ctx, sessionID)

		resource, err := g.loader.GetSubmission(ctx, submissionID)
		if errors.Is(err, sentinel.ErrNotFound) {
			g.refused(ctx, submissionID, "not_found")
			g.renderer.NotFound(w)
			return
		}
		if errors.Is(err, sentinel.ErrExpired) {
			g.refused(ctx, submissionID, "expired")
			g.renderer.Expired(w)
			return
		}
		if err != nil {
			g.logger.ErrorContext(ctx, "failed to load check-in resource",
				"submission_id", submissionID,
				"error", err,
			)
			g.refused(ctx, submissionID, "load_failed")
			g.renderer.Failure(w, http.StatusInternalServerError, "")
			return
		}

		ctx = context.WithValue(ctx, submissionKey{}, resource)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStatus refuses resources in a wrong lifecycle status. Only a Created
// resource may progress through the wizard; a just-Submitted one may still
// reach the confirmation page (allowSubmitted).
func (g *Gate) RequireStatus(allowSubmitted bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			resource := GetSubmission(ctx)
			switch resource.Status {
			case models.StatusCreated:
				next.ServeHTTP(w, r)
			case models.StatusSubmitted:
				if allowSubmitted {
					next.ServeHTTP(w, r)
					return
				}
				g.refused(ctx, resource.ID, "already_submitted")
				g.renderer.NotFound(w)
			case models.StatusExpired:
				g.refused(ctx, resource.ID, "expired")
				g.renderer.Expired(w)
			default:
				g.refused(ctx, resource.ID, "invalid_status")
				g.renderer.NotFound(w)
			}
		})
	}
}

// RequireVerified keeps protected pages behind a successful identity check in
// the current session. The timeout outcome renders in place, so the browser
// URL stays on the page the user asked for.
func (g *Gate) RequireVerified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sessionID := requestcontext.SessionID(ctx)
		submissionID := requestcontext.SubmissionID(ctx)

		verified, err := g.sessions.IsVerified(ctx, sessionID, submissionID)
		if err != nil {
			g.logger.ErrorContext(ctx, "failed to check verification marker", "error", err)
			g.renderer.Failure(w, http.StatusInternalServerError, "")
			return
		}
		if !verified {
			g.refused(ctx, submissionID, "not_verified")
			g.renderer.Timeout(w, "/checkin/"+submissionID)
			return
		}
		next.ServeHTTP(w, r)
	})
}
