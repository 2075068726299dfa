// Package handler is the HTTP layer of the check-in wizard. It delegates to
// the flow, forms, answers and summary packages so transport concerns stay
// isolated from the wizard's rules.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"checkin/internal/audit"
	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/client"
	"checkin/internal/checkin/flash"
	"checkin/internal/checkin/flow"
	"checkin/internal/checkin/forms"
	"checkin/internal/checkin/link"
	"checkin/internal/checkin/middleware"
	"checkin/internal/checkin/models"
	"checkin/internal/checkin/render"
	"checkin/internal/checkin/session"
	"checkin/internal/content"
	"checkin/internal/platform/metrics"
	dErrors "checkin/pkg/domain-errors"
	"checkin/pkg/requestcontext"
	"checkin/pkg/sentinel"
)

// Backend is the case-management client surface the wizard consumes.
//
//go:generate mockgen -source=handler.go -destination=mocks/backend-mocks.go -package=mocks Backend
type Backend interface {
	GetSubmission(ctx context.Context, id string) (models.Submission, error)
	VerifyIdentity(ctx context.Context, id string, details models.VerifyIdentityRequest) (models.VerifyIdentityResult, error)
	AutoVerifyVideo(ctx context.Context, id string, n int) (models.AutoVerifyResult, error)
	UploadVideo(ctx context.Context, id string, n int, contentType string, body io.Reader) error
	StreamVideo(ctx context.Context, id string, n int) (io.ReadCloser, string, error)
	SubmitAnswers(ctx context.Context, id string, payload client.SubmitPayload) (models.Submission, error)
}

// Handler serves every wizard route.
type Handler struct {
	backend  Backend
	answers  answers.Store
	flash    flash.Store
	sessions *session.Service
	links    *link.Service
	renderer *render.Renderer
	logger   *slog.Logger
	metrics  *metrics.Metrics
	audit    *audit.Publisher
	now      func() time.Time
}

func New(
	backend Backend,
	answerStore answers.Store,
	flashStore flash.Store,
	sessions *session.Service,
	links *link.Service,
	renderer *render.Renderer,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditor *audit.Publisher,
) *Handler {
	return &Handler{
		backend:  backend,
		answers:  answerStore,
		flash:    flashStore,
		sessions: sessions,
		links:    links,
		renderer: renderer,
		logger:   logger,
		metrics:  m,
		audit:    auditor,
		now:      time.Now,
	}
}

// Register wires the wizard routes. The gate runs before every per-submission
// page; protected pages additionally sit behind the verification marker.
func (h *Handler) Register(r chi.Router, gate *middleware.Gate) {
	r.Get("/link/{token}", h.handleLink)

	r.Route("/checkin/{submissionID}", func(r chi.Router) {
		r.Use(gate.Load)

		r.Get("/timeout", h.showTimeout)
		r.Get("/keepalive", h.handleKeepalive)

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireStatus(false))

			r.Get("/", h.showEntry)
			r.Post("/start", h.handleStart)
			r.Get("/verify", h.showVerify)
			r.Post("/verify", h.submitVerify)

			r.Group(func(r chi.Router) {
				r.Use(gate.RequireVerified)

				r.Get("/questions/mental-health", h.showMentalHealth)
				r.Post("/questions/mental-health", h.submitMentalHealth)
				r.Get("/questions/assistance", h.showAssistance)
				r.Post("/questions/assistance", h.submitAssistance)
				r.Get("/questions/callback", h.showCallback)
				r.Post("/questions/callback", h.submitCallback)

				r.Get("/video/inform", h.showVideoInform)
				r.Get("/video/record", h.showVideoRecord)
				r.Put("/video/upload", h.handleVideoUpload)
				r.Get("/video/verify", h.handleVideoVerify)
				r.Get("/video/playback", h.handleVideoPlayback)
				r.Get("/video/view", h.showVideoView)

				r.Get("/check-your-answers", h.showReview)
				r.Post("/check-your-answers", h.submitReview)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(gate.RequireStatus(true))
			r.Use(gate.RequireVerified)
			r.Get("/confirmation", h.showConfirmation)
		})
	})
}

// handleLink redeems a one-time link token and sends the browser to the
// submission's entry page.
func (h *Handler) handleLink(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	submissionID, err := h.links.Validate(token)
	if err != nil {
		h.logger.WarnContext(r.Context(), "rejected check-in link", "error", err)
		h.renderer.NotFound(w)
		return
	}
	http.Redirect(w, r, "/checkin/"+submissionID+"/", http.StatusSeeOther)
}

func (h *Handler) showTimeout(w http.ResponseWriter, r *http.Request) {
	h.renderer.Timeout(w, h.prefix(r))
}

// handleKeepalive refreshes the session's inactivity window from the page's
// background script.
func (h *Handler) handleKeepalive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.sessions.Touch(ctx, requestcontext.SessionID(ctx)); err != nil {
		h.logger.WarnContext(ctx, "keepalive touch failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// -----------------------------------------------------------------------------
// Shared plumbing
// -----------------------------------------------------------------------------

func (h *Handler) prefix(r *http.Request) string {
	return "/checkin/" + requestcontext.SubmissionID(r.Context())
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, h.prefix(r)+path, http.StatusSeeOther)
}

// pageData assembles the base view model for a page, resolving the back link
// through the sequencer for the request's navigation mode.
func (h *Handler) pageData(r *http.Request, page flow.Page, titleKey string) render.Data {
	mode := flow.ModeFromQuery(r.URL.Query())
	return render.Data{
		Title:      content.T(titleKey),
		Prefix:     h.prefix(r),
		BackLink:   flow.Back(page, mode),
		Submission: middleware.GetSubmission(r.Context()),
		ReviewMode: mode == flow.ModeReviewEdit,
	}
}

// currentSet loads the session's answer set. ok is false when the session has
// no set (expired or never started); callers render the timeout outcome.
func (h *Handler) currentSet(w http.ResponseWriter, r *http.Request) (*answers.Set, bool) {
	ctx := r.Context()
	set, err := h.answers.Get(ctx, requestcontext.SessionID(ctx))
	if errors.Is(err, sentinel.ErrNotFound) {
		h.renderer.Timeout(w, h.prefix(r))
		return nil, false
	}
	if err != nil {
		h.fail(w, r, err)
		return nil, false
	}
	return set, true
}

// saveSet persists the mutated answer set; reports whether to continue.
func (h *Handler) saveSet(w http.ResponseWriter, r *http.Request, set *answers.Set) bool {
	ctx := r.Context()
	if err := h.answers.Put(ctx, requestcontext.SessionID(ctx), set); err != nil {
		h.fail(w, r, err)
		return false
	}
	return true
}

// renderPage counts and renders one wizard page.
func (h *Handler) renderPage(w http.ResponseWriter, page flow.Page, data render.Data) {
	if h.metrics != nil {
		h.metrics.PagesRendered.WithLabelValues(string(page)).Inc()
	}
	h.renderer.Page(w, http.StatusOK, string(page)+".html", data)
}

// takeFlash consumes the pending redirect payload for this page, if any. The
// fallback values re-populate the form from the stored answers instead.
func (h *Handler) takeFlash(r *http.Request, page flow.Page, fallback url.Values) flash.Payload {
	ctx := r.Context()
	payload, err := h.flash.Take(ctx, requestcontext.SessionID(ctx), string(page))
	if err == nil {
		return payload
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		h.logger.WarnContext(ctx, "flash read failed", "error", err)
	}
	return flash.Payload{Body: fallback}
}

// reject stores the validation issues plus the raw body and bounces back to
// the same URL so the page re-renders with both, per the two-outcome
// contract.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, page flow.Page, issues []forms.Issue, body url.Values) {
	ctx := r.Context()
	if h.metrics != nil {
		h.metrics.ValidationFailures.WithLabelValues(string(page)).Inc()
	}
	err := h.flash.Put(ctx, requestcontext.SessionID(ctx), string(page), flash.Payload{
		Issues: issues,
		Body:   body,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
}

// fail is the generic top-level error path: log with a correlation reference,
// audit without personal data, and render the opaque reference. Backend
// authentication failures force the re-entry path instead.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	reference := uuid.NewString()[:8]

	h.logger.ErrorContext(ctx, "wizard request failed",
		"error", err,
		"reference", reference,
		"request_id", requestcontext.RequestID(ctx),
		"submission_id", requestcontext.SubmissionID(ctx),
		"client_ip", requestcontext.ClientIP(ctx),
	)
	if h.audit != nil {
		_ = h.audit.Emit(ctx, audit.Event{
			SubmissionID: requestcontext.SubmissionID(ctx),
			Action:       audit.ActionUpstreamFailure,
			Outcome:      "ERROR",
			Reference:    reference,
		})
	}

	if dErrors.Is(err, dErrors.CodeUnauthorized) || dErrors.Is(err, dErrors.CodeForbidden) {
		h.redirect(w, r, "/timeout")
		return
	}

	status := http.StatusInternalServerError
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		status = dErrors.ToHTTPStatus(domainErr.Code)
	}
	h.renderer.Failure(w, status, reference)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
