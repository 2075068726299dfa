package handler

import (
	"errors"
	"net/http"

	"checkin/internal/audit"
	"checkin/internal/checkin/client"
	"checkin/internal/checkin/flow"
	"checkin/internal/checkin/summary"
	"checkin/pkg/requestcontext"
	"checkin/pkg/sentinel"
)

// showReview projects the accumulated answers into the check-your-answers
// rows. The projection is recomputed on every render so an edit round-trip is
// always reflected.
func (h *Handler) showReview(w http.ResponseWriter, r *http.Request) {
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}
	data := h.pageData(r, flow.PageReview, "page.review.title")
	data.Answers = set
	data.Rows = summary.Rows(set)
	data.Identity = summary.IdentityRow(set)
	h.renderPage(w, flow.PageReview, data)
}

// submitReview posts the final payload to the backend. The answer set is
// destroyed only after the backend accepts, so a failed submission leaves the
// review page intact for a retry.
func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}

	submissionID := requestcontext.SubmissionID(ctx)
	if _, err := h.backend.SubmitAnswers(ctx, submissionID, client.PayloadFromSet(set)); err != nil {
		if errors.Is(err, sentinel.ErrInvalidState) {
			// The backend already holds answers for this check-in: a second
			// tab got there first. The earlier submission stands.
			if derr := h.answers.Delete(ctx, requestcontext.SessionID(ctx)); derr != nil {
				h.logger.WarnContext(ctx, "answer set cleanup failed", "error", derr)
			}
			h.redirect(w, r, flow.Next(flow.PageReview, flow.ModeSequential))
			return
		}
		h.fail(w, r, err)
		return
	}

	if h.audit != nil {
		_ = h.audit.Emit(ctx, audit.Event{
			SubmissionID: submissionID,
			Action:       audit.ActionSubmitted,
			Outcome:      "OK",
		})
	}
	if h.metrics != nil {
		h.metrics.SubmissionsDone.Inc()
	}

	if err := h.answers.Delete(ctx, requestcontext.SessionID(ctx)); err != nil {
		h.logger.WarnContext(ctx, "answer set cleanup failed", "error", err)
	}
	h.redirect(w, r, flow.Next(flow.PageReview, flow.ModeSequential))
}

func (h *Handler) showConfirmation(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, flow.PageConfirmation, h.pageData(r, flow.PageConfirmation, "page.confirmation.title"))
}
