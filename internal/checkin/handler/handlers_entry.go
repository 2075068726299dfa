package handler

import (
	"net/http"
	"net/url"
	"time"

	"checkin/internal/audit"
	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/device"
	"checkin/internal/checkin/flow"
	"checkin/internal/checkin/forms"
	"checkin/internal/checkin/models"
	"checkin/pkg/requestcontext"
)

// showEntry renders the start page. Entering it always resets the answer set
// and records a fresh start timestamp, so a user restarting mid-flow gets a
// clean slate.
func (h *Handler) showEntry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	set := answers.NewSet(
		requestcontext.Now(ctx),
		device.FromUserAgent(requestcontext.UserAgent(ctx)),
	)
	if !h.saveSet(w, r, set) {
		return
	}
	h.renderPage(w, flow.PageEntry, h.pageData(r, flow.PageEntry, "page.entry.title"))
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	h.redirect(w, r, flow.Next(flow.PageEntry, flow.ModeSequential))
}

func (h *Handler) showVerify(w http.ResponseWriter, r *http.Request) {
	data := h.pageData(r, flow.PageVerify, "page.verify.title")
	payload := h.takeFlash(r, flow.PageVerify, url.Values{})
	data.Issues = payload.Issues
	data.Values = payload.Body
	h.renderPage(w, flow.PageVerify, data)
}

// submitVerify validates the typed identity details and asks the backend to
// confirm them. Success marks the session verified for this submission and
// moves the wizard on; any failure comes back to this page with the typed
// values intact.
func (h *Handler) submitVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := r.ParseForm(); err != nil {
		h.reject(w, r, flow.PageVerify, []forms.Issue{{Message: "Enter your details", Anchor: "firstName"}}, url.Values{})
		return
	}

	form, issues := forms.ParseVerify(r.PostForm, func() time.Time { return requestcontext.Now(ctx) })
	if len(issues) > 0 {
		h.reject(w, r, flow.PageVerify, issues, r.PostForm)
		return
	}

	submissionID := requestcontext.SubmissionID(ctx)
	result, err := h.backend.VerifyIdentity(ctx, submissionID, models.VerifyIdentityRequest{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		DateOfBirth: form.DateOfBirth.ISO(),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if h.audit != nil {
		outcome := "NO_MATCH"
		if result.Verified {
			outcome = "MATCH"
		}
		_ = h.audit.Emit(ctx, audit.Event{
			SubmissionID: submissionID,
			Action:       audit.ActionVerifyAttempt,
			Outcome:      outcome,
		})
	}

	if !result.Verified {
		h.reject(w, r, flow.PageVerify, []forms.Issue{{
			Message: "We could not match your details. Check them and try again",
			Anchor:  "firstName",
		}}, r.PostForm)
		return
	}

	if err := h.sessions.MarkVerified(ctx, requestcontext.SessionID(ctx), submissionID); err != nil {
		h.fail(w, r, err)
		return
	}
	h.redirect(w, r, flow.Next(flow.PageVerify, flow.ModeFromQuery(r.URL.Query())))
}
