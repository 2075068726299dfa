package handler

import (
	"io"
	"net/http"

	"checkin/internal/audit"
	"checkin/internal/checkin/flow"
	"checkin/pkg/requestcontext"
)

// maxClipBytes caps the uploaded clip size; anything past a short selfie
// video is a client bug.
const maxClipBytes = 64 << 20

func (h *Handler) showVideoInform(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, flow.PageVideoInform, h.pageData(r, flow.PageVideoInform, "page.video-inform.title"))
}

func (h *Handler) showVideoRecord(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, flow.PageVideoRecord, h.pageData(r, flow.PageVideoRecord, "page.video-record.title"))
}

func (h *Handler) showVideoView(w http.ResponseWriter, r *http.Request) {
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}
	data := h.pageData(r, flow.PageVideoView, "page.video-view.title")
	data.Answers = set
	h.renderPage(w, flow.PageVideoView, data)
}

// handleVideoUpload passes the recorded clip straight through to the backend.
// The wizard never writes video to its own stores.
func (h *Handler) handleVideoUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	submissionID := requestcontext.SubmissionID(ctx)

	body := http.MaxBytesReader(w, r.Body, maxClipBytes)
	err := h.backend.UploadVideo(ctx, submissionID, 1, r.Header.Get("Content-Type"), body)
	if err != nil {
		h.logger.ErrorContext(ctx, "video upload failed",
			"error", err,
			"submission_id", submissionID,
		)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"status":  "ERROR",
			"message": "The video could not be saved",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// handleVideoPlayback streams the stored clip back for the view page's player.
func (h *Handler) handleVideoPlayback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	clip, contentType, err := h.backend.StreamVideo(ctx, requestcontext.SubmissionID(ctx), 1)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer clip.Close()

	if contentType == "" {
		contentType = "video/webm"
	}
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, clip); err != nil {
		h.logger.WarnContext(ctx, "video playback interrupted", "error", err)
	}
}

// handleVideoVerify runs the automated identity check against the clip the
// record page just uploaded and stores the outcome in the answer set. The
// record page polls this endpoint, so the response is JSON rather than a
// rendered page, and a backend failure is reported in-band instead of through
// the generic failure page.
func (h *Handler) handleVideoVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}

	submissionID := requestcontext.SubmissionID(ctx)
	result, err := h.backend.AutoVerifyVideo(ctx, submissionID, 1)
	if err != nil {
		h.logger.ErrorContext(ctx, "video verify failed",
			"error", err,
			"submission_id", submissionID,
		)
		writeJSON(w, http.StatusOK, map[string]string{
			"status":  "ERROR",
			"message": "The identity check could not be completed",
		})
		return
	}

	set.SetIdentityOutcome(result.Result)
	if !h.saveSet(w, r, set) {
		return
	}

	if h.audit != nil {
		_ = h.audit.Emit(ctx, audit.Event{
			SubmissionID: submissionID,
			Action:       audit.ActionVideoVerify,
			Outcome:      result.Result,
		})
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "OK",
		"result": result.Result,
	})
}
