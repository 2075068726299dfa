package handler

import (
	"net/http"
	"net/url"

	"checkin/internal/checkin/flow"
	"checkin/internal/checkin/forms"
)

// showMentalHealth renders the mood-rating question, re-populated from a
// flashed failure or from the stored answer when revisiting.
func (h *Handler) showMentalHealth(w http.ResponseWriter, r *http.Request) {
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}

	fallback := url.Values{}
	if set.MentalHealth != "" {
		fallback.Set("mentalHealth", set.MentalHealth)
	}

	data := h.pageData(r, flow.PageMentalHealth, "page.mental-health.title")
	payload := h.takeFlash(r, flow.PageMentalHealth, fallback)
	data.Issues = payload.Issues
	data.Values = payload.Body
	h.renderPage(w, flow.PageMentalHealth, data)
}

func (h *Handler) submitMentalHealth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		return
	}

	form, issues := forms.ParseMentalHealth(r.PostForm)
	if len(issues) > 0 {
		h.reject(w, r, flow.PageMentalHealth, issues, r.PostForm)
		return
	}

	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}
	set.SetMentalHealth(form.Rating)
	if !h.saveSet(w, r, set) {
		return
	}
	h.redirect(w, r, flow.Next(flow.PageMentalHealth, flow.ModeFromQuery(r.URL.Query())))
}

// showAssistance renders the support-aspect question.
func (h *Handler) showAssistance(w http.ResponseWriter, r *http.Request) {
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}

	fallback := url.Values{}
	for _, aspect := range set.Aspects {
		fallback.Add("aspects", aspect)
	}
	for aspect, detail := range set.AspectDetails {
		if detail != "" {
			fallback.Set("details-"+aspect, detail)
		}
	}

	data := h.pageData(r, flow.PageAssistance, "page.assistance.title")
	payload := h.takeFlash(r, flow.PageAssistance, fallback)
	data.Issues = payload.Issues
	data.Values = payload.Body
	h.renderPage(w, flow.PageAssistance, data)
}

func (h *Handler) submitAssistance(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		return
	}

	form, issues := forms.ParseAssistance(r.PostForm)
	if len(issues) > 0 {
		h.reject(w, r, flow.PageAssistance, issues, r.PostForm)
		return
	}

	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}
	set.SetAssistance(form.Aspects, form.Details)
	if !h.saveSet(w, r, set) {
		return
	}
	h.redirect(w, r, flow.Next(flow.PageAssistance, flow.ModeFromQuery(r.URL.Query())))
}

// showCallback renders the callback question.
func (h *Handler) showCallback(w http.ResponseWriter, r *http.Request) {
	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}

	fallback := url.Values{}
	if set.CallbackRequested != "" {
		fallback.Set("callback", set.CallbackRequested)
	}
	if set.CallbackDetails != "" {
		fallback.Set("callbackDetails", set.CallbackDetails)
	}

	data := h.pageData(r, flow.PageCallback, "page.callback.title")
	payload := h.takeFlash(r, flow.PageCallback, fallback)
	data.Issues = payload.Issues
	data.Values = payload.Body
	h.renderPage(w, flow.PageCallback, data)
}

func (h *Handler) submitCallback(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, r.URL.RequestURI(), http.StatusSeeOther)
		return
	}

	form, issues := forms.ParseCallback(r.PostForm)
	if len(issues) > 0 {
		h.reject(w, r, flow.PageCallback, issues, r.PostForm)
		return
	}

	set, ok := h.currentSet(w, r)
	if !ok {
		return
	}
	set.SetCallback(form.Requested, form.Details)
	if !h.saveSet(w, r, set) {
		return
	}
	h.redirect(w, r, flow.Next(flow.PageCallback, flow.ModeFromQuery(r.URL.Query())))
}
