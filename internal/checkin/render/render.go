// Package render owns the HTML surface of the wizard. Templates are compiled
// once at startup; pages receive a single Data shape so handlers stay thin.
package render

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/forms"
	"checkin/internal/checkin/models"
	"checkin/internal/checkin/summary"
	"checkin/internal/content"
)

//go:embed templates/*.html
var templateFS embed.FS

// Data is the view model every page template renders from. Unused fields stay
// zero; templates only reach for what their page needs.
type Data struct {
	Title    string
	Prefix   string // per-submission path prefix, e.g. /checkin/<id>
	BackLink string // empty hides the back link

	// Validation recovery: issues plus the flashed raw body so inputs keep
	// what the user typed.
	Issues []forms.Issue
	Values url.Values

	Answers    *answers.Set
	Rows       []summary.Row
	Identity   summary.Row
	Submission models.Submission

	// Reference is the opaque code shown on the generic failure page.
	Reference  string
	ReviewMode bool
}

// Renderer executes page templates.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

func New(logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"t":       content.T,
		"ratings": func() []string { return forms.MoodRatings },
		"aspects": func() []string { return answers.AspectOrder },
		"anchored": func(issues []forms.Issue, anchor string) bool {
			return forms.Anchored(issues, anchor)
		},
		"value": func(values url.Values, key string) string {
			if values == nil {
				return ""
			}
			return values.Get(key)
		},
		"contains": func(values url.Values, key, want string) bool {
			for _, v := range values[key] {
				if v == want {
					return true
				}
			}
			return false
		},
	}

	templates, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: templates, logger: logger}, nil
}

// Page writes a rendered page. Render failures at this point can only be
// half-written responses, so they are logged, not surfaced.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("template render failed", "template", name, "error", err)
	}
}

// NotFound renders the not-found outcome in place.
func (r *Renderer) NotFound(w http.ResponseWriter) {
	r.Page(w, http.StatusNotFound, "not-found.html", Data{Title: content.T("page.not-found.title")})
}

// Expired renders the expired outcome in place.
func (r *Renderer) Expired(w http.ResponseWriter) {
	r.Page(w, http.StatusGone, "expired.html", Data{Title: content.T("page.expired.title")})
}

// Timeout renders the session-timeout outcome in place of the requested page;
// the browser URL is deliberately left unchanged.
func (r *Renderer) Timeout(w http.ResponseWriter, prefix string) {
	r.Page(w, http.StatusOK, "timeout.html", Data{
		Title:  content.T("page.timeout.title"),
		Prefix: prefix,
	})
}

// Failure renders the generic failure page with the opaque reference. The
// status comes from the caller so upstream failures keep their mapped code.
func (r *Renderer) Failure(w http.ResponseWriter, status int, reference string) {
	r.Page(w, status, "error.html", Data{
		Title:     content.T("page.error.title"),
		Reference: reference,
	})
}
