// Package flow defines the fixed page order of the check-in wizard and the
// navigation transitions between pages. Transitions are pure table lookups
// from (page, mode); nothing here touches HTTP or storage.
package flow

import "net/url"

// Page identifies one wizard page.
type Page string

const (
	PageEntry        Page = "entry"
	PageVerify       Page = "verify"
	PageMentalHealth Page = "mental-health"
	PageAssistance   Page = "assistance"
	PageCallback     Page = "callback"
	PageVideoInform  Page = "video-inform"
	PageVideoRecord  Page = "video-record"
	PageVideoView    Page = "video-view"
	PageReview       Page = "review"
	PageConfirmation Page = "confirmation"
)

// Mode is the navigation mode a request runs under.
type Mode int

const (
	// ModeSequential walks the declared page order.
	ModeSequential Mode = iota
	// ModeReviewEdit is entered from a check-your-answers edit link: every
	// overridable page's next and back both point at the review page, so one
	// change lands straight back on the summary.
	ModeReviewEdit
)

// ReviewParam is the query parameter that signals review-edit mode.
const ReviewParam = "checkAnswers"

// Definition is one immutable page entry, compiled into the sequencer.
type Definition struct {
	ID    Page
	Path  string // relative to the per-submission prefix
	Back  string
	Next  string
	// RequiresVerified pages are only reachable after a successful identity
	// check in the current session.
	RequiresVerified bool
	// ReviewOverride pages take part in the review-edit loop. Verify and
	// review sit outside it: their links are fixed.
	ReviewOverride bool
}

// pages holds the fixed linear order of the wizard.
var pages = []Definition{
	{ID: PageEntry, Path: "/", Next: "/verify"},
	{ID: PageVerify, Path: "/verify", Back: "/", Next: "/questions/mental-health"},
	{ID: PageMentalHealth, Path: "/questions/mental-health", Back: "/verify", Next: "/questions/assistance", RequiresVerified: true, ReviewOverride: true},
	{ID: PageAssistance, Path: "/questions/assistance", Back: "/questions/mental-health", Next: "/questions/callback", RequiresVerified: true, ReviewOverride: true},
	{ID: PageCallback, Path: "/questions/callback", Back: "/questions/assistance", Next: "/video/inform", RequiresVerified: true, ReviewOverride: true},
	{ID: PageVideoInform, Path: "/video/inform", Back: "/questions/callback", Next: "/video/record", RequiresVerified: true, ReviewOverride: true},
	{ID: PageVideoRecord, Path: "/video/record", Back: "/video/inform", Next: "/video/view", RequiresVerified: true, ReviewOverride: true},
	{ID: PageVideoView, Path: "/video/view", Back: "/video/record", Next: "/check-your-answers", RequiresVerified: true, ReviewOverride: true},
	{ID: PageReview, Path: "/check-your-answers", Back: "/video/view", Next: "/confirmation", RequiresVerified: true},
	{ID: PageConfirmation, Path: "/confirmation", RequiresVerified: true},
}

var byID = func() map[Page]Definition {
	m := make(map[Page]Definition, len(pages))
	for _, p := range pages {
		m[p.ID] = p
	}
	return m
}()

// Lookup returns the definition for a page id.
func Lookup(id Page) (Definition, bool) {
	def, ok := byID[id]
	return def, ok
}

// ReviewPath is the canonical path of the check-your-answers page.
const ReviewPath = "/check-your-answers"

// Next computes the destination after a successful submission on a page.
func Next(id Page, mode Mode) string {
	def, ok := byID[id]
	if !ok {
		return ""
	}
	if mode == ModeReviewEdit && def.ReviewOverride {
		return ReviewPath
	}
	return def.Next
}

// Back computes the back-link destination for a page.
func Back(id Page, mode Mode) string {
	def, ok := byID[id]
	if !ok {
		return ""
	}
	if mode == ModeReviewEdit && def.ReviewOverride {
		return ReviewPath
	}
	return def.Back
}

// ModeFromQuery maps the review-return marker onto an explicit mode at the
// boundary, so the rest of the sequencer never reads raw queries.
func ModeFromQuery(query url.Values) Mode {
	if query.Get(ReviewParam) == "true" {
		return ModeReviewEdit
	}
	return ModeSequential
}

// EditHref builds a review-edit link to a page, carrying the review-return
// marker so the destination page flips into ModeReviewEdit.
func EditHref(id Page) string {
	def, ok := byID[id]
	if !ok {
		return ""
	}
	return def.Path + "?" + ReviewParam + "=true"
}
