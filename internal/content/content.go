// Package content is the localized copy lookup for the wizard. Pages and
// engines pass keys through T and never hard-code user-facing wording, so a
// translated table can swap in without touching control logic.
package content

import "strings"

var table = map[string]string{
	"page.entry.title":         "Check in",
	"page.verify.title":        "Confirm your identity",
	"page.mental-health.title": "How have you been feeling?",
	"page.assistance.title":    "Do you need support with anything?",
	"page.callback.title":      "Do you want someone to call you back?",
	"page.video-inform.title":  "Record a short video",
	"page.video-record.title":  "Record your video",
	"page.video-view.title":    "Check your video",
	"page.review.title":        "Check your answers",
	"page.confirmation.title":  "Check-in complete",
	"page.timeout.title":       "Your session has timed out",
	"page.not-found.title":     "Page not found",
	"page.expired.title":       "This check-in link has expired",
	"page.error.title":         "Sorry, there is a problem with the service",

	"rating.STRUGGLING": "Struggling",
	"rating.NOT_GREAT":  "Not great",
	"rating.OK":         "OK",
	"rating.WELL":       "Well",
	"rating.VERY_WELL":  "Very well",

	"aspect.MENTAL_HEALTH":  "Mental health",
	"aspect.ALCOHOL":        "Alcohol",
	"aspect.DRUGS":          "Drugs",
	"aspect.MONEY":          "Money",
	"aspect.HOUSING":        "Housing",
	"aspect.SUPPORT_SYSTEM": "Friends and family",
	"aspect.OTHER":          "Other",

	"summary.mental-health":    "How you have been feeling",
	"summary.aspects":          "Support you need",
	"summary.aspect-detail":    "Support with", // prefix, aspect label appended
	"summary.callback":         "Callback requested",
	"summary.callback-details": "Callback details",
	"summary.identity":         "Identity check",

	"identity.match":    "Match",
	"identity.no-match": "No match",

	"answer.yes": "Yes",
	"answer.no":  "No",
}

// T returns the copy for a key. Unknown keys fall back to the key itself so a
// missing translation is visible, not a blank page.
func T(key string) string {
	if v, ok := table[key]; ok {
		return v
	}
	return key
}

// Namespace returns every entry under a dotted prefix, keyed by the remainder.
func Namespace(prefix string) map[string]string {
	out := make(map[string]string)
	for k, v := range table {
		if rest, ok := strings.CutPrefix(k, prefix+"."); ok {
			out[rest] = v
		}
	}
	return out
}
