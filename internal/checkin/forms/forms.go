// Package forms validates wizard page submissions. Every page follows the
// same two-outcome contract: success yields the parsed value for the answer
// set, failure yields field-anchored issues the page re-renders with.
package forms

import (
	"net/url"
	"strings"
	"unicode"

	"checkin/internal/checkin/answers"
)

// Issue is one field-anchored validation failure. An empty Message marks a
// companion issue: it exists only to trigger the visual highlight of a second
// input without duplicating the text shown in the error summary.
type Issue struct {
	Message string `json:"message"`
	Anchor  string `json:"fieldAnchor"`
}

// Anchored reports whether any issue targets the given anchor, so templates
// can highlight the matching input.
func Anchored(issues []Issue, anchor string) bool {
	for _, issue := range issues {
		if issue.Anchor == anchor {
			return true
		}
	}
	return false
}

// sentence uppercases the first rune so a field label can open a message.
func sentence(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Mood ratings offered on the mental-health page, worst first.
var MoodRatings = []string{"STRUGGLING", "NOT_GREAT", "OK", "WELL", "VERY_WELL"}

func knownRating(v string) bool {
	for _, r := range MoodRatings {
		if r == v {
			return true
		}
	}
	return false
}

// MentalHealthForm is the parsed mental-health page submission.
type MentalHealthForm struct {
	Rating string
}

// ParseMentalHealth validates the mood rating: required, one of the known
// options. Unknown values are rejected, not coerced.
func ParseMentalHealth(body url.Values) (MentalHealthForm, []Issue) {
	rating := body.Get("mentalHealth")
	if rating == "" || !knownRating(rating) {
		return MentalHealthForm{}, []Issue{{
			Message: "Select how you have been feeling",
			Anchor:  "mentalHealth",
		}}
	}
	return MentalHealthForm{Rating: rating}, nil
}

// AssistanceForm is the parsed assistance page submission.
type AssistanceForm struct {
	Aspects []string
	Details map[string]string
}

// ParseAssistance validates the support-aspect selection: at least one aspect
// once the unchecked sentinel is filtered out. Detail text rides along
// unvalidated; the answer set clears details for deselected aspects.
func ParseAssistance(body url.Values) (AssistanceForm, []Issue) {
	selected := answers.FilterUnchecked(body["aspects"])
	if len(selected) == 0 {
		return AssistanceForm{}, []Issue{{
			Message: "Select the areas you need support with, or 'Other'",
			Anchor:  "aspects",
		}}
	}

	details := make(map[string]string, len(answers.AspectOrder))
	for _, aspect := range answers.AspectOrder {
		details[aspect] = body.Get("details-" + aspect)
	}
	return AssistanceForm{Aspects: selected, Details: details}, nil
}

// CallbackForm is the parsed callback page submission.
type CallbackForm struct {
	Requested string
	Details   string
}

// ParseCallback validates the callback yes/no choice. The detail text is
// optional either way; the summary only surfaces it for a "yes".
func ParseCallback(body url.Values) (CallbackForm, []Issue) {
	requested := body.Get("callback")
	if requested != "YES" && requested != "NO" {
		return CallbackForm{}, []Issue{{
			Message: "Select yes if you want someone to call you back",
			Anchor:  "callback",
		}}
	}
	return CallbackForm{
		Requested: requested,
		Details:   body.Get("callbackDetails"),
	}, nil
}

// VerifyForm is the parsed identity-verification page submission.
type VerifyForm struct {
	FirstName   string
	LastName    string
	DateOfBirth DateValue
}

// ParseVerify validates the verify page: both names required, date of birth a
// required real date in the past.
func ParseVerify(body url.Values, now NowFunc) (VerifyForm, []Issue) {
	var issues []Issue

	first := strings.TrimSpace(body.Get("firstName"))
	if first == "" {
		issues = append(issues, Issue{Message: "Enter your first name", Anchor: "firstName"})
	}
	last := strings.TrimSpace(body.Get("lastName"))
	if last == "" {
		issues = append(issues, Issue{Message: "Enter your last name", Anchor: "lastName"})
	}

	dob := DateField{
		Anchor:     "dateOfBirth",
		Label:      "your date of birth",
		Required:   true,
		Constraint: MustBePast,
	}
	value, dateIssues := dob.Validate(DateInputFromBody(body, "dateOfBirth"), now())
	issues = append(issues, dateIssues...)

	if len(issues) > 0 {
		return VerifyForm{}, issues
	}
	return VerifyForm{FirstName: first, LastName: last, DateOfBirth: value}, nil
}
