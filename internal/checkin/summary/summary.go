// Package summary projects the accumulated answer set into the rows of the
// check-your-answers page. It is a pure projection, recomputed on every
// render and never cached.
package summary

import (
	"strings"

	"checkin/internal/checkin/answers"
	"checkin/internal/checkin/flow"
	"checkin/internal/checkin/models"
	"checkin/internal/content"
)

// Row is one label/value pair on the review page with the edit link that
// jumps back into the originating step in review-edit mode.
type Row struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	EditHref string `json:"editHref"`
}

// Rows builds the review rows in canonical order: mood rating, the joined
// aspect selection, one row per aspect with non-empty detail text (aspect
// order), callback yes/no, and callback details only for a "yes" with text.
func Rows(set *answers.Set) []Row {
	rows := []Row{
		{
			Label:    content.T("summary.mental-health"),
			Value:    content.T("rating." + set.MentalHealth),
			EditHref: flow.EditHref(flow.PageMentalHealth),
		},
		{
			Label:    content.T("summary.aspects"),
			Value:    joinAspects(set.Aspects),
			EditHref: flow.EditHref(flow.PageAssistance),
		},
	}

	for _, aspect := range answers.AspectOrder {
		detail := strings.TrimSpace(set.AspectDetails[aspect])
		if detail == "" {
			continue
		}
		rows = append(rows, Row{
			Label:    content.T("summary.aspect-detail") + " " + strings.ToLower(content.T("aspect."+aspect)),
			Value:    detail,
			EditHref: flow.EditHref(flow.PageAssistance),
		})
	}

	rows = append(rows, Row{
		Label:    content.T("summary.callback"),
		Value:    yesNo(set.CallbackRequested),
		EditHref: flow.EditHref(flow.PageCallback),
	})

	if set.CallbackRequested == "YES" && strings.TrimSpace(set.CallbackDetails) != "" {
		rows = append(rows, Row{
			Label:    content.T("summary.callback-details"),
			Value:    strings.TrimSpace(set.CallbackDetails),
			EditHref: flow.EditHref(flow.PageCallback),
		})
	}

	return rows
}

// IdentityRow builds the identity-verification outcome row from the transient
// video-check result. Anything other than the exact match sentinel, including
// empty, reads as no match.
func IdentityRow(set *answers.Set) Row {
	value := content.T("identity.no-match")
	if set.IdentityOutcome == models.VideoMatch {
		value = content.T("identity.match")
	}
	return Row{
		Label:    content.T("summary.identity"),
		Value:    value,
		EditHref: flow.EditHref(flow.PageVideoRecord),
	}
}

// yesNo renders the callback answer; only the exact "YES" sentinel reads as
// yes, anything else as no.
func yesNo(requested string) string {
	if requested == "YES" {
		return content.T("answer.yes")
	}
	return content.T("answer.no")
}

// joinAspects renders the selection human-readable, comma-separated, each
// label trimmed.
func joinAspects(aspects []string) string {
	labels := make([]string, 0, len(aspects))
	for _, aspect := range aspects {
		labels = append(labels, strings.TrimSpace(content.T("aspect."+aspect)))
	}
	return strings.Join(labels, ", ")
}
