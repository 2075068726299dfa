// Package answers maintains the ephemeral per-session answer set for one
// check-in. The set is a closed shape: every field an offender can submit is
// declared here, and boundary code maps request values onto it through the
// setters below. Anything outside the declared shape never reaches storage.
package answers

import (
	"strings"
	"time"
)

// Unchecked is the sentinel a browser submits for a checkbox group when the
// user unchecks every box (hidden-input convention of the form framework).
// It must never be stored.
const Unchecked = "_unchecked"

// Support aspects an offender can ask for help with, in canonical order.
// The order is shared by the assistance page and the summary builder.
const (
	AspectMentalHealth = "MENTAL_HEALTH"
	AspectAlcohol      = "ALCOHOL"
	AspectDrugs        = "DRUGS"
	AspectMoney        = "MONEY"
	AspectHousing      = "HOUSING"
	AspectSupport      = "SUPPORT_SYSTEM"
	AspectOther        = "OTHER"
)

// AspectOrder fixes the canonical aspect order.
var AspectOrder = []string{
	AspectMentalHealth,
	AspectAlcohol,
	AspectDrugs,
	AspectMoney,
	AspectHousing,
	AspectSupport,
	AspectOther,
}

// Device describes the browser that started the session.
type Device struct {
	Name   string `json:"name"`
	Mobile bool   `json:"mobile"`
}

// Set is the answer set for one wizard session. Created on first visit to the
// entry page, mutated by each step's submission, destroyed at confirmation.
type Set struct {
	StartedAt time.Time `json:"startedAt"`
	Device    Device    `json:"device"`

	MentalHealth string `json:"mentalHealth"`

	Aspects       []string          `json:"aspects"`
	AspectDetails map[string]string `json:"aspectDetails"`

	CallbackRequested string `json:"callbackRequested"`
	CallbackDetails   string `json:"callbackDetails"`

	IdentityOutcome string `json:"identityOutcome"`
}

// NewSet creates a fresh answer set with the session start timestamp and
// device metadata captured. Detail fields start empty for every known aspect.
func NewSet(startedAt time.Time, device Device) *Set {
	details := make(map[string]string, len(AspectOrder))
	for _, aspect := range AspectOrder {
		details[aspect] = ""
	}
	return &Set{
		StartedAt:     startedAt,
		Device:        device,
		AspectDetails: details,
	}
}

// FilterUnchecked removes the unchecked sentinel from a checkbox value list.
// An all-sentinel list filters to an empty list, never to nil, so "user
// cleared everything" stays distinguishable from "field never submitted".
func FilterUnchecked(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == Unchecked {
			continue
		}
		out = append(out, v)
	}
	return out
}

// knownAspect reports whether the value is one of the declared aspects.
func knownAspect(value string) bool {
	for _, aspect := range AspectOrder {
		if aspect == value {
			return true
		}
	}
	return false
}

// SetMentalHealth records the mood rating.
func (s *Set) SetMentalHealth(rating string) {
	s.MentalHealth = rating
}

// SetAssistance records the selected support aspects and their free-text
// details. The sentinel is filtered out of the selection, unknown aspects are
// silently dropped, and the detail for any aspect no longer selected is
// cleared to empty so deselected text never survives.
func (s *Set) SetAssistance(selected []string, details map[string]string) {
	clean := make([]string, 0, len(selected))
	for _, v := range FilterUnchecked(selected) {
		if knownAspect(v) {
			clean = append(clean, v)
		}
	}
	s.Aspects = clean

	if s.AspectDetails == nil {
		s.AspectDetails = make(map[string]string, len(AspectOrder))
	}
	for _, aspect := range AspectOrder {
		if !s.Selected(aspect) {
			s.AspectDetails[aspect] = ""
			continue
		}
		s.AspectDetails[aspect] = strings.TrimSpace(details[aspect])
	}
}

// SetCallback records whether the offender wants a callback and the optional
// detail text.
func (s *Set) SetCallback(requested, details string) {
	s.CallbackRequested = requested
	s.CallbackDetails = strings.TrimSpace(details)
}

// SetIdentityOutcome records the transient video-check result.
func (s *Set) SetIdentityOutcome(result string) {
	s.IdentityOutcome = result
}

// Selected reports whether an aspect is in the current selection.
func (s *Set) Selected(aspect string) bool {
	for _, v := range s.Aspects {
		if v == aspect {
			return true
		}
	}
	return false
}
