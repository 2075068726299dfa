// Package audit records what happened around a check-in without recording
// who: events carry submission ids and opaque references, never names,
// dates of birth or free-text answers.
package audit

import "time"

// Actions recorded by the wizard.
const (
	ActionGateRefused     = "GATE_REFUSED"
	ActionVerifyAttempt   = "VERIFY_ATTEMPT"
	ActionVideoVerify     = "VIDEO_VERIFY"
	ActionSubmitted       = "SUBMITTED"
	ActionUpstreamFailure = "UPSTREAM_FAILURE"
)

// Event is emitted from wizard logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp    time.Time `json:"timestamp"`
	SubmissionID string    `json:"submissionId"`
	Action       string    `json:"action"`
	Outcome      string    `json:"outcome"`
	// Reference is the opaque error reference also shown to the user on the
	// generic failure page, so support can join the two.
	Reference string `json:"reference,omitempty"`
}
