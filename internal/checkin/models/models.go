// Package models holds the shared data model for the check-in wizard.
// The Submission resource is owned by the case-management backend; this
// service reads it and never mutates it directly.
package models

import "time"

// Status is the lifecycle status of a check-in resource.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusSubmitted Status = "SUBMITTED"
	StatusReviewed  Status = "REVIEWED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// Submission is the backend's view of one scheduled check-in.
type Submission struct {
	ID       string    `json:"id"`
	Status   Status    `json:"status"`
	DueDate  time.Time `json:"dueDate"`
	PersonID string    `json:"personId"`
}

// VerifyIdentityRequest carries the details the offender types on the verify
// page. Date of birth travels as ISO date (backend contract).
type VerifyIdentityRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
}

// VerifyIdentityResult is the backend's answer to an identity check.
type VerifyIdentityResult struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error,omitempty"`
}

// AutoVerifyResult is the backend's answer to an automated video check.
// Result is MATCH for a positive identification; anything else counts as no
// match.
type AutoVerifyResult struct {
	Result string `json:"result"`
}

// VideoMatch is the only Result value treated as a positive identification.
const VideoMatch = "MATCH"
