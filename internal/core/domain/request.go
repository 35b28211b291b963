package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a work request.
type RequestStatus string

const (
	StatusPendingApproval RequestStatus = "PENDING_APPROVAL"
	StatusApproved        RequestStatus = "APPROVED"
	StatusRejected        RequestStatus = "REJECTED"
	StatusCompleted       RequestStatus = "COMPLETED"
	StatusClosed          RequestStatus = "CLOSED"
)

// validTransitions defines the allowed state machine transitions.
// APPROVED -> COMPLETED has no API operation behind it today; it is kept in
// the table as the extension point for a future completion-reporting flow.
// REJECTED and CLOSED are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusCompleted, StatusClosed},
	StatusCompleted:       {StatusClosed},
}

var ErrRequestNotFound = errors.New("request not found")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidTransition = errors.New("invalid status transition")
var ErrStatusConflict = errors.New("request status changed concurrently")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is permitted from s.
func (s RequestStatus) Terminal() bool {
	return len(validTransitions[s]) == 0
}

// Request is the core aggregate: a unit of work created by one user,
// assigned to another, and gated by the assignee's manager.
type Request struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Status       RequestStatus `json:"status"`
	CreatedByID  string        `json:"created_by_id"`
	AssignedToID string        `json:"assigned_to_id"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}
