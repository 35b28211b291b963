package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type createRequestRequest struct {
	Title        string `json:"title"          validate:"required"`
	Description  string `json:"description"    validate:"required"`
	AssignedToID string `json:"assigned_to_id" validate:"required"`
}

// userRefResponse is the public user projection embedded in request views.
type userRefResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// requestResponse is the wire view of a single work request.
// It intentionally exposes creator and assignee only as {id, name, email}
// projections so the JSON contract is not coupled to the user entity.
type requestResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedBy   userRefResponse `json:"created_by"`
	AssignedTo  userRefResponse `json:"assigned_to"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// listRequestsResponse carries the three per-caller views. to_approve is
// empty (not null) for non-managers.
type listRequestsResponse struct {
	Created   []requestResponse `json:"created"`
	Assigned  []requestResponse `json:"assigned"`
	ToApprove []requestResponse `json:"to_approve"`
}
