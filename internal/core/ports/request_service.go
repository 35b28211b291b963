package ports

import (
	"context"
	"time"

	"github.com/workdesk/request-system/internal/core/domain"
)

// CreateRequestInput carries all data needed to create a new work request.
type CreateRequestInput struct {
	Title        string
	Description  string
	AssignedToID string
	CallerID     string
}

// RequestView is a request hydrated with the public projections of its
// creator and assignee, as rendered on the wire.
type RequestView struct {
	ID          string
	Title       string
	Description string
	Status      domain.RequestStatus
	CreatedBy   domain.UserRef
	AssignedTo  domain.UserRef
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RequestLists is the three-view aggregation returned by List. A request
// assigned to its own creator appears in both Created and Assigned; no dedup
// is performed.
type RequestLists struct {
	Created   []RequestView
	Assigned  []RequestView
	ToApprove []RequestView
}

// RequestService owns the request lifecycle: creation, the
// approve/reject/close transitions and who may trigger them, and the
// per-caller list views.
type RequestService interface {
	Create(ctx context.Context, input CreateRequestInput) (*RequestView, error)
	// Approve moves a PENDING_APPROVAL request to APPROVED. The caller must
	// be the direct manager of the request's assignee.
	Approve(ctx context.Context, requestID, callerID string) (*RequestView, error)
	// Reject moves a PENDING_APPROVAL request to REJECTED, under the same
	// authorization rule as Approve.
	Reject(ctx context.Context, requestID, callerID string) (*RequestView, error)
	// Close moves an APPROVED or COMPLETED request to CLOSED. The caller
	// must be the assignee.
	Close(ctx context.Context, requestID, callerID string) (*RequestView, error)
	// List returns requests created by the caller, assigned to the caller,
	// and — for managers — PENDING_APPROVAL requests assigned to the
	// caller's direct subordinates.
	List(ctx context.Context, callerID string, callerRole domain.Role) (*RequestLists, error)
}
