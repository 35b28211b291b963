package ports

import (
	"context"

	"github.com/workdesk/request-system/internal/core/domain"
)

// RequestRepository defines persistence operations for work requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) (*domain.Request, error)
	FindByID(ctx context.Context, id string) (*domain.Request, error)

	// UpdateStatus performs a compare-and-swap: the status is set to `to`
	// only if the stored status still equals `from`. When the request exists
	// but the status no longer matches (a concurrent writer won the race),
	// domain.ErrStatusConflict is returned; an absent request yields
	// domain.ErrRequestNotFound. On success the updated request is returned.
	UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.Request, error)

	// ListByCreator returns requests created by userID, newest first.
	ListByCreator(ctx context.Context, userID string) ([]*domain.Request, error)
	// ListByAssignee returns requests assigned to userID, newest first.
	ListByAssignee(ctx context.Context, userID string) ([]*domain.Request, error)
	// ListPendingByAssignees returns PENDING_APPROVAL requests assigned to
	// any of assigneeIDs, newest first.
	ListPendingByAssignees(ctx context.Context, assigneeIDs []string) ([]*domain.Request, error)
}
