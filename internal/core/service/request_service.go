package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

// RequestService implements the request lifecycle engine: creation, the
// approve/reject/close transitions with their authorization rules, and the
// per-caller list views.
type RequestService struct {
	requests ports.RequestRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, users ports.UserRepository, logger zerolog.Logger) *RequestService {
	return &RequestService{requests: requests, users: users, logger: logger}
}

// Create produces a new request in PENDING_APPROVAL. Any authenticated user
// may create a request against any existing user, including themselves.
func (s *RequestService) Create(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestView, error) {
	if input.Title == "" || input.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrValidation)
	}

	assignee, err := s.users.FindByID(ctx, input.AssignedToID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: assignee does not exist", domain.ErrValidation)
		}
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.requests.Create(ctx, &domain.Request{
		Title:        input.Title,
		Description:  input.Description,
		Status:       domain.StatusPendingApproval,
		CreatedByID:  input.CallerID,
		AssignedToID: input.AssignedToID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", created.ID).
		Str("created_by", input.CallerID).
		Str("assigned_to", assignee.ID).
		Msg("request created")

	return s.hydrateOne(ctx, created)
}

// Approve moves the request to APPROVED. Only the assignee's direct manager
// may approve, and only from PENDING_APPROVAL.
func (s *RequestService) Approve(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	return s.review(ctx, requestID, callerID, domain.StatusApproved)
}

// Reject moves the request to REJECTED, under the same rule as Approve.
func (s *RequestService) Reject(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	return s.review(ctx, requestID, callerID, domain.StatusRejected)
}

// review is the shared approve/reject path. Existence is checked before
// authorization so an absent request reports NotFound rather than Forbidden.
func (s *RequestService) review(ctx context.Context, requestID, callerID string, to domain.RequestStatus) (*ports.RequestView, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.users.FindByID(ctx, req.AssignedToID)
	if err != nil {
		return nil, err
	}
	if !assignee.IsManagedBy(callerID) {
		return nil, fmt.Errorf("%w: only the assignee's manager may approve or reject", domain.ErrForbidden)
	}

	if req.Status != domain.StatusPendingApproval {
		return nil, fmt.Errorf("%w: request is %s, not pending approval", domain.ErrInvalidTransition, req.Status)
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, domain.StatusPendingApproval, to)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", requestID).
		Str("caller_id", callerID).
		Str("status", string(to)).
		Msg("request reviewed")

	return s.hydrateOne(ctx, updated)
}

// Close moves the request to CLOSED. Only the assignee may close, and only
// once the request has been approved (or completed).
func (s *RequestService) Close(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	req, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if req.AssignedToID != callerID {
		return nil, fmt.Errorf("%w: only the assignee may close a request", domain.ErrForbidden)
	}

	if !req.Status.CanTransitionTo(domain.StatusClosed) {
		return nil, fmt.Errorf("%w: request must be approved before closing", domain.ErrInvalidTransition)
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, req.Status, domain.StatusClosed)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("request_id", requestID).Str("caller_id", callerID).Msg("request closed")

	return s.hydrateOne(ctx, updated)
}

// List returns the three views for the caller. A self-assigned request shows
// up in both Created and Assigned; the views are independent by design.
func (s *RequestService) List(ctx context.Context, callerID string, callerRole domain.Role) (*ports.RequestLists, error) {
	created, err := s.requests.ListByCreator(ctx, callerID)
	if err != nil {
		return nil, err
	}

	assigned, err := s.requests.ListByAssignee(ctx, callerID)
	if err != nil {
		return nil, err
	}

	var toApprove []*domain.Request
	if callerRole == domain.RoleManager {
		subordinates, err := s.users.ListIDsByManager(ctx, callerID)
		if err != nil {
			return nil, err
		}
		if len(subordinates) > 0 {
			toApprove, err = s.requests.ListPendingByAssignees(ctx, subordinates)
			if err != nil {
				return nil, err
			}
		}
	}

	refs, err := s.userRefs(ctx, created, assigned, toApprove)
	if err != nil {
		return nil, err
	}

	lists := &ports.RequestLists{
		Created:   make([]ports.RequestView, 0, len(created)),
		Assigned:  make([]ports.RequestView, 0, len(assigned)),
		ToApprove: make([]ports.RequestView, 0, len(toApprove)),
	}
	for _, r := range created {
		lists.Created = append(lists.Created, toView(r, refs))
	}
	for _, r := range assigned {
		lists.Assigned = append(lists.Assigned, toView(r, refs))
	}
	for _, r := range toApprove {
		lists.ToApprove = append(lists.ToApprove, toView(r, refs))
	}
	return lists, nil
}

// hydrateOne builds the wire view of a single request.
func (s *RequestService) hydrateOne(ctx context.Context, req *domain.Request) (*ports.RequestView, error) {
	refs, err := s.userRefs(ctx, []*domain.Request{req})
	if err != nil {
		return nil, err
	}
	view := toView(req, refs)
	return &view, nil
}

// userRefs batch-loads the public projections of every creator and assignee
// referenced by the given request slices.
func (s *RequestService) userRefs(ctx context.Context, groups ...[]*domain.Request) (map[string]domain.UserRef, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, group := range groups {
		for _, r := range group {
			for _, id := range []string{r.CreatedByID, r.AssignedToID} {
				if _, ok := seen[id]; !ok && id != "" {
					seen[id] = struct{}{}
					ids = append(ids, id)
				}
			}
		}
	}
	if len(ids) == 0 {
		return map[string]domain.UserRef{}, nil
	}

	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make(map[string]domain.UserRef, len(users))
	for _, u := range users {
		refs[u.ID] = u.Ref()
	}
	return refs, nil
}

func toView(r *domain.Request, refs map[string]domain.UserRef) ports.RequestView {
	return ports.RequestView{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		CreatedBy:   refs[r.CreatedByID],
		AssignedTo:  refs[r.AssignedToID],
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
