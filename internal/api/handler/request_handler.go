package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workdesk/request-system/internal/api/metrics"
	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

// RequestHandler handles HTTP requests for the work-request lifecycle.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// List handles GET /requests.
//
// @Summary      List requests visible to the caller
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  listRequestsResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	userID, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	lists, err := h.service.List(c.Request().Context(), userID, role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, listRequestsResponse{
		Created:   toRequestResponses(lists.Created),
		Assigned:  toRequestResponses(lists.Assigned),
		ToApprove: toRequestResponses(lists.ToApprove),
	})
}

// Create handles POST /requests.
//
// @Summary      Create a new work request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  requestResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), ports.CreateRequestInput{
		Title:        req.Title,
		Description:  req.Description,
		AssignedToID: req.AssignedToID,
		CallerID:     userID,
	})
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toRequestResponse(view))
}

// Approve handles PUT /requests/:id/approve.
//
// @Summary      Approve a pending request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  requestResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /requests/{id}/approve [put]
func (h *RequestHandler) Approve(c echo.Context) error {
	return h.transition(c, h.service.Approve, domain.StatusApproved)
}

// Reject handles PUT /requests/:id/reject.
//
// @Summary      Reject a pending request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  requestResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /requests/{id}/reject [put]
func (h *RequestHandler) Reject(c echo.Context) error {
	return h.transition(c, h.service.Reject, domain.StatusRejected)
}

// Close handles PUT /requests/:id/close.
//
// @Summary      Close an approved request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  requestResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /requests/{id}/close [put]
func (h *RequestHandler) Close(c echo.Context) error {
	return h.transition(c, h.service.Close, domain.StatusClosed)
}

// transition is the shared handler body for the three status operations.
func (h *RequestHandler) transition(
	c echo.Context,
	op func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error),
	target domain.RequestStatus,
) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	view, err := op(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		metrics.TransitionErrorsTotal.WithLabelValues(transitionErrorReason(err)).Inc()
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(target)).Inc()
	return c.JSON(http.StatusOK, toRequestResponse(view))
}

func transitionErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRequestNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_state"
	case errors.Is(err, domain.ErrStatusConflict):
		return "conflict"
	default:
		return "internal"
	}
}
