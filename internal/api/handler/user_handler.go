package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workdesk/request-system/internal/core/ports"
)

// UserHandler serves the read-only directory listings.
type UserHandler struct {
	directory ports.DirectoryService
}

func NewUserHandler(directory ports.DirectoryService) *UserHandler {
	return &UserHandler{directory: directory}
}

// Managers handles GET /users/managers.
//
// @Summary      List users with the MANAGER role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userRefResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/managers [get]
func (h *UserHandler) Managers(c echo.Context) error {
	refs, err := h.directory.ListManagers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userRefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, toUserRefResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}

// Employees handles GET /users/employees.
//
// @Summary      List users with the EMPLOYEE role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userRefResponse
// @Failure      401  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /users/employees [get]
func (h *UserHandler) Employees(c echo.Context) error {
	refs, err := h.directory.ListEmployees(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userRefResponse, 0, len(refs))
	for _, r := range refs {
		out = append(out, toUserRefResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}
