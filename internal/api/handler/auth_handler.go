package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workdesk/request-system/internal/api/metrics"
	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6"`
	Name      string `json:"name"       validate:"required"`
	Role      string `json:"role"       validate:"required,oneof=EMPLOYEE MANAGER"`
	ManagerID string `json:"manager_id,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// toRegistration maps the wire payload onto the role-tagged registration
// variant. A manager payload carrying a manager_id is rejected outright —
// only employees report to someone.
func toRegistration(req registerRequest) (domain.Registration, error) {
	switch domain.Role(req.Role) {
	case domain.RoleManager:
		if req.ManagerID != "" {
			return domain.Registration{}, echo.NewHTTPError(http.StatusBadRequest, "managers cannot have a manager")
		}
		return domain.NewManagerRegistration(req.Email, req.Password, req.Name), nil
	default:
		return domain.NewEmployeeRegistration(req.Email, req.Password, req.Name, req.ManagerID), nil
	}
}

// Register creates a new user account and returns a token with the public
// user projection.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reg, err := toRegistration(req)
	if err != nil {
		return err
	}

	token, user, err := h.authService.Register(c.Request().Context(), reg)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, authResponse{Token: token, User: toUserResponse(user)})
}

// Login authenticates a user and returns a token with the public user
// projection.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}

// toUserResponse projects the user for the wire: id, name, email, role —
// never the password hash, never the manager reference.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role)}
}
