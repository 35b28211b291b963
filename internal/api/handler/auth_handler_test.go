package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/workdesk/request-system/internal/api"
	"github.com/workdesk/request-system/internal/api/handler"
	"github.com/workdesk/request-system/internal/core/domain"
)

// newTestEcho returns an echo instance configured like the production
// router: payload validator plus the central domain error mapping.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

type stubAuthService struct {
	registerFn func(ctx context.Context, reg domain.Registration) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
			if reg.Email != "a@example.com" || reg.Role() != domain.RoleEmployee || reg.ManagerID() != "m1" {
				t.Fatalf("unexpected registration: %+v", reg)
			}
			return "token123", &domain.User{
				ID: "u1", Name: reg.Name, Email: reg.Email, Role: reg.Role(), PasswordHash: "hash",
			}, nil
		},
	}
	e.POST("/auth/register", handler.NewAuthHandler(stub).Register)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"a@example.com","password":"secret1","name":"Alice","role":"EMPLOYEE","manager_id":"m1"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" || user["role"] != "EMPLOYEE" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("response leaks password hash: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	e.POST("/auth/register", handler.NewAuthHandler(stub).Register)

	cases := map[string]string{
		"malformed json":       `not-json`,
		"bad email":            `{"email":"nope","password":"secret1","name":"A","role":"EMPLOYEE"}`,
		"short password":       `{"email":"a@example.com","password":"abc","name":"A","role":"EMPLOYEE"}`,
		"unknown role":         `{"email":"a@example.com","password":"secret1","name":"A","role":"ADMIN"}`,
		"manager with manager": `{"email":"a@example.com","password":"secret1","name":"A","role":"MANAGER","manager_id":"m1"}`,
	}
	for name, body := range cases {
		rec := doJSON(e, http.MethodPost, "/auth/register", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, reg domain.Registration) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	e.POST("/auth/register", handler.NewAuthHandler(stub).Register)

	rec := doJSON(e, http.MethodPost, "/auth/register",
		`{"email":"a@example.com","password":"secret1","name":"Alice","role":"MANAGER"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Name: "Alice", Email: email, Role: domain.RoleManager}, nil
		},
	}
	e.POST("/auth/login", handler.NewAuthHandler(stub).Login)

	rec := doJSON(e, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	e.POST("/auth/login", handler.NewAuthHandler(stub).Login)

	// Wrong password and unknown email travel the same service error; the
	// wire response must be identical for both.
	first := doJSON(e, http.MethodPost, "/auth/login", `{"email":"alice@example.com","password":"bad-one"}`)
	second := doJSON(e, http.MethodPost, "/auth/login", `{"email":"ghost@example.com","password":"whatever"}`)

	for _, rec := range []*httptest.ResponseRecorder{first, second} {
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	}
	if first.Body.String() != second.Body.String() {
		t.Fatalf("credential failures must be indistinguishable: %s vs %s", first.Body.String(), second.Body.String())
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	e.POST("/auth/login", handler.NewAuthHandler(stub).Login)

	rec := doJSON(e, http.MethodPost, "/auth/login", "{")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
