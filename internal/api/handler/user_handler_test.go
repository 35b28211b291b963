package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/workdesk/request-system/internal/api/handler"
	"github.com/workdesk/request-system/internal/api/middleware"
	"github.com/workdesk/request-system/internal/core/domain"
)

type stubDirectoryService struct {
	managers  []domain.UserRef
	employees []domain.UserRef
}

func (s *stubDirectoryService) ListManagers(ctx context.Context) ([]domain.UserRef, error) {
	return s.managers, nil
}

func (s *stubDirectoryService) ListEmployees(ctx context.Context) ([]domain.UserRef, error) {
	return s.employees, nil
}

func newUserServer(svc *stubDirectoryService) *echo.Echo {
	e := newTestEcho()
	h := handler.NewUserHandler(svc)

	g := e.Group("/users", middleware.Auth(testTokens))
	g.GET("/managers", h.Managers)
	g.GET("/employees", h.Employees)
	return e
}

func TestUserHandler_Listings(t *testing.T) {
	svc := &stubDirectoryService{
		managers:  []domain.UserRef{{ID: "m1", Name: "Mara", Email: "mara@example.com"}},
		employees: []domain.UserRef{{ID: "u1", Name: "Alice", Email: "alice@example.com"}, {ID: "u2", Name: "Bob", Email: "bob@example.com"}},
	}
	e := newUserServer(svc)
	token := bearerFor(t, "u1", domain.RoleEmployee)

	for _, tc := range []struct {
		path string
		want []domain.UserRef
	}{
		{"/users/managers", svc.managers},
		{"/users/employees", svc.employees},
	} {
		rec := doAuthJSON(e, http.MethodGet, tc.path, token, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tc.path, rec.Code, rec.Body.String())
		}

		var refs []map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &refs); err != nil {
			t.Fatalf("%s: invalid json: %v", tc.path, err)
		}
		if len(refs) != len(tc.want) {
			t.Fatalf("%s: expected %d entries, got %d", tc.path, len(tc.want), len(refs))
		}
		for i, ref := range refs {
			if ref["id"] != tc.want[i].ID || ref["email"] != tc.want[i].Email {
				t.Fatalf("%s: unexpected entry %d: %+v", tc.path, i, ref)
			}
			if _, leaked := ref["password"]; leaked {
				t.Fatalf("%s: listing leaks credentials: %+v", tc.path, ref)
			}
		}
	}
}

func TestUserHandler_RequiresToken(t *testing.T) {
	e := newUserServer(&stubDirectoryService{})

	rec := doAuthJSON(e, http.MethodGet, "/users/managers", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
