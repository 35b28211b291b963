package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/workdesk/request-system/internal/api/handler"
	"github.com/workdesk/request-system/internal/api/middleware"
	"github.com/workdesk/request-system/internal/auth"
	"github.com/workdesk/request-system/internal/core/domain"
	"github.com/workdesk/request-system/internal/core/ports"
)

type stubRequestService struct {
	createFn  func(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestView, error)
	approveFn func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error)
	rejectFn  func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error)
	closeFn   func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error)
	listFn    func(ctx context.Context, callerID string, callerRole domain.Role) (*ports.RequestLists, error)
}

func (s *stubRequestService) Create(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestView, error) {
	return s.createFn(ctx, input)
}

func (s *stubRequestService) Approve(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	return s.approveFn(ctx, requestID, callerID)
}

func (s *stubRequestService) Reject(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	return s.rejectFn(ctx, requestID, callerID)
}

func (s *stubRequestService) Close(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
	return s.closeFn(ctx, requestID, callerID)
}

func (s *stubRequestService) List(ctx context.Context, callerID string, callerRole domain.Role) (*ports.RequestLists, error) {
	return s.listFn(ctx, callerID, callerRole)
}

var testTokens = auth.NewTokenService("test-secret", time.Hour)

// newRequestServer wires the request routes the way the production router
// does: bearer guard in front, validator and error mapping installed, and no
// route-level role gate so authorization runs in the service after the load.
func newRequestServer(svc ports.RequestService) *echo.Echo {
	e := newTestEcho()
	h := handler.NewRequestHandler(svc)
	guard := middleware.Auth(testTokens)

	g := e.Group("/requests", guard)
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("/:id/approve", h.Approve)
	g.PUT("/:id/reject", h.Reject)
	g.PUT("/:id/close", h.Close)
	return e
}

func bearerFor(t *testing.T, id string, role domain.Role) string {
	t.Helper()
	token, err := testTokens.Mint(&domain.User{ID: id, Role: role})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

func doAuthJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleView(id string, status domain.RequestStatus) *ports.RequestView {
	return &ports.RequestView{
		ID:          id,
		Title:       "Fix the printer",
		Description: "Third floor printer jams on duplex",
		Status:      status,
		CreatedBy:   domain.UserRef{ID: "u1", Name: "Alice", Email: "alice@example.com"},
		AssignedTo:  domain.UserRef{ID: "u2", Name: "Bob", Email: "bob@example.com"},
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
}

func TestRequestHandler_Create(t *testing.T) {
	svc := &stubRequestService{
		createFn: func(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestView, error) {
			if input.CallerID != "u1" || input.AssignedToID != "u2" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return sampleView("r1", domain.StatusPendingApproval), nil
		},
	}
	e := newRequestServer(svc)

	rec := doAuthJSON(e, http.MethodPost, "/requests", bearerFor(t, "u1", domain.RoleEmployee),
		`{"title":"Fix the printer","description":"Third floor printer jams on duplex","assigned_to_id":"u2"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["status"] != string(domain.StatusPendingApproval) {
		t.Fatalf("expected PENDING_APPROVAL, got %v", resp["status"])
	}
	created, ok := resp["created_by"].(map[string]any)
	if !ok || created["id"] != "u1" {
		t.Fatalf("unexpected created_by: %+v", resp["created_by"])
	}
}

func TestRequestHandler_Create_Validation(t *testing.T) {
	svc := &stubRequestService{
		createFn: func(ctx context.Context, input ports.CreateRequestInput) (*ports.RequestView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	e := newRequestServer(svc)
	token := bearerFor(t, "u1", domain.RoleEmployee)

	for name, body := range map[string]string{
		"missing title":    `{"description":"d","assigned_to_id":"u2"}`,
		"missing assignee": `{"title":"t","description":"d"}`,
		"malformed":        `{`,
	} {
		rec := doAuthJSON(e, http.MethodPost, "/requests", token, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d: %s", name, rec.Code, rec.Body.String())
		}
	}
}

func TestRequestHandler_Unauthorized(t *testing.T) {
	e := newRequestServer(&stubRequestService{})

	for _, tc := range []struct {
		method, path string
	}{
		{http.MethodGet, "/requests"},
		{http.MethodPost, "/requests"},
		{http.MethodPut, "/requests/r1/approve"},
		{http.MethodPut, "/requests/r1/close"},
	} {
		rec := doAuthJSON(e, tc.method, tc.path, "", `{}`)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}

	rec := doAuthJSON(e, http.MethodGet, "/requests", "Bearer not-a-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", rec.Code)
	}
}

func TestRequestHandler_Transitions(t *testing.T) {
	cases := []struct {
		path   string
		status domain.RequestStatus
	}{
		{"/requests/r1/approve", domain.StatusApproved},
		{"/requests/r1/reject", domain.StatusRejected},
		{"/requests/r1/close", domain.StatusClosed},
	}

	for _, tc := range cases {
		op := func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
			if requestID != "r1" || callerID != "m1" {
				t.Fatalf("%s: unexpected args %s %s", tc.path, requestID, callerID)
			}
			return sampleView(requestID, tc.status), nil
		}
		e := newRequestServer(&stubRequestService{approveFn: op, rejectFn: op, closeFn: op})

		rec := doAuthJSON(e, http.MethodPut, tc.path, bearerFor(t, "m1", domain.RoleManager), "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", tc.path, rec.Code, rec.Body.String())
		}

		var resp map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: invalid json: %v", tc.path, err)
		}
		if resp["status"] != string(tc.status) {
			t.Fatalf("%s: expected %s, got %v", tc.path, tc.status, resp["status"])
		}
	}
}

func TestRequestHandler_TransitionErrors(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrRequestNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: only the assignee's manager may approve", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("%w: request is not awaiting approval", domain.ErrInvalidTransition), http.StatusBadRequest},
		{domain.ErrStatusConflict, http.StatusConflict},
	}

	for _, tc := range cases {
		svc := &stubRequestService{
			approveFn: func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
				return nil, tc.err
			},
		}
		e := newRequestServer(svc)

		rec := doAuthJSON(e, http.MethodPut, "/requests/r1/approve", bearerFor(t, "m1", domain.RoleManager), "")
		if rec.Code != tc.want {
			t.Fatalf("%v: expected %d, got %d: %s", tc.err, tc.want, rec.Code, rec.Body.String())
		}
	}
}

// A caller probing a request id that does not exist must get 404 regardless
// of role: the review routes carry no MANAGER gate, so the service's
// load-then-authorize ordering decides the answer.
func TestRequestHandler_MissingRequest_NotFoundForAnyRole(t *testing.T) {
	op := func(ctx context.Context, requestID, callerID string) (*ports.RequestView, error) {
		return nil, domain.ErrRequestNotFound
	}
	e := newRequestServer(&stubRequestService{approveFn: op, rejectFn: op})

	for _, role := range []domain.Role{domain.RoleEmployee, domain.RoleManager} {
		for _, path := range []string{
			"/requests/ffffffffffffffffffffffff/approve",
			"/requests/ffffffffffffffffffffffff/reject",
		} {
			rec := doAuthJSON(e, http.MethodPut, path, bearerFor(t, "u1", role), "")
			if rec.Code != http.StatusNotFound {
				t.Fatalf("%s as %s: expected 404, got %d: %s", path, role, rec.Code, rec.Body.String())
			}
		}
	}
}

func TestRequestHandler_List(t *testing.T) {
	svc := &stubRequestService{
		listFn: func(ctx context.Context, callerID string, callerRole domain.Role) (*ports.RequestLists, error) {
			if callerID != "m1" || callerRole != domain.RoleManager {
				t.Fatalf("unexpected caller: %s %s", callerID, callerRole)
			}
			return &ports.RequestLists{
				Created:   []ports.RequestView{*sampleView("r1", domain.StatusApproved)},
				Assigned:  nil,
				ToApprove: []ports.RequestView{*sampleView("r2", domain.StatusPendingApproval)},
			}, nil
		},
	}
	e := newRequestServer(svc)

	rec := doAuthJSON(e, http.MethodGet, "/requests", bearerFor(t, "m1", domain.RoleManager), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Created   []map[string]any `json:"created"`
		Assigned  []map[string]any `json:"assigned"`
		ToApprove []map[string]any `json:"to_approve"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Created) != 1 || resp.Created[0]["id"] != "r1" {
		t.Fatalf("unexpected created list: %+v", resp.Created)
	}
	if len(resp.Assigned) != 0 {
		t.Fatalf("expected empty assigned list, got %+v", resp.Assigned)
	}
	if len(resp.ToApprove) != 1 || resp.ToApprove[0]["id"] != "r2" {
		t.Fatalf("unexpected approval queue: %+v", resp.ToApprove)
	}
}
