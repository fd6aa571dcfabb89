package tickets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"portal-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T, usernames map[string]string) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := newTestService(usernames)
	r := gin.New()
	r.Use(middleware.Auth())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTicketEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tickets", "u1", map[string]any{
		"description": "vpn drops every hour",
		"ticketType":  "self",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp TicketResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != string(StatusOpen) {
		t.Fatalf("status = %q, want Open", resp.Status)
	}
	if resp.Category != "Network & Connectivity" {
		t.Fatalf("category = %q", resp.Category)
	}
}

func TestCreateTicketEndpointValidation(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	cases := []map[string]any{
		{"ticketType": "self"},                                   // missing description
		{"description": "x", "ticketType": "group"},              // bad type
		{"description": "x", "ticketType": "other"},              // missing affected user
		{"description": "x", "ticketType": "self", "affectedUser": "bob"}, // affected user on self
	}
	for i, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/v1/tickets", "u1", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("case %d: status = %d, want 400 (body %s)", i, w.Code, w.Body.String())
		}
	}
}

func TestTicketEndpointRequiresIdentity(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := doJSON(t, r, http.MethodPost, "/api/v1/tickets", "", map[string]any{
		"description": "x", "ticketType": "self",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestTransitionEndpoints(t *testing.T) {
	r, svc := newTestRouter(t, map[string]string{"u1": "alice", "u2": "mallory"})

	ticket, err := svc.Create(context.Background(), "u1", "printer offline", TypeSelf, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	base := fmt.Sprintf("/api/v1/tickets/%s", ticket.ID)

	// Reopen before resolve is a conflict.
	w := doJSON(t, r, http.MethodPost, base+"/reopen", "u1", map[string]any{"reason": "nope"})
	if w.Code != http.StatusConflict {
		t.Fatalf("reopen from Open status = %d, want 409 (body %s)", w.Code, w.Body.String())
	}

	// Escalate without a reason is a validation error.
	w = doJSON(t, r, http.MethodPost, base+"/escalate", "u1", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("escalate without reason status = %d, want 400", w.Code)
	}

	// Non-owner escalate is forbidden.
	w = doJSON(t, r, http.MethodPost, base+"/escalate", "u2", map[string]any{"reason": "urgent"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-owner escalate status = %d, want 403", w.Code)
	}

	// Resolve succeeds.
	w = doJSON(t, r, http.MethodPost, base+"/resolve", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve status = %d (body %s)", w.Code, w.Body.String())
	}

	// Unknown ticket is 404.
	w = doJSON(t, r, http.MethodPost, "/api/v1/tickets/missing/resolve", "u1", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing ticket status = %d, want 404", w.Code)
	}
}

func TestListTicketsEndpoint(t *testing.T) {
	r, svc := newTestRouter(t, nil)

	if _, err := svc.Create(context.Background(), "u1", "one", TypeSelf, ""); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/tickets", "u1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Tickets []TicketResponse `json:"tickets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Tickets) != 1 {
		t.Fatalf("len = %d, want 1", len(resp.Tickets))
	}
}
