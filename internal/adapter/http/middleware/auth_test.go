package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/payproc/internal/domain"
	"github.com/iho/payproc/internal/infrastructure/auth"
)

func newToken(t *testing.T, m *auth.JWTManager, role domain.Role) string {
	t.Helper()
	token, err := m.Generate(&domain.User{ID: "user-1", Role: role})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func TestAuthMiddleware(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)
	valid := newToken(t, m, domain.RoleOperator)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"bad token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotUser *domain.User
			h := AuthMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = GetUserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
			if tt.wantStatus == http.StatusOK && (gotUser == nil || gotUser.ID != "user-1" || gotUser.Role != domain.RoleOperator) {
				t.Fatalf("expected operator user in context, got %+v", gotUser)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)

	tests := []struct {
		name       string
		role       domain.Role
		minRole    domain.Role
		wantStatus int
	}{
		{"viewer cannot transition", domain.RoleViewer, domain.RoleOperator, http.StatusForbidden},
		{"operator can transition", domain.RoleOperator, domain.RoleOperator, http.StatusOK},
		{"admin can transition", domain.RoleAdmin, domain.RoleOperator, http.StatusOK},
		{"operator is not admin", domain.RoleOperator, domain.RoleAdmin, http.StatusForbidden},
		{"viewer can view", domain.RoleViewer, domain.RoleViewer, http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(m)(RequireRole(tt.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/payments/process", nil)
			req.Header.Set("Authorization", "Bearer "+newToken(t, m, tt.role))
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rr.Code)
			}
		})
	}
}

func TestRequireRole_WithoutUser(t *testing.T) {
	h := RequireRole(domain.RoleViewer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rr := httptest.NewRecorder()

	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestOptionalAuth(t *testing.T) {
	m := auth.NewJWTManager("test-secret", time.Hour)

	var gotUser *domain.User
	var ok bool
	h := OptionalAuth(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, ok = GetUserFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if ok {
		t.Fatalf("expected no user for invalid token, got %+v", gotUser)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+newToken(t, m, domain.RoleViewer))
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !ok || gotUser.Role != domain.RoleViewer {
		t.Fatalf("expected viewer user, got %+v", gotUser)
	}
}
