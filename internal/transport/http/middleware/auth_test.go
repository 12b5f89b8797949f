package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dayflow/internal/domain/auth"
	"dayflow/internal/domain/employee"
)

type fakeIdentityStore struct {
	roles map[string]string
}

func (f fakeIdentityStore) ActiveRole(ctx context.Context, empID string) (string, error) {
	role, ok := f.roles[empID]
	if !ok {
		return "", employee.ErrNotFound
	}
	return role, nil
}

func identityEcho(t *testing.T, captured *auth.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := GetIdentity(r.Context()); ok {
			*captured = identity
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthResolvesIdentity(t *testing.T) {
	secret := "test-secret"
	store := fakeIdentityStore{roles: map[string]string{"ABJODO20240001": auth.RoleHR}}
	token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: "ABJODO20240001", Role: auth.RoleHR}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var captured auth.Identity
	handler := Auth(secret, store)(identityEcho(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.EmployeeID != "ABJODO20240001" || captured.Role != auth.RoleHR {
		t.Fatalf("unexpected identity: %+v", captured)
	}
}

func TestAuthDeactivatedEmployeeStaysAnonymous(t *testing.T) {
	secret := "test-secret"
	store := fakeIdentityStore{roles: map[string]string{}}
	token, err := auth.GenerateToken(secret, auth.Claims{EmployeeID: "GONE", Role: auth.RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	var captured auth.Identity
	handler := Auth(secret, store)(identityEcho(t, &captured))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured.EmployeeID != "" {
		t.Fatalf("expected no identity, got %+v", captured)
	}
}

func TestAuthMalformedHeaderIgnored(t *testing.T) {
	store := fakeIdentityStore{roles: map[string]string{}}
	var captured auth.Identity
	handler := Auth("secret", store)(identityEcho(t, &captured))

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer not-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(httptest.NewRecorder(), req)
		if captured.EmployeeID != "" {
			t.Fatalf("expected no identity for header %q", header)
		}
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(auth.RoleAdmin, auth.RoleHR)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// No identity at all.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	// Plain employee.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := context.WithValue(req.Context(), ctxKeyIdentity, auth.Identity{EmployeeID: "e1", Role: auth.RoleEmployee})
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	// HR passes.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	ctx = context.WithValue(req.Context(), ctxKeyIdentity, auth.Identity{EmployeeID: "e2", Role: auth.RoleHR})
	handler.ServeHTTP(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
