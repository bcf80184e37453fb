package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/interview-scorecard/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]Principal
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]Principal)}
}

func (v *testTokenValidator) addValidToken(token string, p Principal) {
	v.validTokens[token] = p
}

func (v *testTokenValidator) ValidateToken(tokenString string) (PrincipalGetter, error) {
	p, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(p), nil
}

type testClaims Principal

func (c testClaims) GetUserID() int64 { return c.UserID }
func (c testClaims) GetRole() types.Role { return c.Role }

func TestAuthMiddleware_ValidToken(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("valid-token", Principal{UserID: 42, Role: types.RoleInterviewer})

	var got Principal
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := GetPrincipal(r)
		require.NoError(t, err)
		got = p
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/round-ratings", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, types.RoleInterviewer, got.Role)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("valid-token", Principal{UserID: 1, Role: types.RoleAdmin})

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no scheme", header: "valid-token"},
		{name: "wrong scheme", header: "Basic valid-token"},
		{name: "extra parts", header: "Bearer valid-token extra"},
		{name: "unknown token", header: "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/skills", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
		})
	}
}

func TestAuthMiddleware_CaseInsensitiveScheme(t *testing.T) {
	validator := newTestTokenValidator()
	validator.addValidToken("tok", Principal{UserID: 5, Role: types.RoleHR})

	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/skills", nil)
	req.Header.Set("Authorization", "bearer tok")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := RequireRole(types.RoleAdmin, types.RoleRecruiter)(ok)

	tests := []struct {
		name string
		role types.Role
		want int
	}{
		{name: "admin allowed", role: types.RoleAdmin, want: http.StatusOK},
		{name: "recruiter allowed", role: types.RoleRecruiter, want: http.StatusOK},
		{name: "interviewer forbidden", role: types.RoleInterviewer, want: http.StatusForbidden},
		{name: "candidate forbidden", role: types.RoleCandidate, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/skills/1", nil)
			req = req.WithContext(WithPrincipal(req.Context(), Principal{UserID: 1, Role: tt.role}))
			w := httptest.NewRecorder()
			guarded.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRole_NoPrincipal(t *testing.T) {
	guarded := RequireRole(types.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	guarded.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserID_Missing(t *testing.T) {
	id, err := GetUserID(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Error(t, err)
	assert.Equal(t, int64(0), id)
}
