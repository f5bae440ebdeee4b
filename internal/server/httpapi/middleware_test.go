package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireAuth_RejectsBadHeaders(t *testing.T) {
	s, _ := newTestServer(t)

	protected := s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a valid token")
	})

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"no header", "", "missing credentials"},
		{"wrong scheme", "Basic abc", "invalid or expired credentials"},
		{"bare token", "sometoken", "invalid or expired credentials"},
		{"empty bearer", "Bearer", "invalid or expired credentials"},
		{"garbage token", "Bearer not.a.jwt", "invalid or expired credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "Authorization", rec.Header().Get("Vary"))
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestRequireAuth_PassesUserID(t *testing.T) {
	s, h := newTestServer(t)
	userID, token := signup(t, h, "Alice", "alice@example.com", "Secret123")

	var gotOwner string
	protected := s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		gotOwner = ownerFromRequest(r)
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, userID, gotOwner)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	s, h := newTestServer(t)
	_, _ = signup(t, h, "Alice", "alice@example.com", "Secret123")

	// Signed with a different key, so verification fails.
	other := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJ4In0.invalidsignature"

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec := httptest.NewRecorder()
	s.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid or expired credentials")
}
