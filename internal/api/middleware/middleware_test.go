package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskflow/internal/auth"
	"taskflow/internal/domain"
	"taskflow/internal/pkg/logger"
	"taskflow/internal/pkg/token"
)

func newAuthMiddleware(t *testing.T) (*token.Manager, func(http.Handler) http.Handler) {
	t.Helper()

	tokens, err := token.NewManager(&token.Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	log, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return tokens, Authenticate(tokens, log)
}

func TestAuthenticate_RejectsMissingAndMalformedCredentials(t *testing.T) {
	_, authenticate := newAuthMiddleware(t)

	handler := authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without a valid credential")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic dXNlcjpwdw=="},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: got status %d, want %d", tc.name, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestAuthenticate_StoresActorInContext(t *testing.T) {
	tokens, authenticate := newAuthMiddleware(t)

	want := domain.Actor{ID: 7, Role: domain.RoleManager}
	signed, err := tokens.Issue(want)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var got domain.Actor
	handler := authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := auth.ActorFromContext(r.Context())
		if !ok {
			t.Fatalf("expected actor in context")
		}
		got = actor
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rec.Code, http.StatusOK)
	}
	if got != want {
		t.Fatalf("got actor %+v, want %+v", got, want)
	}
}
