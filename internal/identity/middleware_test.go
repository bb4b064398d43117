package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"assignment-service/internal/identity"
	"assignment-service/internal/logger"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUsers(t *testing.T) user.Repository {
	t.Helper()
	ctx := context.Background()

	users := user.NewMemoryRepository()
	for _, u := range []user.User{
		{Name: "test teacher", Email: "teacher1@email.com", Role: user.RoleTeacher},
		{Name: "test student", Email: "student1@email.com", Role: user.RoleStudent},
	} {
		_, err := users.Create(ctx, &u)
		require.NoError(t, err)
	}
	return users
}

func TestHeaderResolution(t *testing.T) {
	users := seedUsers(t)

	// Echo back the resolved actor id, or 0 for anonymous.
	var resolvedID int
	router := chi.NewRouter()
	router.Use(identity.Middleware(identity.NewHeaderResolver(users), logger.New()))
	router.Get("/whoami", func(w http.ResponseWriter, r *http.Request) {
		resolvedID = 0
		if actor, ok := identity.ActorFromContext(r.Context()); ok {
			resolvedID = actor.ID
		}
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		wantID int
	}{
		{"KnownUser", "2", 2},
		{"NoHeader", "", 0},
		{"UnknownUser", "42", 0},
		{"NonNumeric", "abc", 0},
		{"NegativeID", "-1", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set(identity.UserIDHeader, tc.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.wantID, resolvedID)
		})
	}
}

func TestRequireRole(t *testing.T) {
	users := seedUsers(t)

	reached := false
	router := chi.NewRouter()
	router.Use(identity.Middleware(identity.NewHeaderResolver(users), logger.New()))
	router.With(identity.RequireRole(user.RoleTeacher)).Get("/teacher-only", func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"Teacher", "1", http.StatusOK},
		{"Student", "2", http.StatusForbidden},
		{"Anonymous", "", http.StatusForbidden},
		{"UnknownUser", "42", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reached = false

			req := httptest.NewRequest(http.MethodGet, "/teacher-only", nil)
			if tc.header != "" {
				req.Header.Set(identity.UserIDHeader, tc.header)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, tc.wantStatus == http.StatusOK, reached)
		})
	}
}
