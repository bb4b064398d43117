package user_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"assignment-service/internal/logger"
	"assignment-service/internal/metrics"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRouter() chi.Router {
	service := user.NewService(user.NewMemoryRepository(), nil, logger.New())
	handler := user.NewHandler(service, logger.New(), metrics.NewMock())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func TestUserHandler(t *testing.T) {
	t.Run("CreateUser", func(t *testing.T) {
		router := newUserRouter()

		payload := map[string]interface{}{
			"name":  "Ann",
			"email": "ann@x.com",
			"role":  "student",
		}
		body, _ := json.Marshal(payload)

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response user.User
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Equal(t, 1, response.ID)
		assert.Equal(t, "Ann", response.Name)
		assert.Equal(t, user.RoleStudent, response.Role)
		assert.NotZero(t, response.CreatedAt)
	})

	t.Run("CreateUserInvalidRole", func(t *testing.T) {
		router := newUserRouter()

		body, _ := json.Marshal(map[string]interface{}{
			"name":  "Ann",
			"email": "ann@x.com",
			"role":  "principal",
		})

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid user role")
	})

	t.Run("CreateUserInvalidEmail", func(t *testing.T) {
		router := newUserRouter()

		body, _ := json.Marshal(map[string]interface{}{
			"name":  "Ann",
			"email": "not-an-email",
			"role":  "student",
		})

		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email format")
	})

	t.Run("GetAllUsers", func(t *testing.T) {
		router := newUserRouter()

		for _, payload := range []map[string]interface{}{
			{"name": "Ann", "email": "ann@x.com", "role": "student"},
			{"name": "Ben", "email": "ben@x.com", "role": "teacher"},
		} {
			body, _ := json.Marshal(payload)
			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusCreated, w.Code)
		}

		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []user.User
		err := json.NewDecoder(w.Body).Decode(&response)
		require.NoError(t, err)
		assert.Len(t, response, 2)
		assert.Equal(t, "Ann", response[0].Name)
		assert.Equal(t, "Ben", response[1].Name)
	})

	t.Run("GetUserNotFound", func(t *testing.T) {
		router := newUserRouter()

		req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetUserInvalidID", func(t *testing.T) {
		router := newUserRouter()

		req := httptest.NewRequest(http.MethodGet, "/users/abc", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
