package grade_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assignment-service/internal/assignment"
	"assignment-service/internal/grade"
	"assignment-service/internal/identity"
	"assignment-service/internal/logger"
	"assignment-service/internal/metrics"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newGradeRouter wires the grade routes behind header-based identity
// resolution with a teacher (id 1) and two students (ids 2, 3) on file, and
// one ungraded assignment (id 1) for student 2.
func newGradeRouter(t *testing.T, allowRegrade bool) (chi.Router, assignment.Repository) {
	t.Helper()
	ctx := context.Background()

	users := user.NewMemoryRepository()
	for _, u := range []user.User{
		{Name: "test teacher", Email: "teacher1@email.com", Role: user.RoleTeacher},
		{Name: "test student", Email: "student1@email.com", Role: user.RoleStudent},
		{Name: "test student 2", Email: "student2@email.com", Role: user.RoleStudent},
	} {
		_, err := users.Create(ctx, &u)
		require.NoError(t, err)
	}

	repo := assignment.NewMemoryRepository()
	_, err := repo.Create(ctx, &assignment.Assignment{
		StudentID: 2,
		Subject:   assignment.SubjectMath,
		Title:     "Math test 1",
		Content:   "math content",
	})
	require.NoError(t, err)

	assignmentService := assignment.NewService(repo, nil, logger.New())
	gradeService := grade.NewService(repo, allowRegrade, nil, logger.New())
	handler := grade.NewHandler(gradeService, assignmentService, logger.New(), metrics.NewMock())

	router := chi.NewRouter()
	router.Use(identity.Middleware(identity.NewHeaderResolver(users), logger.New()))
	handler.RegisterRoutes(router)
	return router, repo
}

func postGrade(t *testing.T, router chi.Router, actorID string, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/grades", bytes.NewReader(body))
	if actorID != "" {
		req.Header.Set(identity.UserIDHeader, actorID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateGradeRoute(t *testing.T) {
	payload := map[string]interface{}{
		"assignmentId": 1,
		"grade":        90,
		"feedback":     "Nice",
	}

	t.Run("AsTeacher", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "1", payload)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response assignment.Assignment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.NotNil(t, response.Grade)
		assert.Equal(t, 90, *response.Grade)
		assert.Equal(t, "Nice", *response.Feedback)
		// The grading teacher is the resolved actor, not a request field.
		assert.Equal(t, 1, *response.TeacherID)
		assert.NotNil(t, response.GradedAt)
	})

	t.Run("AnonymousForbidden", func(t *testing.T) {
		router, repo := newGradeRouter(t, false)

		w := postGrade(t, router, "", payload)

		assert.Equal(t, http.StatusForbidden, w.Code)

		// The guard fired before any service logic ran.
		stored, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.False(t, stored.Graded())
	})

	t.Run("StudentForbidden", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "2", payload)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("UnknownActorForbidden", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "42", payload)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("MissingGrade", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "1", map[string]interface{}{
			"assignmentId": 1,
			"feedback":     "Nice",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GradeOutOfRange", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		for _, g := range []int{-1, 101} {
			w := postGrade(t, router, "1", map[string]interface{}{
				"assignmentId": 1,
				"grade":        g,
			})
			assert.Equal(t, http.StatusBadRequest, w.Code, "grade %d", g)
		}
	})

	t.Run("AssignmentNotFound", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "1", map[string]interface{}{
			"assignmentId": 99,
			"grade":        90,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("AlreadyGradedConflict", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "1", payload)
		require.Equal(t, http.StatusCreated, w.Code)

		w = postGrade(t, router, "1", payload)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("EmptyFeedbackPermitted", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		w := postGrade(t, router, "1", map[string]interface{}{
			"assignmentId": 1,
			"grade":        75,
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		var response assignment.Assignment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.NotNil(t, response.Feedback)
		assert.Equal(t, "", *response.Feedback)
	})
}

func TestGetGradesByStudentRoute(t *testing.T) {
	t.Run("AsStudent", func(t *testing.T) {
		router, repo := newGradeRouter(t, false)
		ctx := context.Background()

		// A second, ungraded assignment must never appear in the result.
		_, err := repo.Create(ctx, &assignment.Assignment{
			StudentID: 2,
			Subject:   assignment.SubjectEnglish,
			Title:     "English test 1",
			Content:   "english content",
		})
		require.NoError(t, err)
		_, err = repo.SetGrade(ctx, 1, assignment.GradeRecord{TeacherID: 1, Grade: 85, Feedback: "Good work", GradedAt: time.Now()})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/grades/2", nil)
		req.Header.Set(identity.UserIDHeader, "2")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response []assignment.Assignment
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response, 1)
		assert.Equal(t, 1, response[0].ID)
		assert.True(t, response[0].Graded())
	})

	t.Run("TeacherForbidden", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		req := httptest.NewRequest(http.MethodGet, "/grades/2", nil)
		req.Header.Set(identity.UserIDHeader, "1")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("InvalidStudentID", func(t *testing.T) {
		router, _ := newGradeRouter(t, false)

		req := httptest.NewRequest(http.MethodGet, "/grades/abc", nil)
		req.Header.Set(identity.UserIDHeader, "2")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
