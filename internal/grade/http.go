package grade

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"assignment-service/internal/assignment"
	"assignment-service/internal/httputil"
	"assignment-service/internal/identity"
	"assignment-service/internal/metrics"
	"assignment-service/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type Handler struct {
	service     Service
	assignments assignment.Service
	validate    *validator.Validate
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

func NewHandler(service Service, assignments assignment.Service, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:     service,
		assignments: assignments,
		validate:    validator.New(),
		logger:      logger,
		metrics:     metrics,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.With(identity.RequireRole(user.RoleTeacher)).Post("/grades", h.CreateGrade)
	router.With(identity.RequireRole(user.RoleStudent)).Get("/grades/{studentId}", h.GetGradesByStudent)
}

// CreateGradeRequest is the request body for grading. Grade is a pointer so
// that a legitimate zero grade passes the required check.
type CreateGradeRequest struct {
	AssignmentID int    `json:"assignmentId" validate:"required"`
	Grade        *int   `json:"grade" validate:"required"`
	Feedback     string `json:"feedback"`
}

func (h *Handler) CreateGrade(w http.ResponseWriter, r *http.Request) {
	// The role guard guarantees an actor; the grading teacher is whoever is
	// making the request.
	actor, ok := identity.ActorFromContext(r.Context())
	if !ok {
		httputil.RespondWithError(w, http.StatusForbidden, "forbidden: user not authenticated")
		return
	}

	var req CreateGradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "assignment ID and grade are required")
		return
	}

	h.logger.InfoContext(r.Context(), "grading assignment",
		"assignment_id", req.AssignmentID,
		"teacher_id", actor.ID,
	)

	graded, err := h.service.CreateGrade(r.Context(), actor.ID, req.AssignmentID, *req.Grade, req.Feedback)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.metrics.RecordAssignmentGraded(r.Context())

	httputil.RespondWithJSON(w, http.StatusCreated, graded)
}

func (h *Handler) GetGradesByStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := strconv.Atoi(chi.URLParam(r, "studentId"))
	if err != nil {
		httputil.RespondWithError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	h.logger.InfoContext(r.Context(), "fetching grades for student", "student_id", studentID)
	grades, err := h.assignments.GetGradesByStudentID(r.Context(), studentID)
	if err != nil {
		h.logger.Error("failed to retrieve grades", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, "failed to retrieve grades")
		return
	}

	h.metrics.RecordGradesViewed(r.Context())

	httputil.RespondWithJSON(w, http.StatusOK, grades)
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidGrade), errors.Is(err, ErrMissingAssignment):
		h.logger.Info("invalid grade input", "error", err)
		httputil.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		h.logger.Info("assignment not found")
		httputil.RespondWithError(w, http.StatusNotFound, "assignment not found")
	case errors.Is(err, ErrAlreadyGraded):
		h.logger.Info("assignment already graded")
		httputil.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		httputil.RespondWithError(w, http.StatusInternalServerError, err.Error())
	}
}
