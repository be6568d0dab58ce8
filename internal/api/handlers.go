package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	errorvalues "github.com/limbo/streak/internal/error_values"
	"github.com/limbo/streak/pkg/entity"
	"github.com/limbo/streak/pkg/httputil"
)

// @Summary List habits
// @Produce json
// @Success 200 {array} entity.Habit
// @Router /habits [get]
func (s *Server) ListHabits(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	habits, err := s.habitService.ListHabits(ctx)
	if err != nil {
		logger.Error("getting habits list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting habits list", nil)
		return
	}
	if habits == nil {
		habits = []entity.Habit{}
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habits)
	logger.Debug("habits provided", slog.Int("count", len(habits)))
}

// @Summary Create habit
// @Accept json
// @Produce json
// @Param habit body entity.HabitDraft true "new habit"
// @Success 201 {object} entity.Habit
// @Failure 400 {object} httputil.ErrorResponse
// @Router /habits [post]
func (s *Server) CreateHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var draft entity.HabitDraft
	if err := httputil.DecodeJSON(w, r, &draft); err != nil {
		logger.Error("create habit error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	habit, err := s.habitService.CreateHabit(ctx, &draft)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidHabit):
			logger.Error("create habit error: validation failed", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit", err)
		default:
			logger.Error("create habit error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, habit)
	logger.Info("habit created", slog.Int("habit_id", habit.ID))
}

// @Summary Get habit
// @Produce json
// @Param id path int true "habit id"
// @Success 200 {object} entity.Habit
// @Failure 404 {object} httputil.ErrorResponse
// @Router /habits/{id} [get]
func (s *Server) GetHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, ok := habitIDFromPath(w, r)
	if !ok {
		logger.Error("get habit error: invalid id in path value")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	habit, err := s.habitService.GetHabit(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrHabitNotFound) {
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
			return
		}
		logger.Error("get habit error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while getting habit", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, habit)
}

// @Summary Delete habit
// @Param id path int true "habit id"
// @Success 204
// @Failure 404 {object} httputil.ErrorResponse
// @Router /habits/{id} [delete]
func (s *Server) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, ok := habitIDFromPath(w, r)
	if !ok {
		logger.Error("habit deletion error: invalid id in path value")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()
	err := s.habitService.DeleteHabit(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrHabitNotFound):
			logger.Error("habit deletion error: unexist habit", slog.Int("habit_id", id))
			httputil.WriteErrorResponse(w, http.StatusNotFound, "habit doesn't exist", nil)
		default:
			logger.Error("habit deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting habit", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusNoContent, nil)
	logger.Info("habit deleted", slog.Int("habit_id", id))
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func habitIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid habit id in path value", nil)
		return 0, false
	}
	return id, true
}
