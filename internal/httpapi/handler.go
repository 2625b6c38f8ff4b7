// ABOUTME: Read-only JSON API over the analytics views.
// ABOUTME: Fetch failures are logged and answered with the empty view; bad parameters get 400.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/metrics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

// ExerciseLookup resolves an exercise by name or ID prefix.
type ExerciseLookup interface {
	GetExercise(idOrName string) (*models.Exercise, error)
}

type Handler struct {
	svc       *analytics.Service
	exercises ExerciseLookup
	log       *logrus.Entry
}

// NewHandler registers every route on router and returns the handler.
func NewHandler(router *mux.Router, svc *analytics.Service, exercises ExerciseLookup, log *logrus.Logger) *Handler {
	h := &Handler{
		svc:       svc,
		exercises: exercises,
		log:       log.WithField("component", "httpapi"),
	}

	router.Handle("/health", wrap(metrics.EndpointHealth, h.handleHealth)).Methods("GET").Name("health")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET").Name("metrics")

	users := router.PathPrefix("/api/users/{user}").Subrouter()
	users.Handle("/streaks", wrap(metrics.EndpointStreaks, h.handleStreaks)).Methods("GET").Name("streaks")
	users.Handle("/progress/{exercise}", wrap(metrics.EndpointProgress, h.handleProgress)).Methods("GET").Name("progress")
	users.Handle("/volume", wrap(metrics.EndpointVolume, h.handleVolume)).Methods("GET").Name("volume")
	users.Handle("/calendar", wrap(metrics.EndpointCalendar, h.handleCalendar)).Methods("GET").Name("calendar")
	users.Handle("/bodyweight", wrap(metrics.EndpointBodyWeight, h.handleBodyWeight)).Methods("GET").Name("bodyweight")

	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleStreaks(w http.ResponseWriter, r *http.Request) {
	stats, _ := h.svc.Streaks(r.Context(), mux.Vars(r)["user"])
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	exercise, err := h.exercises.GetExercise(vars["exercise"])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "exercise not found: "+vars["exercise"])
			return
		}
		h.log.WithError(err).Warn("resolve exercise failed")
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, _ := h.svc.ExerciseProgress(r.Context(), vars["user"], exercise.ID)
	if progress.ExerciseName == "" {
		progress.ExerciseName = exercise.Name
		progress.Category = exercise.Category
	}
	h.writeJSON(w, http.StatusOK, progress)
}

func (h *Handler) handleVolume(w http.ResponseWriter, r *http.Request) {
	report, _ := h.svc.BodyPartVolume(r.Context(), mux.Vars(r)["user"])
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	month := analytics.MonthStart(h.svc.Today())
	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := analytics.ParseMonth(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		month = parsed
	}

	view, _ := h.svc.Calendar(r.Context(), mux.Vars(r)["user"], month)
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) handleBodyWeight(w http.ResponseWriter, r *http.Request) {
	trend, _ := h.svc.BodyWeightTrend(r.Context(), mux.Vars(r)["user"])
	h.writeJSON(w, http.StatusOK, trend)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}
