package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/trainstats"
	"github.com/cimtrainer/trainlog/pkg"
)

type StatsHandler struct {
	analyzer *trainstats.Analyzer
}

func NewStatsHandler(analyzer *trainstats.Analyzer) *StatsHandler {
	return &StatsHandler{
		analyzer: analyzer,
	}
}

func (handler *StatsHandler) HandleExerciseHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseHistory")
	defer span.End()

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	history, err := handler.analyzer.ExerciseHistory(ctx, exerciseID)
	if err != nil {
		log.Errorf("exercise history %s: %s", exerciseID, err)
		http.Error(w, "failed to get exercise history", http.StatusInternalServerError)
		return
	}
	if history == nil {
		history = []trainstats.HistoryEntry{}
	}

	historyJson, err := json.Marshal(history)
	if err != nil {
		log.Errorf("failed to marshal exercise history: %s", err)
		http.Error(w, "failed to get exercise history", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, historyJson, http.StatusOK)
}

func (handler *StatsHandler) HandleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.exerciseProgress")
	defer span.End()

	exerciseID := mux.Vars(r)["id"]
	if exerciseID == "" {
		http.Error(w, "error, exercise id empty", http.StatusBadRequest)
		return
	}

	points, err := handler.analyzer.ProgressHistory(ctx, exerciseID)
	if err != nil {
		log.Errorf("exercise progress %s: %s", exerciseID, err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}

	pointsJson, err := json.Marshal(points)
	if err != nil {
		log.Errorf("failed to marshal exercise progress: %s", err)
		http.Error(w, "failed to get exercise progress", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, pointsJson, http.StatusOK)
}

func (handler *StatsHandler) HandleWeeklyRuns(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.stats.weeklyRuns")
	defer span.End()

	summaries, err := handler.analyzer.WeeklyRunSummary(ctx)
	if err != nil {
		log.Errorf("weekly run summary: %s", err)
		http.Error(w, "failed to get weekly runs", http.StatusInternalServerError)
		return
	}

	summariesJson, err := json.Marshal(summaries)
	if err != nil {
		log.Errorf("failed to marshal weekly runs: %s", err)
		http.Error(w, "failed to get weekly runs", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, summariesJson, http.StatusOK)
}
