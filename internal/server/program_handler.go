package server

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/pkg"
)

// ProgramHandler serves the static training catalog: phases, mileage
// plan, the exercise list and the daily routines.
type ProgramHandler struct{}

func NewProgramHandler() *ProgramHandler {
	return &ProgramHandler{}
}

type ProgramResponse struct {
	TotalWeeks     int                           `json:"totalWeeks"`
	Phases         []program.Phase               `json:"phases"`
	MileageTargets map[int]program.MileageTarget `json:"mileageTargets"`
}

func (handler *ProgramHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.get")
	defer span.End()

	resp := ProgramResponse{
		TotalWeeks:     program.TotalWeeks,
		Phases:         program.Program,
		MileageTargets: program.MileageTargets,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal program: %s", err)
		http.Error(w, "failed to get program", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *ProgramHandler) HandleExercises(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.exercises")
	defer span.End()

	respJson, err := json.Marshal(program.ExercisesByCategory())
	if err != nil {
		log.Errorf("failed to marshal exercises: %s", err)
		http.Error(w, "failed to get exercises", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

type RoutinesResponse struct {
	MorningShort program.Routine `json:"morningShort"`
	MorningLong  program.Routine `json:"morningLong"`
	Evening      program.Routine `json:"evening"`
}

func (handler *ProgramHandler) HandleRoutines(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.program.routines")
	defer span.End()

	resp := RoutinesResponse{
		MorningShort: program.MorningRoutineShort,
		MorningLong:  program.MorningRoutineLong,
		Evening:      program.EveningRoutine,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal routines: %s", err)
		http.Error(w, "failed to get routines", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
