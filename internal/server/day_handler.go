package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/schedule"
	"github.com/cimtrainer/trainlog/internal/storage"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/userdata"
	"github.com/cimtrainer/trainlog/pkg"
)

// DayView is everything the UI needs to render one calendar date.
type DayView struct {
	Date        string                   `json:"date"`
	Position    schedule.ProgramPosition `json:"position"`
	Workout     *program.DayWorkout      `json:"workout,omitempty"`
	Detail      *program.WorkoutDetail   `json:"detail,omitempty"`
	WalkRun     *program.WalkRunProtocol `json:"walkRun,omitempty"`
	WalkRunNote string                   `json:"walkRunNote,omitempty"`
	RunNotes    string                   `json:"runNotes,omitempty"`
	TargetMiles int                      `json:"targetMiles,omitempty"`
	Weights     map[string]float64       `json:"weights,omitempty"`
	Log         *userdata.DayLog         `json:"log,omitempty"`
	Routines    *userdata.RoutineCheck   `json:"routines,omitempty"`
}

type DayHandler struct {
	facade *storage.Facade
}

func NewDayHandler(facade *storage.Facade) *DayHandler {
	return &DayHandler{
		facade: facade,
	}
}

func (handler *DayHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.get")
	defer span.End()

	date := mux.Vars(r)["date"]
	day, err := schedule.ParseDay(date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	doc, err := handler.facade.Document(ctx)
	if err != nil {
		log.Errorf("get day %s: %s", date, err)
		http.Error(w, "failed to get day", http.StatusInternalServerError)
		return
	}

	view, err := buildDayView(doc, date, day)
	if err != nil {
		log.Errorf("build day view %s: %s", date, err)
		http.Error(w, "failed to get day", http.StatusInternalServerError)
		return
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal day view: %s", err)
		http.Error(w, "failed to get day", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusOK)
}

func (handler *DayHandler) HandleSaveLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.saveLog")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	date := mux.Vars(r)["date"]

	var params struct {
		Notes   *string           `json:"notes"`
		Run     *userdata.RunLog  `json:"run"`
		Strides *userdata.Strides `json:"strides"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("save day log, unmarshal json params: %s", err)
		http.Error(w, "save day log failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SaveDayLog(ctx, date, storage.SaveDayLogParams{
		Notes:   params.Notes,
		Run:     params.Run,
		Strides: params.Strides,
	}); err != nil {
		writeMutationError(w, "save day log", err)
		return
	}

	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *DayHandler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.complete")
	defer span.End()

	date := mux.Vars(r)["date"]
	if err := handler.facade.CompleteDay(ctx, date); err != nil {
		writeMutationError(w, "complete day", err)
		return
	}
	pkg.WriteTextResponseOK(w, "completed")
}

func (handler *DayHandler) HandleSkip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.skip")
	defer span.End()

	date := mux.Vars(r)["date"]
	if err := handler.facade.SkipDay(ctx, date); err != nil {
		writeMutationError(w, "skip day", err)
		return
	}
	pkg.WriteTextResponseOK(w, "skipped")
}

func (handler *DayHandler) HandleUnskip(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.unskip")
	defer span.End()

	date := mux.Vars(r)["date"]
	if err := handler.facade.UnskipDay(ctx, date); err != nil {
		writeMutationError(w, "unskip day", err)
		return
	}
	pkg.WriteTextResponseOK(w, "unskipped")
}

func (handler *DayHandler) HandleIncomplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.incomplete")
	defer span.End()

	date := mux.Vars(r)["date"]
	if err := handler.facade.MarkDayIncomplete(ctx, date); err != nil {
		writeMutationError(w, "mark day incomplete", err)
		return
	}
	pkg.WriteTextResponseOK(w, "marked incomplete")
}

func (handler *DayHandler) HandleRecordSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.recordSet")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "error, set index NaN", http.StatusBadRequest)
		return
	}

	var entry userdata.SetEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Errorf("record set, unmarshal json params: %s", err)
		http.Error(w, "record set failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.RecordSet(ctx, vars["date"], vars["id"], index, entry); err != nil {
		writeMutationError(w, "record set", err)
		return
	}
	pkg.WriteTextResponseOK(w, "recorded")
}

func (handler *DayHandler) HandleRemoveSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.removeSet")
	defer span.End()

	vars := mux.Vars(r)
	index, err := strconv.Atoi(vars["idx"])
	if err != nil {
		http.Error(w, "error, set index NaN", http.StatusBadRequest)
		return
	}

	if err := handler.facade.RemoveExtraSet(ctx, vars["date"], vars["id"], index); err != nil {
		writeMutationError(w, "remove set", err)
		return
	}
	pkg.WriteTextResponseOK(w, "removed")
}

func (handler *DayHandler) HandleSetWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.setWeight")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)

	var params struct {
		Weight float64 `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("set weight, unmarshal json params: %s", err)
		http.Error(w, "set weight failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SetExerciseWeight(ctx, vars["date"], vars["id"], params.Weight); err != nil {
		writeMutationError(w, "set weight", err)
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *DayHandler) HandleSaveRoutines(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.day.saveRoutines")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var routines userdata.RoutineCheck
	if err := json.NewDecoder(r.Body).Decode(&routines); err != nil {
		log.Errorf("save routines, unmarshal json params: %s", err)
		http.Error(w, "save routines failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SaveDailyRoutines(ctx, mux.Vars(r)["date"], routines); err != nil {
		writeMutationError(w, "save routines", err)
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

// buildDayView resolves a date against the program through the
// document's start date, reorderings and overrides. Completed days show
// their snapshot instead of the live schedule.
func buildDayView(doc *userdata.Document, date string, day time.Time) (*DayView, error) {
	start, err := schedule.ParseDay(doc.StartDate)
	if err != nil {
		return nil, err
	}
	position := schedule.ResolveProgramPosition(start, day)

	view := &DayView{
		Date:     date,
		Position: position,
		Log:      doc.Logs[date],
		Routines: doc.DailyRoutines[date],
	}

	var workout *program.DayWorkout
	if view.Log != nil && view.Log.Scheduled != nil {
		workout = view.Log.Scheduled
	} else if position.Status == schedule.StatusActive {
		weekKey := schedule.FormatDay(schedule.WeekStart(day))
		workout = schedule.ApplyWeekReordering(position, doc.WeekReorderings[weekKey])
	}
	if workout == nil {
		return view, nil
	}
	view.Workout = workout
	view.TargetMiles = schedule.TargetMiles(position, day)

	switch {
	case workout.Type.IsLift():
		if detail, ok := schedule.EffectiveWorkoutDetail(workout.Type, position, doc); ok {
			view.Detail = &detail
			view.Weights = make(map[string]float64)
			for _, ex := range detail.Exercises {
				if weight, ok := doc.ExerciseWeights[ex.ID]; ok {
					view.Weights[ex.ID] = weight
				}
			}
		}
	case workout.Type == program.TypeWalkRun:
		if protocol, ok := program.WalkRunProtocolForWeek(position.WeekInPhase); ok {
			view.WalkRun = &protocol
			view.WalkRunNote = program.WalkRunNotes
		}
	default:
		if notes, ok := program.RunNotesFor(workout.Type, position.Phase); ok {
			view.RunNotes = notes
		}
	}

	return view, nil
}

// writeMutationError maps facade errors onto HTTP statuses.
func writeMutationError(w http.ResponseWriter, action string, err error) {
	var parseErr *time.ParseError
	switch {
	case errors.As(err, &parseErr):
		http.Error(w, "error, invalid date", http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotReady):
		http.Error(w, "storage not ready", http.StatusServiceUnavailable)
	case errors.Is(err, storage.ErrExerciseNotFound):
		http.Error(w, "exercise not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrInvalidSetIndex),
		errors.Is(err, storage.ErrInvalidReordering),
		errors.Is(err, storage.ErrInvalidImport):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Errorf("%s: %s", action, err)
		http.Error(w, action+" failed", http.StatusInternalServerError)
	}
}
