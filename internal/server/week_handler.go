package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/schedule"
	"github.com/cimtrainer/trainlog/internal/storage"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/pkg"
)

// WeekDayView is one row of the week overview.
type WeekDayView struct {
	Date        string              `json:"date"`
	Workout     *program.DayWorkout `json:"workout,omitempty"`
	TargetMiles int                 `json:"targetMiles,omitempty"`
	Completed   bool                `json:"completed"`
	Skipped     bool                `json:"skipped"`
}

// WeekView is the 7-day overview of the week containing a date.
type WeekView struct {
	WeekStart     string                   `json:"weekStart"`
	Position      schedule.ProgramPosition `json:"position"`
	Days          []WeekDayView            `json:"days"`
	Reordered     bool                     `json:"reordered"`
	TargetMiles   int                      `json:"targetMiles,omitempty"`
	CompletedDays int                      `json:"completedDays"`
}

type WeekHandler struct {
	facade *storage.Facade
}

func NewWeekHandler(facade *storage.Facade) *WeekHandler {
	return &WeekHandler{
		facade: facade,
	}
}

func (handler *WeekHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.week.get")
	defer span.End()

	date := mux.Vars(r)["date"]
	day, err := schedule.ParseDay(date)
	if err != nil {
		http.Error(w, "error, invalid date", http.StatusBadRequest)
		return
	}

	doc, err := handler.facade.Document(ctx)
	if err != nil {
		log.Errorf("get week %s: %s", date, err)
		http.Error(w, "failed to get week", http.StatusInternalServerError)
		return
	}

	start, err := schedule.ParseDay(doc.StartDate)
	if err != nil {
		log.Errorf("get week %s: invalid start date in document: %s", date, err)
		http.Error(w, "failed to get week", http.StatusInternalServerError)
		return
	}

	weekStart := schedule.WeekStart(day)
	weekKey := schedule.FormatDay(weekStart)
	order := doc.WeekReorderings[weekKey]

	view := &WeekView{
		WeekStart: weekKey,
		Position:  schedule.ResolveProgramPosition(start, weekStart),
		Days:      make([]WeekDayView, 0, 7),
		Reordered: schedule.ValidateReordering(order),
	}
	if mt, ok := program.MileageTargetForWeek(view.Position.Week); ok {
		view.TargetMiles = mt.Total
	}

	for offset := 0; offset < 7; offset++ {
		dayDate := schedule.AddDays(weekStart, offset)
		dayKey := schedule.FormatDay(dayDate)
		position := schedule.ResolveProgramPosition(start, dayDate)

		dayView := WeekDayView{
			Date:        dayKey,
			Workout:     schedule.ApplyWeekReordering(position, order),
			TargetMiles: schedule.TargetMiles(position, dayDate),
		}
		if dayLog, ok := doc.Logs[dayKey]; ok {
			dayView.Completed = dayLog.Completed
			dayView.Skipped = dayLog.Skipped
			if dayLog.Scheduled != nil {
				dayView.Workout = dayLog.Scheduled
			}
			if dayLog.Completed {
				view.CompletedDays++
			}
		}
		view.Days = append(view.Days, dayView)
	}

	viewJson, err := json.Marshal(view)
	if err != nil {
		log.Errorf("failed to marshal week view: %s", err)
		http.Error(w, "failed to get week", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, viewJson, http.StatusOK)
}

func (handler *WeekHandler) HandleSaveReordering(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.week.saveReordering")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var params struct {
		Order []int `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		log.Errorf("save reordering, unmarshal json params: %s", err)
		http.Error(w, "save reordering failed", http.StatusBadRequest)
		return
	}

	if err := handler.facade.SaveWeekReordering(ctx, mux.Vars(r)["date"], params.Order); err != nil {
		writeMutationError(w, "save reordering", err)
		return
	}
	pkg.WriteTextResponseOK(w, "saved")
}

func (handler *WeekHandler) HandleResetReordering(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.week.resetReordering")
	defer span.End()

	if err := handler.facade.ResetWeekReordering(ctx, mux.Vars(r)["date"]); err != nil {
		writeMutationError(w, "reset reordering", err)
		return
	}
	pkg.WriteTextResponseOK(w, "reset")
}
