package userdata

import (
	"fmt"

	"github.com/cimtrainer/trainlog/internal/program"
)

// DefaultStartDate is the Monday that begins program week 1 for fresh documents.
const DefaultStartDate = "2026-02-02"

// Document is the single persisted user data blob. All keys into Logs and
// DailyRoutines are canonical YYYY-MM-DD strings, WeekReorderings keys are
// the Monday starting the week.
type Document struct {
	StartDate        string                       `json:"startDate" validate:"required"`
	Logs             map[string]*DayLog           `json:"logs" validate:"required"`
	DailyRoutines    map[string]*RoutineCheck     `json:"dailyRoutines"`
	ExerciseWeights  map[string]float64           `json:"exerciseWeights"`
	WeekReorderings  map[string][]int             `json:"weekReorderings"`
	ExerciseSetsReps map[string]*SetsRepsOverride `json:"exerciseSetsReps"`
	Version          string                       `json:"version"`
}

// DayLog holds everything the user recorded for one calendar date.
type DayLog struct {
	Completed bool                    `json:"completed"`
	Skipped   bool                    `json:"skipped"`
	Scheduled *program.DayWorkout     `json:"scheduled,omitempty"`
	Notes     string                  `json:"notes,omitempty"`
	Exercises map[string]*ExerciseLog `json:"exercises,omitempty"`
	Run       *RunLog                 `json:"run,omitempty"`
	Strides   *Strides                `json:"strides,omitempty"`
}

// ExerciseLog is the recorded result of one exercise on one day.
// Weight is shared across all sets of the exercise that day.
// Sets may grow beyond the prescribed count when extra sets are added.
type ExerciseLog struct {
	Weight float64    `json:"weight,omitempty"`
	Sets   []SetEntry `json:"sets"`
}

// SetEntry is one recorded set: either a rep count or a duration,
// depending on the prescription.
type SetEntry struct {
	Reps      int  `json:"reps,omitempty"`
	Seconds   int  `json:"seconds,omitempty"`
	Completed bool `json:"completed"`
}

// RunLog keeps run results as entered, unparsed.
type RunLog struct {
	Distance string `json:"distance"`
	Duration string `json:"duration"`
	AvgHR    string `json:"avgHR"`
}

type Strides struct {
	Completed bool `json:"completed"`
	Count     int  `json:"count"`
}

type RoutineCheck struct {
	Morning bool `json:"morning"`
	Evening bool `json:"evening"`
}

// SetsRepsOverride replaces the catalog sets/reps prescription for one
// exercise within one phase. A zero field means "keep the catalog value".
type SetsRepsOverride struct {
	Sets int `json:"sets"`
	Reps int `json:"reps"`
}

// OverrideKey builds the ExerciseSetsReps key for an exercise and phase.
func OverrideKey(exerciseID string, phase int) string {
	return fmt.Sprintf("%s:phase%d", exerciseID, phase)
}

// NewDefaultDocument creates a fresh document with catalog defaults.
func NewDefaultDocument(startDate string) *Document {
	return &Document{
		StartDate:        startDate,
		Logs:             make(map[string]*DayLog),
		DailyRoutines:    make(map[string]*RoutineCheck),
		ExerciseWeights:  make(map[string]float64),
		WeekReorderings:  make(map[string][]int),
		ExerciseSetsReps: make(map[string]*SetsRepsOverride),
		Version:          CurrentVersion,
	}
}

// EnsureMaps lazily creates any missing sub-maps. Older documents and
// hand-imported ones may omit them.
func (d *Document) EnsureMaps() {
	if d.Logs == nil {
		d.Logs = make(map[string]*DayLog)
	}
	if d.DailyRoutines == nil {
		d.DailyRoutines = make(map[string]*RoutineCheck)
	}
	if d.ExerciseWeights == nil {
		d.ExerciseWeights = make(map[string]float64)
	}
	if d.WeekReorderings == nil {
		d.WeekReorderings = make(map[string][]int)
	}
	if d.ExerciseSetsReps == nil {
		d.ExerciseSetsReps = make(map[string]*SetsRepsOverride)
	}
}

// Log returns the day log for a date, creating it on first use.
func (d *Document) Log(date string) *DayLog {
	d.EnsureMaps()
	dayLog, ok := d.Logs[date]
	if !ok {
		dayLog = &DayLog{}
		d.Logs[date] = dayLog
	}
	return dayLog
}

// ExerciseLogFor returns the exercise log for a date and exercise,
// creating both levels on first use.
func (d *Document) ExerciseLogFor(date, exerciseID string) *ExerciseLog {
	dayLog := d.Log(date)
	if dayLog.Exercises == nil {
		dayLog.Exercises = make(map[string]*ExerciseLog)
	}
	exLog, ok := dayLog.Exercises[exerciseID]
	if !ok {
		exLog = &ExerciseLog{}
		dayLog.Exercises[exerciseID] = exLog
	}
	return exLog
}

// Override returns the sets/reps override for an exercise and phase, if any.
func (d *Document) Override(exerciseID string, phase int) *SetsRepsOverride {
	if d.ExerciseSetsReps == nil {
		return nil
	}
	return d.ExerciseSetsReps[OverrideKey(exerciseID, phase)]
}

// Clone returns a deep copy of the document via its JSON form.
// Used by export and tests; mutators work on the cached original.
func (d *Document) Clone() (*Document, error) {
	data, err := Marshal(d)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
