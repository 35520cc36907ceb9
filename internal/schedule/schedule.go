package schedule

import (
	"time"

	"github.com/cimtrainer/trainlog/internal/program"
)

// Status says where a date falls relative to the program.
type Status string

const (
	StatusBefore Status = "before"
	StatusActive Status = "active"
	StatusAfter  Status = "after"
)

// ProgramPosition locates one calendar date within the 21 week program.
type ProgramPosition struct {
	Status Status `json:"status"`
	// Phase, Week, WeekInPhase and DayOfWeek are only set when active.
	Phase       int  `json:"phase,omitempty"`
	Week        int  `json:"week,omitempty"`
	WeekInPhase int  `json:"weekInPhase,omitempty"`
	DayOfWeek   int  `json:"dayOfWeek,omitempty"` // 1 = Monday .. 7 = Sunday
	IsDeload    bool `json:"isDeload,omitempty"`
}

// ResolveProgramPosition maps a target date onto the program given its
// start date (the Monday of week 1). Total: every date resolves to
// before, active or after.
func ResolveProgramPosition(startDate, targetDate time.Time) ProgramPosition {
	daysSinceStart := DaysBetween(startDate, targetDate)

	if daysSinceStart < 0 {
		return ProgramPosition{Status: StatusBefore}
	}

	programWeek := daysSinceStart/7 + 1
	dayOfWeek := daysSinceStart%7 + 1

	var phase, weekInPhase int
	switch {
	case programWeek <= 4:
		phase = 1
		weekInPhase = programWeek
	case programWeek <= 8:
		phase = 2
		weekInPhase = programWeek - 4
	case programWeek <= program.TotalWeeks:
		phase = 3
		weekInPhase = programWeek - 8
	default:
		return ProgramPosition{Status: StatusAfter}
	}

	isDeload := false
	if mt, ok := program.MileageTargetForWeek(programWeek); ok {
		isDeload = mt.IsDeload
	}

	return ProgramPosition{
		Status:      StatusActive,
		Phase:       phase,
		Week:        programWeek,
		WeekInPhase: weekInPhase,
		DayOfWeek:   dayOfWeek,
		IsDeload:    isDeload,
	}
}

// ScheduledWorkout returns the canonical (Monday-first, unreordered)
// workout due at the given program position, or nil when the date is
// outside the program or the catalog has no entry for that day.
func ScheduledWorkout(position ProgramPosition) *program.DayWorkout {
	if position.Status != StatusActive {
		return nil
	}

	phase, ok := program.PhaseByID(position.Phase)
	if !ok {
		return nil
	}

	workout, ok := phase.WeekTemplate[position.DayOfWeek]
	if !ok {
		return nil
	}

	return &workout
}

// TargetMiles returns the planned running miles for a date at the given
// position. Zero when the week has no mileage plan.
func TargetMiles(position ProgramPosition, date time.Time) int {
	if position.Status != StatusActive {
		return 0
	}
	mt, ok := program.MileageTargetForWeek(position.Week)
	if !ok {
		return 0
	}
	return mt.Miles(date.Weekday())
}
