package schedule

import (
	"github.com/cimtrainer/trainlog/internal/program"
)

// ValidateReordering checks that order is a permutation of the seven
// canonical day indexes 0..6 (0 = Monday).
func ValidateReordering(order []int) bool {
	if len(order) != 7 {
		return false
	}
	var seen [7]bool
	for _, idx := range order {
		if idx < 0 || idx > 6 {
			return false
		}
		if seen[idx] {
			return false
		}
		seen[idx] = true
	}
	return true
}

// ApplyWeekReordering resolves the workout for a day of week (1..7)
// through a stored reordering: slot i shows the canonical workout at
// order[i]. An invalid or missing order falls back to the canonical
// schedule, never to an error.
func ApplyWeekReordering(position ProgramPosition, order []int) *program.DayWorkout {
	if position.Status != StatusActive {
		return nil
	}
	if !ValidateReordering(order) {
		return ScheduledWorkout(position)
	}

	reordered := position
	reordered.DayOfWeek = order[position.DayOfWeek-1] + 1
	return ScheduledWorkout(reordered)
}
