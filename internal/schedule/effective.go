package schedule

import (
	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

// EffectiveExercise overlays a per-phase sets/reps override onto a
// catalog exercise. Zero override fields keep the catalog prescription,
// and an overridden reps count is always a plain count.
func EffectiveExercise(ex program.Exercise, override *userdata.SetsRepsOverride) program.Exercise {
	if override == nil {
		return ex
	}
	if override.Sets > 0 {
		ex.Sets = override.Sets
	}
	if override.Reps > 0 {
		ex.Reps = program.CountReps(override.Reps)
	}
	return ex
}

// EffectiveWorkoutDetail resolves the lift detail for a position with
// all of the document's overrides for that phase applied.
func EffectiveWorkoutDetail(workoutType program.WorkoutType, position ProgramPosition, doc *userdata.Document) (program.WorkoutDetail, bool) {
	detail, ok := program.WorkoutDetailFor(workoutType, position.Phase)
	if !ok {
		return program.WorkoutDetail{}, false
	}

	exercises := make([]program.Exercise, len(detail.Exercises))
	for i, ex := range detail.Exercises {
		exercises[i] = EffectiveExercise(ex, doc.Override(ex.ID, position.Phase))
	}
	detail.Exercises = exercises
	return detail, true
}
