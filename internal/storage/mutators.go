package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/schedule"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

var (
	ErrInvalidReordering = errors.New("invalid week reordering")
	ErrExerciseNotFound  = errors.New("exercise not found in catalog")
	ErrInvalidSetIndex   = errors.New("invalid set index")
)

// SetStartDate moves the program start. The date must be a canonical
// YYYY-MM-DD string; everything scheduled shifts with it.
func (f *Facade) SetStartDate(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.setStartDate", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		d.StartDate = date
		return nil
	})
}

// SaveDayLogParams carries the free-form parts of a day log. Nil fields
// are left untouched.
type SaveDayLogParams struct {
	Notes   *string
	Run     *userdata.RunLog
	Strides *userdata.Strides
}

// SaveDayLog updates the notes / run / strides of a day.
func (f *Facade) SaveDayLog(ctx context.Context, date string, params SaveDayLogParams) error {
	err := f.mutate(ctx, "storage.saveDayLog", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		dayLog := d.Log(date)
		if params.Notes != nil {
			dayLog.Notes = *params.Notes
		}
		if params.Run != nil {
			dayLog.Run = params.Run
		}
		if params.Strides != nil {
			dayLog.Strides = params.Strides
		}
		return nil
	})
	if err != nil {
		return err
	}
	f.instr.CounterDayLogSaves.Inc()
	return nil
}

// CompleteDay marks a day done and snapshots the workout shown for it
// at that moment, reorderings included, so later reordering or start
// date changes cannot rewrite history. Completing again refreshes the
// snapshot to whatever the day resolves to now.
func (f *Facade) CompleteDay(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.completeDay", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}

		dayLog := d.Log(date)
		dayLog.Completed = true
		dayLog.Skipped = false

		if workout := resolveWorkout(d, day); workout != nil {
			dayLog.Scheduled = workout
		}
		return nil
	})
}

// SkipDay marks a day as skipped, clearing any completion. The workout
// snapshot is taken here too so the skipped day keeps showing what was
// skipped.
func (f *Facade) SkipDay(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.skipDay", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}
		dayLog := d.Log(date)
		dayLog.Skipped = true
		dayLog.Completed = false

		if workout := resolveWorkout(d, day); workout != nil {
			dayLog.Scheduled = workout
		}
		return nil
	})
}

// UnskipDay clears the skipped flag.
func (f *Facade) UnskipDay(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.unskipDay", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		d.Log(date).Skipped = false
		return nil
	})
}

// MarkDayIncomplete clears the completed flag, keeping the rest of the log.
func (f *Facade) MarkDayIncomplete(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.markDayIncomplete", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		d.Log(date).Completed = false
		return nil
	})
}

// RecordSet writes one set entry at the given index, padding the set
// list with empty placeholders when the index is past the end. Indexes
// beyond the prescription are how extra sets get logged.
func (f *Facade) RecordSet(ctx context.Context, date, exerciseID string, index int, entry userdata.SetEntry) error {
	return f.mutate(ctx, "storage.recordSet", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		if index < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidSetIndex, index)
		}

		exLog := d.ExerciseLogFor(date, exerciseID)
		for len(exLog.Sets) <= index {
			exLog.Sets = append(exLog.Sets, userdata.SetEntry{})
		}
		exLog.Sets[index] = entry
		return nil
	})
}

// RemoveExtraSet splices out a set past the prescribed count. Sets
// within the prescription cannot be removed, only overwritten.
func (f *Facade) RemoveExtraSet(ctx context.Context, date, exerciseID string, index int) error {
	return f.mutate(ctx, "storage.removeExtraSet", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}

		prescribed, err := prescribedSets(d, day, exerciseID)
		if err != nil {
			return err
		}
		if index < prescribed {
			return fmt.Errorf("%w: set %d is within the prescribed %d sets", ErrInvalidSetIndex, index, prescribed)
		}

		exLog := d.ExerciseLogFor(date, exerciseID)
		if index >= len(exLog.Sets) {
			return fmt.Errorf("%w: %d, only %d sets logged", ErrInvalidSetIndex, index, len(exLog.Sets))
		}
		exLog.Sets = append(exLog.Sets[:index], exLog.Sets[index+1:]...)
		return nil
	})
}

// SetExerciseWeight records the working weight for an exercise on a
// day, clamped to the structural minimum (an empty bar for barbell
// lifts, one increment otherwise). The global per-exercise weight is
// updated too so the next session starts from it.
func (f *Facade) SetExerciseWeight(ctx context.Context, date, exerciseID string, weight float64) error {
	return f.mutate(ctx, "storage.setExerciseWeight", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}

		ex, err := findCatalogExercise(d, day, exerciseID)
		if err != nil {
			return err
		}
		if minWeight := ex.MinWeight(); weight < minWeight {
			weight = minWeight
		}

		d.ExerciseLogFor(date, exerciseID).Weight = weight
		d.ExerciseWeights[exerciseID] = weight
		return nil
	})
}

// SetExerciseSetsReps stores a per-phase sets/reps override for an exercise.
func (f *Facade) SetExerciseSetsReps(ctx context.Context, exerciseID string, phase int, override userdata.SetsRepsOverride) error {
	return f.mutate(ctx, "storage.setExerciseSetsReps", func(d *userdata.Document) error {
		if _, ok := program.FindExercise(phase, exerciseID); !ok {
			return fmt.Errorf("%w: %s in phase %d", ErrExerciseNotFound, exerciseID, phase)
		}
		if override.Sets < 0 || override.Reps < 0 {
			return fmt.Errorf("override sets/reps cannot be negative: %+v", override)
		}
		d.ExerciseSetsReps[userdata.OverrideKey(exerciseID, phase)] = &override
		return nil
	})
}

// ClearExerciseSetsReps removes a per-phase override, restoring the catalog.
func (f *Facade) ClearExerciseSetsReps(ctx context.Context, exerciseID string, phase int) error {
	return f.mutate(ctx, "storage.clearExerciseSetsReps", func(d *userdata.Document) error {
		delete(d.ExerciseSetsReps, userdata.OverrideKey(exerciseID, phase))
		return nil
	})
}

// SaveWeekReordering stores a day permutation for the week containing
// the given date. An invalid permutation is rejected and the stored
// state is left as it was.
func (f *Facade) SaveWeekReordering(ctx context.Context, date string, order []int) error {
	return f.mutate(ctx, "storage.saveWeekReordering", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}
		if !schedule.ValidateReordering(order) {
			return fmt.Errorf("%w: %v", ErrInvalidReordering, order)
		}
		weekKey := schedule.FormatDay(schedule.WeekStart(day))
		d.WeekReorderings[weekKey] = order
		return nil
	})
}

// ResetWeekReordering restores the canonical day order for a week.
func (f *Facade) ResetWeekReordering(ctx context.Context, date string) error {
	return f.mutate(ctx, "storage.resetWeekReordering", func(d *userdata.Document) error {
		day, err := schedule.ParseDay(date)
		if err != nil {
			return err
		}
		delete(d.WeekReorderings, schedule.FormatDay(schedule.WeekStart(day)))
		return nil
	})
}

// SaveDailyRoutines records the morning/evening routine checkmarks for a day.
func (f *Facade) SaveDailyRoutines(ctx context.Context, date string, routines userdata.RoutineCheck) error {
	return f.mutate(ctx, "storage.saveDailyRoutines", func(d *userdata.Document) error {
		if _, err := schedule.ParseDay(date); err != nil {
			return err
		}
		d.DailyRoutines[date] = &routines
		return nil
	})
}

// Reset throws away all user data and starts over with a default document.
func (f *Facade) Reset(ctx context.Context) error {
	return f.mutate(ctx, "storage.reset", func(d *userdata.Document) error {
		*d = *userdata.NewDefaultDocument(userdata.DefaultStartDate)
		return nil
	})
}

// resolveWorkout returns the workout shown for a day: the canonical
// schedule with the week's reordering applied. Nil outside the program.
func resolveWorkout(d *userdata.Document, day time.Time) *program.DayWorkout {
	start, err := schedule.ParseDay(d.StartDate)
	if err != nil {
		return nil
	}
	position := schedule.ResolveProgramPosition(start, day)
	if position.Status != schedule.StatusActive {
		return nil
	}
	weekKey := schedule.FormatDay(schedule.WeekStart(day))
	if order, ok := d.WeekReorderings[weekKey]; ok {
		return schedule.ApplyWeekReordering(position, order)
	}
	return schedule.ScheduledWorkout(position)
}

// findCatalogExercise resolves an exercise prescription for a day,
// preferring the day's phase and falling back to the first catalog
// occurrence when the day is outside the program.
func findCatalogExercise(d *userdata.Document, day time.Time, exerciseID string) (program.Exercise, error) {
	if start, err := schedule.ParseDay(d.StartDate); err == nil {
		position := schedule.ResolveProgramPosition(start, day)
		if position.Status == schedule.StatusActive {
			if ex, ok := program.FindExercise(position.Phase, exerciseID); ok {
				return ex, nil
			}
		}
	}
	for _, catalogEx := range program.AllExercises() {
		if catalogEx.ID == exerciseID {
			return catalogEx.Exercise, nil
		}
	}
	return program.Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, exerciseID)
}

// prescribedSets is the effective set count for an exercise on a day,
// overrides included.
func prescribedSets(d *userdata.Document, day time.Time, exerciseID string) (int, error) {
	ex, err := findCatalogExercise(d, day, exerciseID)
	if err != nil {
		return 0, err
	}

	phase := 0
	if start, parseErr := schedule.ParseDay(d.StartDate); parseErr == nil {
		if position := schedule.ResolveProgramPosition(start, day); position.Status == schedule.StatusActive {
			phase = position.Phase
		}
	}
	if phase > 0 {
		ex = schedule.EffectiveExercise(ex, d.Override(exerciseID, phase))
	}
	return ex.Sets, nil
}
