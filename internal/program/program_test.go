package program

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Structure(t *testing.T) {
	require.Len(t, Program, 3)

	totalWeeks := 0
	for _, phase := range Program {
		totalWeeks += phase.Weeks
		require.Len(t, phase.WeekTemplate, 7, "phase %d", phase.ID)
		for day := 1; day <= 7; day++ {
			workout, ok := phase.WeekTemplate[day]
			require.True(t, ok, "phase %d day %d", phase.ID, day)
			assert.NotEmpty(t, workout.Type)
			assert.NotEmpty(t, workout.Name)
		}
	}
	assert.Equal(t, TotalWeeks, totalWeeks)

	t.Run("phase by id", func(t *testing.T) {
		phase, ok := PhaseByID(2)
		require.True(t, ok)
		assert.Equal(t, "Transition to Running", phase.Name)

		_, ok = PhaseByID(4)
		assert.False(t, ok)
	})
}

func TestWorkoutType_Kind(t *testing.T) {
	assert.True(t, TypeLiftA.IsLift())
	assert.True(t, TypeLiftC.IsLift())
	assert.False(t, TypeEasyRun.IsLift())

	assert.True(t, TypeWalkRun.IsRun())
	assert.True(t, TypeLongRun.IsRun())
	assert.False(t, TypeRest.IsRun())
	assert.False(t, TypeOptional.IsRun())
}

func TestWorkoutDetailFor(t *testing.T) {
	// every lift in every phase template has a detail prescription
	for _, phase := range Program {
		for day := 1; day <= 7; day++ {
			workout := phase.WeekTemplate[day]
			if !workout.Type.IsLift() {
				continue
			}
			detail, ok := WorkoutDetailFor(workout.Type, phase.ID)
			require.True(t, ok, "phase %d: %s", phase.ID, workout.Type)
			assert.NotEmpty(t, detail.Exercises)
			for _, ex := range detail.Exercises {
				assert.NotEmpty(t, ex.ID)
				assert.Positive(t, ex.Sets, "exercise %s", ex.ID)
			}
		}
	}

	t.Run("misses", func(t *testing.T) {
		_, ok := WorkoutDetailFor(TypeEasyRun, 1)
		assert.False(t, ok)
		_, ok = WorkoutDetailFor(TypeLiftC, 2)
		assert.False(t, ok, "lift C only exists in phase 1")
	})
}

func TestFindExercise(t *testing.T) {
	ex, ok := FindExercise(1, "deadlift")
	require.True(t, ok)
	assert.Equal(t, "Deadlift", ex.Name)
	assert.True(t, ex.Barbell)

	_, ok = FindExercise(2, "core-circuit")
	assert.False(t, ok, "core circuit is a phase 1 lift C exercise")

	_, ok = FindExercise(1, "leg-press")
	assert.False(t, ok)
}

func TestExercise_MinWeight(t *testing.T) {
	bench, ok := FindExercise(1, "bench-press")
	require.True(t, ok)
	assert.Equal(t, float64(BarWeight), bench.MinWeight())

	pullthrough, ok := FindExercise(2, "cable-pullthrough")
	require.True(t, ok)
	assert.Equal(t, 2.5, pullthrough.MinWeight())

	assert.Equal(t, float64(DefaultIncrement), Exercise{}.MinWeight())
}

func TestWalkRunProtocolForWeek(t *testing.T) {
	for week := 1; week <= 4; week++ {
		protocol, ok := WalkRunProtocolForWeek(week)
		require.True(t, ok, "week %d", week)
		assert.NotEmpty(t, protocol.Protocol)
		assert.Positive(t, protocol.TotalTime)
		assert.Greater(t, protocol.TotalTime, protocol.RunningTime)
	}

	_, ok := WalkRunProtocolForWeek(5)
	assert.False(t, ok)
}

func TestRunNotesFor(t *testing.T) {
	t.Run("phase specific entry wins", func(t *testing.T) {
		notes, ok := RunNotesFor(TypeEasyRun, 3)
		require.True(t, ok)
		assert.Contains(t, notes, "145-151")
	})

	t.Run("falls back to default", func(t *testing.T) {
		notes, ok := RunNotesFor(TypeEasyRun, 2)
		require.True(t, ok)
		assert.Contains(t, notes, "139-145")

		notes, ok = RunNotesFor(TypeRest, 3)
		require.True(t, ok)
		assert.Contains(t, notes, "Full rest")
	})

	t.Run("lifts have no run notes", func(t *testing.T) {
		_, ok := RunNotesFor(TypeLiftA, 1)
		assert.False(t, ok)
	})
}

func TestMileageTargets(t *testing.T) {
	// weeks 1-4 have no targets, weeks 5-21 all do
	for week := 1; week <= 4; week++ {
		_, ok := MileageTargetForWeek(week)
		assert.False(t, ok, "week %d", week)
	}

	for week := 5; week <= 21; week++ {
		mt, ok := MileageTargetForWeek(week)
		require.True(t, ok, "week %d", week)

		daily := mt.Mon + mt.Tue + mt.Wed + mt.Thu + mt.Fri + mt.Sat + mt.Sun
		assert.Equal(t, mt.Total, daily, "week %d daily miles must sum to the total", week)
	}

	t.Run("deload weeks", func(t *testing.T) {
		for week := 5; week <= 21; week++ {
			mt, _ := MileageTargetForWeek(week)
			isDeload := week == 12 || week == 16 || week == 20
			assert.Equal(t, isDeload, mt.IsDeload, "week %d", week)
		}
	})

	t.Run("weekday miles", func(t *testing.T) {
		week5, _ := MileageTargetForWeek(5)
		assert.Equal(t, 3, week5.Miles(time.Tuesday))
		assert.Equal(t, 4, week5.Miles(time.Saturday))
		assert.Zero(t, week5.Miles(time.Sunday))
	})
}

func TestAllExercises(t *testing.T) {
	all := AllExercises()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, ex := range all {
		assert.False(t, seen[ex.ID], "duplicate exercise: %s", ex.ID)
		seen[ex.ID] = true
		assert.NotEmpty(t, ex.Phases, "exercise %s", ex.ID)
	}

	t.Run("multi phase exercises list every phase", func(t *testing.T) {
		for _, ex := range all {
			if ex.ID == "deadlift" {
				assert.Equal(t, []int{1, 2, 3}, ex.Phases)
			}
		}
	})

	t.Run("grouped by category", func(t *testing.T) {
		grouped := ExercisesByCategory()
		require.NotEmpty(t, grouped[CategoryCompound])
		require.NotEmpty(t, grouped[CategoryCore])
		_, hasOther := grouped[CategoryOther]
		assert.False(t, hasOther, "all catalog exercises are categorized")
	})

	t.Run("category of unlisted exercise", func(t *testing.T) {
		assert.Equal(t, CategoryOther, CategoryOf("leg-press"))
	})
}
