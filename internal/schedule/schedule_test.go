package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimtrainer/trainlog/internal/program"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	day, err := ParseDay(s)
	require.NoError(t, err)
	return day
}

func TestParseDay(t *testing.T) {
	day, err := ParseDay("2026-02-02")
	require.NoError(t, err)
	assert.Equal(t, 2026, day.Year())
	assert.Equal(t, time.February, day.Month())
	assert.Equal(t, 2, day.Day())
	assert.Equal(t, time.Monday, day.Weekday())
	assert.Equal(t, "2026-02-02", FormatDay(day))

	_, err = ParseDay("02/02/2026")
	require.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	start := mustDay(t, "2026-02-02")
	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, 1, DaysBetween(start, mustDay(t, "2026-02-03")))
	assert.Equal(t, -1, DaysBetween(start, mustDay(t, "2026-02-01")))
	assert.Equal(t, 146, DaysBetween(start, mustDay(t, "2026-06-28")))
	// across a leap-year February
	assert.Equal(t, 29, DaysBetween(mustDay(t, "2028-02-01"), mustDay(t, "2028-03-01")))
}

func TestWeekStart(t *testing.T) {
	monday := mustDay(t, "2026-02-02")
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, monday, WeekStart(mustDay(t, "2026-02-04")))
	assert.Equal(t, monday, WeekStart(mustDay(t, "2026-02-08"))) // Sunday
	assert.Equal(t, mustDay(t, "2026-02-09"), WeekStart(mustDay(t, "2026-02-09")))
}

func TestResolveProgramPosition(t *testing.T) {
	start := mustDay(t, "2026-02-02")

	t.Run("before the program", func(t *testing.T) {
		pos := ResolveProgramPosition(start, mustDay(t, "2026-02-01"))
		assert.Equal(t, StatusBefore, pos.Status)
		assert.Zero(t, pos.Week)
	})

	t.Run("first day", func(t *testing.T) {
		pos := ResolveProgramPosition(start, start)
		assert.Equal(t, StatusActive, pos.Status)
		assert.Equal(t, 1, pos.Phase)
		assert.Equal(t, 1, pos.Week)
		assert.Equal(t, 1, pos.WeekInPhase)
		assert.Equal(t, 1, pos.DayOfWeek)
	})

	t.Run("phase boundaries", func(t *testing.T) {
		// last day of week 4 is still phase 1
		pos := ResolveProgramPosition(start, AddDays(start, 4*7-1))
		assert.Equal(t, 1, pos.Phase)
		assert.Equal(t, 4, pos.Week)
		assert.Equal(t, 7, pos.DayOfWeek)

		// first day of week 5 flips to phase 2
		pos = ResolveProgramPosition(start, AddDays(start, 4*7))
		assert.Equal(t, 2, pos.Phase)
		assert.Equal(t, 5, pos.Week)
		assert.Equal(t, 1, pos.WeekInPhase)

		// week 8 -> week 9 is the phase 2 -> 3 boundary
		pos = ResolveProgramPosition(start, AddDays(start, 8*7-1))
		assert.Equal(t, 2, pos.Phase)
		pos = ResolveProgramPosition(start, AddDays(start, 8*7))
		assert.Equal(t, 3, pos.Phase)
		assert.Equal(t, 9, pos.Week)
		assert.Equal(t, 1, pos.WeekInPhase)
	})

	t.Run("after the program", func(t *testing.T) {
		pos := ResolveProgramPosition(start, AddDays(start, 21*7-1))
		assert.Equal(t, StatusActive, pos.Status)
		assert.Equal(t, 21, pos.Week)

		pos = ResolveProgramPosition(start, AddDays(start, 21*7))
		assert.Equal(t, StatusAfter, pos.Status)
	})

	t.Run("deload weeks flagged", func(t *testing.T) {
		for _, week := range []int{12, 16, 20} {
			pos := ResolveProgramPosition(start, AddDays(start, (week-1)*7))
			assert.True(t, pos.IsDeload, "week %d", week)
		}
		pos := ResolveProgramPosition(start, AddDays(start, 10*7))
		assert.False(t, pos.IsDeload)
	})
}

// every date resolves, and positions never move backwards as the date advances
func TestResolveProgramPositionMonotonic(t *testing.T) {
	start := mustDay(t, "2026-02-02")

	prevRank := -1
	prevWeek := 0
	for offset := -30; offset < 21*7+30; offset++ {
		pos := ResolveProgramPosition(start, AddDays(start, offset))

		var rank int
		switch pos.Status {
		case StatusBefore:
			rank = 0
		case StatusActive:
			rank = 1
		case StatusAfter:
			rank = 2
		default:
			t.Fatalf("unexpected status %q at offset %d", pos.Status, offset)
		}
		require.GreaterOrEqual(t, rank, prevRank, "status regressed at offset %d", offset)
		prevRank = rank

		if pos.Status == StatusActive {
			require.GreaterOrEqual(t, pos.Week, prevWeek, "week regressed at offset %d", offset)
			prevWeek = pos.Week
			require.Equal(t, offset/7+1, pos.Week)
			require.Equal(t, offset%7+1, pos.DayOfWeek)
		}
	}
}

func TestScheduledWorkout(t *testing.T) {
	start := mustDay(t, "2026-02-02")

	t.Run("outside the program", func(t *testing.T) {
		assert.Nil(t, ScheduledWorkout(ProgramPosition{Status: StatusBefore}))
		assert.Nil(t, ScheduledWorkout(ProgramPosition{Status: StatusAfter}))
	})

	t.Run("phase templates", func(t *testing.T) {
		// phase 1 Monday is lift A
		pos := ResolveProgramPosition(start, start)
		workout := ScheduledWorkout(pos)
		require.NotNil(t, workout)
		assert.Equal(t, program.TypeLiftA, workout.Type)

		// phase 2 Tuesday is an easy run
		pos = ResolveProgramPosition(start, AddDays(start, 4*7+1))
		workout = ScheduledWorkout(pos)
		require.NotNil(t, workout)
		assert.Equal(t, program.TypeEasyRun, workout.Type)

		// phase 3 Saturday is the long run
		pos = ResolveProgramPosition(start, AddDays(start, 8*7+5))
		workout = ScheduledWorkout(pos)
		require.NotNil(t, workout)
		assert.Equal(t, program.TypeLongRun, workout.Type)
	})

	t.Run("every active day has a workout", func(t *testing.T) {
		for offset := 0; offset < 21*7; offset++ {
			pos := ResolveProgramPosition(start, AddDays(start, offset))
			require.Equal(t, StatusActive, pos.Status)
			require.NotNil(t, ScheduledWorkout(pos), "offset %d", offset)
		}
	})
}

func TestTargetMiles(t *testing.T) {
	start := mustDay(t, "2026-02-02")

	// weeks 1-4 have no mileage plan
	date := AddDays(start, 1)
	assert.Zero(t, TargetMiles(ResolveProgramPosition(start, date), date))

	// week 5 Tuesday is 3 miles
	date = AddDays(start, 4*7+1)
	assert.Equal(t, 3, TargetMiles(ResolveProgramPosition(start, date), date))

	// week 21 Saturday is the 16 mile test run
	date = AddDays(start, 20*7+5)
	assert.Equal(t, 16, TargetMiles(ResolveProgramPosition(start, date), date))
}
