package trainstats

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cimtrainer/trainlog/internal/userdata"
)

func TestEstimateOneRepMax(t *testing.T) {
	// brzycki: weight * 36 / (37 - reps)
	assert.InDelta(t, 225, EstimateOneRepMax(200, 5), 0.001)
	assert.InDelta(t, 200, EstimateOneRepMax(200, 1), 0.001)
	assert.InDelta(t, 240, EstimateOneRepMax(200, 7), 0.001)

	// at 37 reps the denominator would hit zero; the weight comes back unchanged
	assert.Equal(t, float64(200), EstimateOneRepMax(200, 37))
	assert.Equal(t, float64(200), EstimateOneRepMax(200, 50))
	assert.Equal(t, float64(200), EstimateOneRepMax(200, 0))
	assert.Equal(t, float64(200), EstimateOneRepMax(200, -3))
}

func TestExerciseHistory(t *testing.T) {
	ctx := context.Background()
	doc := userdata.NewDefaultDocument(userdata.DefaultStartDate)

	// logged out of order to prove sorting
	benchLater := doc.ExerciseLogFor("2026-02-09", "bench-press")
	benchLater.Weight = 140
	benchLater.Sets = []userdata.SetEntry{{Reps: 5, Completed: true}}
	benchEarlier := doc.ExerciseLogFor("2026-02-02", "bench-press")
	benchEarlier.Weight = 135
	benchEarlier.Sets = []userdata.SetEntry{{Reps: 5, Completed: true}}

	// an empty exercise entry does not count as history
	doc.ExerciseLogFor("2026-02-04", "bench-press")
	// other exercises stay out of this history
	squat := doc.ExerciseLogFor("2026-02-02", "low-bar-squat")
	squat.Weight = 185

	analyzer := NewAnalyzer(NewMockDocumentSource(doc))

	history, err := analyzer.ExerciseHistory(ctx, "bench-press")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-02-02", history[0].Date)
	assert.Equal(t, float64(135), history[0].Log.Weight)
	assert.Equal(t, "2026-02-09", history[1].Date)

	history, err = analyzer.ExerciseHistory(ctx, "deadlift")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestExerciseHistorySourceError(t *testing.T) {
	source := NewMockDocumentSource(nil)
	source.Err = errors.New("not ready")

	analyzer := NewAnalyzer(source)
	_, err := analyzer.ExerciseHistory(context.Background(), "bench-press")
	require.Error(t, err)
}

func TestProgressHistory(t *testing.T) {
	ctx := context.Background()
	doc := userdata.NewDefaultDocument(userdata.DefaultStartDate)

	bench := doc.ExerciseLogFor("2026-02-02", "bench-press")
	bench.Weight = 200
	bench.Sets = []userdata.SetEntry{
		{Reps: 5, Completed: true},
		{Reps: 7, Completed: true},
		{Reps: 12, Completed: false}, // uncompleted sets don't count
	}

	// a day with no completed sets falls back to the working weight
	benchNext := doc.ExerciseLogFor("2026-02-09", "bench-press")
	benchNext.Weight = 205
	benchNext.Sets = []userdata.SetEntry{{Reps: 5}}

	analyzer := NewAnalyzer(NewMockDocumentSource(doc))

	points, err := analyzer.ProgressHistory(ctx, "bench-press")
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, float64(200), points[0].TopWeight)
	// best of the completed sets: 200 x 7 -> 240
	assert.InDelta(t, 240, points[0].EstOneRepMax, 0.001)

	assert.Equal(t, float64(205), points[1].TopWeight)
	assert.Equal(t, float64(205), points[1].EstOneRepMax)
}
