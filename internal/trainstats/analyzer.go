package trainstats

import (
	"context"
	"sort"

	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
	"github.com/cimtrainer/trainlog/internal/userdata"
)

type documentSource interface {
	Document(ctx context.Context) (*userdata.Document, error)
}

// Analyzer derives statistics from the user data document. It never
// writes anything; every call works on a fresh snapshot.
type Analyzer struct {
	source documentSource
}

func NewAnalyzer(source documentSource) *Analyzer {
	return &Analyzer{
		source: source,
	}
}

// HistoryEntry is one day of an exercise's history.
type HistoryEntry struct {
	Date string                `json:"date"`
	Log  *userdata.ExerciseLog `json:"log"`
}

// ExerciseHistory lists every day the exercise was logged on, oldest first.
func (a *Analyzer) ExerciseHistory(ctx context.Context, exerciseID string) ([]HistoryEntry, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.exerciseHistory")
	defer span.End()

	doc, err := a.source.Document(ctx)
	if err != nil {
		return nil, err
	}

	var history []HistoryEntry
	for date, dayLog := range doc.Logs {
		exLog, ok := dayLog.Exercises[exerciseID]
		if !ok {
			continue
		}
		if exLog.Weight == 0 && len(exLog.Sets) == 0 {
			continue
		}
		history = append(history, HistoryEntry{Date: date, Log: exLog})
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date < history[j].Date
	})

	return history, nil
}

// EstimateOneRepMax estimates a one rep max with the Brzycki formula.
// At 37+ reps the formula's denominator hits zero and beyond, so the
// working weight is returned as-is.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps >= 37 || reps <= 0 {
		return weight
	}
	return weight * 36 / float64(37-reps)
}

// ProgressPoint is one day on an exercise's progress chart.
type ProgressPoint struct {
	Date         string  `json:"date"`
	TopWeight    float64 `json:"topWeight"`
	EstOneRepMax float64 `json:"estOneRepMax"`
}

// ProgressHistory charts an exercise over time: for each day the
// working weight and the best estimated one rep max across its
// completed sets.
func (a *Analyzer) ProgressHistory(ctx context.Context, exerciseID string) ([]ProgressPoint, error) {
	history, err := a.ExerciseHistory(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	points := make([]ProgressPoint, 0, len(history))
	for _, entry := range history {
		point := ProgressPoint{
			Date:         entry.Date,
			TopWeight:    entry.Log.Weight,
			EstOneRepMax: entry.Log.Weight,
		}
		for _, set := range entry.Log.Sets {
			if !set.Completed || set.Reps <= 0 {
				continue
			}
			if e1rm := EstimateOneRepMax(entry.Log.Weight, set.Reps); e1rm > point.EstOneRepMax {
				point.EstOneRepMax = e1rm
			}
		}
		points = append(points, point)
	}

	return points, nil
}
