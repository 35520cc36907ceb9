package trainstats

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cimtrainer/trainlog/internal/program"
	"github.com/cimtrainer/trainlog/internal/schedule"
	"github.com/cimtrainer/trainlog/internal/telemetry/tracing"
)

// WeekRunSummary aggregates the logged runs of one program week.
type WeekRunSummary struct {
	Week         int     `json:"week"`
	Runs         int     `json:"runs"`
	TotalMiles   float64 `json:"totalMiles"`
	TargetMiles  int     `json:"targetMiles"`
	TotalMinutes float64 `json:"totalMinutes"`
	// AvgHR is averaged over the runs that recorded one, 0 when none did.
	AvgHR int `json:"avgHR"`
	// AvgPace is minutes:seconds per mile over the whole week's mileage.
	AvgPace string `json:"avgPace,omitempty"`
}

// WeeklyRunSummary groups every logged run by program week, skipping
// runs dated outside the program. Weeks come back in order.
func (a *Analyzer) WeeklyRunSummary(ctx context.Context) ([]WeekRunSummary, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.weeklyRunSummary")
	defer span.End()

	doc, err := a.source.Document(ctx)
	if err != nil {
		return nil, err
	}

	startDate, err := schedule.ParseDay(doc.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date in document: %w", err)
	}

	type weekAccumulator struct {
		summary WeekRunSummary
		hrSum   int
		hrCount int
	}
	weeks := make(map[int]*weekAccumulator)

	for date, dayLog := range doc.Logs {
		if dayLog.Run == nil {
			continue
		}
		day, err := schedule.ParseDay(date)
		if err != nil {
			continue
		}
		position := schedule.ResolveProgramPosition(startDate, day)
		if position.Status != schedule.StatusActive {
			continue
		}

		acc, ok := weeks[position.Week]
		if !ok {
			acc = &weekAccumulator{summary: WeekRunSummary{Week: position.Week}}
			if mt, ok := program.MileageTargetForWeek(position.Week); ok {
				acc.summary.TargetMiles = mt.Total
			}
			weeks[position.Week] = acc
		}

		acc.summary.Runs++
		if miles, ok := parseMiles(dayLog.Run.Distance); ok {
			acc.summary.TotalMiles += miles
		}
		if minutes, ok := parseRunMinutes(dayLog.Run.Duration); ok {
			acc.summary.TotalMinutes += minutes
		}
		if hr, ok := parseHeartRate(dayLog.Run.AvgHR); ok {
			acc.hrSum += hr
			acc.hrCount++
		}
	}

	summaries := make([]WeekRunSummary, 0, len(weeks))
	for _, acc := range weeks {
		if acc.hrCount > 0 {
			acc.summary.AvgHR = acc.hrSum / acc.hrCount
		}
		if acc.summary.TotalMiles > 0 && acc.summary.TotalMinutes > 0 {
			acc.summary.AvgPace = formatPace(acc.summary.TotalMinutes / acc.summary.TotalMiles)
		}
		summaries = append(summaries, acc.summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Week < summaries[j].Week
	})

	return summaries, nil
}

// parseMiles reads a distance as entered: "4", "3.1", "3.1 mi".
func parseMiles(distance string) (float64, bool) {
	distance = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(distance), "mi"))
	if distance == "" {
		return 0, false
	}
	miles, err := strconv.ParseFloat(distance, 64)
	if err != nil || miles < 0 {
		return 0, false
	}
	return miles, true
}

// parseRunMinutes reads a duration as entered: plain minutes ("45"),
// "mm:ss" or "h:mm:ss".
func parseRunMinutes(duration string) (float64, bool) {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0, false
	}

	parts := strings.Split(duration, ":")
	if len(parts) > 3 {
		return 0, false
	}

	total := 0.0
	for _, part := range parts {
		value, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || value < 0 {
			return 0, false
		}
		total = total*60 + value
	}

	switch len(parts) {
	case 1:
		// already minutes
		return total, true
	case 2:
		// total is in seconds
		return total / 60, true
	default:
		// h:mm:ss, total is in seconds
		return total / 60, true
	}
}

func parseHeartRate(avgHR string) (int, bool) {
	avgHR = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(avgHR), "bpm"))
	if avgHR == "" {
		return 0, false
	}
	hr, err := strconv.Atoi(avgHR)
	if err != nil || hr <= 0 {
		return 0, false
	}
	return hr, true
}

// formatPace renders minutes-per-mile as "m:ss".
func formatPace(minutesPerMile float64) string {
	totalSeconds := int(minutesPerMile*60 + 0.5)
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}
