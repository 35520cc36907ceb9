package program

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type RepsKind string

const (
	RepsCount    RepsKind = "count"
	RepsDuration RepsKind = "duration"
	RepsMax      RepsKind = "max"
)

// Reps is a rep prescription for a single set: a plain rep count,
// a duration based hold/carry, or "as many as possible".
type Reps struct {
	Kind    RepsKind `json:"kind"`
	Count   int      `json:"count,omitempty"`
	Seconds int      `json:"seconds,omitempty"`
}

func CountReps(count int) Reps {
	return Reps{Kind: RepsCount, Count: count}
}

func DurationReps(seconds int) Reps {
	return Reps{Kind: RepsDuration, Seconds: seconds}
}

func MaxReps() Reps {
	return Reps{Kind: RepsMax}
}

func (r Reps) String() string {
	switch r.Kind {
	case RepsDuration:
		return fmt.Sprintf("%dsec", r.Seconds)
	case RepsMax:
		return "max"
	default:
		return fmt.Sprintf("%d reps", r.Count)
	}
}

// MarshalJSON keeps the persisted form of the legacy app:
// a bare number for counts, "NNsec" for durations, "max" for max sets.
func (r Reps) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RepsCount:
		return json.Marshal(r.Count)
	case RepsDuration:
		return json.Marshal(fmt.Sprintf("%dsec", r.Seconds))
	case RepsMax:
		return json.Marshal("max")
	default:
		return nil, fmt.Errorf("unknown reps kind: %q", r.Kind)
	}
}

func (r *Reps) UnmarshalJSON(data []byte) error {
	var count int
	if err := json.Unmarshal(data, &count); err == nil {
		*r = CountReps(count)
		return nil
	}

	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("reps is neither a number nor a string: %s", data)
	}

	if tag == "max" {
		*r = MaxReps()
		return nil
	}

	if secStr, found := strings.CutSuffix(tag, "sec"); found {
		seconds, err := strconv.Atoi(secStr)
		if err != nil {
			return fmt.Errorf("invalid duration reps %q: %w", tag, err)
		}
		*r = DurationReps(seconds)
		return nil
	}

	return fmt.Errorf("unrecognized reps value: %q", tag)
}
