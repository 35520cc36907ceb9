package program

import "fmt"

// Exercise is one prescribed exercise within a lift workout.
type Exercise struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sets       int     `json:"sets"`
	Reps       Reps    `json:"reps"`
	Bodyweight bool    `json:"bodyweight,omitempty"`
	NoTracking bool    `json:"noTracking,omitempty"`
	Notes      string  `json:"notes,omitempty"`
	Barbell    bool    `json:"-"`
	Increment  float64 `json:"-"`
}

// MinWeight is the structural minimum loggable weight for the exercise:
// an empty 45 lb bar for barbell lifts, otherwise a single increment.
func (e Exercise) MinWeight() float64 {
	if e.Barbell {
		return BarWeight
	}
	if e.Increment > 0 {
		return e.Increment
	}
	return DefaultIncrement
}

const (
	// BarWeight is the weight of an empty olympic barbell in pounds.
	BarWeight = 45
	// DefaultIncrement is the smallest weight jump for non-barbell lifts.
	DefaultIncrement = 5
)

// WorkoutDetail is the full prescription of a lift workout
// for one workout type within one phase.
type WorkoutDetail struct {
	Name      string     `json:"name"`
	Duration  string     `json:"duration"`
	Exercises []Exercise `json:"exercises"`
}

var liftDetails = map[WorkoutType]map[int]WorkoutDetail{
	TypeLiftA: {
		1: {
			Name:     "Lift A: Push + Squat",
			Duration: "60-70 min",
			Exercises: []Exercise{
				{ID: "low-bar-squat", Name: "Low-Bar Back Squat", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "bench-press", Name: "Bench Press", Sets: 5, Reps: CountReps(5), Barbell: true},
				{ID: "hip-thrust", Name: "Barbell Hip Thrust", Sets: 3, Reps: CountReps(10), Barbell: true},
				{ID: "overhead-press", Name: "Overhead Press", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "farmer-carry", Name: "Farmer Carries", Sets: 3, Reps: DurationReps(45)},
				{ID: "ring-dips", Name: "Ring Dips", Sets: 3, Reps: CountReps(5), Bodyweight: true},
			},
		},
		2: {
			Name:     "Lift A: Upper + Squat + Glutes",
			Duration: "60-70 min",
			Exercises: []Exercise{
				{ID: "low-bar-squat", Name: "Low-Bar Back Squat", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "bench-press", Name: "Bench Press", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "barbell-row", Name: "Barbell Row", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "overhead-press", Name: "OHP", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "pullups", Name: "Pull-ups", Sets: 3, Reps: MaxReps(), Bodyweight: true},
				{ID: "hip-thrust", Name: "Barbell Hip Thrust", Sets: 3, Reps: CountReps(10), Barbell: true},
				{ID: "farmer-carry", Name: "Farmer Carries", Sets: 3, Reps: DurationReps(45)},
				{ID: "cable-pullthrough", Name: "Cable Pull-Through", Sets: 2, Reps: CountReps(12), Increment: 2.5},
			},
		},
		3: {
			Name:     "Lift A: Upper + Squat + Glutes",
			Duration: "50-60 min",
			Exercises: []Exercise{
				{ID: "low-bar-squat", Name: "Low-Bar Back Squat", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "bench-press", Name: "Bench Press", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "barbell-row", Name: "Barbell Row", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "overhead-press", Name: "OHP", Sets: 2, Reps: CountReps(5), Barbell: true},
				{ID: "pullups", Name: "Pull-ups", Sets: 2, Reps: MaxReps(), Bodyweight: true},
				{ID: "hip-thrust", Name: "Barbell Hip Thrust", Sets: 3, Reps: CountReps(8), Barbell: true},
				{ID: "farmer-carry", Name: "Farmer Carries", Sets: 3, Reps: DurationReps(45)},
			},
		},
	},
	TypeLiftB: {
		1: {
			Name:     "Lift B: Pull + Hinge + Eccentric Quad",
			Duration: "60-70 min",
			Exercises: []Exercise{
				{ID: "deadlift", Name: "Deadlift", Sets: 1, Reps: CountReps(5), Barbell: true},
				{ID: "barbell-row", Name: "Barbell Row", Sets: 3, Reps: CountReps(5), Barbell: true},
				{ID: "pullups", Name: "Pull-ups", Sets: 4, Reps: CountReps(6), Bodyweight: true},
				{ID: "step-downs", Name: "Step-Downs", Sets: 2, Reps: CountReps(8), Bodyweight: true},
				{ID: "monster-walks", Name: "Monster Walks", Sets: 2, Reps: CountReps(12), Bodyweight: true},
				{ID: "side-plank", Name: "Side Plank", Sets: 2, Reps: DurationReps(20), Bodyweight: true},
			},
		},
		2: {
			Name:     "Lift B: Lower + Eccentric Quad + Glutes",
			Duration: "60-70 min",
			Exercises: []Exercise{
				{ID: "deadlift", Name: "Deadlift", Sets: 1, Reps: CountReps(5), Barbell: true},
				{ID: "slow-tempo-front-squat", Name: "Slow Tempo Front Squat", Sets: 3, Reps: CountReps(6), Barbell: true, Notes: "4 sec down, 1 sec up"},
				{ID: "hip-thrust", Name: "Barbell Hip Thrust", Sets: 3, Reps: CountReps(10), Barbell: true},
				{ID: "bulgarian-split-squat", Name: "Bulgarian Split Squats", Sets: 3, Reps: CountReps(8)},
				{ID: "step-downs", Name: "Step-Downs", Sets: 2, Reps: CountReps(8), Bodyweight: true},
				{ID: "single-leg-calf", Name: "Single-Leg Calf Raises", Sets: 2, Reps: CountReps(12), Bodyweight: true},
				{ID: "monster-walks", Name: "Monster Walks", Sets: 2, Reps: CountReps(12), Bodyweight: true},
			},
		},
		3: {
			Name:     "Lift B: Lower + Eccentric Quad + Glutes",
			Duration: "50-60 min",
			Exercises: []Exercise{
				{ID: "deadlift", Name: "Deadlift", Sets: 1, Reps: CountReps(5), Barbell: true},
				{ID: "slow-tempo-squat", Name: "Slow Tempo Squat", Sets: 2, Reps: CountReps(6), Barbell: true, Notes: "4 sec down, any variation"},
				{ID: "hip-thrust", Name: "Barbell Hip Thrust", Sets: 3, Reps: CountReps(8), Barbell: true},
				{ID: "step-downs", Name: "Step-Downs", Sets: 2, Reps: CountReps(8), Bodyweight: true},
				{ID: "single-leg-calf", Name: "Single-Leg Calf Raises", Sets: 2, Reps: CountReps(12), Bodyweight: true},
			},
		},
	},
	TypeLiftC: {
		1: {
			Name:     "Lift C: Legs + Glutes",
			Duration: "60-75 min",
			Exercises: []Exercise{
				{ID: "back-squat-80", Name: "Back Squat (80%)", Sets: 3, Reps: CountReps(8), NoTracking: true, Barbell: true},
				{ID: "hip-thrust-80", Name: "Hip Thrust (80%)", Sets: 4, Reps: CountReps(8), NoTracking: true, Barbell: true},
				{ID: "bulgarian-split-squat", Name: "Bulgarian Split Squat", Sets: 3, Reps: CountReps(8)},
				{ID: "walking-lunges", Name: "Walking Lunges", Sets: 3, Reps: CountReps(10), Bodyweight: true},
				{ID: "single-leg-calf", Name: "Single-Leg Calf Raises", Sets: 2, Reps: CountReps(12), Bodyweight: true},
				{ID: "core-circuit", Name: "Core Circuit", Sets: 1, Reps: CountReps(1), Bodyweight: true},
			},
		},
	},
}

// WorkoutDetailFor returns the lift prescription for a workout type and phase.
// A miss is a valid "details not available" state, not an error.
func WorkoutDetailFor(workoutType WorkoutType, phase int) (WorkoutDetail, bool) {
	phases, ok := liftDetails[workoutType]
	if !ok {
		return WorkoutDetail{}, false
	}
	detail, ok := phases[phase]
	return detail, ok
}

// ExerciseByID finds an exercise prescription within a phase's lift details.
func ExerciseByID(workoutType WorkoutType, phase int, exerciseID string) (Exercise, bool) {
	detail, ok := WorkoutDetailFor(workoutType, phase)
	if !ok {
		return Exercise{}, false
	}
	for _, ex := range detail.Exercises {
		if ex.ID == exerciseID {
			return ex, true
		}
	}
	return Exercise{}, false
}

// FindExercise locates an exercise prescription within a phase without
// knowing its lift type. Exercise ids are unique within a phase.
func FindExercise(phase int, exerciseID string) (Exercise, bool) {
	for _, liftType := range []WorkoutType{TypeLiftA, TypeLiftB, TypeLiftC} {
		if ex, ok := ExerciseByID(liftType, phase, exerciseID); ok {
			return ex, true
		}
	}
	return Exercise{}, false
}

// WalkRunProtocol is the run/walk interval prescription for one week
// of the phase 1 walk-run block.
type WalkRunProtocol struct {
	Protocol    string `json:"protocol"`
	TotalTime   int    `json:"totalTime"`
	RunningTime int    `json:"runningTime"`
}

var walkRunProtocols = map[int]WalkRunProtocol{
	1: {Protocol: "Run 3min / Walk 2min x 5", TotalTime: 25, RunningTime: 15},
	2: {Protocol: "Run 4min / Walk 1min x 6", TotalTime: 30, RunningTime: 24},
	3: {Protocol: "Run 5min / Walk 1min x 5", TotalTime: 30, RunningTime: 25},
	4: {Protocol: "Run 6min / Walk 1min x 5", TotalTime: 35, RunningTime: 30},
}

// WalkRunNotes applies to every week of the walk-run block.
const WalkRunNotes = "HR 139-145 bpm, 1% incline, 170-180 spm"

// WalkRunProtocolForWeek returns the interval prescription for a
// week-in-phase of the walk-run block.
func WalkRunProtocolForWeek(weekInPhase int) (WalkRunProtocol, bool) {
	p, ok := walkRunProtocols[weekInPhase]
	return p, ok
}

// runNotes maps run workout types to per-phase guidance, with a
// "default" key used when a phase has no specific entry. The legacy app
// falls back to "default" for unlisted phases; kept as-is.
var runNotes = map[WorkoutType]map[string]string{
	TypeEasyRun: {
		"default": "HR 139-145 bpm. Let HR dictate pace (probably 8:30-9:30/mile). 170-180 spm cadence.",
		"phase3":  "HR 145-151 bpm. Let HR dictate pace. 170-180 spm cadence.",
	},
	TypeEasyRunStrides: {
		"default": "HR 139-145 bpm for run. Then 6-8 x 15sec strides at fast but controlled pace, 45-60sec recovery between.",
		"phase3":  "HR 145-151 bpm for run. Then 6-8 x 15sec strides at fast but controlled pace, 45-60sec recovery between.",
	},
	TypeLongRun: {
		"default": "HR 139-145 bpm. Same pace guidelines as easy run.",
		"phase3":  "HR 145-151 bpm. Same pace guidelines as easy run.",
	},
	TypeRest: {
		"default": "Full rest. Evening routine only.",
	},
	TypeOptional: {
		"default": "Walk/Run #3, zone 2 bike, or rest.",
	},
}

// RunNotesFor returns the guidance text for a run (or rest/optional)
// workout type in the given phase, falling back to the default entry.
func RunNotesFor(workoutType WorkoutType, phase int) (string, bool) {
	notes, ok := runNotes[workoutType]
	if !ok {
		return "", false
	}
	if phaseNotes, ok := notes[fmt.Sprintf("phase%d", phase)]; ok {
		return phaseNotes, true
	}
	defaultNotes, ok := notes["default"]
	return defaultNotes, ok
}
