package program

// WorkoutType is the catalog key of a scheduled workout kind.
type WorkoutType string

const (
	TypeLiftA          WorkoutType = "lift-a"
	TypeLiftB          WorkoutType = "lift-b"
	TypeLiftC          WorkoutType = "lift-c"
	TypeWalkRun        WorkoutType = "walk-run"
	TypeEasyRun        WorkoutType = "easy-run"
	TypeEasyRunStrides WorkoutType = "easy-run-strides"
	TypeLongRun        WorkoutType = "long-run"
	TypeRest           WorkoutType = "rest"
	TypeOptional       WorkoutType = "optional"
)

func (wt WorkoutType) IsLift() bool {
	return wt == TypeLiftA || wt == TypeLiftB || wt == TypeLiftC
}

func (wt WorkoutType) IsRun() bool {
	return wt == TypeWalkRun || wt == TypeEasyRun || wt == TypeEasyRunStrides || wt == TypeLongRun
}

// DayWorkout is one entry of a weekly template: what is due on a given
// day of the week (1 = Monday .. 7 = Sunday).
type DayWorkout struct {
	Type WorkoutType `json:"type"`
	Name string      `json:"name"`
}

// Phase is a contiguous block of program weeks sharing one weekly template.
type Phase struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Weeks        int                `json:"weeks"`
	WeekTemplate map[int]DayWorkout `json:"weekTemplate"`
}

// Program is the full 21 week training schedule: 3 phases of 4, 4 and 13 weeks.
var Program = []Phase{
	{
		ID:    1,
		Name:  "Strength + Walk/Run",
		Weeks: 4,
		WeekTemplate: map[int]DayWorkout{
			1: {Type: TypeLiftA, Name: "Lift A: Push + Squat"},
			2: {Type: TypeWalkRun, Name: "Walk/Run + Mobility"},
			3: {Type: TypeLiftB, Name: "Lift B: Pull + Hinge"},
			4: {Type: TypeWalkRun, Name: "Walk/Run + Mobility"},
			5: {Type: TypeLiftC, Name: "Lift C: Legs + Glutes"},
			6: {Type: TypeOptional, Name: "Optional: Walk/Run or Rest"},
			7: {Type: TypeRest, Name: "Rest"},
		},
	},
	{
		ID:    2,
		Name:  "Transition to Running",
		Weeks: 4,
		WeekTemplate: map[int]DayWorkout{
			1: {Type: TypeLiftA, Name: "Lift A"},
			2: {Type: TypeEasyRun, Name: "Easy Run"},
			3: {Type: TypeLiftB, Name: "Lift B"},
			4: {Type: TypeEasyRun, Name: "Easy Run"},
			5: {Type: TypeEasyRun, Name: "Easy Run"},
			6: {Type: TypeLongRun, Name: "Long Run"},
			7: {Type: TypeRest, Name: "Rest"},
		},
	},
	{
		ID:    3,
		Name:  "Base Building",
		Weeks: 13,
		WeekTemplate: map[int]DayWorkout{
			1: {Type: TypeEasyRun, Name: "Easy Run"},
			2: {Type: TypeLiftA, Name: "Lift A"},
			3: {Type: TypeEasyRunStrides, Name: "Easy Run + Strides"},
			4: {Type: TypeLiftB, Name: "Lift B"},
			5: {Type: TypeEasyRun, Name: "Easy Run"},
			6: {Type: TypeLongRun, Name: "Long Run"},
			7: {Type: TypeRest, Name: "Rest"},
		},
	},
}

// TotalWeeks is the number of program weeks across all phases.
const TotalWeeks = 21

// PhaseByID returns the phase with the given id, or false when unknown.
func PhaseByID(id int) (Phase, bool) {
	for _, p := range Program {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}
