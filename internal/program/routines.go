package program

// Routine is a fixed mobility/stretching routine done outside workouts.
type Routine struct {
	Name      string   `json:"name"`
	Duration  string   `json:"duration"`
	Required  bool     `json:"required,omitempty"`
	Exercises []string `json:"exercises"`
}

var MorningRoutineShort = Routine{
	Name:     "Morning Routine - Short",
	Duration: "5 min",
	Exercises: []string{
		"Cat-cow: 8 reps",
		"Hip flexor stretch: 30 sec each side",
		"Glute squeeze: 10 reps, 3 sec hold (standing)",
	},
}

var MorningRoutineLong = Routine{
	Name:     "Morning Routine - Long",
	Duration: "12-15 min",
	Exercises: []string{
		"Cat-cow: 10 reps",
		"World's greatest stretch: 4 each side",
		"Hip flexor stretch: 60 sec each side",
		"Glute bridges: 2x10 with 2 sec squeeze",
		"Dead bugs: 8 each side",
		"Chin tucks: 10 reps with 5 sec hold",
		"Wall posture check: 30 sec",
	},
}

var EveningRoutine = Routine{
	Name:     "Evening Routine",
	Duration: "15-20 min",
	Required: true,
	Exercises: []string{
		"Couch stretch: 90 sec each side",
		"Lizard pose: 60 sec each side",
		"Pigeon pose: 60 sec each side",
		"90/90 hip stretch: 45 sec each position",
		"Chest doorway stretch: 45 sec each side",
		"Thoracic rotation: 8 each side",
		"Chin tucks: 10 reps with 5 sec hold",
		"Supine pelvic tilts: 10 reps",
		"Dead bug: 6 each side, slow",
	},
}
