package program

import "sort"

// Category groups exercises for the exercise list screens.
type Category string

const (
	CategoryCompound  Category = "Compound"
	CategoryAccessory Category = "Accessory"
	CategoryMobility  Category = "Mobility & Stability"
	CategoryCore      Category = "Core"
	CategoryOther     Category = "Other"
)

// categoryOrder is the display order of categories.
var categoryOrder = []Category{
	CategoryCompound,
	CategoryAccessory,
	CategoryMobility,
	CategoryCore,
}

var exerciseCategories = map[Category][]string{
	CategoryCompound: {
		"low-bar-squat", "bench-press", "overhead-press",
		"deadlift", "barbell-row", "back-squat-80",
	},
	CategoryAccessory: {
		"hip-thrust", "hip-thrust-80", "bulgarian-split-squat",
		"cable-pullthrough", "ring-dips", "pullups",
		"slow-tempo-squat", "slow-tempo-front-squat", "farmer-carry",
	},
	CategoryMobility: {
		"step-downs", "walking-lunges", "monster-walks", "single-leg-calf",
	},
	CategoryCore: {
		"side-plank", "core-circuit",
	},
}

var exerciseToCategory = func() map[string]Category {
	m := make(map[string]Category)
	for cat, ids := range exerciseCategories {
		for _, id := range ids {
			m[id] = cat
		}
	}
	return m
}()

// CategoryOf returns the category of an exercise id, CategoryOther when unlisted.
func CategoryOf(exerciseID string) Category {
	if cat, ok := exerciseToCategory[exerciseID]; ok {
		return cat
	}
	return CategoryOther
}

// CatalogExercise is an exercise enriched with the phases it appears in
// and its category, for catalog listings.
type CatalogExercise struct {
	Exercise
	Phases   []int    `json:"phases"`
	Category Category `json:"category"`
}

// AllExercises returns every unique exercise across all lift types and
// phases, each annotated with the phases it appears in. First occurrence
// wins for the prescription fields, matching the legacy catalog listing.
func AllExercises() []CatalogExercise {
	liftTypes := []WorkoutType{TypeLiftA, TypeLiftB, TypeLiftC}

	seen := make(map[string]bool)
	var all []CatalogExercise

	for _, liftType := range liftTypes {
		phases, ok := liftDetails[liftType]
		if !ok {
			continue
		}
		phaseIDs := sortedKeys(phases)
		for _, phaseID := range phaseIDs {
			for _, ex := range phases[phaseID].Exercises {
				if seen[ex.ID] {
					continue
				}
				seen[ex.ID] = true
				all = append(all, CatalogExercise{
					Exercise: ex,
					Phases:   phasesOf(ex.ID, liftTypes),
					Category: CategoryOf(ex.ID),
				})
			}
		}
	}

	return all
}

// ExercisesByCategory groups AllExercises by category, omitting empty ones.
func ExercisesByCategory() map[Category][]CatalogExercise {
	grouped := make(map[Category][]CatalogExercise)
	for _, cat := range categoryOrder {
		grouped[cat] = []CatalogExercise{}
	}

	for _, ex := range AllExercises() {
		grouped[ex.Category] = append(grouped[ex.Category], ex)
	}

	for cat, exs := range grouped {
		if len(exs) == 0 {
			delete(grouped, cat)
		}
	}

	return grouped
}

func phasesOf(exerciseID string, liftTypes []WorkoutType) []int {
	var phaseIDs []int
	seen := make(map[int]bool)
	for _, lt := range liftTypes {
		for phaseID, detail := range liftDetails[lt] {
			for _, ex := range detail.Exercises {
				if ex.ID == exerciseID && !seen[phaseID] {
					seen[phaseID] = true
					phaseIDs = append(phaseIDs, phaseID)
				}
			}
		}
	}
	sort.Ints(phaseIDs)
	return phaseIDs
}

func sortedKeys(m map[int]WorkoutDetail) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
