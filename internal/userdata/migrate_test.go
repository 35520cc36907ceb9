package userdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_FromOldest(t *testing.T) {
	doc := &Document{
		StartDate: "2025-09-01",
		Version:   "1.0",
	}

	applied := Migrate(doc)
	assert.Equal(t, 2, applied)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Equal(t, DefaultStartDate, doc.StartDate, "fresh 2025 documents get rescheduled")
	assert.NotNil(t, doc.Logs)
	assert.NotNil(t, doc.ExerciseSetsReps)
}

func TestMigrate_StartDateKeptMidProgram(t *testing.T) {
	doc := &Document{
		StartDate: "2025-09-01",
		Version:   "1.0",
		Logs: map[string]*DayLog{
			"2025-09-01": {Completed: true},
		},
	}

	Migrate(doc)
	assert.Equal(t, "2025-09-01", doc.StartDate, "logged workouts pin the start date")
	assert.Equal(t, CurrentVersion, doc.Version)
}

func TestMigrate_EmptyVersionTreatedAsOldest(t *testing.T) {
	doc := &Document{StartDate: "2026-02-02"}

	applied := Migrate(doc)
	assert.Equal(t, 2, applied)
	assert.Equal(t, CurrentVersion, doc.Version)
}

func TestMigrate_Idempotent(t *testing.T) {
	doc := &Document{StartDate: "2025-09-01", Version: "1.0"}

	require.Positive(t, Migrate(doc))
	snapshot, err := doc.Clone()
	require.NoError(t, err)

	assert.Zero(t, Migrate(doc), "no steps for a current document")
	assert.Equal(t, snapshot, doc)
}

func TestMigrate_PartiallyMigrated(t *testing.T) {
	// a 1.1 document skips the start date step even with a 2025 date
	doc := &Document{StartDate: "2025-09-01", Version: "1.1"}

	applied := Migrate(doc)
	assert.Equal(t, 1, applied)
	assert.Equal(t, "2025-09-01", doc.StartDate)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.NotNil(t, doc.WeekReorderings)
}

func TestVersionAtMost(t *testing.T) {
	assert.True(t, versionAtMost("1.0", "1.0"))
	assert.True(t, versionAtMost("1.0", "1.1"))
	assert.True(t, versionAtMost("1.1", "1.2"))
	assert.False(t, versionAtMost("1.2", "1.1"))
	assert.True(t, versionAtMost("1.1", "1.1.5"))
}
