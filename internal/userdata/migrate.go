package userdata

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// CurrentVersion is the document schema version written by this build.
// Documents with an older version are migrated in place on load.
const CurrentVersion = "1.2"

// OldestSupportedVersion is the earliest schema this build can migrate from.
const OldestSupportedVersion = "1.0"

type migrationStep struct {
	// to is the version the step migrates the document up to.
	to    string
	apply func(*Document)
}

// migrations run in order; each step is idempotent and tolerates
// partially migrated documents.
var migrations = []migrationStep{
	{
		// 1.0 -> 1.1: the program was rescheduled from 2025 to 2026.
		// Only documents without any logged workouts get the new start
		// date; users already mid-program keep their dates.
		to: "1.1",
		apply: func(d *Document) {
			if strings.HasPrefix(d.StartDate, "2025") && len(d.Logs) == 0 {
				log.Infof("migrating start date %s to %s", d.StartDate, DefaultStartDate)
				d.StartDate = DefaultStartDate
			}
		},
	},
	{
		// 1.1 -> 1.2: weights, reorderings and sets/reps overrides were
		// added; older documents are missing those sub-maps.
		to: "1.2",
		apply: func(d *Document) {
			d.EnsureMaps()
		},
	},
}

// Migrate brings a document up to CurrentVersion, returning the number of
// applied steps. A document already at CurrentVersion is left untouched.
func Migrate(d *Document) int {
	if d.Version == CurrentVersion {
		return 0
	}

	from := d.Version
	if from == "" {
		from = OldestSupportedVersion
	}

	applied := 0
	for _, step := range migrations {
		// skip steps the document already went through
		if versionAtMost(step.to, from) {
			continue
		}
		step.apply(d)
		d.Version = step.to
		applied++
	}

	if applied > 0 {
		log.Infof("user data document migrated from version %s to %s (%d steps)", from, d.Version, applied)
	}

	return applied
}

// versionAtMost reports whether version a is not newer than b.
// Versions are short dotted numbers ("1.0", "1.1"), compared segment-wise.
func versionAtMost(a, b string) bool {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] == bs[i] {
			continue
		}
		return as[i] < bs[i]
	}
	return len(as) <= len(bs)
}
