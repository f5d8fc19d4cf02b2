// Package session holds the explicit, serializable per-session state that
// every handler operates on. There are no ambient globals: the wizard, the
// insight generator and the presentation layer all receive a *State.
package session

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
)

// Stage is the wizard cursor over the ordered page sequence.
type Stage int

const (
	StageIntro Stage = iota
	StageMain
	StageGuess
	StageResultsCards
	StageResultsBreakdown
	StageResultsEquiv
	StageVirtues
	StageFinal
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIntro:
		return "intro"
	case StageMain:
		return "main"
	case StageGuess:
		return "guess"
	case StageResultsCards:
		return "results_cards"
	case StageResultsBreakdown:
		return "results_breakdown"
	case StageResultsEquiv:
		return "results_equiv"
	case StageVirtues:
		return "virtues"
	case StageFinal:
		return "final"
	default:
		return "unknown"
	}
}

// DefaultWiFiHours pre-fills the Wi-Fi slider.
const DefaultWiFiHours = 4.0

// State is the whole session. Initial values:
//
//	ID            fresh ULID
//	Stage         intro
//	Name, Role    empty / unselected
//	Devices       empty ledger
//	ActivityHours all zero
//	EmailPlain/EmailAttach/Cloud  "" (nothing selected)
//	PagesPerWeek  0
//	WiFiHours     4.0
//	Idle          unset
//	AIQueries     all zero
//	Guess         "" (no archetype chosen)
//	Results       nil (not yet computed)
//	Submitted     false
type State struct {
	ID    string
	Stage Stage

	Name string
	Role factors.Role

	Devices *ledger.Ledger

	ActivityHours map[string]float64
	EmailPlain    string // bucket label
	EmailAttach   string // bucket label
	Cloud         string // bucket label
	PagesPerWeek  int
	WiFiHours     float64
	Idle          factors.IdleChoice
	AIQueries     map[string]int

	Guess string // archetype key

	// Results is frozen when the wizard successfully leaves the main
	// stage and recomputed only on the next successful advance after
	// "Edit answers".
	Results *engine.Result

	// Submitted guards the at-most-once remote persistence of the final
	// row.
	Submitted bool
}

// New returns a session in its documented initial state.
func New() *State {
	return &State{
		ID:            newID(),
		Stage:         StageIntro,
		Devices:       ledger.New(),
		ActivityHours: make(map[string]float64),
		AIQueries:     make(map[string]int),
		WiFiHours:     DefaultWiFiHours,
	}
}

// Reset clears everything and issues a fresh session identity (the
// "Restart" action).
func (s *State) Reset() {
	*s = *New()
}

// Inputs resolves the raw answers into the engine's validated input form,
// mapping bucket labels to their midpoints.
func (s *State) Inputs() engine.Inputs {
	hours := make(map[string]float64, len(s.ActivityHours))
	for k, v := range s.ActivityHours {
		hours[k] = v
	}
	queries := make(map[string]int, len(s.AIQueries))
	for k, v := range s.AIQueries {
		queries[k] = v
	}
	return engine.Inputs{
		Role:              s.Role,
		ActivityHours:     hours,
		EmailPlainPerDay:  factors.BucketMidpoint(factors.EmailBuckets(), s.EmailPlain),
		EmailAttachPerDay: factors.BucketMidpoint(factors.EmailBuckets(), s.EmailAttach),
		CloudGB:           factors.BucketMidpoint(factors.CloudBuckets(), s.Cloud),
		PagesPerWeek:      s.PagesPerWeek,
		WiFiHoursPerDay:   s.WiFiHours,
		Idle:              s.Idle,
		AIQueries:         queries,
	}
}

// ActivitiesSelected reports whether both email buckets and the cloud
// bucket have been chosen.
func (s *State) ActivitiesSelected() bool {
	return s.EmailPlain != "" && s.EmailAttach != "" && s.Cloud != ""
}

// newID returns a ULID for log and submission correlation. Math/rand
// entropy is fine here: the id is an opaque session label, not a secret.
func newID() string {
	now := time.Now()
	entropy := rand.New(rand.NewSource(now.UnixNano())) //nolint:gosec // non-cryptographic id
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
