// Package insights derives the post-hoc feedback shown after computation:
// the top-impact category, the archetype verdict, the role-average
// comparison, personalized tips and detected virtues.
package insights

import (
	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
)

// Profile bundles the session data the rules inspect. Records include
// unconfirmed entries on purpose: a half-filled device can still trigger a
// behavioral tip.
type Profile struct {
	Records []*ledger.Record
	Inputs  engine.Inputs
	Result  engine.Result
}

// TopCategory returns the highest-impact category. The scan uses strict
// greater-than over the fixed order Devices, E-Waste, Digital Activities,
// AI Tools, so exact ties resolve to the first-listed category.
func TopCategory(res engine.Result) factors.Category {
	cats := factors.Categories()
	top := cats[0]
	best := res.Category(top)
	for _, c := range cats[1:] {
		if v := res.Category(c); v > best {
			top, best = c, v
		}
	}
	return top
}

// Verdict compares the user's archetype guess against the actual top
// category.
type Verdict struct {
	Top     factors.Category
	Guessed factors.Archetype
	Correct bool

	// Display is the persona to show: the guess when it was right, the
	// actual top archetype when it was not.
	Display factors.Archetype
}

// ArchetypeVerdict resolves the guess identified by key against the result.
func ArchetypeVerdict(guessKey string, res engine.Result) Verdict {
	top := TopCategory(res)
	actual, _ := factors.ArchetypeByCategory(top)

	v := Verdict{Top: top, Display: actual}
	guessed, ok := factors.ArchetypeByKey(guessKey)
	if !ok {
		return v
	}
	v.Guessed = guessed
	if guessed.Category == top {
		v.Correct = true
		v.Display = guessed
	}
	return v
}

// MinSampleSize is the confidence threshold: remote role averages backed by
// fewer submissions fall back to the built-in table.
const MinSampleSize = 10

// AverageSource says where the comparison baseline came from.
type AverageSource int

const (
	// SourceNone means no average exists for the role at all.
	SourceNone AverageSource = iota

	// SourceBuiltin is the static fallback table.
	SourceBuiltin

	// SourceRemote is a trusted remote average.
	SourceRemote
)

// Relation classifies the user's total against the baseline.
type Relation int

const (
	RelationInLine Relation = iota
	RelationMore
	RelationLess
)

// Comparison is the outcome of the role-average lookup.
type Comparison struct {
	Source  AverageSource
	Average float64
	// Percent is the rounded absolute deviation; meaningless for
	// RelationInLine.
	Percent  float64
	Relation Relation
}

// Compare builds the comparison using a two-tier lookup: the remote average
// when present, positive and backed by at least MinSampleSize submissions,
// otherwise the built-in table. remoteOK is false when the remote read
// failed or the role row was absent.
func Compare(total float64, role factors.Role, remoteAvg float64, sampleSize int, remoteOK bool) Comparison {
	avg := 0.0
	source := SourceNone

	if remoteOK && remoteAvg > 0 && sampleSize >= MinSampleSize {
		avg = remoteAvg
		source = SourceRemote
	} else if fallback, ok := factors.AverageByRole(role); ok {
		avg = fallback
		source = SourceBuiltin
	}

	if source == SourceNone || avg <= 0 {
		return Comparison{Source: SourceNone}
	}

	diffPct := (total - avg) / avg * 100
	c := Comparison{Source: source, Average: avg}
	absPct := diffPct
	if absPct < 0 {
		absPct = -absPct
	}
	switch {
	case absPct < 1:
		c.Relation = RelationInLine
	case diffPct > 0:
		c.Relation = RelationMore
		c.Percent = absPct
	default:
		c.Relation = RelationLess
		c.Percent = absPct
	}
	return c
}
