// Package ledger maintains the session's device line items: an ordered
// collection of heterogeneous records reconciled against per-type desired
// quantities, each moving through an unconfirmed -> confirmed lifecycle.
package ledger

import (
	"fmt"

	"github.com/greendilt/footprint/internal/factors"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

var (
	// ErrUnknownDevice indicates a device type outside the catalog.
	ErrUnknownDevice = constError("unknown device type")

	// ErrQuantityRange indicates a desired quantity outside [0, 10].
	ErrQuantityRange = constError("device quantity must be between 0 and 10")

	// ErrNotFound indicates an identifier with no matching record.
	ErrNotFound = constError("device record not found")
)

// MaxPerType caps how many devices of one type a respondent can declare.
const MaxPerType = 10

// DefaultLifespanYears is the initial lifespan of a freshly added record.
const DefaultLifespanYears = 1.0

// Condition is the device's state at acquisition.
type Condition int

const (
	ConditionUnset Condition = iota
	ConditionNew
	ConditionUsed
)

// String returns the questionnaire wording for the condition.
func (c Condition) String() string {
	switch c {
	case ConditionNew:
		return "New"
	case ConditionUsed:
		return "Used"
	default:
		return "unset"
	}
}

// Sharing is the device's ownership-sharing arrangement.
type Sharing int

const (
	SharingUnset Sharing = iota
	SharingPersonal
	SharingFamily
	SharingUniversity
)

// String returns the questionnaire wording for the arrangement.
func (s Sharing) String() string {
	switch s {
	case SharingPersonal:
		return "Personal"
	case SharingFamily:
		return "Shared with family"
	case SharingUniversity:
		return "Shared in university"
	default:
		return "unset"
	}
}

// State is the record's lifecycle state.
type State int

const (
	// StateUnconfirmed means the record is expanded and editable.
	StateUnconfirmed State = iota

	// StateConfirmed means the record is collapsed and locked.
	StateConfirmed
)

// ID identifies a record by device type plus a per-type sequence index.
// Indices are never reused within a session, even after removals.
type ID struct {
	Type  factors.DeviceType
	Index int
}

// String renders the identity as "Laptop Computer#2".
func (id ID) String() string {
	return fmt.Sprintf("%s#%d", id.Type, id.Index)
}

// Record is one device line item.
type Record struct {
	ID          ID
	Lifespan    float64 // planned years of use, > 0
	Condition   Condition
	Sharing     Sharing
	Disposition factors.Disposition // empty = unset
	State       State

	// Generation increments on every confirm. It exists purely as a
	// rendering cache key so the presentation layer remounts a collapsed
	// record instead of reusing stale expanded state; business logic must
	// never read it.
	Generation int
}

// AdjustedYears returns the effective amortization period for the record's
// embodied emissions after the condition/sharing multiplier.
func (r *Record) AdjustedYears() float64 {
	return AdjustedYears(r.Lifespan, r.Condition, r.Sharing)
}

// AdjustedYears applies the shared/reused multiplier table to a lifespan.
// Shared and second-hand devices amortize their embodied emissions over a
// longer effective period. Unrecognized combinations keep the identity
// multiplier.
func AdjustedYears(years float64, c Condition, s Sharing) float64 {
	if years <= 0 {
		return 0
	}
	switch s {
	case SharingPersonal:
		if c == ConditionUsed {
			return years * 1.5
		}
		return years
	case SharingFamily:
		if c == ConditionUsed {
			return years * 4.5
		}
		return years * 3
	case SharingUniversity:
		if c == ConditionUsed {
			return years * 15
		}
		return years * 10
	default:
		return years
	}
}

// Problem is a single validation failure blocking a confirm.
type Problem int

const (
	ProblemConditionUnset Problem = iota
	ProblemSharingUnset
	ProblemDispositionUnset
	ProblemLifespanInvalid
)

// String returns the user-facing warning for the problem.
func (p Problem) String() string {
	switch p {
	case ProblemConditionUnset:
		return "select whether the device was new or used"
	case ProblemSharingUnset:
		return "select whether the device is personal or shared"
	case ProblemDispositionUnset:
		return "select what happens to the device at end of life"
	case ProblemLifespanInvalid:
		return "lifespan must be a positive number of years"
	default:
		return fmt.Sprintf("Problem(%d)", int(p))
	}
}

// Ledger is the ordered device collection. Not safe for concurrent use; the
// session model is strictly single-threaded.
type Ledger struct {
	records []*Record
	nextIdx map[factors.DeviceType]int
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{nextIdx: make(map[factors.DeviceType]int)}
}

// SetDesiredQuantity reconciles the ledger so that exactly n records of
// device type t exist.
//
// Growing inserts new unconfirmed records with default field values at the
// front of the type's sub-list, each with a fresh index past the highest
// ever issued for that type. Shrinking removes unconfirmed records before
// confirmed ones, and within each tier the highest index (most recently
// added) first, so edits on older confirmed entries survive as long as
// possible.
func (l *Ledger) SetDesiredQuantity(t factors.DeviceType, n int) error {
	if !t.Valid() {
		return ErrUnknownDevice
	}
	if n < 0 || n > MaxPerType {
		return ErrQuantityRange
	}

	have := l.Count(t)
	switch {
	case n > have:
		l.grow(t, n-have)
	case n < have:
		l.shrink(t, have-n)
	}
	return nil
}

func (l *Ledger) grow(t factors.DeviceType, delta int) {
	for i := 0; i < delta; i++ {
		rec := &Record{
			ID:       ID{Type: t, Index: l.nextIdx[t]},
			Lifespan: DefaultLifespanYears,
			State:    StateUnconfirmed,
		}
		l.nextIdx[t]++
		l.records = append(l.records, nil)
		at := l.frontOfType(t)
		copy(l.records[at+1:], l.records[at:])
		l.records[at] = rec
	}
}

// frontOfType returns the insertion position for a new record of type t:
// just before the first existing record of that type, or the front of the
// whole list when the type has no records yet. Newest groups and newest
// records within a group both surface at the top of the display.
func (l *Ledger) frontOfType(t factors.DeviceType) int {
	for i, r := range l.records[:len(l.records)-1] {
		if r.ID.Type == t {
			return i
		}
	}
	return 0
}

func (l *Ledger) shrink(t factors.DeviceType, delta int) {
	for i := 0; i < delta; i++ {
		victim := l.pickRemoval(t)
		if victim == nil {
			return
		}
		l.delete(victim.ID)
	}
}

// pickRemoval chooses the next record of type t to drop: unconfirmed before
// confirmed, highest index first within each tier.
func (l *Ledger) pickRemoval(t factors.DeviceType) *Record {
	var best *Record
	better := func(r *Record) bool {
		if best == nil {
			return true
		}
		if r.State != best.State {
			return r.State == StateUnconfirmed
		}
		return r.ID.Index > best.ID.Index
	}
	for _, r := range l.records {
		if r.ID.Type == t && better(r) {
			best = r
		}
	}
	return best
}

func (l *Ledger) delete(id ID) {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return
		}
	}
}

// Confirm validates the record and, if complete, transitions it to
// StateConfirmed and bumps its generation. When validation fails the record
// is left untouched and the violated rules are returned for the caller to
// surface; the returned error is reserved for unknown identifiers.
func (l *Ledger) Confirm(id ID) ([]Problem, error) {
	rec, ok := l.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}

	problems := Validate(rec)
	if len(problems) > 0 {
		return problems, nil
	}

	rec.State = StateConfirmed
	rec.Generation++
	return nil, nil
}

// Validate returns the confirm-blocking problems for a record.
func Validate(rec *Record) []Problem {
	var problems []Problem
	if rec.Condition == ConditionUnset {
		problems = append(problems, ProblemConditionUnset)
	}
	if rec.Sharing == SharingUnset {
		problems = append(problems, ProblemSharingUnset)
	}
	if rec.Disposition == "" {
		problems = append(problems, ProblemDispositionUnset)
	}
	if rec.Lifespan <= 0 {
		problems = append(problems, ProblemLifespanInvalid)
	}
	return problems
}

// Remove deletes the record unconditionally, whatever its state. Sibling
// indices are not renumbered.
func (l *Ledger) Remove(id ID) error {
	if _, ok := l.lookup(id); !ok {
		return ErrNotFound
	}
	l.delete(id)
	return nil
}

// ApplyDefaultLifespan sets the record's lifespan to the catalog average
// for its device type ("I don't know" answer).
func (l *Ledger) ApplyDefaultLifespan(id ID) error {
	rec, ok := l.lookup(id)
	if !ok {
		return ErrNotFound
	}
	rec.Lifespan = factors.DefaultLifespan(id.Type)
	return nil
}

func (l *Ledger) lookup(id ID) (*Record, bool) {
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Record returns the record with the given identity.
func (l *Ledger) Record(id ID) (*Record, bool) {
	return l.lookup(id)
}

// Records returns the records in ledger order. The slice is a copy but the
// pointers are live; mutate through ledger methods only.
func (l *Ledger) Records() []*Record {
	out := make([]*Record, len(l.records))
	copy(out, l.records)
	return out
}

// Confirmed returns only the confirmed records, in ledger order.
func (l *Ledger) Confirmed() []*Record {
	var out []*Record
	for _, r := range l.records {
		if r.State == StateConfirmed {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records of type t exist.
func (l *Ledger) Count(t factors.DeviceType) int {
	n := 0
	for _, r := range l.records {
		if r.ID.Type == t {
			n++
		}
	}
	return n
}

// Len returns the total record count.
func (l *Ledger) Len() int { return len(l.records) }

// Empty reports whether the ledger holds no records.
func (l *Ledger) Empty() bool { return len(l.records) == 0 }

// HasUnconfirmed reports whether any record is still awaiting confirmation.
func (l *Ledger) HasUnconfirmed() bool {
	for _, r := range l.records {
		if r.State == StateUnconfirmed {
			return true
		}
	}
	return false
}

// HasIncomplete reports whether any record would fail confirm validation.
func (l *Ledger) HasIncomplete() bool {
	for _, r := range l.records {
		if len(Validate(r)) > 0 {
			return true
		}
	}
	return false
}
