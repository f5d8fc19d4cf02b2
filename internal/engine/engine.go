// Package engine turns validated survey answers and confirmed device
// records into annual emission totals. All computation is pure and
// stateless; the session layer owns freezing results once the wizard moves
// past the input stage.
package engine

import (
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
)

// Inputs are the validated survey answers for one session. Bucketed answers
// arrive already resolved to their numeric midpoints.
type Inputs struct {
	Role factors.Role

	// ActivityHours maps activity name to hours per day. The sum is
	// unconstrained and may exceed 8 when multitasking.
	ActivityHours map[string]float64

	EmailPlainPerDay  float64
	EmailAttachPerDay float64
	CloudGB           float64
	PagesPerWeek      int
	WiFiHoursPerDay   float64
	Idle              factors.IdleChoice

	// AIQueries maps AI task name to queries per day.
	AIQueries map[string]int
}

// Result holds the four category totals in kg CO2e/year plus the derived
// signals the insight generator consumes. E-Waste may be negative: credit
// for responsible disposal is a sink.
type Result struct {
	Devices           float64
	EWaste            float64
	DigitalActivities float64
	AITools           float64

	// TotalActivityHours is the raw daily hour sum across activities,
	// kept for the over-8-hours display note.
	TotalActivityHours float64

	// AIQueriesPerDay is the raw daily query count summed across tasks.
	// A volume signal, not a footprint number.
	AIQueriesPerDay int
}

// Total is the sum of the four categories.
func (r Result) Total() float64 {
	return r.Devices + r.EWaste + r.DigitalActivities + r.AITools
}

// Category returns one category total by name.
func (r Result) Category(c factors.Category) float64 {
	switch c {
	case factors.CategoryDevices:
		return r.Devices
	case factors.CategoryEWaste:
		return r.EWaste
	case factors.CategoryDigital:
		return r.DigitalActivities
	case factors.CategoryAI:
		return r.AITools
	}
	return 0
}

// Compute aggregates all categories. Only confirmed records contribute;
// the wizard guard guarantees none are unconfirmed by the time results are
// frozen, but the engine filters regardless.
func Compute(records []*ledger.Record, in Inputs) Result {
	res := Result{}

	for _, rec := range records {
		if rec.State != ledger.StateConfirmed {
			continue
		}
		res.Devices += DeviceProduction(rec)
		res.EWaste += DeviceEndOfLife(rec)
	}

	res.DigitalActivities, res.TotalActivityHours = digitalActivities(in)
	res.AITools, res.AIQueriesPerDay = aiTools(in)

	return res
}

// DeviceProduction is the record's annualized embodied emissions:
// factor / adjusted years.
func DeviceProduction(rec *ledger.Record) float64 {
	f, ok := factors.DeviceFactor(rec.ID.Type)
	if !ok {
		return 0
	}
	ay := rec.AdjustedYears()
	if ay <= 0 {
		return 0
	}
	return f / ay
}

// DeviceEndOfLife is the record's annualized disposal term:
// factor * disposition modifier / adjusted years. Negative for responsible
// dispositions.
func DeviceEndOfLife(rec *ledger.Record) float64 {
	f, ok := factors.DeviceFactor(rec.ID.Type)
	if !ok {
		return 0
	}
	mod, ok := factors.DispositionModifier(rec.Disposition)
	if !ok {
		return 0
	}
	ay := rec.AdjustedYears()
	if ay <= 0 {
		return 0
	}
	return f * mod / ay
}

// digitalActivities sums activity streaming, email, cloud, Wi-Fi, printing
// and idle power for the year.
func digitalActivities(in Inputs) (total, hoursPerDay float64) {
	for name, hours := range in.ActivityHours {
		hoursPerDay += hours
		f, ok := factors.ActivityFactor(in.Role, name)
		if !ok {
			continue
		}
		total += hours * f * factors.WorkingDays
	}

	total += (in.EmailPlainPerDay*factors.EmailPlainFactor +
		in.EmailAttachPerDay*factors.EmailAttachFactor +
		in.CloudGB*factors.CloudStorageFactor) * factors.WorkingDays

	total += in.WiFiHoursPerDay * factors.WiFiHourFactor * factors.WorkingDays

	total += float64(in.PagesPerWeek) * factors.PrintedPageFactor * (factors.WorkingDays / 5.0)

	total += IdleAnnualCost(in.Idle)

	return total, hoursPerDay
}

// IdleAnnualCost is the fixed yearly cost of the end-of-day computer habit.
func IdleAnnualCost(c factors.IdleChoice) float64 {
	switch c {
	case factors.IdleLeaveOn:
		return factors.WorkingDays * factors.IdleOnHourFactor * factors.IdleHoursPerDay
	case factors.IdleTurnOff:
		return factors.WorkingDays * factors.IdleOffHourFactor * factors.IdleHoursPerDay
	default:
		return 0
	}
}

// aiTools annualizes per-task query counts and reports the raw daily
// volume.
func aiTools(in Inputs) (total float64, queries int) {
	for name, q := range in.AIQueries {
		if q <= 0 {
			continue
		}
		queries += q
		f, ok := factors.AITaskFactor(name)
		if !ok {
			continue
		}
		total += float64(q) * f * factors.WorkingDays
	}
	return total, queries
}
