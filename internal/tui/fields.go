package tui

import (
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/ledger"
	"github.com/greendilt/footprint/internal/session"
)

// fieldKind enumerates the editable rows of the main questionnaire page.
type fieldKind int

const (
	fieldDeviceQty fieldKind = iota
	fieldDevCondition
	fieldDevSharing
	fieldDevLifespan
	fieldDevDefaultLife
	fieldDevDisposition
	fieldDevConfirm
	fieldDevRemove
	fieldActivity
	fieldEmailPlain
	fieldEmailAttach
	fieldCloud
	fieldWiFi
	fieldPages
	fieldIdle
	fieldAITask
)

// field is one focusable row. Exactly one of deviceType, device or name is
// meaningful depending on the kind.
type field struct {
	kind       fieldKind
	deviceType factors.DeviceType // picker rows
	device     ledger.ID          // per-record rows
	name       string             // activity / AI task rows
}

// mainFields builds the focus order for the main page from current session
// state: the per-type quantity picker, then each device record (expanded
// editors for unconfirmed ones, a collapsed row for confirmed ones), then
// activities, email/cloud/connectivity habits, and AI tasks.
func mainFields(s *session.State) []field {
	var out []field

	for _, t := range factors.DeviceCatalog(s.Role) {
		out = append(out, field{kind: fieldDeviceQty, deviceType: t})
	}

	for _, rec := range s.Devices.Records() {
		if rec.State == ledger.StateConfirmed {
			out = append(out, field{kind: fieldDevRemove, device: rec.ID})
			continue
		}
		out = append(out,
			field{kind: fieldDevCondition, device: rec.ID},
			field{kind: fieldDevSharing, device: rec.ID},
			field{kind: fieldDevLifespan, device: rec.ID},
			field{kind: fieldDevDefaultLife, device: rec.ID},
			field{kind: fieldDevDisposition, device: rec.ID},
			field{kind: fieldDevConfirm, device: rec.ID},
			field{kind: fieldDevRemove, device: rec.ID},
		)
	}

	for _, a := range factors.Activities(s.Role) {
		out = append(out, field{kind: fieldActivity, name: a.Name})
	}

	out = append(out,
		field{kind: fieldEmailPlain},
		field{kind: fieldEmailAttach},
		field{kind: fieldCloud},
		field{kind: fieldWiFi},
		field{kind: fieldPages},
		field{kind: fieldIdle},
	)

	for _, t := range factors.AITasks() {
		out = append(out, field{kind: fieldAITask, name: t.Name})
	}

	return out
}

// Input bounds for the main page.
const (
	lifespanMin  = 0.5
	lifespanMax  = 20.0
	lifespanStep = 0.5

	hoursMax  = 8.0
	hoursStep = 0.5

	pagesMax = 100

	aiQueryStep = 5
	aiQueryMax  = 10000
)

// adjust applies a left/right step (dir is -1 or +1) to the focused field.
// It reports whether the device list shape changed, which forces a field
// rebuild.
func (m *Model) adjust(f field, dir int) bool {
	s := m.machine.Session()

	switch f.kind {
	case fieldDeviceQty:
		n := s.Devices.Count(f.deviceType) + dir
		if n < 0 || n > ledger.MaxPerType {
			return false
		}
		if err := s.Devices.SetDesiredQuantity(f.deviceType, n); err != nil {
			m.log.Warn().Err(err).Str("device", string(f.deviceType)).Msg("quantity change rejected")
			return false
		}
		return true

	case fieldDevCondition:
		if rec, ok := s.Devices.Record(f.device); ok {
			rec.Condition = cycleCondition(rec.Condition, dir)
		}

	case fieldDevSharing:
		if rec, ok := s.Devices.Record(f.device); ok {
			rec.Sharing = cycleSharing(rec.Sharing, dir)
		}

	case fieldDevLifespan:
		if rec, ok := s.Devices.Record(f.device); ok {
			rec.Lifespan = clampF(rec.Lifespan+float64(dir)*lifespanStep, lifespanMin, lifespanMax)
		}

	case fieldDevDefaultLife:
		if err := s.Devices.ApplyDefaultLifespan(f.device); err == nil {
			delete(m.problems, f.device)
		}

	case fieldDevDisposition:
		if rec, ok := s.Devices.Record(f.device); ok {
			rec.Disposition = cycleDisposition(factors.Dispositions(s.Role), rec.Disposition, dir)
		}

	case fieldDevConfirm:
		problems, err := s.Devices.Confirm(f.device)
		if err != nil {
			return false
		}
		if len(problems) > 0 {
			m.problems[f.device] = problems
			return false
		}
		delete(m.problems, f.device)
		return true

	case fieldDevRemove:
		if err := s.Devices.Remove(f.device); err == nil {
			delete(m.problems, f.device)
			return true
		}

	case fieldActivity:
		s.ActivityHours[f.name] = clampF(s.ActivityHours[f.name]+float64(dir)*hoursStep, 0, hoursMax)

	case fieldEmailPlain:
		s.EmailPlain = cycleBucket(factors.EmailBuckets(), s.EmailPlain, dir)

	case fieldEmailAttach:
		s.EmailAttach = cycleBucket(factors.EmailBuckets(), s.EmailAttach, dir)

	case fieldCloud:
		s.Cloud = cycleBucket(factors.CloudBuckets(), s.Cloud, dir)

	case fieldWiFi:
		s.WiFiHours = clampF(s.WiFiHours+float64(dir)*hoursStep, 0, hoursMax)

	case fieldPages:
		s.PagesPerWeek = clampI(s.PagesPerWeek+dir, 0, pagesMax)

	case fieldIdle:
		s.Idle = cycleIdle(s.Idle, dir)

	case fieldAITask:
		s.AIQueries[f.name] = clampI(s.AIQueries[f.name]+dir*aiQueryStep, 0, aiQueryMax)
	}

	return false
}

func cycleCondition(c ledger.Condition, dir int) ledger.Condition {
	order := []ledger.Condition{ledger.ConditionNew, ledger.ConditionUsed}
	return order[cycleIndex(len(order), indexOfCondition(order, c), dir)]
}

func indexOfCondition(order []ledger.Condition, c ledger.Condition) int {
	for i, v := range order {
		if v == c {
			return i
		}
	}
	return -1
}

func cycleSharing(s ledger.Sharing, dir int) ledger.Sharing {
	order := []ledger.Sharing{ledger.SharingPersonal, ledger.SharingFamily, ledger.SharingUniversity}
	idx := -1
	for i, v := range order {
		if v == s {
			idx = i
		}
	}
	return order[cycleIndex(len(order), idx, dir)]
}

func cycleIdle(c factors.IdleChoice, dir int) factors.IdleChoice {
	order := factors.IdleChoices()
	idx := -1
	for i, v := range order {
		if v == c {
			idx = i
		}
	}
	return order[cycleIndex(len(order), idx, dir)]
}

func cycleDisposition(options []factors.Disposition, d factors.Disposition, dir int) factors.Disposition {
	idx := -1
	for i, v := range options {
		if v == d {
			idx = i
		}
	}
	return options[cycleIndex(len(options), idx, dir)]
}

func cycleBucket(buckets []factors.Bucket, label string, dir int) string {
	idx := -1
	for i, b := range buckets {
		if b.Label == label {
			idx = i
		}
	}
	return buckets[cycleIndex(len(buckets), idx, dir)].Label
}

// cycleIndex steps through n options, treating -1 (nothing selected) as
// before-the-first.
func cycleIndex(n, idx, dir int) int {
	idx += dir
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
