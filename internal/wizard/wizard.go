// Package wizard drives the ordered page sequence of the questionnaire.
// Forward navigation is gated on input-completeness predicates; failing a
// gate keeps the machine in place and surfaces one warning per violated
// condition.
package wizard

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/session"
)

// Warning is one violated forward-gate condition. Several can be raised by
// a single Next attempt.
type Warning int

const (
	WarnNameMissing Warning = iota
	WarnRoleMissing
	WarnNoDevices
	WarnUnconfirmedDevices
	WarnIncompleteDevices
	WarnActivitiesIncomplete
	WarnGuessMissing
)

// String returns the user-facing warning text.
func (w Warning) String() string {
	switch w {
	case WarnNameMissing:
		return "Please enter your name before continuing."
	case WarnRoleMissing:
		return "Please select your role before continuing."
	case WarnNoDevices:
		return "Please add at least one device."
	case WarnUnconfirmedDevices:
		return "You have devices not yet confirmed. Please confirm each one to proceed."
	case WarnIncompleteDevices:
		return "Please complete ownership, condition, lifespan and end-of-life for all devices."
	case WarnActivitiesIncomplete:
		return "Please complete all email and cloud storage fields before continuing."
	case WarnGuessMissing:
		return "Please pick an archetype before discovering your footprint."
	default:
		return fmt.Sprintf("Warning(%d)", int(w))
	}
}

// Submitter persists the final row to the remote stats collaborator.
type Submitter interface {
	Submit(ctx context.Context, role factors.Role, res engine.Result) error
}

// Machine advances a session through the stage sequence. It owns no state
// of its own beyond collaborators; all session data lives in the State.
type Machine struct {
	session   *session.State
	submitter Submitter
	log       zerolog.Logger
}

// New builds a machine over the given session. submitter may be nil, in
// which case the persistence step is skipped entirely.
func New(s *session.State, submitter Submitter, log zerolog.Logger) *Machine {
	return &Machine{session: s, submitter: submitter, log: log}
}

// Session exposes the underlying state for rendering.
func (m *Machine) Session() *session.State { return m.session }

// Next attempts the forward transition from the current stage. On a failed
// gate it returns the violated conditions and the stage is unchanged. On
// success it returns nil and performs the stage's side effects: freezing
// results when leaving main, and the at-most-once remote persistence when
// leaving the equivalences page.
func (m *Machine) Next(ctx context.Context) []Warning {
	s := m.session

	switch s.Stage {
	case session.StageIntro:
		if warnings := m.introGate(); len(warnings) > 0 {
			return warnings
		}
		s.Stage = session.StageMain

	case session.StageMain:
		if warnings := m.mainGate(); len(warnings) > 0 {
			return warnings
		}
		res := engine.Compute(s.Devices.Records(), s.Inputs())
		s.Results = &res
		s.Stage = session.StageGuess

	case session.StageGuess:
		if s.Guess == "" {
			return []Warning{WarnGuessMissing}
		}
		s.Stage = session.StageResultsCards

	case session.StageResultsCards:
		s.Stage = session.StageResultsBreakdown

	case session.StageResultsBreakdown:
		s.Stage = session.StageResultsEquiv

	case session.StageResultsEquiv:
		m.persistOnce(ctx)
		s.Stage = session.StageVirtues

	case session.StageVirtues:
		s.Stage = session.StageFinal

	case session.StageFinal:
		// Terminal; Restart and EditAnswers are the only exits.
	}

	return nil
}

func (m *Machine) introGate() []Warning {
	var warnings []Warning
	if m.session.Name == "" {
		warnings = append(warnings, WarnNameMissing)
	}
	if !m.session.Role.Valid() {
		warnings = append(warnings, WarnRoleMissing)
	}
	return warnings
}

func (m *Machine) mainGate() []Warning {
	s := m.session
	var warnings []Warning
	if s.Devices.Empty() {
		warnings = append(warnings, WarnNoDevices)
	}
	if s.Devices.HasUnconfirmed() {
		warnings = append(warnings, WarnUnconfirmedDevices)
	}
	if !s.Devices.Empty() && s.Devices.HasIncomplete() {
		warnings = append(warnings, WarnIncompleteDevices)
	}
	if !s.ActivitiesSelected() {
		warnings = append(warnings, WarnActivitiesIncomplete)
	}
	return warnings
}

// BeginSubmission consumes the session's single remote-persistence attempt
// and hands out a copy of the payload for the caller to write. The
// submitted flag is set immediately, before any outcome is known: a failed
// write is treated as consumed and never retried, mirroring the original
// tool's observable behavior. ok is false when nothing should be written
// (not on the equivalences page, already submitted, no submitter, or no
// frozen results). Splitting begin from finish lets a caller run the
// network write off the session-owning goroutine; the session itself is
// only touched here and in FinishSubmission.
func (m *Machine) BeginSubmission() (role factors.Role, res engine.Result, ok bool) {
	s := m.session
	if s.Stage != session.StageResultsEquiv || s.Submitted || m.submitter == nil || s.Results == nil {
		return "", engine.Result{}, false
	}
	s.Submitted = true
	return s.Role, *s.Results, true
}

// FinishSubmission records the outcome of a submission started with
// BeginSubmission.
func (m *Machine) FinishSubmission(err error) {
	s := m.session
	if err != nil {
		m.log.Warn().
			Err(err).
			Str("session_id", s.ID).
			Msg("final row submission failed; not retrying")
		return
	}
	m.log.Info().
		Str("session_id", s.ID).
		Str("role", string(s.Role)).
		Msg("final row submitted")
}

// persistOnce is the synchronous submit path used by Next.
func (m *Machine) persistOnce(ctx context.Context) {
	role, res, ok := m.BeginSubmission()
	if !ok {
		return
	}
	m.FinishSubmission(m.submitter.Submit(ctx, role, res))
}

// Back moves to the stage's backward target, if any.
func (m *Machine) Back() {
	s := m.session
	switch s.Stage {
	case session.StageMain:
		s.Stage = session.StageIntro
	case session.StageGuess:
		s.Stage = session.StageMain
	case session.StageResultsCards:
		s.Stage = session.StageGuess
	case session.StageResultsBreakdown:
		s.Stage = session.StageResultsCards
	case session.StageResultsEquiv:
		s.Stage = session.StageResultsBreakdown
	case session.StageVirtues:
		s.Stage = session.StageResultsEquiv
	case session.StageFinal:
		s.Stage = session.StageVirtues
	case session.StageIntro:
		// First stage; nowhere to go.
	}
}

// Restart hard-resets the session to the intro stage, clearing all data and
// issuing a new session identity.
func (m *Machine) Restart() {
	m.log.Info().Str("session_id", m.session.ID).Msg("session restarted")
	m.session.Reset()
}

// EditAnswers jumps from the final page back to main, preserving every
// previously entered answer. Confirmed devices stay confirmed; results are
// recomputed on the next successful advance.
func (m *Machine) EditAnswers() {
	if m.session.Stage == session.StageFinal {
		m.session.Stage = session.StageMain
	}
}
