// Package tui renders the questionnaire wizard in the terminal. It is a
// thin presentation layer: all business state lives in the session, all
// transition rules in the wizard machine.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/insights"
	"github.com/greendilt/footprint/internal/ledger"
	"github.com/greendilt/footprint/internal/session"
	"github.com/greendilt/footprint/internal/stats"
	"github.com/greendilt/footprint/internal/wizard"
)

// Default dimensions before the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// comparisonMsg carries the finished role-average lookup.
type comparisonMsg struct {
	comparison insights.Comparison
}

// submitDoneMsg carries the outcome of the final-row network write. The
// session is never touched from the command goroutine; the stage transition
// happens in Update when this message lands.
type submitDoneMsg struct {
	err error
}

// Model is the Bubble Tea model for the whole wizard.
type Model struct {
	machine *wizard.Machine
	stats   *stats.Client
	log     zerolog.Logger

	keys keyMap
	help help.Model
	spin spinner.Model

	nameInput textinput.Model

	// focus indexes the focusable rows of the current stage.
	focus  int
	fields []field

	// introOnName is true when the intro focus sits on the name input
	// rather than the role selector.
	introOnName bool

	// guessCursor indexes the archetype cards on the guess page.
	guessCursor int

	warnings []wizard.Warning
	problems map[ledger.ID][]ledger.Problem

	comparison *insights.Comparison
	fetching   bool
	submitting bool

	width  int
	height int

	quitting bool
}

// New builds the wizard model over an existing machine and stats client.
func New(machine *wizard.Machine, statsClient *stats.Client, log zerolog.Logger) Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 60
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = focusedStyle

	return Model{
		machine:   machine,
		stats:     statsClient,
		log:       log,
		keys:      defaultKeyMap(),
		help:      help.New(),
		spin:      sp,
		nameInput: ti,
		problems:  make(map[ledger.ID][]ledger.Problem),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.fetching && !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case comparisonMsg:
		m.fetching = false
		comparison := msg.comparison
		m.comparison = &comparison
		return m, nil

	case submitDoneMsg:
		m.submitting = false
		m.machine.FinishSubmission(msg.err)
		m.machine.Next(context.Background())
		return m.enterStage()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// A pending submission owns the session; swallow everything else.
	if m.submitting {
		return m, nil
	}

	s := m.machine.Session()

	// Plain "q" quits everywhere except while typing a name.
	if msg.String() == "q" && !(s.Stage == session.StageIntro && m.introOnName) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Next):
		return m.advance()
	case key.Matches(msg, m.keys.Back):
		m.machine.Back()
		m.syncStage()
		return m, nil
	}

	switch s.Stage {
	case session.StageIntro:
		return m.updateIntro(msg)
	case session.StageMain:
		return m.updateMain(msg)
	case session.StageGuess:
		return m.updateGuess(msg)
	case session.StageFinal:
		return m.updateFinal(msg)
	case session.StageResultsCards, session.StageResultsBreakdown,
		session.StageResultsEquiv, session.StageVirtues:
		// Display-only pages; enter doubles as "next".
		if msg.Type == tea.KeyEnter {
			return m.advance()
		}
	}

	return m, nil
}

// advance attempts the forward transition for the current stage. Leaving
// the equivalences page consumes the submission attempt here on the UI
// goroutine, then runs only the network write as a command; the stage
// transition itself waits for submitDoneMsg so the session is never
// mutated off the Update loop.
func (m Model) advance() (tea.Model, tea.Cmd) {
	s := m.machine.Session()

	if role, res, ok := m.machine.BeginSubmission(); ok {
		m.submitting = true
		client := m.stats
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), stats.DefaultTimeout)
			defer cancel()
			return submitDoneMsg{err: client.Submit(ctx, role, res)}
		})
	}

	prev := s.Stage
	m.warnings = m.machine.Next(context.Background())
	if len(m.warnings) > 0 {
		return m, nil
	}
	if prev == session.StageMain {
		// Results were just recomputed; a cached comparison would sit next
		// to a total it was never measured against.
		m.comparison = nil
		m.fetching = false
	}
	return m.enterStage()
}

// enterStage refreshes per-stage interaction state after a transition.
func (m Model) enterStage() (tea.Model, tea.Cmd) {
	m.syncStage()
	s := m.machine.Session()

	if s.Stage == session.StageResultsCards && m.comparison == nil && !m.fetching {
		m.fetching = true
		return m, tea.Batch(m.spin.Tick, m.fetchComparison())
	}
	return m, nil
}

// syncStage rebuilds focus state for the stage the machine now sits on.
func (m *Model) syncStage() {
	s := m.machine.Session()
	m.warnings = nil
	m.focus = 0
	switch s.Stage {
	case session.StageIntro:
		m.introOnName = false
		m.nameInput.SetValue(s.Name)
	case session.StageMain:
		m.fields = mainFields(s)
	case session.StageGuess, session.StageResultsCards, session.StageResultsBreakdown,
		session.StageResultsEquiv, session.StageVirtues, session.StageFinal:
	}
}

// fetchComparison looks up the role average off the UI loop. The lookup is
// best-effort: errors degrade to the built-in table inside Compare.
func (m Model) fetchComparison() tea.Cmd {
	s := m.machine.Session()
	client := m.stats
	role := s.Role
	total := 0.0
	if s.Results != nil {
		total = s.Results.Total()
	}
	log := m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), stats.DefaultTimeout)
		defer cancel()
		avg, n, err := client.RoleAverage(ctx, role)
		if err != nil {
			log.Debug().Err(err).Msg("role average unavailable, using built-in")
		}
		return comparisonMsg{comparison: insights.Compare(total, role, avg, n, err == nil)}
	}
}

func (m Model) updateIntro(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.machine.Session()

	if m.introOnName {
		switch msg.Type {
		case tea.KeyUp, tea.KeyShiftTab:
			m.introOnName = false
			m.nameInput.Blur()
			return m, nil
		case tea.KeyEnter:
			s.Name = trimmed(m.nameInput.Value())
			return m.advance()
		default:
			var cmd tea.Cmd
			m.nameInput, cmd = m.nameInput.Update(msg)
			s.Name = trimmed(m.nameInput.Value())
			return m, cmd
		}
	}

	switch msg.Type {
	case tea.KeyDown, tea.KeyTab:
		m.introOnName = true
		return m, m.nameInput.Focus()
	case tea.KeyLeft:
		s.Role = cycleRole(s.Role, -1)
	case tea.KeyRight:
		s.Role = cycleRole(s.Role, 1)
	case tea.KeyEnter:
		return m.advance()
	}
	return m, nil
}

func cycleRole(r factors.Role, dir int) factors.Role {
	roles := factors.Roles()
	idx := -1
	for i, v := range roles {
		if v == r {
			idx = i
		}
	}
	return roles[cycleIndex(len(roles), idx, dir)]
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		m.fields = mainFields(m.machine.Session())
	}

	switch msg.Type {
	case tea.KeyUp, tea.KeyShiftTab:
		if m.focus > 0 {
			m.focus--
		}
	case tea.KeyDown, tea.KeyTab:
		if m.focus < len(m.fields)-1 {
			m.focus++
		}
	case tea.KeyLeft:
		m.applyAdjust(-1)
	case tea.KeyRight:
		m.applyAdjust(1)
	case tea.KeyEnter:
		m.applyAdjust(1)
	}
	return m, nil
}

// applyAdjust steps the focused field and rebuilds the field list when the
// device shape changed underneath it.
func (m *Model) applyAdjust(dir int) {
	if m.focus >= len(m.fields) {
		return
	}
	if reshape := m.adjust(m.fields[m.focus], dir); reshape {
		m.fields = mainFields(m.machine.Session())
		if m.focus >= len(m.fields) {
			m.focus = len(m.fields) - 1
		}
	}
}

func (m Model) updateGuess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.machine.Session()
	arcs := factors.Archetypes()

	switch msg.Type {
	case tea.KeyLeft, tea.KeyUp:
		if m.guessCursor > 0 {
			m.guessCursor--
		}
	case tea.KeyRight, tea.KeyDown:
		if m.guessCursor < len(arcs)-1 {
			m.guessCursor++
		}
	case tea.KeyEnter:
		if s.Guess == arcs[m.guessCursor].Key {
			// Already chosen; enter advances.
			return m.advance()
		}
		s.Guess = arcs[m.guessCursor].Key
	}
	return m, nil
}

func (m Model) updateFinal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Edit):
		m.machine.EditAnswers()
		m.syncStage()
	case key.Matches(msg, m.keys.Restart):
		m.machine.Restart()
		m.comparison = nil
		m.fetching = false
		m.problems = make(map[ledger.ID][]ledger.Problem)
		m.guessCursor = 0
		m.nameInput.SetValue("")
		m.syncStage()
	}
	return m, nil
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
