package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/greendilt/footprint/internal/engine"
	"github.com/greendilt/footprint/internal/factors"
	"github.com/greendilt/footprint/internal/format"
	"github.com/greendilt/footprint/internal/insights"
	"github.com/greendilt/footprint/internal/ledger"
	"github.com/greendilt/footprint/internal/session"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return "Thanks for measuring your digital footprint. Bye!\n"
	}

	s := m.machine.Session()

	var body string
	switch s.Stage {
	case session.StageIntro:
		body = m.viewIntro()
	case session.StageMain:
		body = m.viewMain()
	case session.StageGuess:
		body = m.viewGuess()
	case session.StageResultsCards:
		body = m.viewResultsCards()
	case session.StageResultsBreakdown:
		body = m.viewResultsBreakdown()
	case session.StageResultsEquiv:
		body = m.viewResultsEquiv()
	case session.StageVirtues:
		body = m.viewVirtues()
	case session.StageFinal:
		body = m.viewFinal()
	}

	parts := []string{body}
	if len(m.warnings) > 0 {
		var b strings.Builder
		for _, w := range m.warnings {
			b.WriteString(warnStyle.Render("! " + w.String()))
			b.WriteString("\n")
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}
	parts = append(parts, mutedStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) header(title string) string {
	return headerBoxStyle.Render("Digital Carbon Footprint") + "\n" +
		titleStyle.Render(title) + "\n"
}

func focusMarker(focused bool) string {
	if focused {
		return focusedStyle.Render("> ")
	}
	return "  "
}

func (m Model) viewIntro() string {
	s := m.machine.Session()

	var b strings.Builder
	b.WriteString(m.header("Welcome"))
	b.WriteString("Answer a few questions about your devices and habits and\n")
	b.WriteString("get an estimate of your yearly digital CO2e footprint.\n\n")

	role := "choose a role"
	if s.Role != "" {
		role = string(s.Role)
	}
	roleRow := fmt.Sprintf("I am a ... %s", accentStyle.Render("< "+role+" >"))
	b.WriteString(focusMarker(!m.introOnName) + roleRow + "\n")
	b.WriteString(focusMarker(m.introOnName) + "Name: " + m.nameInput.View() + "\n\n")
	b.WriteString(mutedStyle.Render("enter to start, arrows to pick a role"))
	return b.String()
}

func (m Model) viewMain() string {
	s := m.machine.Session()

	var b strings.Builder
	b.WriteString(m.header("Your devices and habits"))

	var section fieldKind = -1
	for i, f := range m.fields {
		if h := sectionHeading(f.kind, section); h != "" {
			b.WriteString(sectionStyle.Render(h) + "\n")
		}
		section = f.kind
		b.WriteString(m.renderField(f, i == m.focus, s))
		b.WriteString("\n")
	}

	b.WriteString("\n" + mutedStyle.Render("ctrl+n when done"))
	return b.String()
}

// sectionHeading returns a heading when the field opens a new section.
func sectionHeading(kind, prev fieldKind) string {
	sec := func(k fieldKind) string {
		switch k {
		case fieldDeviceQty:
			return "Devices"
		case fieldDevCondition, fieldDevSharing, fieldDevLifespan,
			fieldDevDefaultLife, fieldDevDisposition, fieldDevConfirm, fieldDevRemove:
			return "Your device list"
		case fieldActivity:
			return "Daily activities"
		case fieldEmailPlain, fieldEmailAttach, fieldCloud, fieldWiFi, fieldPages, fieldIdle:
			return "Habits"
		case fieldAITask:
			return "AI tools"
		default:
			return ""
		}
	}
	if cur := sec(kind); prev == -1 || cur != sec(prev) {
		return sec(kind)
	}
	return ""
}

func (m Model) renderField(f field, focused bool, s *session.State) string {
	marker := focusMarker(focused)

	switch f.kind {
	case fieldDeviceQty:
		return fmt.Sprintf("%s%-22s < %d >", marker, string(f.deviceType), s.Devices.Count(f.deviceType))

	case fieldDevCondition, fieldDevSharing, fieldDevLifespan,
		fieldDevDefaultLife, fieldDevDisposition, fieldDevConfirm, fieldDevRemove:
		return m.renderDeviceRow(f, marker, s)

	case fieldActivity:
		return fmt.Sprintf("%s%-38s < %.1f h/day >", marker, f.name, s.ActivityHours[f.name])

	case fieldEmailPlain:
		return marker + bucketRow("Emails without attachments per day", s.EmailPlain)
	case fieldEmailAttach:
		return marker + bucketRow("Emails with attachments per day", s.EmailAttach)
	case fieldCloud:
		return marker + bucketRow("Cloud storage in use", s.Cloud)

	case fieldWiFi:
		return fmt.Sprintf("%sWi-Fi hours per day                < %.1f h >", marker, s.WiFiHours)
	case fieldPages:
		return fmt.Sprintf("%sPrinted pages per week             < %d >", marker, s.PagesPerWeek)
	case fieldIdle:
		idle := "select an answer"
		if s.Idle != factors.IdleUnset {
			idle = s.Idle.String()
		}
		return fmt.Sprintf("%sComputer when you leave            < %s >", marker, idle)

	case fieldAITask:
		return fmt.Sprintf("%s%-38s < %d queries/day >", marker, f.name, s.AIQueries[f.name])
	}
	return marker
}

func bucketRow(label, selected string) string {
	val := "select an answer"
	if selected != "" {
		val = selected
	}
	return fmt.Sprintf("%-34s < %s >", label, val)
}

func (m Model) renderDeviceRow(f field, marker string, s *session.State) string {
	rec, ok := s.Devices.Record(f.device)
	if !ok {
		return marker + mutedStyle.Render("(removed)")
	}

	if rec.State == ledger.StateConfirmed && f.kind == fieldDevRemove {
		line := fmt.Sprintf("%s%s  %s", marker,
			confirmedStyle.Render("✓ "+f.device.String()),
			mutedStyle.Render(fmt.Sprintf("%s, %s, %.1f y, %s",
				rec.Condition, rec.Sharing, rec.Lifespan, rec.Disposition)))
		if focusedRemove := marker != "  "; focusedRemove {
			line += "  " + dangerStyle.Render("[enter removes]")
		}
		return line
	}

	name := f.device.String()
	switch f.kind {
	case fieldDevCondition:
		head := sectionStyle.Render(name) + "\n"
		return head + fmt.Sprintf("%s  Condition     < %s >", marker, rec.Condition)
	case fieldDevSharing:
		return fmt.Sprintf("%s  Sharing       < %s >", marker, rec.Sharing)
	case fieldDevLifespan:
		return fmt.Sprintf("%s  Years of use  < %.1f >", marker, rec.Lifespan)
	case fieldDevDefaultLife:
		return fmt.Sprintf("%s  %s", marker, mutedStyle.Render(
			fmt.Sprintf("[use typical lifespan: %.0f years]", factors.DefaultLifespan(f.device.Type))))
	case fieldDevDisposition:
		disp := "select an answer"
		if rec.Disposition != "" {
			disp = string(rec.Disposition)
		}
		return fmt.Sprintf("%s  End of life   < %s >", marker, disp)
	case fieldDevConfirm:
		line := fmt.Sprintf("%s  %s", marker, goodStyle.Render("[confirm device]"))
		if problems, found := m.problems[f.device]; found {
			for _, p := range problems {
				line += "\n    " + dangerStyle.Render("✗ "+p.String())
			}
		}
		return line
	case fieldDevRemove:
		return fmt.Sprintf("%s  %s", marker, dangerStyle.Render("[remove device]"))
	}
	return marker + name
}

func (m Model) viewGuess() string {
	s := m.machine.Session()

	var b strings.Builder
	b.WriteString(m.header("Take a guess"))
	b.WriteString("Which kind of digital footprint do you think weighs the most for you?\n\n")

	var cards []string
	for i, a := range factors.Archetypes() {
		style := cardStyle
		if i == m.guessCursor {
			style = style.BorderForeground(colorAccent)
		}
		label := a.Name
		if s.Guess == a.Key {
			label = "✓ " + label
		}
		cards = append(cards, style.Width(24).Render(label+"\n"+mutedStyle.Render(string(a.Category))))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n" + mutedStyle.Render("enter to pick, enter again to continue"))
	return b.String()
}

func (m Model) viewResultsCards() string {
	s := m.machine.Session()
	res := s.Results
	if res == nil {
		return m.header("Your results")
	}

	var b strings.Builder
	b.WriteString(m.header(fmt.Sprintf("Your digital footprint, %s", displayName(s))))

	verdict := insights.ArchetypeVerdict(s.Guess, *res)
	if verdict.Correct {
		b.WriteString(goodStyle.Render("Spot on! You really are the "+verdict.Display.Name+".") + "\n\n")
	} else {
		b.WriteString(fmt.Sprintf("Your biggest impact is actually %s. Meet the %s.\n\n",
			accentStyle.Render(string(verdict.Top)), verdict.Display.Name))
	}

	total := res.Total()
	b.WriteString(cardStyle.Render(fmt.Sprintf("Total\n%s kg CO2e / year", format.Kg(total))) + "\n\n")

	switch {
	case m.fetching:
		b.WriteString(m.spin.View() + " comparing with other " + rolePlural(s.Role) + "...\n")
	case m.comparison != nil:
		b.WriteString(comparisonLine(*m.comparison, s.Role) + "\n")
	}
	return b.String()
}

func comparisonLine(c insights.Comparison, role factors.Role) string {
	if c.Source == insights.SourceNone {
		return mutedStyle.Render("No average available for your role yet.")
	}
	avg := fmt.Sprintf("the average for %s is %s kg", rolePlural(role), format.Kg(c.Average))
	switch c.Relation {
	case insights.RelationInLine:
		return neutralStyle.Render("You are in line with your peers; " + avg + ".")
	case insights.RelationMore:
		return warnStyle.Render(fmt.Sprintf("You emit about %.0f%% more than your peers; %s.", c.Percent, avg))
	default:
		return goodStyle.Render(fmt.Sprintf("You emit about %.0f%% less than your peers; %s.", c.Percent, avg))
	}
}

func rolePlural(r factors.Role) string {
	switch r {
	case factors.RoleStudent:
		return "students"
	case factors.RoleProfessor:
		return "professors"
	case factors.RoleStaff:
		return "staff members"
	default:
		return "peers"
	}
}

func (m Model) viewResultsBreakdown() string {
	s := m.machine.Session()
	res := s.Results
	if res == nil {
		return m.header("Breakdown")
	}

	var b strings.Builder
	b.WriteString(m.header("Where it comes from"))

	maxVal := 0.0
	for _, c := range factors.Categories() {
		if v := res.Category(c); v > maxVal {
			maxVal = v
		}
	}
	const barWidth = 36
	for _, c := range factors.Categories() {
		v := res.Category(c)
		n := 0
		if maxVal > 0 && v > 0 {
			n = int(v / maxVal * barWidth)
			if n == 0 {
				n = 1
			}
		}
		bar := goodStyle.Render(strings.Repeat("█", n))
		b.WriteString(fmt.Sprintf("%-20s %-*s %s kg\n", string(c), barWidth, bar, format.Kg(v)))
	}

	if res.EWaste < 0 {
		b.WriteString("\n" + goodStyle.Render(
			"Your e-waste balance is negative: responsible disposal earns back\n"+
				"part of your devices' manufacturing footprint.") + "\n")
	}
	if res.TotalActivityHours > 8 {
		b.WriteString("\n" + mutedStyle.Render(fmt.Sprintf(
			"Note: your activities add up to %.1f hours per day. That is a lot of screen time.",
			res.TotalActivityHours)) + "\n")
	}
	return b.String()
}

func (m Model) viewResultsEquiv() string {
	s := m.machine.Session()
	res := s.Results
	if res == nil {
		return m.header("In everyday terms")
	}

	var b strings.Builder
	b.WriteString(m.header("In everyday terms"))

	equivs := engine.Equivalencies(res.Total())
	if len(equivs) == 0 {
		b.WriteString(mutedStyle.Render("Nothing to compare yet.") + "\n")
	}
	var cards []string
	for _, e := range equivs {
		cards = append(cards, cardStyle.Width(22).Render(
			fmt.Sprintf("%s\n%s", accentStyle.Render(format.Float(e.Value, 0)), e.Label)))
	}
	if len(cards) > 0 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
	}

	if m.submitting {
		b.WriteString("\n" + m.spin.View() + " saving your anonymous result...\n")
	}
	return b.String()
}

func (m Model) viewVirtues() string {
	s := m.machine.Session()
	if s.Results == nil {
		return m.header("Tips for you")
	}

	profile := insights.Profile{
		Records: s.Devices.Records(),
		Inputs:  s.Inputs(),
		Result:  *s.Results,
	}

	var b strings.Builder
	b.WriteString(m.header("What you can do"))

	for _, ct := range insights.Tips(profile, tipSeed(s)) {
		heading := string(ct.Category)
		if ct.Top {
			heading += "  (your biggest impact)"
		}
		b.WriteString(sectionStyle.Render(heading) + "\n")
		for _, tip := range ct.Tips {
			b.WriteString(tipCardStyle.Render("• "+tip) + "\n")
		}
	}

	if virtues := insights.Virtues(profile); len(virtues) > 0 {
		b.WriteString(sectionStyle.Render("Already doing well") + "\n")
		for _, v := range virtues {
			b.WriteString(virtueCardStyle.Render("✓ "+v) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewFinal() string {
	s := m.machine.Session()

	var b strings.Builder
	b.WriteString(m.header("Thank you, " + displayName(s) + "!"))
	b.WriteString("Your anonymous result helps build a better picture of our digital footprint.\n\n")
	b.WriteString(mutedStyle.Render("ctrl+e edit your answers    ctrl+r start over    q quit"))
	return b.String()
}

func displayName(s *session.State) string {
	if s.Name != "" {
		return s.Name
	}
	return "friend"
}

// tipSeed keeps tip sampling stable for one person within a session.
func tipSeed(s *session.State) string {
	return s.Name + "|" + string(s.Role)
}
