package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/existflow/ironcal/internal/editor"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.mode {
	case ModeEdit:
		content = m.renderEditor()
	case ModeConfirmDelete:
		content = m.renderConfirmDelete()
	case ModeDatePick:
		content = m.renderDatePick()
	case ModeHelp:
		content = m.renderHelp()
	default:
		content = m.renderDay()
	}

	if m.mode != ModeDay {
		content = lipgloss.Place(
			m.width, m.height-2,
			lipgloss.Center, lipgloss.Center,
			content,
			lipgloss.WithWhitespaceChars(" "),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.renderStatusBar())
}

// renderDay shows the date header and the day's events
func (m Model) renderDay() string {
	header := m.renderDateHeader()

	var s string
	if len(m.events) == 0 {
		s = HelpStyle.Render("  No events. Press 'a' to add one.")
	}

	for i, e := range m.events {
		cursor := "  "
		style := EventItemStyle
		if i == m.cursor {
			cursor = "❯ "
			style = EventItemSelectedStyle
		}

		timeRange := "all day"
		if !e.AllDay {
			start := time.Unix(e.Start, 0).In(m.loc)
			end := time.Unix(e.End, 0).In(m.loc)
			timeRange = fmt.Sprintf("%s – %s", start.Format("15:04"), end.Format("15:04"))
		}

		tag := CategoryStyle(e.Category.Color.Hex()).Render("● " + e.Category.Name)
		line := fmt.Sprintf("%s%-11s %-30s %s", cursor, timeRange, truncate(e.Name, 30), tag)
		if e.AllDay {
			line = fmt.Sprintf("%s%s %-30s %s", cursor,
				AllDayBadgeStyle.Render("all day    "), truncate(e.Name, 30), tag)
		}
		s += style.Render(line) + "\n"
	}

	body := EventListStyle.Width(m.width).Height(m.height - 8).Render(s)
	return lipgloss.JoinVertical(lipgloss.Left, header, body)
}

// renderDateHeader renders the big day number next to the weekday and
// "Month Year" labels, all taken from the locale-aware decomposition.
func (m Model) renderDateHeader() string {
	h := m.decomposer.Decompose(m.day.Year(), m.day.Month(), m.day.Day())

	right := lipgloss.JoinVertical(lipgloss.Left,
		WeekdayStyle.Render(h.Weekday),
		MonthYearStyle.Render(h.MonthYear),
	)
	return lipgloss.JoinHorizontal(lipgloss.Center,
		DayNumberStyle.Render(h.Day),
		right,
	)
}

// renderEditor draws the event form
func (m Model) renderEditor() string {
	title := "New Event"
	if m.ed.Editing() {
		title = "Edit Event"
	}

	label := func(field int, text string) string {
		if m.focus == field {
			return FormLabelFocusedStyle.Render(text)
		}
		return FormLabelStyle.Render(text)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).Render(title) + "\n\n")
	b.WriteString(label(fieldName, "Name:") + m.inputs[fieldName].View() + "\n")
	b.WriteString(label(fieldPlace, "Place:") + m.inputs[fieldPlace].View() + "\n")
	b.WriteString(label(fieldDescription, "Description:") + m.inputs[fieldDescription].View() + "\n\n")

	allDay := "[ ]"
	if m.ed.AllDay() {
		allDay = "[x]"
	}
	b.WriteString(FormLabelStyle.Render("All day:") + allDay + "  " +
		HelpStyle.Render("ctrl+a to toggle") + "\n\n")

	b.WriteString(label(fieldStartDate, "Start date:") + m.inputs[fieldStartDate].View() + "\n")
	b.WriteString(label(fieldStartTime, "Start time:") + m.renderTimeInput(fieldStartTime) + "\n")
	b.WriteString(label(fieldEndDate, "End date:") + m.inputs[fieldEndDate].View() + "\n")
	b.WriteString(label(fieldEndTime, "End time:") + m.renderTimeInput(fieldEndTime) + "\n\n")

	category := "(none)"
	if c, ok := m.ed.SelectedCategory(); ok {
		category = CategoryStyle(c.Color.Hex()).Render("● " + c.Name)
	}
	b.WriteString(FormLabelStyle.Render("Category:") + category + "  " +
		HelpStyle.Render("ctrl+t to change") + "\n")

	if m.formErr != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.formErr) + "\n")
	}

	help := "tab:next field  enter:save  esc:cancel  ctrl+p:pick date"
	if m.ed.Editing() {
		help += "  ctrl+x:delete"
	}
	b.WriteString("\n" + HelpStyle.Render(help))

	return FormStyle.Render(b.String())
}

// renderTimeInput greys the time widgets out while all-day is on.
func (m Model) renderTimeInput(field int) string {
	if !m.ed.TimeEnabled() {
		return FormDisabledStyle.Render(m.inputs[field].Value() + " (disabled)")
	}
	return m.inputs[field].View()
}

func (m Model) renderConfirmDelete() string {
	content := lipgloss.NewStyle().Bold(true).Render("Confirm delete") + "\n\n"
	content += "Are you sure you want to delete this event?\n\n"
	content += HelpStyle.Render("y:delete  n:keep")
	return ConfirmStyle.Render(content)
}

// renderDatePick draws the pop-up month grid for the targeted endpoint.
func (m Model) renderDatePick() string {
	target := "start"
	if m.pickTarget == editor.EndEndpoint {
		target = "end"
	}

	first := time.Date(m.pickDay.Year(), m.pickDay.Month(), 1, 0, 0, 0, 0, m.loc)
	h := m.decomposer.Decompose(first.Year(), first.Month(), first.Day())

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(Primary).
		Render(fmt.Sprintf("Pick %s date — %s", target, h.MonthYear)) + "\n\n")
	b.WriteString(HelpStyle.Render("Mo Tu We Th Fr Sa Su") + "\n")

	// Monday-first grid
	offset := (int(first.Weekday()) + 6) % 7
	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString("   ")
		col++
	}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		cell := fmt.Sprintf("%2d", d.Day())
		if d.Equal(m.pickDay) {
			cell = EventItemSelectedStyle.Render(cell)
		}
		b.WriteString(cell + " ")
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}

	b.WriteString("\n\n" + HelpStyle.Render("arrows:move  enter:pick  esc:back"))
	return FormStyle.Render(b.String())
}

func (m Model) renderStatusBar() string {
	help := "a:add  e:edit  d:delete  ←/→:day  t:today  R:refresh  ?:help  q:quit"
	if m.message != "" {
		help = m.message
	}
	return StatusBarStyle.Width(m.width).Render(help)
}

func (m Model) renderHelp() string {
	help := `
╭─── Keyboard Shortcuts ───╮
│                          │
│  Day view                │
│  ────────                │
│  h/←     Previous day    │
│  l/→     Next day        │
│  t       Today           │
│  j/k     Move selection  │
│  a       Add event       │
│  e/Enter Edit event      │
│  d       Delete event    │
│                          │
│  Editor                  │
│  ──────                  │
│  Tab     Next field      │
│  Ctrl+A  Toggle all day  │
│  Ctrl+T  Next category   │
│  Ctrl+P  Pop-up calendar │
│  Enter   Save            │
│  Esc     Cancel          │
│                          │
╰──────────────────────────╯

     Press any key to close
`
	return help
}

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
