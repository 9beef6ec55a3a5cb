package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/existflow/ironcal/internal/config"
	"github.com/existflow/ironcal/internal/editor"
	"github.com/existflow/ironcal/internal/logger"
)

// tickMsg is sent every second for clock updates
type tickMsg time.Time

// localeChangedMsg is sent when the process receives the locale-change signal
type localeChangedMsg struct{}

// Init initializes the model with a tick command
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.waitForLocaleChange(), textinput.Blink)
}

func tickCmd() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForLocaleChange listens for the process-wide settings signal
func (m Model) waitForLocaleChange() tea.Cmd {
	return func() tea.Msg {
		<-m.localeChan
		return localeChangedMsg{}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tickCmd()

	case localeChangedMsg:
		// Re-read configuration; the signal carries no payload.
		if cfg, err := config.Load(); err == nil {
			m.cfg = cfg
			m.decomposer.SetLocale(cfg.Locale)
		}
		if m.ed != nil {
			m.ed.Apply(editor.RefreshCategoryList{})
		}
		m.message = "Locale refreshed"
		logger.Info("locale change handled")
		return m, m.waitForLocaleChange()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeEdit:
			return m.updateEdit(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeDatePick:
			return m.updateDatePick(msg)
		case ModeHelp:
			m.mode = ModeDay
			return m, nil
		}
		return m.updateDay(msg)
	}

	return m, nil
}

// updateDay handles key presses in the day view
func (m Model) updateDay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.events)-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.PrevDay):
		m.day = m.day.AddDate(0, 0, -1)
		m.cursor = 0
		m.loadEvents()

	case key.Matches(msg, keys.NextDay):
		m.day = m.day.AddDate(0, 0, 1)
		m.cursor = 0
		m.loadEvents()

	case key.Matches(msg, keys.Today):
		now := m.clk.Now().In(m.loc)
		m.day = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, m.loc)
		m.cursor = 0
		m.loadEvents()

	case key.Matches(msg, keys.Add):
		if err := m.openEditor(nil); err != nil {
			m.message = "Error opening editor"
			return m, nil
		}
		m.mode = ModeEdit
		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		if event := m.currentEvent(); event != nil {
			if err := m.openEditor(event); err != nil {
				m.message = "Error opening editor"
				return m, nil
			}
			m.mode = ModeEdit
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Delete):
		if event := m.currentEvent(); event != nil {
			if err := m.openEditor(event); err != nil {
				m.message = "Error opening editor"
				return m, nil
			}
			if m.cfg.ConfirmDelete {
				m.mode = ModeConfirmDelete
			} else {
				m.applyToEditor(editor.Delete{})
			}
		}

	case key.Matches(msg, keys.Refresh):
		m.loadEvents()
		m.message = "Refreshed"

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

// updateEdit handles key presses in the editor form
func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.applyToEditor(editor.Cancel{})
		return m, nil

	case key.Matches(msg, keys.NextField):
		m.nextFocus(1)
		return m, nil

	case key.Matches(msg, keys.PrevField):
		m.nextFocus(-1)
		return m, nil

	case key.Matches(msg, keys.AllDay):
		m.applyToEditor(editor.ToggleAllDay{})
		m.syncInputsFromEditor()
		if (m.focus == fieldStartTime || m.focus == fieldEndTime) && !m.ed.TimeEnabled() {
			m.nextFocus(1)
		}
		return m, nil

	case key.Matches(msg, keys.Category):
		m.cycleCategory()
		return m, nil

	case key.Matches(msg, keys.Calendar):
		which := editor.StartEndpoint
		if m.focus == fieldEndDate || m.focus == fieldEndTime {
			which = editor.EndEndpoint
		}
		m.applyToEditor(editor.ShowPopUpCalendar{Which: which})
		return m, nil

	case msg.String() == "ctrl+x":
		if m.ed.Editing() {
			if m.cfg.ConfirmDelete {
				m.mode = ModeConfirmDelete
			} else {
				m.applyToEditor(editor.Delete{})
			}
		}
		return m, nil

	case key.Matches(msg, keys.Enter):
		// Description is multi-line in spirit; enter elsewhere submits.
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		m.applyToEditor(editor.Delete{})
	case "n", "N", "esc", "q":
		if m.ed != nil && m.ed.Editing() {
			m.mode = ModeEdit
		} else {
			m.closeEditor()
		}
	}
	return m, nil
}

// updateDatePick drives the pop-up calendar aimed at one endpoint.
func (m Model) updateDatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeEdit

	case key.Matches(msg, keys.PrevDay):
		m.pickDay = m.pickDay.AddDate(0, 0, -1)

	case key.Matches(msg, keys.NextDay):
		m.pickDay = m.pickDay.AddDate(0, 0, 1)

	case key.Matches(msg, keys.Up):
		m.pickDay = m.pickDay.AddDate(0, 0, -7)

	case key.Matches(msg, keys.Down):
		m.pickDay = m.pickDay.AddDate(0, 0, 7)

	case key.Matches(msg, keys.Enter):
		picked := m.pickDay
		if m.pickTarget == editor.StartEndpoint {
			m.ed.Apply(editor.StartDateChanged{
				Day: picked.Day(), Month: int(picked.Month()), Year: picked.Year(),
			})
		} else {
			m.ed.Apply(editor.EndDateChanged{
				Day: picked.Day(), Month: int(picked.Month()), Year: picked.Year(),
			})
		}
		m.syncInputsFromEditor()
		m.mode = ModeEdit
	}
	return m, nil
}

// applyToEditor routes a command to the controller and reacts to its effect.
func (m *Model) applyToEditor(cmd editor.Command) {
	if m.ed == nil {
		return
	}
	effect := m.ed.Apply(cmd)

	switch {
	case effect.Err != nil:
		var verr *editor.ValidationError
		if errors.As(effect.Err, &verr) {
			m.formErr = verr.Msg
		} else {
			m.formErr = "There was some error in saving the event. Please try again."
		}
		m.mode = ModeEdit

	case effect.PickDate != nil:
		m.pickTarget = *effect.PickDate
		var d editor.DateField
		if m.pickTarget == editor.StartEndpoint {
			d = m.ed.StartDate()
		} else {
			d = m.ed.EndDate()
		}
		m.pickDay = time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, m.loc)
		m.mode = ModeDatePick

	case effect.Close:
		m.closeEditor()
	}
}

func (m *Model) closeEditor() {
	m.ed = nil
	m.mode = ModeDay
	m.formErr = ""
	m.loadEvents()
}

// submitForm pushes raw widget state through the controller's commands and
// then asks it to save. Unparsable date or time text never reaches the
// controller; it is reported like any other validation problem.
func (m *Model) submitForm() {
	m.ed.SetName(m.inputs[fieldName].Value())
	m.ed.SetPlace(m.inputs[fieldPlace].Value())
	m.ed.SetDescription(m.inputs[fieldDescription].Value())

	startDate, err := time.ParseInLocation(dateLayout, m.inputs[fieldStartDate].Value(), m.loc)
	if err != nil {
		m.formErr = "Start date must look like 2006-01-02."
		return
	}
	endDate, err := time.ParseInLocation(dateLayout, m.inputs[fieldEndDate].Value(), m.loc)
	if err != nil {
		m.formErr = "End date must look like 2006-01-02."
		return
	}
	m.ed.Apply(editor.StartDateChanged{
		Day: startDate.Day(), Month: int(startDate.Month()), Year: startDate.Year(),
	})
	m.ed.Apply(editor.EndDateChanged{
		Day: endDate.Day(), Month: int(endDate.Month()), Year: endDate.Year(),
	})

	if m.ed.TimeEnabled() {
		startTime, err := time.Parse(timeLayout, m.inputs[fieldStartTime].Value())
		if err != nil {
			m.formErr = "Start time must look like 13:30:00."
			return
		}
		endTime, err := time.Parse(timeLayout, m.inputs[fieldEndTime].Value())
		if err != nil {
			m.formErr = "End time must look like 13:30:00."
			return
		}
		m.ed.Apply(editor.StartTimeChanged{
			Hour: startTime.Hour(), Minute: startTime.Minute(), Second: startTime.Second(),
		})
		m.ed.Apply(editor.EndTimeChanged{
			Hour: endTime.Hour(), Minute: endTime.Minute(), Second: endTime.Second(),
		})
	}

	m.formErr = ""
	m.applyToEditor(editor.Save{})
}

// cycleCategory marks the entry after the current selection.
func (m *Model) cycleCategory() {
	categories := m.ed.Categories()
	if len(categories) == 0 {
		return
	}
	current, ok := m.ed.SelectedCategory()
	if !ok {
		m.ed.SelectCategory(categories[0])
		return
	}
	for i, c := range categories {
		if c.Equals(current) {
			m.ed.SelectCategory(categories[(i+1)%len(categories)])
			return
		}
	}
	m.ed.SelectCategory(categories[0])
}
