package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/existflow/ironcal/internal/clock"
	"github.com/existflow/ironcal/internal/config"
	"github.com/existflow/ironcal/internal/dateheader"
	"github.com/existflow/ironcal/internal/db"
	"github.com/existflow/ironcal/internal/editor"
	"github.com/existflow/ironcal/internal/logger"
	"github.com/existflow/ironcal/internal/model"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeDay Mode = iota
	ModeEdit
	ModeConfirmDelete
	ModeDatePick
	ModeHelp
)

// Editor form fields, in focus order.
const (
	fieldName = iota
	fieldPlace
	fieldDescription
	fieldStartDate
	fieldStartTime
	fieldEndDate
	fieldEndTime
	fieldCount
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

// Model is the main TUI model
type Model struct {
	db         *db.DB
	cfg        *config.Config
	clk        clock.Clock
	loc        *time.Location
	decomposer *dateheader.Decomposer

	// Day view
	day    time.Time // midnight of the displayed day, in loc
	events []model.Event
	cursor int

	// Editor form
	mode    Mode
	ed      *editor.Editor
	inputs  []textinput.Model
	focus   int
	formErr string

	// Pop-up calendar
	pickTarget editor.Endpoint
	pickDay    time.Time

	localeChan chan os.Signal

	width  int
	height int

	message string
}

// NewModel creates a new TUI model
func NewModel(database *db.DB, cfg *config.Config, clk clock.Clock) Model {
	logger.Info("Initializing TUI model")

	loc := cfg.Location()
	now := clk.Now().In(loc)

	m := Model{
		db:         database,
		cfg:        cfg,
		clk:        clk,
		loc:        loc,
		decomposer: dateheader.New(cfg.Locale),
		day:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc),
		mode:       ModeDay,
		localeChan: make(chan os.Signal, 1),
	}

	// Process-wide "settings changed elsewhere" signal: re-read the locale
	// and category list when it fires.
	signal.Notify(m.localeChan, syscall.SIGHUP)

	m.inputs = make([]textinput.Model, fieldCount)
	for i := range m.inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		ti.Width = 40
		m.inputs[i] = ti
	}
	m.inputs[fieldStartDate].Width = 12
	m.inputs[fieldStartTime].Width = 10
	m.inputs[fieldEndDate].Width = 12
	m.inputs[fieldEndTime].Width = 10

	m.loadEvents()
	logger.Debug("TUI model initialized", logger.F("events", len(m.events)))
	return m
}

func (m *Model) loadEvents() {
	from := m.day.Unix()
	to := m.day.AddDate(0, 0, 1).Unix()
	events, err := m.db.EventsInRange(context.Background(), from, to)
	if err != nil {
		logger.Error("failed to load events", logger.F("error", err))
		m.message = "Error loading events"
		return
	}
	m.events = events
	if m.cursor >= len(m.events) {
		m.cursor = 0
	}
}

func (m *Model) currentEvent() *model.Event {
	if m.cursor < len(m.events) {
		return &m.events[m.cursor]
	}
	return nil
}

// openEditor builds a fresh controller for one editing session. Passing nil
// opens it in the Creating state seeded with the displayed day.
func (m *Model) openEditor(event *model.Event) error {
	// The delete confirmation is gated by the TUI's own modal, so the
	// controller-side gate is satisfied by construction.
	ed, err := editor.New(m.db, m.clk, m.loc, func(string) bool { return true })
	if err != nil {
		return err
	}

	if event != nil {
		ed.SetEvent(event)
	} else {
		ed.SetEventDate(m.day.Year(), m.day.Month(), m.day.Day())
	}

	m.ed = ed
	m.syncInputsFromEditor()
	m.setFocus(fieldName)
	m.formErr = ""
	return nil
}

// syncInputsFromEditor populates the form widgets from controller state.
func (m *Model) syncInputsFromEditor() {
	m.inputs[fieldName].SetValue(m.ed.Name())
	m.inputs[fieldPlace].SetValue(m.ed.Place())
	m.inputs[fieldDescription].SetValue(m.ed.Description())

	m.inputs[fieldStartDate].SetValue(formatDateField(m.ed.StartDate()))
	m.inputs[fieldStartTime].SetValue(formatTimeField(m.ed.StartTime()))
	m.inputs[fieldEndDate].SetValue(formatDateField(m.ed.EndDate()))
	m.inputs[fieldEndTime].SetValue(formatTimeField(m.ed.EndTime()))
}

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

// nextFocus advances focus, skipping the time inputs while they are disabled.
func (m *Model) nextFocus(step int) {
	i := m.focus
	for {
		i = (i + step + fieldCount) % fieldCount
		if (i == fieldStartTime || i == fieldEndTime) && !m.ed.TimeEnabled() {
			continue
		}
		break
	}
	m.setFocus(i)
}

func formatDateField(d editor.DateField) string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func formatTimeField(t editor.TimeField) string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
