package editor

import (
	"context"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/existflow/ironcal/internal/clock"
	"github.com/existflow/ironcal/internal/logger"
	"github.com/existflow/ironcal/internal/model"
)

// Store is the slice of the persistence layer the editor needs. The editor is
// the only caller of these operations from the editing surface.
type Store interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	AddEvent(ctx context.Context, event model.Event) (int64, error)
	UpdateEvent(ctx context.Context, old, new model.Event) error
}

// DateField is the raw state of a date input widget.
type DateField struct {
	Year  int
	Month time.Month
	Day   int
}

// TimeField is the raw state of a time input widget.
type TimeField struct {
	Hour, Minute, Second int
}

// ConfirmFunc gates destructive actions. It should block until the user
// answers.
type ConfirmFunc func(prompt string) bool

// Editor consolidates the independently-mutable input widgets of the event
// form into one consistent persisted record. It holds a cached snapshot of
// the category list; the snapshot is only replaced through
// RefreshCategoryList, which may be triggered from outside the editing
// message flow, so selection state is guarded by a mutex.
type Editor struct {
	store   Store
	clock   clock.Clock
	loc     *time.Location
	confirm ConfirmFunc

	mu sync.Mutex

	backing *model.Event

	name        string
	place       string
	description string

	allDay      bool
	timeEnabled bool
	startDate   DateField
	endDate     DateField
	startTime   TimeField
	endTime     TimeField

	categories []model.Category
	selected   int
}

// New creates an editor in the Creating state, its date set to today with the
// default one-hour window. The category snapshot is loaded eagerly so the
// selection menu is never empty.
func New(store Store, clk clock.Clock, loc *time.Location, confirm ConfirmFunc) (*Editor, error) {
	if loc == nil {
		loc = time.Local
	}
	if confirm == nil {
		confirm = func(string) bool { return true }
	}

	categories, err := store.ListCategories(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}

	e := &Editor{
		store:       store,
		clock:       clk,
		loc:         loc,
		confirm:     confirm,
		timeEnabled: true,
		categories:  categories,
	}

	now := clk.Now().In(loc)
	e.SetEventDate(now.Year(), now.Month(), now.Day())
	return e, nil
}

// SetEvent switches the editor between Creating (nil) and Editing. Entering
// Editing populates every field from the event, resolves its category in the
// cached list by structural equality and disables the time inputs for all-day
// events.
func (e *Editor) SetEvent(event *model.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.backing = event
	if event == nil {
		return
	}

	e.name = event.Name
	e.place = event.Place
	e.description = event.Description
	e.allDay = event.AllDay
	e.timeEnabled = !event.AllDay

	e.startDate, e.startTime = e.decompose(event.Start)
	e.endDate, e.endTime = e.decompose(event.End)

	e.selected = 0
	for i, c := range e.categories {
		if c.Equals(event.Category) {
			e.selected = i
			break
		}
	}
}

// SetEventDate is used when creating a new event from a calendar pick: both
// endpoints move to the picked date and the time range resets to the default
// one-hour window, regardless of anything entered before.
func (e *Editor) SetEventDate(year int, month time.Month, day int) {
	d := DateField{Year: year, Month: month, Day: day}
	e.startDate = d
	e.endDate = d
	e.startTime = TimeField{}
	e.endTime = TimeField{Hour: 1}
}

// Apply runs one command and reports the resulting effect.
func (e *Editor) Apply(cmd Command) Effect {
	switch c := cmd.(type) {
	case Save:
		return e.save()
	case Cancel:
		return Effect{Close: true}
	case Delete:
		return e.delete()
	case ToggleAllDay:
		e.toggleAllDay()
		return Effect{}
	case RefreshCategoryList:
		return e.refreshCategories()
	case StartDateChanged:
		e.startDate = DateField{Year: c.Year, Month: time.Month(c.Month), Day: c.Day}
		return Effect{}
	case EndDateChanged:
		e.endDate = DateField{Year: c.Year, Month: time.Month(c.Month), Day: c.Day}
		return Effect{}
	case StartTimeChanged:
		if e.timeEnabled {
			e.startTime = TimeField{Hour: c.Hour, Minute: c.Minute, Second: c.Second}
		}
		return Effect{}
	case EndTimeChanged:
		if e.timeEnabled {
			e.endTime = TimeField{Hour: c.Hour, Minute: c.Minute, Second: c.Second}
		}
		return Effect{}
	case ShowPopUpCalendar:
		which := c.Which
		return Effect{PickDate: &which}
	default:
		return Effect{Err: fmt.Errorf("unknown command %T", cmd)}
	}
}

// save validates the form, consolidates the date and time widgets into the
// timestamp pair and performs the durable write. Validation failures abort
// before any persistence call.
func (e *Editor) save() Effect {
	if utf8.RuneCountInString(e.name) < 3 {
		return Effect{Err: validationErr("the name must have a length greater than 2")}
	}

	start := e.combine(e.startDate, e.startTime)
	end := e.combine(e.endDate, e.endTime)

	if start > end {
		return Effect{Err: validationErr("an event cannot end before it starts")}
	}

	category, ok := e.SelectedCategory()
	if !ok {
		return Effect{Err: validationErr("no category selected")}
	}

	now := e.clock.Now().Unix()
	event := model.NewEvent(e.name, e.place, e.description, e.allDay, start, end, category, now)

	ctx := context.Background()
	if e.backing == nil {
		id, err := e.store.AddEvent(ctx, event)
		if err != nil {
			logger.Error("failed to add event", logger.F("name", e.name), logger.F("error", err))
			return Effect{Err: fmt.Errorf("save event: %w", err)}
		}
		logger.Info("event added", logger.F("id", id), logger.F("name", e.name))
		return Effect{Close: true}
	}

	// notified is computed once at creation and never afterward; an edit
	// carries the original value forward.
	event.ID = e.backing.ID
	event.Notified = e.backing.Notified

	if err := e.store.UpdateEvent(ctx, *e.backing, event); err != nil {
		logger.Error("failed to update event", logger.F("id", e.backing.ID), logger.F("error", err))
		return Effect{Err: fmt.Errorf("save event: %w", err)}
	}
	logger.Info("event updated", logger.F("id", e.backing.ID))
	return Effect{Close: true}
}

// delete soft-deletes the backing event after the confirmation gate. The row
// stays in the store with Status=false and a fresh UpdatedAt.
func (e *Editor) delete() Effect {
	if e.backing == nil {
		return Effect{}
	}
	if !e.confirm("Are you sure you want to delete this event?") {
		return Effect{}
	}

	deleted := e.backing.SoftDeleted(e.clock.Now().Unix())
	if err := e.store.UpdateEvent(context.Background(), *e.backing, deleted); err != nil {
		logger.Error("failed to delete event", logger.F("id", e.backing.ID), logger.F("error", err))
		return Effect{Err: fmt.Errorf("delete event: %w", err)}
	}
	logger.Info("event deleted", logger.F("id", e.backing.ID))
	return Effect{Close: true}
}

// toggleAllDay resets the time range on every flip rather than restoring what
// was typed before, so the form never carries ambiguous partial state.
func (e *Editor) toggleAllDay() {
	e.allDay = !e.allDay
	if e.allDay {
		e.timeEnabled = false
		e.startTime = TimeField{}
		e.endTime = TimeField{Hour: 23, Minute: 59, Second: 59}
	} else {
		e.startTime = TimeField{}
		e.endTime = TimeField{Hour: 1}
		e.timeEnabled = true
	}
}

// refreshCategories replaces the cached snapshot and re-resolves the current
// selection by structural equality. A selection that no longer exists falls
// back to the first entry; the store guarantees there is one.
func (e *Editor) refreshCategories() Effect {
	e.mu.Lock()
	defer e.mu.Unlock()

	var previous *model.Category
	if e.selected < len(e.categories) {
		c := e.categories[e.selected]
		previous = &c
	}

	categories, err := e.store.ListCategories(context.Background())
	if err != nil {
		logger.Error("failed to refresh categories", logger.F("error", err))
		return Effect{Err: fmt.Errorf("refresh categories: %w", err)}
	}

	e.categories = categories
	e.selected = 0
	if previous != nil {
		for i, c := range categories {
			if c.Equals(*previous) {
				e.selected = i
				break
			}
		}
	}
	return Effect{}
}

// combine merges a date-only and a time-only widget value into one epoch
// timestamp in the editor's location. decompose is its exact inverse, so
// loading a stored event and saving it unchanged reproduces the timestamps.
func (e *Editor) combine(d DateField, t TimeField) int64 {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, e.loc).Unix()
}

func (e *Editor) decompose(epoch int64) (DateField, TimeField) {
	t := time.Unix(epoch, 0).In(e.loc)
	return DateField{Year: t.Year(), Month: t.Month(), Day: t.Day()},
		TimeField{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Editing reports whether a backing event is set.
func (e *Editor) Editing() bool {
	return e.backing != nil
}

// TimeEnabled reports whether the time inputs accept changes.
func (e *Editor) TimeEnabled() bool {
	return e.timeEnabled
}

// AllDay reports the all-day checkbox state.
func (e *Editor) AllDay() bool {
	return e.allDay
}

// Name returns the name field.
func (e *Editor) Name() string { return e.name }

// Place returns the place field.
func (e *Editor) Place() string { return e.place }

// Description returns the description field.
func (e *Editor) Description() string { return e.description }

// SetName sets the name field.
func (e *Editor) SetName(s string) { e.name = s }

// SetPlace sets the place field.
func (e *Editor) SetPlace(s string) { e.place = s }

// SetDescription sets the description field.
func (e *Editor) SetDescription(s string) { e.description = s }

// StartDate returns the start date field.
func (e *Editor) StartDate() DateField { return e.startDate }

// EndDate returns the end date field.
func (e *Editor) EndDate() DateField { return e.endDate }

// StartTime returns the start time field.
func (e *Editor) StartTime() TimeField { return e.startTime }

// EndTime returns the end time field.
func (e *Editor) EndTime() TimeField { return e.endTime }

// Categories returns a copy of the cached category snapshot in display order.
func (e *Editor) Categories() []model.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Category, len(e.categories))
	copy(out, e.categories)
	return out
}

// SelectedCategory returns the currently marked category.
func (e *Editor) SelectedCategory() (model.Category, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected >= len(e.categories) {
		return model.Category{}, false
	}
	return e.categories[e.selected], true
}

// SelectCategory marks the entry structurally equal to c. Unknown categories
// leave the selection unchanged.
func (e *Editor) SelectCategory(c model.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, candidate := range e.categories {
		if candidate.Equals(c) {
			e.selected = i
			return
		}
	}
}
