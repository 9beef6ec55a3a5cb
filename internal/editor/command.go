package editor

// Endpoint selects which end of the event range a command targets.
type Endpoint int

const (
	StartEndpoint Endpoint = 0
	EndEndpoint   Endpoint = 1
)

// Command is the closed set of operations the editing surface can request.
// Apply dispatches over the concrete types exhaustively, so a new command
// that is not handled fails compilation of its handler, not silently at
// runtime.
type Command interface {
	isCommand()
}

// Save validates the current fields and persists the event.
type Save struct{}

// Cancel discards all in-progress edits and closes the editor.
type Cancel struct{}

// Delete soft-deletes the backing event after confirmation. Only available
// while editing an existing event.
type Delete struct{}

// ToggleAllDay flips the all-day checkbox.
type ToggleAllDay struct{}

// RefreshCategoryList re-fetches categories and re-resolves the selection.
// Sent by the category manager whenever categories change elsewhere.
type RefreshCategoryList struct{}

// StartDateChanged updates the start date field.
type StartDateChanged struct {
	Day, Month, Year int
}

// EndDateChanged updates the end date field.
type EndDateChanged struct {
	Day, Month, Year int
}

// StartTimeChanged updates the start time field.
type StartTimeChanged struct {
	Hour, Minute, Second int
}

// EndTimeChanged updates the end time field.
type EndTimeChanged struct {
	Hour, Minute, Second int
}

// ShowPopUpCalendar asks the UI to open a date picker aimed at one endpoint.
type ShowPopUpCalendar struct {
	Which Endpoint
}

func (Save) isCommand()                {}
func (Cancel) isCommand()              {}
func (Delete) isCommand()              {}
func (ToggleAllDay) isCommand()        {}
func (RefreshCategoryList) isCommand() {}
func (StartDateChanged) isCommand()    {}
func (EndDateChanged) isCommand()      {}
func (StartTimeChanged) isCommand()    {}
func (EndTimeChanged) isCommand()      {}
func (ShowPopUpCalendar) isCommand()   {}

// Effect tells the UI layer what to do after a command ran. A failed save or
// delete sets Err and leaves the editor open with its state intact for retry.
type Effect struct {
	Close    bool
	PickDate *Endpoint
	Err      error
}
