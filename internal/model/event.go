package model

// Event is a single calendar entry. Start, End and UpdatedAt are epoch
// seconds in UTC.
type Event struct {
	ID          int64 // 0 until the store assigns one on insert
	Name        string
	Place       string
	Description string
	AllDay      bool
	Start       int64
	End         int64
	Category    Category
	Notified    bool // start was in the future at creation; never recomputed
	Status      bool // true = active, false = soft-deleted
	UpdatedAt   int64
}

// NewEvent creates an active event. notified is computed once here, from the
// caller's clock, and kept as-is for the life of the record.
func NewEvent(name, place, description string, allDay bool, start, end int64, category Category, now int64) Event {
	return Event{
		Name:        name,
		Place:       place,
		Description: description,
		AllDay:      allDay,
		Start:       start,
		End:         end,
		Category:    category,
		Notified:    start > now,
		Status:      true,
		UpdatedAt:   now,
	}
}

// SoftDeleted returns a copy marked inactive with a fresh UpdatedAt. The
// original record stays in the store; listings just stop including it.
func (e Event) SoftDeleted(now int64) Event {
	deleted := e
	deleted.Status = false
	deleted.UpdatedAt = now
	return deleted
}

// SameContent reports whether two events carry the same user-visible fields,
// ignoring ID and UpdatedAt. Used to detect a no-op edit.
func (e Event) SameContent(other Event) bool {
	return e.Name == other.Name &&
		e.Place == other.Place &&
		e.Description == other.Description &&
		e.AllDay == other.AllDay &&
		e.Start == other.Start &&
		e.End == other.End &&
		e.Category.Equals(other.Category) &&
		e.Notified == other.Notified &&
		e.Status == other.Status
}
