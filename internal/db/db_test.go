package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/existflow/ironcal/internal/model"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "calendar.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func testEvent(name string, start, end int64, category model.Category) model.Event {
	return model.Event{
		Name:      name,
		Place:     "somewhere",
		Start:     start,
		End:       end,
		Category:  category,
		Status:    true,
		UpdatedAt: time.Now().Unix(),
	}
}

func TestOpenSeedsDefaultCategory(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	categories, err := database.ListCategories(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, categories)
	assert.Equal(t, model.DefaultCategory().ID, categories[0].ID)
	assert.True(t, categories[0].Equals(model.DefaultCategory()))
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "calendar.db")

	first, err := Open(path)
	require.NoError(t, err)
	ctx := context.Background()

	id, err := first.AddEvent(ctx, testEvent("Standup", 100, 200, model.DefaultCategory()))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// A second open runs the migrations again without clobbering data.
	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Standup", got.Name)

	categories, err := second.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1, "default category is seeded exactly once")
}

func TestListCategoriesOrder(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, database.AddCategory(ctx, model.Category{
		ID: uuid.NewString(), Name: "birthday", Color: model.Color{R: 0xFF},
	}))
	require.NoError(t, database.AddCategory(ctx, model.Category{
		ID: uuid.NewString(), Name: "Appointment", Color: model.Color{G: 0xFF},
	}))

	categories, err := database.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "default", categories[0].ID)
	assert.Equal(t, "Appointment", categories[1].Name)
	assert.Equal(t, "birthday", categories[2].Name, "sort ignores case")
}

func TestAddCategoryDuplicateName(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	c := model.Category{ID: uuid.NewString(), Name: "Work", Color: model.Color{B: 0xFF}}
	require.NoError(t, database.AddCategory(ctx, c))

	dup := model.Category{ID: uuid.NewString(), Name: "Work", Color: model.Color{R: 0xFF}}
	assert.Error(t, database.AddCategory(ctx, dup))
}

func TestUpdateCategory(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	c := model.Category{ID: uuid.NewString(), Name: "Work", Color: model.Color{B: 0xFF}}
	require.NoError(t, database.AddCategory(ctx, c))

	c.Name = "Office"
	c.Color = model.Color{R: 0x12, G: 0x34, B: 0x56}
	require.NoError(t, database.UpdateCategory(ctx, c))

	categories, err := database.ListCategories(ctx)
	require.NoError(t, err)
	var found bool
	for _, got := range categories {
		if got.ID == c.ID {
			found = true
			assert.Equal(t, "Office", got.Name)
			assert.Equal(t, "#123456", got.Color.Hex())
		}
	}
	assert.True(t, found)

	missing := model.Category{ID: uuid.NewString(), Name: "Ghost"}
	assert.Error(t, database.UpdateCategory(ctx, missing))
}

func TestRemoveCategoryRefusesDefault(t *testing.T) {
	database := openTestDB(t)
	err := database.RemoveCategory(context.Background(), model.DefaultCategory().ID)
	require.Error(t, err)
}

func TestRemoveCategoryReassignsEvents(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	work := model.Category{ID: uuid.NewString(), Name: "Work", Color: model.Color{B: 0xFF}}
	require.NoError(t, database.AddCategory(ctx, work))

	id, err := database.AddEvent(ctx, testEvent("Standup", 100, 200, work))
	require.NoError(t, err)

	require.NoError(t, database.RemoveCategory(ctx, work.ID))

	got, err := database.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultCategory().ID, got.Category.ID,
		"orphaned events move to the default category")

	assert.Error(t, database.RemoveCategory(ctx, work.ID), "already gone")
}

func TestAddAndGetEvent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	event := testEvent("Standup", 100, 200, model.DefaultCategory())
	event.Description = "daily sync"
	event.Notified = true

	id, err := database.AddEvent(ctx, event)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0), "the store assigns the id")

	got, err := database.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	event.ID = id
	assert.True(t, got.SameContent(event))
	assert.Equal(t, event.UpdatedAt, got.UpdatedAt)
}

func TestGetEventNotFound(t *testing.T) {
	database := openTestDB(t)
	_, err := database.GetEvent(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUpdateEvent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	old := testEvent("Standup", 100, 200, model.DefaultCategory())
	id, err := database.AddEvent(ctx, old)
	require.NoError(t, err)
	old.ID = id

	updated := old
	updated.Name = "Standup (moved)"
	updated.Start = 150
	updated.End = 250
	updated.UpdatedAt = old.UpdatedAt + 60
	require.NoError(t, database.UpdateEvent(ctx, old, updated))

	got, err := database.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Standup (moved)", got.Name)
	assert.Equal(t, int64(150), got.Start)
	assert.Equal(t, updated.UpdatedAt, got.UpdatedAt)
}

func TestUpdateEventMissingRow(t *testing.T) {
	database := openTestDB(t)

	ghost := testEvent("Ghost", 100, 200, model.DefaultCategory())
	ghost.ID = 4242
	err := database.UpdateEvent(context.Background(), ghost, ghost)
	assert.True(t, errors.Is(err, ErrEventNotFound))
}

func TestSoftDeleteKeepsRowAndCategory(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	work := model.Category{ID: uuid.NewString(), Name: "Work", Color: model.Color{B: 0xFF}}
	require.NoError(t, database.AddCategory(ctx, work))

	event := testEvent("Standup", 100, 200, work)
	id, err := database.AddEvent(ctx, event)
	require.NoError(t, err)
	event.ID = id

	deleted := event.SoftDeleted(event.UpdatedAt + 60)
	require.NoError(t, database.UpdateEvent(ctx, event, deleted))

	// Invisible in listings.
	active, err := database.ListEvents(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	inRange, err := database.EventsInRange(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Empty(t, inRange)

	// Still present by id, category intact.
	got, err := database.GetEvent(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.Status)
	assert.Equal(t, work.ID, got.Category.ID)

	// The category itself is untouched by the event's deletion.
	categories, err := database.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestListEventsOrder(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	later := testEvent("Later", 300, 400, model.DefaultCategory())
	earlier := testEvent("Earlier", 100, 200, model.DefaultCategory())
	_, err := database.AddEvent(ctx, later)
	require.NoError(t, err)
	_, err = database.AddEvent(ctx, earlier)
	require.NoError(t, err)

	events, err := database.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Earlier", events[0].Name)
	assert.Equal(t, "Later", events[1].Name)
}

func TestEventsInRangeOverlap(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	add := func(name string, start, end int64) {
		_, err := database.AddEvent(ctx, testEvent(name, start, end, model.DefaultCategory()))
		require.NoError(t, err)
	}
	add("before", 0, 50)       // ends before the range
	add("touches-lo", 0, 100)  // ends exactly where the range starts
	add("straddles-lo", 50, 150)
	add("inside", 120, 180)
	add("straddles-hi", 180, 300)
	add("spans-all", 0, 1000)
	add("after", 200, 300) // starts at the range's exclusive end

	events, err := database.EventsInRange(ctx, 100, 200)
	require.NoError(t, err)

	var names []string
	for _, e := range events {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"spans-all", "straddles-lo", "inside", "straddles-hi"}, names)
}
