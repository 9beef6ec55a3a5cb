package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#4ECDC4")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0x4E, G: 0xCD, B: 0xC4}, c)

	// Lowercase digits parse too.
	c, err = ParseColor("#ff8800")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xFF, G: 0x88, B: 0x00}, c)

	for _, bad := range []string{"", "4ECDC4", "#4ECD", "#GGGGGG", "#4ECDC4FF"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := Color{R: 0x12, G: 0xAB, B: 0x00}
	parsed, err := ParseColor(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, parsed)
}

func TestCategoryEqualsIgnoresID(t *testing.T) {
	a := Category{ID: "one", Name: "Work", Color: Color{B: 0xFF}}
	b := Category{ID: "two", Name: "Work", Color: Color{B: 0xFF}}
	assert.True(t, a.Equals(b))

	renamed := b
	renamed.Name = "Office"
	assert.False(t, a.Equals(renamed))

	recolored := b
	recolored.Color = Color{R: 0xFF}
	assert.False(t, a.Equals(recolored))
}

func TestNewEventNotified(t *testing.T) {
	now := int64(1000)
	future := NewEvent("Future", "", "", false, 1500, 1600, DefaultCategory(), now)
	assert.True(t, future.Notified)

	past := NewEvent("Past", "", "", false, 500, 600, DefaultCategory(), now)
	assert.False(t, past.Notified)

	exact := NewEvent("Now", "", "", false, 1000, 1100, DefaultCategory(), now)
	assert.False(t, exact.Notified, "start equal to now is not in the future")

	assert.True(t, future.Status)
	assert.Equal(t, now, future.UpdatedAt)
	assert.Zero(t, future.ID)
}

func TestSoftDeleted(t *testing.T) {
	e := NewEvent("Standup", "Room 2", "", false, 1500, 1600, DefaultCategory(), 1000)
	e.ID = 7

	deleted := e.SoftDeleted(2000)
	assert.False(t, deleted.Status)
	assert.Equal(t, int64(2000), deleted.UpdatedAt)
	assert.Equal(t, e.ID, deleted.ID)
	assert.Equal(t, e.Name, deleted.Name)

	// The receiver is a value; the original is untouched.
	assert.True(t, e.Status)
}

func TestSameContent(t *testing.T) {
	a := NewEvent("Standup", "Room 2", "daily", false, 1500, 1600, DefaultCategory(), 1000)
	a.ID = 1

	b := a
	b.ID = 99
	b.UpdatedAt = 9999
	assert.True(t, a.SameContent(b), "id and updatedAt do not count")

	b.Place = "Room 3"
	assert.False(t, a.SameContent(b))

	c := a
	c.Category = Category{ID: "other", Name: "Default", Color: DefaultCategory().Color}
	assert.True(t, a.SameContent(c), "category comparison is structural")
}
