package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "long st...", truncate("long string here", 10))
}

func TestTruncateMultibyte(t *testing.T) {
	// Cutting must land on rune boundaries, never mid-character.
	got := truncate("день рождения бабушки", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "день ро...", got)

	got = truncate("会議のスケジュール調整", 8)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "会議のスケ...", got)
}
