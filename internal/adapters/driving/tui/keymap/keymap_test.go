package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_FlipBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Flip.Keys()
	assert.Contains(t, keys, " ")
	assert.Contains(t, keys, "enter")
}

func TestDefaultKeyMap_GradeBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Correct.Keys(), "y")
	assert.Contains(t, km.NeedsReview.Keys(), "n")
}

func TestDefaultKeyMap_SessionBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Shuffle.Keys(), "s")
	assert.Contains(t, km.Restart.Keys(), "r")
	assert.Contains(t, km.Prev.Keys(), "p")
}

func TestDefaultKeyMap_BrowseBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Edit.Keys(), "e")
	assert.Contains(t, km.Delete.Keys(), "d")
	assert.Contains(t, km.Save.Keys(), "enter")
	assert.Contains(t, km.NextField.Keys(), "tab")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}

func TestStudyHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.StudyHelp())
}

func TestBrowseHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.BrowseHelp())
}
