package suggest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorrectFindsOneCharacterDeletion(t *testing.T) {
	d := New([]string{"length", "each", "map"})
	got, ok := d.Correct("lenth")
	require.True(t, ok)
	require.Equal(t, "length", got)
}

func TestCorrectFindsOneCharacterSubstitution(t *testing.T) {
	d := New([]string{"length", "each", "map"})
	got, ok := d.Correct("lemgth")
	require.True(t, ok)
	require.Equal(t, "length", got)
}

func TestCorrectRejectsTooDistantInput(t *testing.T) {
	d := New([]string{"length", "each", "map"})
	_, ok := d.Correct("zzzzzzzzzz")
	require.False(t, ok)
}

func TestCorrectOnExactMatchReturnsItself(t *testing.T) {
	d := New([]string{"length", "each", "map"})
	got, ok := d.Correct("each")
	require.True(t, ok)
	require.Equal(t, "each", got)
}
