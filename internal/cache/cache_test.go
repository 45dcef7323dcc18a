package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFreshSchema(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get("nope")
	require.False(t, ok)
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("file.rb:abc123", []byte("serialized-symbols")))

	payload, ok := s.Get("file.rb:abc123")
	require.True(t, ok)
	require.Equal(t, []byte("serialized-symbols"), payload)
}

func TestPutOverwritesExistingKey(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("k", []byte("v1")))
	require.NoError(t, s.Put("k", []byte("v2")))

	payload, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, []byte("v2"), payload)
}

func TestClearOnVersionMismatchDropsStaleEntries(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("stale", []byte("old-format")))
	require.NoError(t, s.clear(SchemaVersion+1))

	_, ok := s.Get("stale")
	require.False(t, ok)
}
