package tbd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyReplicatesLiveKeys(t *testing.T) {
	src := newTestArena(t, 4096)
	require.Equal(t, NoError, src.Create("aaaa", []byte("1")))
	require.Equal(t, NoError, src.Create("bbbb", []byte("2")))
	require.Equal(t, NoError, src.Create("cccc", []byte("3")))
	require.Equal(t, NoError, src.Delete("bbbb"))

	dest := newTestArena(t, 4096)
	require.Equal(t, NoError, Copy(dest, src))

	require.Equal(t, 2, dest.Count())
	out := make([]byte, 1)
	require.Equal(t, NoError, dest.Read("aaaa", out))
	require.Equal(t, NoError, dest.Read("cccc", out))
	require.Equal(t, KeyNotFound, dest.Read("bbbb", out))
}

func TestCopyStopsOnFirstFailure(t *testing.T) {
	src := newTestArena(t, 4096)
	require.Equal(t, NoError, src.Create("aaaa", []byte("1")))
	require.Equal(t, NoError, src.Create("bbbb", []byte("2")))

	dest := newTestArena(t, 64) // too small to hold both
	code := Copy(dest, src)

	// Either it fits everything (small arena, unlikely) or Copy reports
	// Error and leaves a partial (non-transactional) copy behind.
	if code != NoError {
		require.Equal(t, Error, code)
	}
}
