package tbd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsError(t *testing.T) {
	require.False(t, IsError(NoError))
	require.True(t, IsError(Error))
	require.True(t, IsError(KeyNotFound))
	require.True(t, IsError(KeyExists))
	require.True(t, IsError(BadSize))
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "ok", NoError.String())
	require.Equal(t, "key not found", KeyNotFound.String())
	require.NotEmpty(t, Code(42).String())
}

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Errorf(format string, args ...interface{}) {
	r.messages = append(r.messages, format)
}

func TestCapacityErrorReachesLogger(t *testing.T) {
	a := newTestArena(t, 64)
	logger := &recordingLogger{}
	a.SetLogger(logger)

	var code Code
	for i := 0; i < 100 && !IsError(code); i++ {
		code = a.Create(string(rune('a'+i)), []byte{byte(i)})
	}

	require.Equal(t, Error, code)
	require.NotEmpty(t, logger.messages)
}
