package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl.log")

	require.NoError(t, InitLogger(path))
	defer Close()

	Infof("hello %s", "world")
	Warnf("watch out")
	Errorf("it broke: %v", "no route to host")

	Close()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "INFO: ")
	assert.Contains(t, string(content), "hello world")
	assert.Contains(t, string(content), "WARN: ")
	assert.Contains(t, string(content), "watch out")
	assert.Contains(t, string(content), "ERROR: ")
	assert.Contains(t, string(content), "it broke: no route to host")
}

func TestInitLoggerRejectsBadPath(t *testing.T) {
	err := InitLogger(filepath.Join(t.TempDir(), "missing", "etl.log"))
	assert.Error(t, err)
}

func TestCloseWithoutFileIsSafe(t *testing.T) {
	Init()
	Close()
	Close()

	assert.NotNil(t, InfoLog)
	Infof("console logging survives close")
}

func TestLoggingContinuesOnConsoleAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl.log")
	require.NoError(t, InitLogger(path))

	Infof("to file and console")
	Close()
	Infof("console only")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "to file and console")
	assert.NotContains(t, string(content), "console only")
}
