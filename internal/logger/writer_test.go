package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileWriterConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "swap.log")

	writer, err := OpenFileWriter(path, 20*time.Millisecond)
	require.NoError(t, err)

	var wg sync.WaitGroup
	numGoroutines := 10
	linesPerGoroutine := 100

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < linesPerGoroutine; j++ {
				_, err := fmt.Fprintf(writer, "goroutine %d line %d\n", id, j)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, writer.Close())
	require.NoError(t, writer.Close(), "second close is a no-op")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, numGoroutines*linesPerGoroutine)

	writes, flushes := writer.Stats()
	assert.Equal(t, uint64(numGoroutines*linesPerGoroutine), writes)
	assert.GreaterOrEqual(t, flushes, uint64(1))
}

func TestTUILoggerWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swap.log")
	writer, err := OpenFileWriter(path, time.Hour)
	require.NoError(t, err)

	log, err := CreateTUILogger(false, writer)
	require.NoError(t, err)

	log.Named("price_client").Info("Price resolved", zap.String("id", "ethereum"))
	log.Debug("hidden below info")
	require.NoError(t, log.Sync())
	require.NoError(t, writer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Price resolved", entry["msg"])
	assert.Equal(t, "price_client", entry["logger"])
	assert.Equal(t, "ethereum", entry["id"])
}

func TestCreateTUILoggerRequiresWriter(t *testing.T) {
	_, err := CreateTUILogger(true, nil)
	assert.Error(t, err)
}

func TestPrettyLoggerLevels(t *testing.T) {
	log, err := CreatePrettyLogger(false)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.DebugLevel))

	log, err = CreatePrettyLogger(true)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))
}
