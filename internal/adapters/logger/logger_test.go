package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lessen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

// newTestLogger creates a logger writing to a buffer without ANSI sequences.
func newTestLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := logger.New().(*logger.Logger)
	lg.SetOutput(buf)
	return lg, buf
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name       string
		log        func(*logger.Logger)
		goldenName string
	}{
		{
			name:       "info",
			log:        func(l *logger.Logger) { l.Info("compiled /css/main.less") },
			goldenName: "info_basic",
		},
		{
			name:       "warn",
			log:        func(l *logger.Logger) { l.Warn("cache not initialized, compiling without cache") },
			goldenName: "warn_basic",
		},
		{
			name:       "debug filtered at info",
			log:        func(l *logger.Logger) { l.Debug("theme template unchanged") },
			goldenName: "debug_filtered",
		},
		{
			name: "debug enabled",
			log: func(l *logger.Logger) {
				l.SetLevel(slog.LevelDebug)
				l.Debug("theme template unchanged")
			},
			goldenName: "debug_enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			tt.log(lg)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		goldenName string
	}{
		{
			name:       "standard error",
			err:        os.ErrPermission,
			goldenName: "error_simple",
		},
		{
			name:       "zerr chain",
			err:        zerr.Wrap(errors.New("no such file or directory"), "failed to read stylesheet"),
			goldenName: "error_chain",
		},
		{
			name:       "zerr metadata",
			err:        zerr.With(zerr.New("could not find import"), "import", "/css/missing.less"),
			goldenName: "error_metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lg, buf := newTestLogger(t)
			lg.Error(tt.err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestLogger_Error_Nil(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.Error(nil)
	assert.Empty(t, buf.String())
}

func TestLogger_SetJSON(t *testing.T) {
	lg, buf := newTestLogger(t)
	lg.SetJSON(true)
	lg.Error(zerr.Wrap(errors.New("exit status 1"), "stylesheet compilation failed"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "ERROR", record["level"])
	msg, ok := record["error"].(string)
	require.True(t, ok, "error is logged as a string, got %T", record["error"])
	assert.Contains(t, msg, "stylesheet compilation failed")
	assert.Contains(t, msg, "exit status 1")
	assert.NotContains(t, buf.String(), "✗")
}

func TestLogger_SetOutputNil(t *testing.T) {
	lg := logger.New().(*logger.Logger)
	assert.NotPanics(t, func() {
		lg.SetOutput(nil)
	})
}

func TestLogger_ConcurrentAccess(t *testing.T) {
	lg, _ := newTestLogger(t)

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				lg.SetJSON(i%4 == 0)
				return
			}
			lg.Info("resolving")
			lg.Error(errors.New("boom"))
		}()
	}
	wg.Wait()
}
