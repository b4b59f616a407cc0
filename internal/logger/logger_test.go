package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledDiscards(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf}))
	require.NoError(t, Init(Options{Enabled: false}))

	Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestInit_WriterJSON(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	require.NoError(t, Init(Options{Enabled: true, Writer: &buf}))

	Debug("below level")
	Warn("refresh aborted", "path", "Transform.Position.X")

	out := buf.String()
	assert.NotContains(t, out, "below level")
	assert.Contains(t, out, `"msg":"refresh aborted"`)
	assert.Contains(t, out, `"path":"Transform.Position.X"`)
}

func TestInit_FileInLogDir(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	dir := t.TempDir()
	require.NoError(t, Init(Options{Enabled: true, LogDir: dir, Level: slog.LevelDebug}))
	Debug("hello")

	name := filepath.Join(dir, logPrefix+time.Now().Format(dateLayout)+logSuffix)
	data, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestPruneLogs(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	old := logPrefix + "2026-01-01" + logSuffix
	recent := logPrefix + "2026-03-30" + logSuffix
	other := "notes-2020-01-01.log"
	for _, name := range []string{old, recent, other} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	pruneLogs(dir, now.AddDate(0, 0, -retentionDays))

	assert.NoFileExists(t, filepath.Join(dir, old))
	assert.FileExists(t, filepath.Join(dir, recent))
	assert.FileExists(t, filepath.Join(dir, other))
}

func TestComponent(t *testing.T) {
	t.Cleanup(func() { L = discard() })

	var buf bytes.Buffer
	L = New(&buf, slog.LevelInfo, true)
	Component("presenter").Info("selected")

	assert.Contains(t, buf.String(), "component=presenter")
}
