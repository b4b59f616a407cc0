package main

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags puts every package-level flag back to its default. Color is
// always off so that assertions see plain text.
func resetFlags() {
	verbose, quiet, jsonOut, noColor = false, false, false, true
	editSets, editSeparate, editUndo = nil, false, 0
}

// captureOutput runs fn with os.Stdout redirected and returns what it wrote.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.Bytes()
	}()

	fnErr := fn()
	require.NoError(t, w.Close())
	return string(<-done), fnErr
}

func assertJSON(t *testing.T, output string) {
	t.Helper()
	assert.True(t, json.Valid([]byte(output)), "invalid JSON output:\n%s", output)
}

func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		assert.Contains(t, output, want)
	}
}

func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		assert.NotContains(t, output, dont)
	}
}
