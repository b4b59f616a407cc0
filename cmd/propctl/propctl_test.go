package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/propkit/internal/demo"
)

func TestListCommand(t *testing.T) {
	resetFlags()
	out, err := captureOutput(t, runList)
	require.NoError(t, err)
	assertContains(t, out, []string{"KEY", "actor-0", "*demo.Actor", "Hero", "camera-0", "Main Camera"})

	jsonOut = true
	out, err = captureOutput(t, runList)
	require.NoError(t, err)
	assertJSON(t, out)
}

func TestInspectCommand(t *testing.T) {
	tests := []struct {
		name           string
		keys           []string
		json           bool
		wantErr        error
		wantContain    []string
		wantNotContain []string
	}{
		{
			name:        "single actor",
			keys:        []string{"actor-0"},
			wantContain: []string{"Name: Hero", "Team: Blue", "Tint: #3366ff", "[Transform]", "    X: 0", "[Target]"},
		},
		{
			name:           "two actors share members",
			keys:           []string{"actor-1", "actor-2"},
			wantContain:    []string{"2 objects selected", "Name: (mixed)", "Team: Red"},
			wantNotContain: []string{"Script"},
		},
		{
			name:           "heterogeneous selection",
			keys:           []string{"actor-0", "light-0", "camera-0"},
			wantContain:    []string{"3 objects selected", "Active: true", "[Transform]"},
			wantNotContain: []string{"Health", "Intensity", "Field of View"},
		},
		{
			name:        "camera label from tag",
			keys:        []string{"camera-0"},
			wantContain: []string{"Field of View: 60", "[Follow]", "  Name: Hero"},
		},
		{
			name:        "json",
			keys:        []string{"light-1"},
			json:        true,
			wantContain: []string{`"path": "Color"`, `"text": "#ff9933"`, `"kind": "group"`},
		},
		{
			name:    "unknown object",
			keys:    []string{"actor-7"},
			wantErr: demo.ErrUnknownObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json

			out, err := captureOutput(t, func() error { return runInspect(tt.keys) })
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.json {
				assertJSON(t, out)
			}
			assertContains(t, out, tt.wantContain)
			assertNotContains(t, out, tt.wantNotContain)
		})
	}
}

func TestEditCommand(t *testing.T) {
	tests := []struct {
		name        string
		keys        []string
		sets        []string
		undo        int
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "scalar",
			keys:        []string{"actor-0"},
			sets:        []string{"Health=42"},
			wantContain: []string{"Health: 42"},
		},
		{
			name:        "several members on several objects",
			keys:        []string{"actor-1", "actor-2"},
			sets:        []string{"Team=blue", "Transform.Scale.X=3", "Health=10"},
			wantContain: []string{"Team: Blue", "X: 3", "Health: 10"},
		},
		{
			name:        "undone",
			keys:        []string{"actor-0"},
			sets:        []string{"Name=Zero"},
			undo:        1,
			wantContain: []string{"Name: Hero"},
		},
		{name: "read-only member", keys: []string{"actor-0"}, sets: []string{"ID=9"}, wantErr: true},
		{name: "unparsable value", keys: []string{"actor-0"}, sets: []string{"Health=full"}, wantErr: true},
		{name: "missing equals", keys: []string{"actor-0"}, sets: []string{"Health"}, wantErr: true},
		{name: "no edits", keys: []string{"actor-0"}, wantErr: true},
		{name: "undo past history", keys: []string{"actor-0"}, sets: []string{"Health=1"}, undo: 2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			editUndo = tt.undo

			s, err := runEdits(tt.keys, tt.sets)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer s.Close()

			out, err := captureOutput(t, func() error { return printRows(s.Rows()) })
			require.NoError(t, err)
			assertContains(t, out, tt.wantContain)
		})
	}
}

func TestEditCommand_WritesScene(t *testing.T) {
	resetFlags()
	s, err := runEdits([]string{"light-0"}, []string{"Color=#000000", "Shadows=off"})
	require.NoError(t, err)
	defer s.Close()

	sun := s.Scene.Objects[3].Target.(*demo.Light)
	assert.Equal(t, demo.Color{}, sun.Color)
	assert.Equal(t, demo.ShadowsOff, sun.Shadows)
}

func TestUndoLogCommand(t *testing.T) {
	resetFlags()
	jsonOut = true
	editSeparate = true
	editUndo = 1

	s, err := runEdits([]string{"actor-0"}, []string{"Health=1", "Name=Zero"})
	require.NoError(t, err)
	defer s.Close()

	out, err := captureOutput(t, func() error { return printHistory(s.History) })
	require.NoError(t, err)

	var entries []jsonEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 2)

	assert.True(t, entries[0].Applied)
	assert.Equal(t, []jsonChange{{Object: "Hero", Path: "Health", Before: "100", After: "1"}}, entries[0].Changes)
	assert.False(t, entries[1].Applied)
	require.Len(t, entries[1].Changes, 1)
	assert.Equal(t, "Name", entries[1].Changes[0].Path)
}

func TestUndoLogCommand_OneEntryPerFrame(t *testing.T) {
	resetFlags()
	s, err := runEdits([]string{"actor-0", "actor-1"}, []string{"Health=1", "Active=false"})
	require.NoError(t, err)
	defer s.Close()

	out, err := captureOutput(t, func() error { return printHistory(s.History) })
	require.NoError(t, err)
	assertContains(t, out, []string{"#1 Edit", "Hero", "Grunt", "Active", "true -> false"})
	assertNotContains(t, out, []string{"#2", "(undone)"})
}

func TestMembersCommand(t *testing.T) {
	resetFlags()
	out, err := captureOutput(t, func() error { return runMembers([]string{"actor-0", "light-0"}) })
	require.NoError(t, err)
	assertContains(t, out, []string{"NAME", "ID", "ro", "Transform", "demo.Transform"})
	assertNotContains(t, out, []string{"Health", "Intensity"})

	jsonOut = true
	out, err = captureOutput(t, func() error { return runMembers([]string{"camera-0"}) })
	require.NoError(t, err)
	assertJSON(t, out)
	assertContains(t, out, []string{`"label": "Field of View"`, `"type": "*demo.Actor"`})
}

func TestVersionCommand(t *testing.T) {
	resetFlags()
	cmd := newVersionCmd()

	out, err := captureOutput(t, func() error { return cmd.RunE(cmd, nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "propctl dev (none, built unknown, go")

	jsonOut = true
	out, err = captureOutput(t, func() error { return cmd.RunE(cmd, nil) })
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "dev", got["version"])
	assert.NotEmpty(t, got["go"])
}
