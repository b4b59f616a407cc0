package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/inspect/undo"
	"github.com/joshuapare/propkit/internal/demo"
)

func init() {
	cmd := newUndoLogCmd()
	addEditFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newUndoLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo-log <key>... --set PATH=VALUE...",
		Short: "Show the undo history produced by a set of edits",
		Long: `The undo-log command applies edits like the edit command and prints the
resulting undo history instead of the inspector: one entry per edited
frame, oldest first, with every member each entry changed. Undone entries
are marked.

Example:
  propctl undo-log actor-0 --set Health=1 --set Name=Zero
  propctl undo-log actor-0 --set Health=1 --set Name=Zero --separate
  propctl undo-log actor-0 --set Health=1 --separate --set Health=2 --undo 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := runEdits(args, editSets)
			if err != nil {
				return err
			}
			defer s.Close()
			return printHistory(s.History)
		},
	}
}

type jsonEntry struct {
	Label   string       `json:"label"`
	Applied bool         `json:"applied"`
	Changes []jsonChange `json:"changes"`
}

type jsonChange struct {
	Object string `json:"object"`
	Path   string `json:"path"`
	Before string `json:"before"`
	After  string `json:"after"`
}

func printHistory(h *undo.History) error {
	entries := h.Entries()
	out := make([]jsonEntry, len(entries))
	for i, e := range entries {
		je := jsonEntry{Label: e.Label, Applied: i < h.Applied()}
		for _, c := range demo.Changes(e) {
			je.Changes = append(je.Changes, jsonChange{
				Object: c.Object, Path: c.Path, Before: demo.Format(c.Before), After: demo.Format(c.After),
			})
		}
		out[i] = je
	}

	if jsonOut {
		return printJSON(out)
	}
	if quiet {
		return nil
	}
	if len(out) == 0 {
		printInfo("No undo entries\n")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, e := range out {
		state := ""
		if !e.Applied {
			state = " (undone)"
		}
		fmt.Fprintf(w, "#%d %s%s\n", i+1, e.Label, state)
		for _, c := range e.Changes {
			fmt.Fprintf(w, "  %s\t%s\t%s -> %s\n", c.Object, c.Path, c.Before, c.After)
		}
	}
	return w.Flush()
}
