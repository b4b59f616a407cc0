package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/demo"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <key>...",
		Short: "Print the inspector for one or more objects",
		Long: `The inspect command selects the given objects and prints the rows the
inspector builds for them. With several objects only their common members
are shown; members whose values differ are marked (mixed).

Example:
  propctl inspect actor-0
  propctl inspect actor-1 actor-2
  propctl inspect light-0 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
}

func runInspect(keys []string) error {
	s, err := openSession(keys)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Update(); err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	return printRows(s.Rows())
}

type jsonRow struct {
	Path     string `json:"path,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Text     string `json:"text"`
	Depth    int    `json:"depth"`
	Kind     string `json:"kind"`
	Mixed    bool   `json:"mixed,omitempty"`
	ReadOnly bool   `json:"readonly,omitempty"`
	Error    string `json:"error,omitempty"`
}

func printRows(rows []demo.Row) error {
	if jsonOut {
		out := make([]jsonRow, len(rows))
		for i, r := range rows {
			out[i] = jsonRow{
				Path: r.Path, Caption: r.Caption, Text: r.Text, Depth: r.Depth,
				Kind: rowKindName(r.Kind), Mixed: r.Mixed, ReadOnly: r.ReadOnly, Error: r.Error,
			}
		}
		return printJSON(out)
	}
	if quiet {
		return nil
	}

	st := outputStyles()
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(strings.Repeat("  ", r.Depth))
		switch r.Kind {
		case demo.RowHeader:
			b.WriteString(st.header.Render("[" + r.Text + "]"))
		case demo.RowLabel:
			b.WriteString(r.Text)
		case demo.RowField:
			text := r.Text
			switch {
			case r.Mixed:
				text = st.mixed.Render(text)
			case r.ReadOnly:
				text = st.readOnly.Render(text)
			}
			fmt.Fprintf(&b, "%s: %s", r.Caption, text)
			if r.Error != "" {
				b.WriteString("  " + st.errText.Render(r.Error))
			}
		}
		b.WriteByte('\n')
	}
	_, err := os.Stdout.WriteString(b.String())
	return err
}

func rowKindName(k demo.RowKind) string {
	switch k {
	case demo.RowHeader:
		return "group"
	case demo.RowField:
		return "field"
	}
	return "label"
}
