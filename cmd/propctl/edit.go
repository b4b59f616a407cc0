package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/demo"
)

var (
	editSets     []string
	editSeparate bool
	editUndo     int
)

func init() {
	cmd := newEditCmd()
	addEditFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// addEditFlags registers the flags shared by edit and undo-log.
func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&editSets, "set", nil, "Member edit as PATH=VALUE (repeatable)")
	cmd.Flags().BoolVar(&editSeparate, "separate", false, "Apply each edit in its own frame")
	cmd.Flags().IntVar(&editUndo, "undo", 0, "Undo this many edits afterwards")
}

func newEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <key>... --set PATH=VALUE...",
		Short: "Type values into the inspector of one or more objects",
		Long: `The edit command selects the given objects, types each --set value into
the field of its member and runs inspector frames to write them. All edits
land in one frame, and so in one undo entry, unless --separate is given.
The resulting inspector is printed.

Example:
  propctl edit actor-0 --set Health=42
  propctl edit actor-1 actor-2 --set Team=blue --set Transform.Scale.X=3
  propctl edit light-0 --set Color=#ff0000 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := runEdits(args, editSets)
			if err != nil {
				return err
			}
			defer s.Close()
			return printRows(s.Rows())
		},
	}
}

type assignment struct {
	path, text string
}

func parseSets(sets []string) ([]assignment, error) {
	out := make([]assignment, 0, len(sets))
	for _, s := range sets {
		path, text, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected PATH=VALUE", s)
		}
		out = append(out, assignment{path: strings.TrimSpace(path), text: text})
	}
	return out, nil
}

// runEdits opens a session over keys, applies sets and undoes editUndo
// entries. The caller closes the returned session.
func runEdits(keys, sets []string) (*demo.Session, error) {
	edits, err := parseSets(sets)
	if err != nil {
		return nil, err
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("nothing to edit: pass at least one --set PATH=VALUE")
	}

	s, err := openSession(keys)
	if err != nil {
		return nil, err
	}

	apply := func() error {
		for _, e := range edits {
			printVerbose("Input %s = %q\n", e.path, e.text)
			if err := s.Input(e.path, e.text); err != nil {
				return err
			}
			if editSeparate {
				if err := s.Update(); err != nil {
					return fmt.Errorf("write %s: %w", e.path, err)
				}
			}
		}
		return s.Update()
	}
	if err := apply(); err != nil {
		s.Close()
		return nil, err
	}

	for i := 0; i < editUndo; i++ {
		e, err := s.Undo()
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("undo %d: %w", i+1, err)
		}
		printVerbose("Undid %q\n", e.Label)
	}
	return s, nil
}
