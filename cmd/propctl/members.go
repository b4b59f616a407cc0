package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/inspect/accessor"
)

func init() {
	rootCmd.AddCommand(newMembersCmd())
}

func newMembersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "members <key>...",
		Short: "List the members shared by the selected objects",
		Long: `The members command lists the top-level members every given object has,
matched by name and kind, with the label, value kind and Go type the
inspector uses to pick an editor.

Example:
  propctl members camera-0
  propctl members actor-0 light-0`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMembers(args)
		},
	}
}

type jsonMember struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"`
	Type     string `json:"type"`
	ReadOnly bool   `json:"readonly,omitempty"`
}

func runMembers(keys []string) error {
	s, err := openSession(keys)
	if err != nil {
		return err
	}
	defer s.Close()

	members := accessor.CommonMembers(s.Presenter.Selection())
	out := make([]jsonMember, len(members))
	for i, m := range members {
		out[i] = jsonMember{Name: m.Name, Label: m.Label, Kind: m.Kind.String(), Type: m.Type, ReadOnly: m.ReadOnly}
	}

	if jsonOut {
		return printJSON(out)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tLABEL\tKIND\tTYPE\tACCESS")
	for _, m := range out {
		access := "rw"
		if m.ReadOnly {
			access = "ro"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Name, m.Label, m.Kind, m.Type, access)
	}
	return w.Flush()
}
