package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/demo"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the objects of the sample scene",
		Long: `The list command prints the key, type and name of every object in the
sample scene. Keys select objects in the other commands.

Example:
  propctl list
  propctl list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

type listedObject struct {
	Key  string `json:"key"`
	Type string `json:"type"`
	Name string `json:"name"`
}

func runList() error {
	scene := demo.NewScene()
	objs := make([]listedObject, len(scene.Objects))
	for i, o := range scene.Objects {
		objs[i] = listedObject{Key: o.Key, Type: fmt.Sprintf("%T", o.Target), Name: demo.NameOf(o.Target)}
	}

	if jsonOut {
		return printJSON(objs)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tTYPE\tNAME")
	for _, o := range objs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", o.Key, o.Type, o.Name)
	}
	return w.Flush()
}
