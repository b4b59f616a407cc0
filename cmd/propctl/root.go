package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joshuapare/propkit/internal/demo"
	"github.com/joshuapare/propkit/internal/logger"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "propctl",
	Short: "Inspect and edit the objects of the sample scene",
	Long: `propctl drives the propkit inspector without a UI. It selects objects of
the built-in sample scene, prints the editor rows the inspector builds for
them, types values into fields and shows the undo history the edits produce.

Objects are addressed by key (see "propctl list"); members by their dotted
path, such as Transform.Position.X.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// openSession opens a session over a fresh sample scene and selects keys.
// Engine logs go to stderr in verbose mode.
func openSession(keys []string) (*demo.Session, error) {
	var w io.Writer = io.Discard
	if verbose && !quiet {
		w = os.Stderr
	}
	s, err := demo.Open(demo.NewScene(), demo.Options{
		Logger: logger.New(w, slog.LevelDebug, true),
	})
	if err != nil {
		return nil, err
	}
	if err := s.Select(keys...); err != nil {
		s.Close()
		return nil, err
	}
	printVerbose("Selected: %s\n", strings.Join(keys, ", "))
	return s, nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// styles used by text output; plain when --no-color is set
type styles struct {
	header, mixed, readOnly, errText lipgloss.Style
}

func outputStyles() styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{header: plain, mixed: plain, readOnly: plain, errText: plain}
	}
	return styles{
		header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		mixed:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		readOnly: lipgloss.NewStyle().Faint(true),
		errText:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}
