package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/propkit/internal/demo"
	"github.com/joshuapare/propkit/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	debugMode, args := splitDebugFlag(os.Args[1:])

	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("propexplorer %s (%s, built %s)\n", version, commit, date)
			os.Exit(0)
		default:
			printUsage()
			os.Exit(1)
		}
	}

	logger.Info("starting propexplorer", "debug", debugMode)

	m, err := NewModel(demo.NewScene(), ConfigFromEnv())
	if err != nil {
		logger.Error("model setup failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	if model, ok := finalModel.(Model); ok {
		model.Close()
	}

	logger.Info("propexplorer exited normally")
}

const helpText = `propexplorer - interactive property inspector for the sample scene

USAGE:
  propexplorer [options]

Select one or more objects on the left and edit their members on the right.
Edits are written on the next frame and grouped into one undo entry per frame.

KEYS:
  ↑/k, ↓/j    navigate
  tab         switch between object list and inspector
  space, x    mark object for multi-selection
  enter       inspect objects, edit a field or toggle a group
  ←/h, →/l    step enum and bool fields
  ctrl+z/y    undo / redo
  i           per-object values of a field
  y, c        copy field value or path
  ?           key reference
  q           quit

OPTIONS:
  -d, --debug    log to ~/.propkit/logs/
  -h, --help     show this help message
  -v, --version  show version information

ENVIRONMENT:
  PROPKIT_DETAIL_MODE  modal (default) or pane
  PROPKIT_FPS          inspector frames per second (default 30)

For scripted edits use propctl.
`

// splitDebugFlag removes --debug and -d from args.
func splitDebugFlag(args []string) (bool, []string) {
	debug := false
	rest := args[:0:0]
	for _, a := range args {
		if a == "--debug" || a == "-d" {
			debug = true
			continue
		}
		rest = append(rest, a)
	}
	return debug, rest
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: propexplorer [options]")
	fmt.Fprintln(os.Stderr, "Try 'propexplorer --help' for more information.")
}

func printHelp() {
	fmt.Print(helpText)
}
