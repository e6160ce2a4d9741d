package shell

import (
	"context"
	"strings"
)

var validColors = []string{"white", "blue", "green", "red", "yellow", "cyan", "magenta", "black"}

func (sh *Shell) cmdClear(_ context.Context, _ string, _ []string) Result {
	return Result{Success: true, Action: ActionClear}
}

func (sh *Shell) cmdReload(_ context.Context, _ string, _ []string) Result {
	return Result{Success: true, Action: ActionReload}
}

func (sh *Shell) cmdExit(_ context.Context, _ string, _ []string) Result {
	return Result{Success: true, Output: "Closing...", Action: ActionExit}
}

func (sh *Shell) cmdColor(_ context.Context, _ string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: color <color>\nAvailable: " + strings.Join(validColors, ", "))
	}

	color := strings.ToLower(args[0])
	for _, valid := range validColors {
		if color == valid {
			return Result{
				Success: true,
				Output:  "Color changed to " + color,
				Action:  ActionColor,
				Color:   color,
			}
		}
	}
	return failf("Error: Invalid color '%s'", color)
}

// cmdClone is recognized so users get a defined answer instead of an
// unknown-command error; repository cloning is not something the drive
// backend can do.
func (sh *Shell) cmdClone(_ context.Context, _ string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: clone <URL>")
	}
	return fail("Error: Git clone not supported in this environment")
}
