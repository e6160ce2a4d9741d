package shell

import "fmt"

// Action hints tell the hosting terminal about a non-textual side effect
// to perform. The shell itself never touches the UI.
const (
	// ActionClear asks the terminal to clear its screen.
	ActionClear = "clear"

	// ActionReload asks the terminal to reload itself.
	ActionReload = "reload"

	// ActionExit asks the terminal to close.
	ActionExit = "exit"

	// ActionColor asks the terminal to switch its text color to the
	// value carried in Result.Color.
	ActionColor = "color"

	// ActionOpen asks the terminal to open the URL in Result.Output.
	ActionOpen = "open"
)

// Result is the uniform envelope every command returns.
//
// Exactly one of two shapes is produced: success with output, or failure
// with a human-readable diagnostic in Output. Action and Color are
// advisory and only set by the UI-control commands and open.
type Result struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Action  string `json:"action,omitempty"`
	Color   string `json:"color,omitempty"`
}

func ok(output string) Result {
	return Result{Success: true, Output: output}
}

func okf(format string, args ...any) Result {
	return ok(fmt.Sprintf(format, args...))
}

func fail(output string) Result {
	return Result{Success: false, Output: output}
}

func failf(format string, args ...any) Result {
	return fail(fmt.Sprintf(format, args...))
}
