package runner

import (
	"strconv"
	"strings"
)

// CommandKind classifies a line of reader input.
type CommandKind int

const (
	CommandUnknown CommandKind = iota
	CommandAdvance
	CommandChoose
	CommandToggle
	CommandQuit
)

// Command is a parsed line of reader input.
type Command struct {
	Kind CommandKind
	// Choice is the zero-based index for CommandChoose.
	Choice int
	Raw    string
}

// ParseCommand maps a sanitized line onto a command.
func ParseCommand(line string) Command {
	cmd := Command{Raw: line}
	switch strings.ToLower(line) {
	case "":
		cmd.Kind = CommandAdvance
	case "t", "toggle":
		cmd.Kind = CommandToggle
	case "q", "quit", "exit":
		cmd.Kind = CommandQuit
	default:
		if n, err := strconv.Atoi(line); err == nil && n > 0 {
			cmd.Kind = CommandChoose
			cmd.Choice = n - 1
		}
	}
	return cmd
}
