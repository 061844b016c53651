// internal/input/command.go
package input

import "fmt"

// CommandKind identifies an editor command.
type CommandKind int

const (
	CommandUnknown CommandKind = iota // zero value, never produced by the mapper

	// --- Text Manipulation ---
	CommandNewline
	CommandBackspace
	CommandInsertChar // carries Rune

	// --- Cursor Movement ---
	CommandMoveLeft
	CommandMoveRight
	CommandMoveUp
	CommandMoveDown
	CommandMoveBeginningLine
	CommandMoveEndLine

	// --- History ---
	CommandUndo
	CommandRedo

	// --- Session ---
	CommandSearchMode // recognised, no behaviour yet
	CommandQuit
)

var commandNames = map[CommandKind]string{
	CommandUnknown:           "Unknown",
	CommandNewline:           "Newline",
	CommandBackspace:         "Backspace",
	CommandInsertChar:        "InsertChar",
	CommandMoveLeft:          "MoveLeft",
	CommandMoveRight:         "MoveRight",
	CommandMoveUp:            "MoveUp",
	CommandMoveDown:          "MoveDown",
	CommandMoveBeginningLine: "MoveBeginningLine",
	CommandMoveEndLine:       "MoveEndLine",
	CommandUndo:              "Undo",
	CommandRedo:              "Redo",
	CommandSearchMode:        "SearchMode",
	CommandQuit:              "Quit",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CommandKind(%d)", int(k))
}

// Command is a decoded key press. Rune is only meaningful for CommandInsertChar.
type Command struct {
	Kind CommandKind
	Rune rune
}

func (c Command) String() string {
	if c.Kind == CommandInsertChar {
		return fmt.Sprintf("InsertChar(%q)", c.Rune)
	}
	return c.Kind.String()
}
