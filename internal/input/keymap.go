// internal/input/keymap.go
package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Keymap maps key codes to command kinds.
type Keymap map[tcell.Key]CommandKind

// RuneKeymap maps runes typed together with Ctrl to command kinds.
type RuneKeymap map[rune]CommandKind

// specialKeys fire regardless of modifiers.
// tcell.KeyEnter is also Ctrl+M and tcell.KeyBackspace is also Ctrl+H;
// terminals send the same byte for both.
var specialKeys = Keymap{
	tcell.KeyEnter:      CommandNewline,
	tcell.KeyBackspace:  CommandBackspace,
	tcell.KeyBackspace2: CommandBackspace,
	tcell.KeyLeft:       CommandMoveLeft,
	tcell.KeyRight:      CommandMoveRight,
	tcell.KeyUp:         CommandMoveUp,
	tcell.KeyDown:       CommandMoveDown,
}

// ctrlKeys are the control codes legacy terminals report for Ctrl+letter.
// Ctrl+/ arrives as 0x1F (KeyCtrlUnderscore).
var ctrlKeys = Keymap{
	tcell.KeyCtrlU:          CommandUndo,
	tcell.KeyCtrlR:          CommandRedo,
	tcell.KeyCtrlUnderscore: CommandSearchMode,
	tcell.KeyCtrlQ:          CommandQuit,

	// Emacs-style movement
	tcell.KeyCtrlP: CommandMoveUp,
	tcell.KeyCtrlN: CommandMoveDown,
	tcell.KeyCtrlB: CommandMoveLeft,
	tcell.KeyCtrlF: CommandMoveRight,
	tcell.KeyCtrlA: CommandMoveBeginningLine,
	tcell.KeyCtrlE: CommandMoveEndLine,
}

// ctrlRunes covers terminals with an extended keyboard protocol, which report
// the chord as the plain rune plus ModCtrl.
var ctrlRunes = RuneKeymap{
	'u': CommandUndo,
	'r': CommandRedo,
	'/': CommandSearchMode,
	'q': CommandQuit,
	'p': CommandMoveUp,
	'n': CommandMoveDown,
	'b': CommandMoveLeft,
	'f': CommandMoveRight,
	'm': CommandNewline,
	'a': CommandMoveBeginningLine,
	'e': CommandMoveEndLine,
}

// MapKey translates a key press into a command. It is pure: the same input
// always yields the same result. ok is false when the key has no binding.
func MapKey(key tcell.Key, r rune, mod tcell.ModMask) (cmd Command, ok bool) {
	if kind, found := specialKeys[key]; found {
		return Command{Kind: kind}, true
	}
	if kind, found := ctrlKeys[key]; found {
		return Command{Kind: kind}, true
	}
	if key != tcell.KeyRune {
		return Command{}, false
	}

	if mod&tcell.ModCtrl != 0 {
		if kind, found := ctrlRunes[unicode.ToLower(r)]; found {
			return Command{Kind: kind}, true
		}
		return Command{}, false
	}
	// Only plain characters are text; Alt+x, Meta+x etc. are ignored.
	if mod == tcell.ModNone {
		return Command{Kind: CommandInsertChar, Rune: r}, true
	}
	return Command{}, false
}

// MapEvent is MapKey for a tcell key event.
func MapEvent(ev *tcell.EventKey) (Command, bool) {
	return MapKey(ev.Key(), ev.Rune(), ev.Modifiers())
}
