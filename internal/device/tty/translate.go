package tty

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.CodeEsc,
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
}

var runeKeys = map[rune]key.Code{
	' ':  key.CodeSpace,
	'-':  key.CodeMinus,
	'=':  key.CodeEqual,
	'[':  key.CodeLeftBrace,
	']':  key.CodeRightBrace,
	'\\': key.CodeBackslash,
	';':  key.CodeSemicolon,
	'\'': key.CodeApostrophe,
	'`':  key.CodeGrave,
	',':  key.CodeComma,
	'.':  key.CodeDot,
	'/':  key.CodeSlash,
}

// Translate turns a terminal key event into the transitions a keyboard
// would have produced: modifier presses, the key's press and release, then
// modifier releases in reverse order.
func Translate(ev *tcell.EventKey) ([]key.Event, bool) {
	mods := ev.Modifiers()
	shift := mods&tcell.ModShift != 0
	ctrl := mods&tcell.ModCtrl != 0
	alt := mods&tcell.ModAlt != 0
	meta := mods&tcell.ModMeta != 0

	var code key.Code
	k := ev.Key()
	if c, ok := specialKeys[k]; ok {
		code = c
	} else if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		code = key.CodeFromName(string(rune('a' + int(k-tcell.KeyCtrlA))))
		ctrl = true
	} else if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
			shift = true
		}
		if c, ok := runeKeys[r]; ok {
			code = c
		} else {
			code = key.CodeFromName(string(r))
		}
	}
	if code == key.CodeNone {
		return nil, false
	}

	var held []key.Code
	for _, m := range []struct {
		on   bool
		code key.Code
	}{
		{ctrl, key.CodeLeftCtrl},
		{shift, key.CodeLeftShift},
		{alt, key.CodeLeftAlt},
		{meta, key.CodeLeftMeta},
	} {
		if m.on {
			held = append(held, m.code)
		}
	}

	events := make([]key.Event, 0, 2+2*len(held))
	for _, m := range held {
		events = append(events, key.NewPress(m))
	}
	events = append(events, key.NewPress(code), key.NewRelease(code))
	for i := len(held) - 1; i >= 0; i-- {
		events = append(events, key.NewRelease(held[i]))
	}
	return events, true
}
