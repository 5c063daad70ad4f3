package key

import (
	"fmt"
	"sort"
	"strings"
)

// Code is a Linux input-event key code.
type Code uint16

// Key codes from linux/input-event-codes.h.
const (
	CodeNone       Code = 0
	CodeEsc        Code = 1
	Code1          Code = 2
	Code2          Code = 3
	Code3          Code = 4
	Code4          Code = 5
	Code5          Code = 6
	Code6          Code = 7
	Code7          Code = 8
	Code8          Code = 9
	Code9          Code = 10
	Code0          Code = 11
	CodeMinus      Code = 12
	CodeEqual      Code = 13
	CodeBackspace  Code = 14
	CodeTab        Code = 15
	CodeQ          Code = 16
	CodeW          Code = 17
	CodeE          Code = 18
	CodeR          Code = 19
	CodeT          Code = 20
	CodeY          Code = 21
	CodeU          Code = 22
	CodeI          Code = 23
	CodeO          Code = 24
	CodeP          Code = 25
	CodeLeftBrace  Code = 26
	CodeRightBrace Code = 27
	CodeEnter      Code = 28
	CodeLeftCtrl   Code = 29
	CodeA          Code = 30
	CodeS          Code = 31
	CodeD          Code = 32
	CodeF          Code = 33
	CodeG          Code = 34
	CodeH          Code = 35
	CodeJ          Code = 36
	CodeK          Code = 37
	CodeL          Code = 38
	CodeSemicolon  Code = 39
	CodeApostrophe Code = 40
	CodeGrave      Code = 41
	CodeLeftShift  Code = 42
	CodeBackslash  Code = 43
	CodeZ          Code = 44
	CodeX          Code = 45
	CodeC          Code = 46
	CodeV          Code = 47
	CodeB          Code = 48
	CodeN          Code = 49
	CodeM          Code = 50
	CodeComma      Code = 51
	CodeDot        Code = 52
	CodeSlash      Code = 53
	CodeRightShift Code = 54
	CodeLeftAlt    Code = 56
	CodeSpace      Code = 57
	CodeCapsLock   Code = 58
	CodeF1         Code = 59
	CodeF2         Code = 60
	CodeF3         Code = 61
	CodeF4         Code = 62
	CodeF5         Code = 63
	CodeF6         Code = 64
	CodeF7         Code = 65
	CodeF8         Code = 66
	CodeF9         Code = 67
	CodeF10        Code = 68
	CodeNumLock    Code = 69
	CodeScrollLock Code = 70
	CodeF11        Code = 87
	CodeF12        Code = 88
	CodeRightCtrl  Code = 97
	CodeSysRq      Code = 99
	CodeRightAlt   Code = 100
	CodeHome       Code = 102
	CodeUp         Code = 103
	CodePageUp     Code = 104
	CodeLeft       Code = 105
	CodeRight      Code = 106
	CodeEnd        Code = 107
	CodeDown       Code = 108
	CodePageDown   Code = 109
	CodeInsert     Code = 110
	CodeDelete     Code = 111
	CodePause      Code = 119
	CodeLeftMeta   Code = 125
	CodeRightMeta  Code = 126
	CodeCompose    Code = 127
	CodeF13        Code = 183
	CodeF14        Code = 184
	CodeF15        Code = 185
	CodeF16        Code = 186
	CodeF17        Code = 187
	CodeF18        Code = 188
	CodeF19        Code = 189
	CodeF20        Code = 190
	CodeF21        Code = 191
	CodeF22        Code = 192
	CodeF23        Code = 193
	CodeF24        Code = 194
)

// namedCode lists every name accepted for a code. The first name is canonical.
type namedCode struct {
	code  Code
	names []string
}

var keyNames = []namedCode{
	{CodeA, []string{"a"}}, {CodeB, []string{"b"}}, {CodeC, []string{"c"}},
	{CodeD, []string{"d"}}, {CodeE, []string{"e"}}, {CodeF, []string{"f"}},
	{CodeG, []string{"g"}}, {CodeH, []string{"h"}}, {CodeI, []string{"i"}},
	{CodeJ, []string{"j"}}, {CodeK, []string{"k"}}, {CodeL, []string{"l"}},
	{CodeM, []string{"m"}}, {CodeN, []string{"n"}}, {CodeO, []string{"o"}},
	{CodeP, []string{"p"}}, {CodeQ, []string{"q"}}, {CodeR, []string{"r"}},
	{CodeS, []string{"s"}}, {CodeT, []string{"t"}}, {CodeU, []string{"u"}},
	{CodeV, []string{"v"}}, {CodeW, []string{"w"}}, {CodeX, []string{"x"}},
	{CodeY, []string{"y"}}, {CodeZ, []string{"z"}},

	{Code0, []string{"0"}}, {Code1, []string{"1"}}, {Code2, []string{"2"}},
	{Code3, []string{"3"}}, {Code4, []string{"4"}}, {Code5, []string{"5"}},
	{Code6, []string{"6"}}, {Code7, []string{"7"}}, {Code8, []string{"8"}},
	{Code9, []string{"9"}},

	{CodeEsc, []string{"esc", "escape"}},
	{CodeLeftCtrl, []string{"leftctrl", "lctrl"}},
	{CodeRightCtrl, []string{"rightctrl", "rctrl"}},
	{CodeLeftShift, []string{"leftshift", "lshift"}},
	{CodeRightShift, []string{"rightshift", "rshift"}},
	{CodeLeftAlt, []string{"leftalt", "lalt"}},
	{CodeRightAlt, []string{"rightalt", "ralt"}},
	{CodeLeftMeta, []string{"leftmeta", "lmeta", "leftwin", "lwin"}},
	{CodeRightMeta, []string{"rightmeta", "rmeta", "rightwin", "rwin"}},
	{CodeSpace, []string{"space"}},
	{CodeTab, []string{"tab"}},
	{CodeEnter, []string{"enter", "return"}},
	{CodeBackspace, []string{"backspace"}},
	{CodeCapsLock, []string{"capslock"}},
	{CodeInsert, []string{"insert"}},
	{CodeDelete, []string{"delete"}},
	{CodeHome, []string{"home"}},
	{CodeEnd, []string{"end"}},
	{CodePageUp, []string{"pageup"}},
	{CodePageDown, []string{"pagedown"}},
	{CodeUp, []string{"up"}},
	{CodeDown, []string{"down"}},
	{CodeLeft, []string{"left"}},
	{CodeRight, []string{"right"}},
	{CodeNumLock, []string{"numlock"}},
	{CodeScrollLock, []string{"scrolllock"}},
	{CodeSysRq, []string{"sysrq", "printscreen"}},
	{CodePause, []string{"pause"}},
	{CodeCompose, []string{"menu", "compose"}},
	{CodeMinus, []string{"minus"}},
	{CodeEqual, []string{"equal"}},
	{CodeLeftBrace, []string{"leftbrace"}},
	{CodeRightBrace, []string{"rightbrace"}},
	{CodeBackslash, []string{"backslash"}},
	{CodeSemicolon, []string{"semicolon"}},
	{CodeApostrophe, []string{"apostrophe"}},
	{CodeGrave, []string{"grave"}},
	{CodeComma, []string{"comma"}},
	{CodeDot, []string{"dot"}},
	{CodeSlash, []string{"slash"}},

	{CodeF1, []string{"f1"}}, {CodeF2, []string{"f2"}}, {CodeF3, []string{"f3"}},
	{CodeF4, []string{"f4"}}, {CodeF5, []string{"f5"}}, {CodeF6, []string{"f6"}},
	{CodeF7, []string{"f7"}}, {CodeF8, []string{"f8"}}, {CodeF9, []string{"f9"}},
	{CodeF10, []string{"f10"}}, {CodeF11, []string{"f11"}}, {CodeF12, []string{"f12"}},
	{CodeF13, []string{"f13"}}, {CodeF14, []string{"f14"}}, {CodeF15, []string{"f15"}},
	{CodeF16, []string{"f16"}}, {CodeF17, []string{"f17"}}, {CodeF18, []string{"f18"}},
	{CodeF19, []string{"f19"}}, {CodeF20, []string{"f20"}}, {CodeF21, []string{"f21"}},
	{CodeF22, []string{"f22"}}, {CodeF23, []string{"f23"}}, {CodeF24, []string{"f24"}},
}

var (
	codeByName    = make(map[string]Code)
	canonicalName = make(map[Code]string)
)

func init() {
	for _, nc := range keyNames {
		canonicalName[nc.code] = nc.names[0]
		for _, name := range nc.names {
			codeByName[name] = nc.code
		}
	}
}

// CodeFromName returns the code for a key name, or CodeNone if the name is
// unknown. Matching is case-insensitive.
func CodeFromName(name string) Code {
	return codeByName[strings.ToLower(strings.TrimSpace(name))]
}

// String returns the canonical name of the key.
// Codes without a name are rendered as "key(N)".
func (c Code) String() string {
	if name, ok := canonicalName[c]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", uint16(c))
}

// IsKnown reports whether the code has a name in the key table.
func (c Code) IsKnown() bool {
	_, ok := canonicalName[c]
	return ok
}

// Name pairs a key code with all of its accepted names.
type Name struct {
	Code  Code
	Names []string
}

// Names returns the key table sorted by code.
func Names() []Name {
	out := make([]Name, 0, len(keyNames))
	for _, nc := range keyNames {
		names := make([]string, len(nc.names))
		copy(names, nc.names)
		out = append(out, Name{Code: nc.code, Names: names})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
