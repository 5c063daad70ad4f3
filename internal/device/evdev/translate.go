package evdev

import "github.com/dshills/keychord/internal/input/key"

// Raw event constants from linux/input-event-codes.h.
const (
	evKey = 0x01

	valueRelease = 0
	valuePress   = 1
	valueRepeat  = 2
)

// translate converts a raw input event. Non-key events and auto-repeat
// report false.
func translate(typ, code uint16, value int32) (key.Event, bool) {
	if typ != evKey {
		return key.Event{}, false
	}
	switch value {
	case valuePress:
		return key.NewPress(key.Code(code)), true
	case valueRelease:
		return key.NewRelease(key.Code(code)), true
	default:
		return key.Event{}, false
	}
}
