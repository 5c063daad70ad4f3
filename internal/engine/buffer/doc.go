// Package buffer holds recently pressed keys for a short window so they can
// be recognised as part of a combo.
//
// Every event that participates in at least one combo is appended to the
// buffer and arms a timer. When the timer expires the oldest buffered event
// is forwarded unchanged, so a key that never becomes part of a combo is
// only delayed. When the buffered events satisfy a combo the whole buffer is
// consumed and the combo is returned to the caller. Events that no combo
// references bypass the buffer entirely.
//
// The append, the match and the clear that follows a match happen under a
// single lock, so a timer can never forward an event that belongs to a
// recognised combo.
package buffer
