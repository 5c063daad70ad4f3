// Package key provides the key event types shared by the capture, engine
// and output layers.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Code: a Linux input-event key code (KEY_A is 30)
//   - Action: a key transition, Press or Release
//   - Event: a single transition of a single key
//
// # Key Names
//
// Key names are matched case-insensitively and several keys have aliases:
//
//   - Letters and digits: "a", "Z", "1"
//   - Modifiers: "leftctrl", "lctrl", "rightmeta", "rwin"
//   - Named keys: "esc", "enter", "pageup", "f23"
//
// Code.String returns the canonical (first listed) name.
//
// # Hashing
//
// Event.Hash is a stable 64-bit hash of (code, action). Combo tables store
// hashes rather than events so membership checks on the hot path are a single
// map lookup.
package key
