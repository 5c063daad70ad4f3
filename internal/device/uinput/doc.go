// Package uinput performs key transitions on a Linux virtual keyboard.
package uinput

// DefaultPath is the uinput control node.
const DefaultPath = "/dev/uinput"

// DefaultName is the name the virtual keyboard registers with.
const DefaultName = "keychord"
