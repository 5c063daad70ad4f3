// Package config turns combo files into a combo.Config.
//
// A combo file maps conditions to actions:
//
//	delay_ms = 3
//
//	[combos]
//	"leftmeta + leftshift + f23" = "leftctrl down + wait 500 + leftctrl up"
//	a = "b"
//	"n down" = "b + c"
//
// Conditions and actions are "+"-joined token lists. In a condition a bare
// key name requires both its press and its release, while "down <key>" or
// "<key> down" (and the "up" forms) require a single transition. In an
// action a bare key name is a tap, a key with a direction is one
// transition and "wait <ms>" delays everything after it.
//
// Combos keep the order in which they are declared; the first combo whose
// condition is satisfied wins.
//
// # Sub-packages
//
//   - loader: TOML and YAML decoding into an ordered document
//   - watcher: change notification for live reload
package config
