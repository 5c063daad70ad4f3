// Package combo holds the combo table consumed by the remapping engine and
// the two pure functions that operate on it: the matcher and the action
// expander.
//
// A Config is an ordered list of combos. Order is part of the contract:
// Match returns the first declared combo whose required events are all
// present in the buffer, so more specific combos must be declared before
// more general ones that share keys.
package combo
