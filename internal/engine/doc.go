// Package engine wires the debounce buffer, the combo matcher, the action
// expander and the scheduler into the remapping core.
//
// Raw events enter through Push and are handled in order by a single
// consumer goroutine:
//
//	Push -> ingress -> consumer -> bypass ------------------------> output
//	                            \-> buffer -> expiry -------------> output
//	                                       \-> match -> expand -> scheduler -> output
//
// The output is drained with Pop, PopContext or TryPop. Close tears the
// engine down, flushing events still held by the buffer so no key is left
// half-pressed.
package engine
