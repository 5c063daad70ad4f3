package engine

import "github.com/dshills/keychord/internal/engine/queue"

// ErrClosed is returned by PopContext once the engine is closed and its
// output drained.
var ErrClosed = queue.ErrClosed
