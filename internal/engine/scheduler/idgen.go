package scheduler

// MaxPending is the number of tasks that may be pending at once: the size of
// the one-byte id space.
const MaxPending = 256

// IDGenerator yields 0, 1, ..., 255, 0, 1, ... forever.
// The zero value starts at 0.
type IDGenerator struct {
	current uint8
}

// NewIDGenerator returns a generator starting at 0.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the next id. It never fails.
func (g *IDGenerator) Next() uint8 {
	id := g.current
	g.current++
	return id
}
