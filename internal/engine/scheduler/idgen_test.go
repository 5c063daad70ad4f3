package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDGeneratorStartsAtZero(t *testing.T) {
	g := NewIDGenerator()
	assert.Equal(t, uint8(0), g.Next())
}

func TestIDGeneratorIncrements(t *testing.T) {
	g := NewIDGenerator()
	ids := []uint8{g.Next(), g.Next(), g.Next(), g.Next(), g.Next()}
	assert.Equal(t, []uint8{0, 1, 2, 3, 4}, ids)
}

func TestIDGeneratorWrapsAround(t *testing.T) {
	g := &IDGenerator{current: 255}
	assert.Equal(t, uint8(255), g.Next())
	assert.Equal(t, uint8(0), g.Next())
	assert.Equal(t, uint8(1), g.Next())
}

func TestIDGeneratorFullCycle(t *testing.T) {
	var g IDGenerator
	seen := make(map[uint8]bool)
	for i := 0; i < MaxPending; i++ {
		seen[g.Next()] = true
	}
	assert.Len(t, seen, MaxPending)
	assert.Equal(t, uint8(0), g.Next())
}
