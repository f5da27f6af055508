package debugui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Equal(t, float32(0), h.average())

	h.add(10)
	assert.Equal(t, float32(10), h.average())

	h.add(20)
	h.add(30)
	assert.Equal(t, float32(20), h.average())

	// the oldest sample is overwritten
	h.add(60)
	assert.Equal(t, []float32{60, 20, 30}, h.samples)
	assert.Equal(t, float32(110)/3, h.average())

	assert.Len(t, newFrameHistory(0).samples, 1)
}
