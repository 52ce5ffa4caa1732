package mosaic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tables := []struct {
		name   string
		c1, c2 Color
		q      uint64
		qf     float32
		want   uint64
	}{
		{"zero", Color{}, Color{}, 0, QuantizationFactor, 261120},
		{"identical", Color{0.2, 0.4, 0.6, 1}, Color{0.2, 0.4, 0.6, 1}, 0, QuantizationFactor, 261120},
		{"black white", Color{0, 0, 0, 1}, Color{1, 1, 1, 1}, 0, QuantizationFactor, 270332},
		{"more opaque", Color{0, 0, 0, 0}, Color{0, 0, 0, 1}, 0, QuantizationFactor, 261116},
		{"less opaque", Color{0, 0, 0, 1}, Color{0, 0, 0, 0}, 0, QuantizationFactor, 261124},
		{"quantization", Color{}, Color{}, 64, 64, 261121},
		{"no factor", Color{}, Color{}, 100, 0, 261120},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.want, Distance(table.c1, table.c2, table.q, table.qf))
		})
	}
}

func TestDistanceOrdering(t *testing.T) {
	black := Color{0, 0, 0, 1}
	white := Color{1, 1, 1, 1}
	dark := Color{0.1, 0.1, 0.1, 1}

	assert.Less(t, Distance(black, dark, 0, QuantizationFactor), Distance(white, dark, 0, QuantizationFactor))
}
