package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for s, want := range map[string]Mode{"count": Count, "deta": Mean, "detarms": RMS} {
		got, err := parseMode(s)
		require.NoError(t, err)
		assert.Equal(t, want, got, s)
	}
	_, err := parseMode("met")
	assert.Error(t, err)
}

func TestStatGrid(t *testing.T) {
	fill := func(mode Mode) *StatGrid {
		g := NewStatGrid(mode, 2, 0, 2, 2, 0, 2)
		for _, v := range []float64{1, 2, 3} {
			g.Fill(0.5, 1.5, v)
		}
		g.Fill(1.5, 0.5, 10)
		return g
	}

	g := fill(Count)
	nx, ny := g.Dims()
	assert.Equal(t, 2, nx)
	assert.Equal(t, 2, ny)
	assert.Equal(t, 3.0, g.Z(0, 1))
	assert.Equal(t, 1.0, g.Z(1, 0))
	assert.Equal(t, 0.0, g.Z(0, 0))
	assert.Equal(t, 3.0, g.Max())

	g = fill(Mean)
	assert.InDelta(t, 2.0, g.Z(0, 1), 1e-12)
	assert.Equal(t, 0.0, g.Z(1, 0), "too few fills")

	g = fill(RMS)
	assert.InDelta(t, math.Sqrt(2./3.), g.Z(0, 1), 1e-12)
}
