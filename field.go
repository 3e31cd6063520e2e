package main

import (
	"math"
	"strings"

	"qfield/quantum"
)

// fieldRamp maps intensity in [0, 1] to characters, darkest first.
const fieldRamp = " .:-=+*#%@"

// sourceRadius is the radius of the circle sources sit on, in unit coordinates.
const sourceRadius = 0.4

// source is one basis state emitting a circular wave from (X, Y).
type source struct {
	X, Y      float64
	Magnitude float64
	Phase     float64
}

// fieldSources places one source per basis state on a circle, at an angle
// proportional to its index out of size.
func fieldSources(states []quantum.BasisState, size int) []source {
	sources := make([]source, 0, len(states))
	for _, st := range states {
		angle := 2 * math.Pi * float64(st.Index) / float64(size)
		sources = append(sources, source{
			X:         0.5 + sourceRadius*math.Cos(angle),
			Y:         0.5 + sourceRadius*math.Sin(angle),
			Magnitude: st.Magnitude,
			Phase:     st.Phase,
		})
	}
	return sources
}

// fieldParams are the wave parameters of one frame.
type fieldParams struct {
	K      float64 // wave number
	Omega  float64 // angular frequency
	T      float64 // time in seconds
	Aspect float64 // displayed height over width of the grid, so circles stay round
}

// interferenceField samples |Σ m·e^{i(k·d − φ − ωt)}|² on a w×h grid,
// clamped to [0, 1].
func interferenceField(sources []source, w, h int, p fieldParams) [][]float64 {
	grid := make([][]float64, h)
	for y := 0; y < h; y++ {
		row := make([]float64, w)
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			var re, im float64
			for _, s := range sources {
				dx := u - s.X
				dy := (v - s.Y) * p.Aspect
				phase := p.K*math.Hypot(dx, dy) - s.Phase - p.Omega*p.T
				re += s.Magnitude * math.Cos(phase)
				im += s.Magnitude * math.Sin(phase)
			}
			row[x] = min(re*re+im*im, 1)
		}
		grid[y] = row
	}
	return grid
}

// shadeField renders a sampled field with fieldRamp.
func shadeField(grid [][]float64) []string {
	last := len(fieldRamp) - 1
	lines := make([]string, len(grid))
	for y, row := range grid {
		var sb strings.Builder
		for _, val := range row {
			idx := int(math.Round(val * float64(last)))
			sb.WriteByte(fieldRamp[min(max(idx, 0), last)])
		}
		lines[y] = sb.String()
	}
	return lines
}
