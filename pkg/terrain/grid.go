package terrain

import "math"

// Normalized maps an elevation onto [0, 1] relative to the grid's range.
// A flat grid normalizes everything to 0.
func (g *Grid) Normalized(h float64) float64 {
	span := g.MaxElevationM - g.MinElevationM
	if span <= 0 {
		return 0
	}
	return math.Max(0, math.Min(1, (h-g.MinElevationM)/span))
}

// Cell returns the grid indices nearest to a position given as progress
// along the route in [0, 1] and lateral offset in metres. Positions outside
// the grid are clamped to its edge.
func (g *Grid) Cell(progress, lateralM float64) (i, j int) {
	last := float64(g.Resolution - 1)
	i = clampIndex(math.Round(progress*last), g.Resolution)
	j = clampIndex(math.Round((lateralM/g.PhysicalWidthM+0.5)*last), g.Resolution)
	return i, j
}

// HeightAt returns the height of the cell nearest to the position.
func (g *Grid) HeightAt(progress, lateralM float64) float64 {
	i, j := g.Cell(progress, lateralM)
	return g.Heights[i][j]
}

// TypeAt returns the terrain type of cell (i, j).
func (g *Grid) TypeAt(i, j int) Type {
	return bandFor(g.Bands, g.Normalized(g.Heights[i][j]))
}

// Contains reports whether the scene-space ground position (x along the
// route, z lateral, both metres) lies on the grid or within margin metres of
// its edges.
func (g *Grid) Contains(x, z, margin float64) bool {
	return x >= -margin && x <= g.PhysicalLengthM+margin && math.Abs(z) <= g.PhysicalWidthM/2+margin
}

// TypeCounts returns the number of cells per terrain type.
func (g *Grid) TypeCounts() map[Type]int {
	counts := make(map[Type]int, len(g.Bands))
	for i := range g.Heights {
		for j := range g.Heights[i] {
			counts[g.TypeAt(i, j)]++
		}
	}
	return counts
}

func clampIndex(v float64, n int) int {
	if v < 0 {
		return 0
	}
	if int(v) > n-1 {
		return n - 1
	}
	return int(v)
}
