package terrain

// Type is the surface class of a terrain cell.
type Type string

const (
	TypeDirt   Type = "dirt"
	TypeGrass  Type = "grass"
	TypeForest Type = "forest"
	TypeRock   Type = "rock"
)

// Band assigns Type to cells whose normalized height is at most
// MaxNormalized. Bands are ordered from low to high.
type Band struct {
	Type          Type    `json:"type"`
	MaxNormalized float64 `json:"maxNormalizedHeight"`
}

// DefaultBands returns the terrain type thresholds used by the scene.
func DefaultBands() []Band {
	return []Band{
		{TypeDirt, 0.15},
		{TypeGrass, 0.45},
		{TypeForest, 0.7},
		{TypeRock, 1},
	}
}

// bandFor returns the type for a normalized height in [0, 1].
func bandFor(bands []Band, n float64) Type {
	for _, b := range bands {
		if n <= b.MaxNormalized {
			return b.Type
		}
	}
	if len(bands) == 0 {
		return TypeGrass
	}
	return bands[len(bands)-1].Type
}
