package scene2d

import (
	"github.com/paulmach/orb/geojson"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

// Visualization is the colour-segmented elevation profile of a pass, ready
// for a 2D chart renderer.
type Visualization struct {
	PassID          string                     `json:"passId"`
	Name            string                     `json:"name"`
	Points          []Point                    `json:"points"`
	Segments        []Segment                  `json:"segments"`
	KeySegments     []analytics.KeySegment     `json:"keySegments"`
	Summary         profile.Summary            `json:"summary"`
	DifficultyScore analytics.DifficultyScore  `json:"difficultyScore"`
	UCI             analytics.UCIResult        `json:"uciComparison"`
	Legend          []LegendEntry              `json:"legend"`
	Route           *geojson.FeatureCollection `json:"route,omitempty"`
}

// Point is a profile point coloured by the segment that covers it.
type Point struct {
	DistanceKm float64              `json:"distance"`
	ElevationM float64              `json:"elevation"`
	Gradient   float64              `json:"gradient"`
	Difficulty analytics.Difficulty `json:"difficulty"`
	Color      string               `json:"color"`
}

// Segment is a profile segment with its display colour.
type Segment struct {
	StartDistanceKm float64              `json:"start"`
	EndDistanceKm   float64              `json:"end"`
	StartElevationM float64              `json:"startElevation"`
	EndElevationM   float64              `json:"endElevation"`
	Gradient        float64              `json:"gradient"`
	Difficulty      analytics.Difficulty `json:"difficulty"`
	Color           string               `json:"color"`
}

// LegendEntry describes one difficulty tier.
type LegendEntry struct {
	Difficulty analytics.Difficulty `json:"difficulty"`
	Label      string               `json:"label"`
	Color      string               `json:"color"`
	Range      string               `json:"range"`
}
