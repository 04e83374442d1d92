// Package scene2d turns an analysed pass into a colour-segmented 2D
// elevation profile and renders it as an HTML chart.
package scene2d

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

// Assemble2D colours the profile of p with the segment difficulties of a.
// The route GeoJSON is attached when the pass has coordinates.
func Assemble2D(p *pass.Pass, a *analytics.Analysis) *Visualization {
	v := &Visualization{
		PassID:          p.ID,
		Name:            p.Name,
		Points:          assemblePoints(p.ElevationProfile, a.Segments),
		Segments:        assembleSegments(a.Segments),
		KeySegments:     a.KeySegments,
		Summary:         a.Summary,
		DifficultyScore: a.DifficultyScore,
		UCI:             a.UCIComparison,
		Legend:          Legend(),
	}
	if p.HasGeodata() {
		v.Route = geo.RouteFeature(p.Route(), map[string]any{
			"id":         p.ID,
			"name":       p.Name,
			"category":   a.UCIComparison.Category,
			"difficulty": a.DifficultyScore.Score,
		})
	}
	return v
}

// assemblePoints gives each point the colour of the first segment ending at
// or after it.
func assemblePoints(points []profile.Point, segments []profile.Segment) []Point {
	out := make([]Point, len(points))
	k := 0
	for i, pt := range points {
		for k < len(segments)-1 && segments[k].EndDistanceKm < pt.DistanceKm-1e-9 {
			k++
		}
		out[i] = Point{DistanceKm: pt.DistanceKm, ElevationM: pt.ElevationM}
		if len(segments) == 0 {
			continue
		}
		s := segments[k]
		d := analytics.Classify(s.Gradient)
		out[i].Gradient = s.Gradient
		out[i].Difficulty = d
		out[i].Color = analytics.Color(d)
	}
	return out
}

func assembleSegments(segments []profile.Segment) []Segment {
	out := make([]Segment, len(segments))
	for i, s := range segments {
		d := analytics.Classify(s.Gradient)
		out[i] = Segment{
			StartDistanceKm: s.StartDistanceKm,
			EndDistanceKm:   s.EndDistanceKm,
			StartElevationM: s.StartElevationM,
			EndElevationM:   s.EndElevationM,
			Gradient:        s.Gradient,
			Difficulty:      d,
			Color:           analytics.Color(d),
		}
	}
	return out
}

// Legend lists the difficulty tiers with their gradient ranges.
func Legend() []LegendEntry {
	out := make([]LegendEntry, len(analytics.Tiers))
	lower := math.Inf(-1)
	for i, t := range analytics.Tiers {
		var rng string
		switch {
		case math.IsInf(lower, -1):
			rng = fmt.Sprintf("≤ %g%%", t.MaxGradient)
		case math.IsInf(t.MaxGradient, 1):
			rng = fmt.Sprintf("> %g%%", lower)
		default:
			rng = fmt.Sprintf("%g-%g%%", lower, t.MaxGradient)
		}
		out[i] = LegendEntry{Difficulty: t.Difficulty, Label: t.Label, Color: t.Color, Range: rng}
		lower = t.MaxGradient
	}
	return out
}
