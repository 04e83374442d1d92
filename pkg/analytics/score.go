package analytics

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

// Normalization references and weights of the composite score.
const (
	scoreDistanceRefKm  = 25.0
	scoreElevationRefM  = 2000.0
	scoreMaxGradientRef = 15.0

	weightDistance  = 0.20
	weightElevation = 0.35
	weightGradient  = 0.45
)

// Score category labels.
const (
	CategoryEasy          = "Facile"
	CategoryModerate      = "Modéré"
	CategoryDifficult     = "Difficile"
	CategoryVeryDifficult = "Très difficile"
	CategoryExtreme       = "Extrême"
)

// Score computes the composite 0-100 difficulty score.
func Score(totalDistanceKm, totalElevationGainM float64, segments []profile.Segment) DifficultyScore {
	distance := clamp01(totalDistanceKm / scoreDistanceRefKm)
	elevation := clamp01(totalElevationGainM / scoreElevationRefM)
	gradient := gradientScore(segments)

	raw := (weightDistance*distance + weightElevation*elevation + weightGradient*gradient) * 100
	score := int(math.Round(raw))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return DifficultyScore{
		Score:    score,
		Category: ScoreCategory(score),
		Components: ScoreComponents{
			Distance:  round2(distance),
			Elevation: round2(elevation),
			Gradient:  round2(gradient),
		},
	}
}

// gradientScore weighs the share of segments above 7% and above 10%, plus
// the steepest segment relative to 15%.
func gradientScore(segments []profile.Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	var over7, over10 int
	for _, s := range segments {
		if s.Gradient > 7 {
			over7++
		}
		if s.Gradient > 10 {
			over10++
		}
	}
	n := float64(len(segments))
	maxGrad := floats.Max(profile.Gradients(segments))
	return 0.3*float64(over7)/n + 0.4*float64(over10)/n + 0.3*clamp01(maxGrad/scoreMaxGradientRef)
}

// ScoreCategory maps a score to its label. Boundaries are left-inclusive:
// 24 is Facile, 25 is Modéré.
func ScoreCategory(score int) string {
	switch {
	case score < 25:
		return CategoryEasy
	case score < 50:
		return CategoryModerate
	case score < 75:
		return CategoryDifficult
	case score < 90:
		return CategoryVeryDifficult
	default:
		return CategoryExtreme
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(v, 1))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
