package analytics

import (
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

// Difficulty is a gradient tier.
type Difficulty string

const (
	Easy          Difficulty = "easy"
	Moderate      Difficulty = "moderate"
	Difficult     Difficulty = "difficult"
	VeryDifficult Difficulty = "veryDifficult"
	Extreme       Difficulty = "extreme"
)

// Tier describes one difficulty bucket. MaxGradient is an inclusive upper
// bound; the last tier is unbounded.
type Tier struct {
	Difficulty  Difficulty
	Label       string
	Color       string
	MaxGradient float64
}

// Tiers lists the difficulty tiers from easiest to hardest.
var Tiers = []Tier{
	{Easy, "Facile", "#4caf50", 4},
	{Moderate, "Modéré", "#ffeb3b", 7},
	{Difficult, "Difficile", "#ff9800", 10},
	{VeryDifficult, "Très difficile", "#f44336", 15},
	{Extreme, "Extrême", "#9c27b0", math.Inf(1)},
}

// Classify returns the tier of a gradient in percent.
func Classify(gradient float64) Difficulty {
	return tierFor(gradient).Difficulty
}

// Color returns the display colour of d, or grey for unknown tiers.
func Color(d Difficulty) string {
	for _, t := range Tiers {
		if t.Difficulty == d {
			return t.Color
		}
	}
	return "#9e9e9e"
}

func tierFor(gradient float64) Tier {
	for _, t := range Tiers {
		if gradient <= t.MaxGradient {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// ClassifySegments places every segment in exactly one bucket. Buckets are
// returned in tier order, including empty ones. Percentage is the share of
// segment count; LengthPercentage is the share of distance.
func ClassifySegments(segments []profile.Segment) []Bucket {
	buckets := make([]Bucket, len(Tiers))
	index := make(map[Difficulty]int, len(Tiers))
	for i, t := range Tiers {
		buckets[i] = Bucket{
			Difficulty: t.Difficulty,
			Label:      t.Label,
			Color:      t.Color,
			Segments:   []profile.Segment{},
		}
		index[t.Difficulty] = i
	}

	total := 0.0
	for _, s := range segments {
		b := &buckets[index[Classify(s.Gradient)]]
		b.Segments = append(b.Segments, s)
		b.TotalLengthKm += s.LengthKm
		total += s.LengthKm
	}

	if len(segments) == 0 {
		return buckets
	}
	for i := range buckets {
		b := &buckets[i]
		b.Percentage = profile.Round1(float64(len(b.Segments)) / float64(len(segments)) * 100)
		if total > 0 {
			b.LengthPercentage = profile.Round1(b.TotalLengthKm / total * 100)
		}
	}
	return buckets
}
