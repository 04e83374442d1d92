package analytics

import "github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"

// KeySegment is a merged run of steep segments.
type KeySegment struct {
	StartDistanceKm float64 `json:"startDistance"`
	EndDistanceKm   float64 `json:"endDistance"`
	LengthKm        float64 `json:"length"`
	AvgGradient     float64 `json:"avgGradient"`
	MaxGradient     float64 `json:"maxGradient"`
	ElevationGainM  float64 `json:"elevationGain"`
	Type            string  `json:"type"`
}

// Bucket groups the segments of one difficulty tier.
type Bucket struct {
	Difficulty    Difficulty        `json:"difficulty"`
	Label         string            `json:"label"`
	Color         string            `json:"color"`
	Segments      []profile.Segment `json:"segments"`
	TotalLengthKm float64           `json:"totalLength"`
	// Percentage is the share of segment count, not of distance.
	Percentage float64 `json:"percentage"`
	// LengthPercentage is the distance-weighted share, reported alongside.
	LengthPercentage float64 `json:"lengthPercentage"`
}

// ScoreComponents are the normalized [0,1] inputs of the composite score.
type ScoreComponents struct {
	Distance  float64 `json:"distance"`
	Elevation float64 `json:"elevation"`
	Gradient  float64 `json:"gradient"`
}

// DifficultyScore is the composite 0-100 score with its category label.
type DifficultyScore struct {
	Score      int             `json:"score"`
	Category   string          `json:"category"`
	Components ScoreComponents `json:"components"`
}

// UCIResult is a professional-cycling climb category.
type UCIResult struct {
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Analysis is the full output of Analyze.
type Analysis struct {
	Summary              profile.Summary   `json:"summary"`
	Segments             []profile.Segment `json:"segments"`
	KeySegments          []KeySegment      `json:"keySegments"`
	SegmentsByDifficulty []Bucket          `json:"segmentsByDifficulty"`
	DifficultyScore      DifficultyScore   `json:"difficultyScore"`
	UCIComparison        UCIResult         `json:"uciComparison"`
}

// Bucket returns the bucket for d from the analysis.
func (a *Analysis) Bucket(d Difficulty) Bucket {
	for _, b := range a.SegmentsByDifficulty {
		if b.Difficulty == d {
			return b
		}
	}
	return Bucket{Difficulty: d}
}
