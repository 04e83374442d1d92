// Package analytics derives difficulty metrics from a segmented elevation
// profile: key climbing sections, difficulty buckets, a composite score and
// a UCI-style category.
package analytics

import (
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// Options tunes Analyze. Zero values fall back to the package defaults.
type Options struct {
	SegmentLengthKm float64 `koanf:"segment_length_km" validate:"gte=0"`
	SteepThreshold  float64 `koanf:"steep_threshold" validate:"gte=0"`
	MergeGapKm      float64 `koanf:"merge_gap_km" validate:"gte=0"`
}

// DefaultOptions returns the reference thresholds.
func DefaultOptions() Options {
	return Options{
		SegmentLengthKm: profile.DefaultSegmentLengthKm,
		SteepThreshold:  DefaultSteepThreshold,
		MergeGapKm:      DefaultMergeGapKm,
	}
}

// Analyze runs the full analysis pipeline on an elevation profile. It fails
// with *validation.InvalidProfileError before doing any work when the
// profile is unusable.
func Analyze(points []profile.Point, opts Options) (*Analysis, error) {
	if err := validation.ValidateStruct(opts); err != nil {
		return nil, err
	}

	// 1. Segmentation
	segments, err := profile.Segmenter{TargetLengthKm: opts.SegmentLengthKm}.Split(points)
	if err != nil {
		return nil, err
	}

	// 2. Whole-profile statistics
	summary := profile.Summarize(points, segments)

	// 3. Key sections
	keys := KeyDetector{SteepThreshold: opts.SteepThreshold, MergeGapKm: opts.MergeGapKm}.Detect(segments)

	// 4. Difficulty buckets
	buckets := ClassifySegments(segments)

	// 5. Composite score and UCI category
	score := Score(summary.TotalDistanceKm, summary.TotalElevationGainM, segments)
	uci := UCICategory(summary.TotalDistanceKm, summary.AverageGradient)

	return &Analysis{
		Summary:              summary,
		Segments:             segments,
		KeySegments:          keys,
		SegmentsByDifficulty: buckets,
		DifficultyScore:      score,
		UCIComparison:        uci,
	}, nil
}
