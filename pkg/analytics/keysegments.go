package analytics

import (
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

const (
	DefaultSteepThreshold = 8.0 // percent
	DefaultMergeGapKm     = 0.1

	keyMinLengthKm      = 1.0
	keyHardGradient     = 10.0
	TypeVeryHardSection = "section très difficile"
	TypeHardSection     = "section difficile"
)

// KeyDetector merges steep segments into key sections.
type KeyDetector struct {
	SteepThreshold float64 // segments strictly above this gradient are steep
	MergeGapKm     float64 // steep segments closer than this join one group
}

// Detect filters steep segments, merges those that touch or lie within
// MergeGapKm of each other, and keeps a group when it is longer than 1 km or
// averages more than 10%.
func (k KeyDetector) Detect(segments []profile.Segment) []KeySegment {
	threshold := k.SteepThreshold
	if threshold == 0 {
		threshold = DefaultSteepThreshold
	}
	gap := k.MergeGapKm
	if gap == 0 {
		gap = DefaultMergeGapKm
	}

	out := []KeySegment{}
	var group []profile.Segment
	flush := func() {
		if ks, ok := finalizeGroup(group); ok {
			out = append(out, ks)
		}
		group = group[:0]
	}

	for _, s := range segments {
		if s.Gradient <= threshold {
			continue
		}
		if len(group) > 0 && s.StartDistanceKm-group[len(group)-1].EndDistanceKm > gap+1e-9 {
			flush()
		}
		group = append(group, s)
	}
	if len(group) > 0 {
		flush()
	}
	return out
}

func finalizeGroup(group []profile.Segment) (KeySegment, bool) {
	if len(group) == 0 {
		return KeySegment{}, false
	}
	first, last := group[0], group[len(group)-1]
	length := last.EndDistanceKm - first.StartDistanceKm
	gain := last.EndElevationM - first.StartElevationM
	avg := profile.Gradient(gain, length)

	maxGrad := math.Inf(-1)
	for _, s := range group {
		maxGrad = math.Max(maxGrad, s.Gradient)
	}

	if length <= keyMinLengthKm && avg <= keyHardGradient {
		return KeySegment{}, false
	}

	typ := TypeHardSection
	if avg > keyHardGradient {
		typ = TypeVeryHardSection
	}
	return KeySegment{
		StartDistanceKm: first.StartDistanceKm,
		EndDistanceKm:   last.EndDistanceKm,
		LengthKm:        length,
		AvgGradient:     avg,
		MaxGradient:     maxGrad,
		ElevationGainM:  gain,
		Type:            typ,
	}, true
}
