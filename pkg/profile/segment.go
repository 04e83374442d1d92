package profile

import "math"

// DefaultSegmentLengthKm is the target window length used when a
// Segmenter is left zero-valued.
const DefaultSegmentLengthKm = 0.5

// Segment is one distance window of the profile.
type Segment struct {
	StartDistanceKm float64 `json:"startDistance"`
	EndDistanceKm   float64 `json:"endDistance"`
	LengthKm        float64 `json:"length"`
	StartElevationM float64 `json:"startElevation"`
	EndElevationM   float64 `json:"endElevation"`
	Gradient        float64 `json:"gradient"` // percent, one decimal
}

// ElevationDeltaM returns the signed elevation change across the segment.
func (s Segment) ElevationDeltaM() float64 {
	return s.EndElevationM - s.StartElevationM
}

// Segmenter splits profiles into windows of TargetLengthKm.
type Segmenter struct {
	TargetLengthKm float64
}

// Split is Segmenter{}.Split with the default window length.
func Split(points []Point) ([]Segment, error) {
	return Segmenter{}.Split(points)
}

// Split accumulates points into windows of at least TargetLengthKm. A window
// closes at the first point whose distance from the window start reaches
// the target; the last window closes on the last point and may be shorter.
// Window boundaries are profile points, so consecutive segments share their
// boundary distance exactly.
func (s Segmenter) Split(points []Point) ([]Segment, error) {
	if err := Validate(points); err != nil {
		return nil, err
	}

	target := s.TargetLengthKm
	if target <= 0 {
		target = DefaultSegmentLengthKm
	}

	segments := make([]Segment, 0, int(math.Ceil(span(points)/target))+1)
	start := points[0]
	last := len(points) - 1

	for i := 1; i <= last; i++ {
		p := points[i]
		length := p.DistanceKm - start.DistanceKm
		if length < target-1e-9 && i != last {
			continue
		}
		if length <= 0 {
			// duplicate distance, no horizontal run to divide by
			continue
		}
		segments = append(segments, Segment{
			StartDistanceKm: start.DistanceKm,
			EndDistanceKm:   p.DistanceKm,
			LengthKm:        length,
			StartElevationM: start.ElevationM,
			EndElevationM:   p.ElevationM,
			Gradient:        Gradient(p.ElevationM-start.ElevationM, length),
		})
		start = p
	}
	return segments, nil
}

// Gradient returns rise over run as a percentage rounded to one decimal.
// rise is in metres, run in kilometres. A zero run yields 0.
func Gradient(riseM, runKm float64) float64 {
	if runKm <= 0 {
		return 0
	}
	return Round1(riseM / (runKm * 1000) * 100)
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func span(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	return points[len(points)-1].DistanceKm - points[0].DistanceKm
}
