package profile

import "gonum.org/v1/gonum/floats"

// Summary holds whole-profile statistics.
type Summary struct {
	TotalDistanceKm     float64 `json:"totalDistance"`
	TotalElevationGainM float64 `json:"totalElevationGain"`
	TotalElevationLossM float64 `json:"totalElevationLoss"`
	StartElevationM     float64 `json:"startElevation"`
	EndElevationM       float64 `json:"endElevation"`
	MinElevationM       float64 `json:"minElevation"`
	MaxElevationM       float64 `json:"maxElevation"`
	AverageGradient     float64 `json:"averageGradient"`
	MaxGradient         float64 `json:"maxGradient"`
	SegmentCount        int     `json:"segmentCount"`
}

// Summarize computes the profile summary. points must already be valid;
// segments supply MaxGradient and may be empty.
func Summarize(points []Point, segments []Segment) Summary {
	if len(points) == 0 {
		return Summary{}
	}

	elevations := Elevations(points)
	var gain, loss float64
	for i := 1; i < len(points); i++ {
		d := points[i].ElevationM - points[i-1].ElevationM
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}

	first, last := points[0], points[len(points)-1]
	distance := last.DistanceKm - first.DistanceKm

	s := Summary{
		TotalDistanceKm:     distance,
		TotalElevationGainM: gain,
		TotalElevationLossM: loss,
		StartElevationM:     first.ElevationM,
		EndElevationM:       last.ElevationM,
		MinElevationM:       floats.Min(elevations),
		MaxElevationM:       floats.Max(elevations),
		AverageGradient:     Gradient(last.ElevationM-first.ElevationM, distance),
		SegmentCount:        len(segments),
	}
	if len(segments) > 0 {
		s.MaxGradient = floats.Max(Gradients(segments))
	}
	return s
}

// Elevations extracts the elevation column.
func Elevations(points []Point) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.ElevationM
	}
	return out
}

// Gradients extracts the gradient column.
func Gradients(segments []Segment) []float64 {
	out := make([]float64, len(segments))
	for i, s := range segments {
		out[i] = s.Gradient
	}
	return out
}

// Steepest returns the index of the segment with the highest gradient, or
// -1 for an empty slice.
func Steepest(segments []Segment) int {
	if len(segments) == 0 {
		return -1
	}
	return floats.MaxIdx(Gradients(segments))
}

// ElevationAt returns the elevation of the profile point nearest to
// distanceKm. points must be sorted by distance.
func ElevationAt(points []Point, distanceKm float64) float64 {
	return points[NearestIndex(points, distanceKm)].ElevationM
}
