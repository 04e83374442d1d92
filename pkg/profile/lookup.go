package profile

import "sort"

// NearestIndex returns the index of the point whose distance is closest to
// distanceKm. Ties go to the earlier point. points must be non-empty and
// sorted by distance.
func NearestIndex(points []Point, distanceKm float64) int {
	n := len(points)
	i := sort.Search(n, func(k int) bool { return points[k].DistanceKm >= distanceKm })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if distanceKm-points[i-1].DistanceKm <= points[i].DistanceKm-distanceKm {
		return i - 1
	}
	return i
}

// Interpolate returns the linearly interpolated elevation at distanceKm,
// clamped to the first and last points.
func Interpolate(points []Point, distanceKm float64) float64 {
	n := len(points)
	i := sort.Search(n, func(k int) bool { return points[k].DistanceKm >= distanceKm })
	switch {
	case i == 0:
		return points[0].ElevationM
	case i == n:
		return points[n-1].ElevationM
	}
	a, b := points[i-1], points[i]
	t := (distanceKm - a.DistanceKm) / (b.DistanceKm - a.DistanceKm)
	return a.ElevationM + t*(b.ElevationM-a.ElevationM)
}
