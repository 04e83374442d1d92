package profile

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// MinPoints is the shortest profile that can be segmented.
const MinPoints = 2

// Validate checks that points form a usable profile: at least MinPoints
// samples, finite values and strictly increasing distance.
func Validate(points []Point) error {
	return Check(points).Err()
}

// Check is Validate in report form, so pass-record validation can merge
// the findings with its own.
func Check(points []Point) *validation.Report {
	r := validation.NewReport()
	if len(points) < MinPoints {
		r.AddError(validation.Result{
			Level:       validation.LevelProfile,
			Message:     fmt.Sprintf("profile needs at least %d points", MinPoints),
			Path:        "elevation_profile",
			ActualValue: len(points),
			Expected:    fmt.Sprintf(">= %d", MinPoints),
		})
		return r
	}

	for i, p := range points {
		if !finite(p.DistanceKm) || !finite(p.ElevationM) {
			r.AddError(validation.Result{
				Level:       validation.LevelProfile,
				Message:     "distance and elevation must be finite",
				Path:        fmt.Sprintf("elevation_profile[%d]", i),
				ActualValue: fmt.Sprintf("[%v, %v]", p.DistanceKm, p.ElevationM),
			})
			continue
		}
		if i > 0 && p.DistanceKm <= points[i-1].DistanceKm {
			r.AddError(validation.Result{
				Level:       validation.LevelProfile,
				Message:     fmt.Sprintf("distance %.3f km does not increase past %.3f km", p.DistanceKm, points[i-1].DistanceKm),
				Path:        fmt.Sprintf("elevation_profile[%d]", i),
				ActualValue: p.DistanceKm,
				Expected:    fmt.Sprintf("> %.3f", points[i-1].DistanceKm),
				Suggestions: []string{"Sort the profile by distance and drop duplicate samples"},
			})
		}
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
