package pass

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// lengthTolerance is the relative gap between the declared length and the
// profile span above which a warning is raised.
const lengthTolerance = 0.05

// Validate runs schema checks over a pass record.
func Validate(p *Pass) *validation.Report {
	r := validation.NewReport()

	if p.ID == "" {
		r.AddError(validation.Result{Level: validation.LevelSchema, Path: "id", Message: "id is required"})
	}
	if p.Name == "" {
		r.AddError(validation.Result{Level: validation.LevelSchema, Path: "name", Message: "name is required"})
	}

	r.Merge(profile.Check(p.ElevationProfile))

	checkCoordinates(r, p)
	checkLength(r, p)
	checkSummit(r, p)

	for i, poi := range p.PointsOfInterest {
		path := fmt.Sprintf("points_of_interest[%d]", i)
		if poi.Name == "" {
			r.AddWarning(validation.Result{Level: validation.LevelSchema, Path: path + ".name", Message: "point of interest has no name"})
		}
		if !knownPOITypes[poi.Type] {
			r.AddInfo(validation.Result{
				Level:       validation.LevelSchema,
				Path:        path + ".type",
				Message:     fmt.Sprintf("type %q is not used by scene synthesis", poi.Type),
				ActualValue: poi.Type,
				Suggestions: []string{POIRefuge, POIRestaurant, POIHotel, POILake},
			})
		}
	}

	return r
}

func checkCoordinates(r *validation.Report, p *Pass) {
	if !p.HasGeodata() {
		r.AddWarning(validation.Result{
			Level:   validation.LevelSchema,
			Path:    "coordinates",
			Message: "no route coordinates; 3D visualization is unavailable",
		})
		return
	}
	for i, c := range p.Coordinates {
		if !validLonLat(c[0], c[1]) {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Path:        fmt.Sprintf("coordinates[%d]", i),
				Message:     "coordinate out of range",
				ActualValue: c,
				Expected:    "[lon in [-180,180], lat in [-90,90]]",
			})
		}
	}
	for i, c := range p.Coordinates3D {
		if !validLonLat(c[0], c[1]) {
			r.AddError(validation.Result{
				Level:       validation.LevelSchema,
				Path:        fmt.Sprintf("coordinates_3d[%d]", i),
				Message:     "coordinate out of range",
				ActualValue: c,
				Expected:    "[lon in [-180,180], lat in [-90,90], ele]",
			})
		}
	}
	if len(p.Coordinates3D) > 0 && len(p.Coordinates) > 0 && len(p.Coordinates3D) != len(p.Coordinates) {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSchema,
			Path:        "coordinates_3d",
			Message:     fmt.Sprintf("coordinates_3d has %d points, coordinates has %d", len(p.Coordinates3D), len(p.Coordinates)),
			Suggestions: []string{"regenerate coordinates_3d with the enrich command"},
		})
	}
}

func checkLength(r *validation.Report, p *Pass) {
	pts := p.ElevationProfile
	if p.LengthKm <= 0 || len(pts) < 2 {
		return
	}
	span := pts[len(pts)-1].DistanceKm - pts[0].DistanceKm
	if math.Abs(span-p.LengthKm)/p.LengthKm > lengthTolerance {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSchema,
			Path:        "length",
			Message:     "declared length does not match the elevation profile",
			ActualValue: p.LengthKm,
			Expected:    fmt.Sprintf("%.1f km", span),
		})
	}
	if p.HasGeodata() {
		routeKm := geo.LengthKm(p.Route())
		r.AddInfo(validation.Result{
			Level:       validation.LevelSchema,
			Path:        "coordinates",
			Message:     fmt.Sprintf("route geometry measures %.1f km", routeKm),
			ActualValue: routeKm,
		})
	}
}

func checkSummit(r *validation.Report, p *Pass) {
	if p.ElevationM <= 0 || len(p.ElevationProfile) == 0 {
		return
	}
	highest := math.Inf(-1)
	for _, pt := range p.ElevationProfile {
		highest = math.Max(highest, pt.ElevationM)
	}
	if math.Abs(highest-p.ElevationM) > 50 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelSchema,
			Path:        "elevation",
			Message:     "declared summit elevation differs from the profile maximum",
			ActualValue: p.ElevationM,
			Expected:    fmt.Sprintf("%.0f m", highest),
		})
	}
}

func validLonLat(lon, lat float64) bool {
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
