package pass

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// AltitudeLookup resolves the ground altitude in metres at a position. Real
// implementations call an elevation service.
type AltitudeLookup interface {
	Altitude(ctx context.Context, lat, lon float64) (float64, error)
}

// AltitudeFunc adapts a function to AltitudeLookup.
type AltitudeFunc func(ctx context.Context, lat, lon float64) (float64, error)

// Altitude calls f.
func (f AltitudeFunc) Altitude(ctx context.Context, lat, lon float64) (float64, error) {
	return f(ctx, lat, lon)
}

// ProfileAltitude answers lookups from the pass's own elevation profile: the
// query is snapped to the nearest route vertex, whose relative position along
// the route picks the profile elevation.
func ProfileAltitude(p *Pass) AltitudeLookup {
	route := p.Route()
	pts := p.ElevationProfile
	return AltitudeFunc(func(ctx context.Context, lat, lon float64) (float64, error) {
		if len(route) < 2 {
			return 0, &validation.MissingGeodataError{PassID: p.ID}
		}
		if len(pts) == 0 {
			return 0, validation.InvalidProfile("pass %q has no elevation profile", p.ID)
		}
		i := geo.Nearest(route, orb.Point{lon, lat})
		progress := float64(i) / float64(len(route)-1)
		start, end := pts[0].DistanceKm, pts[len(pts)-1].DistanceKm
		return profile.Interpolate(pts, start+progress*(end-start)), nil
	})
}

// Enrich3D fills Coordinates3D from Coordinates using lookup. Existing 3D
// coordinates are replaced.
func Enrich3D(ctx context.Context, p *Pass, lookup AltitudeLookup) error {
	if len(p.Coordinates) < 2 {
		return &validation.MissingGeodataError{PassID: p.ID}
	}
	out := make([][3]float64, len(p.Coordinates))
	for i, c := range p.Coordinates {
		if err := ctx.Err(); err != nil {
			return err
		}
		alt, err := lookup.Altitude(ctx, c[1], c[0])
		if err != nil {
			return fmt.Errorf("altitude lookup at coordinates[%d]: %w", i, err)
		}
		out[i] = [3]float64{c[0], c[1], alt}
	}
	p.Coordinates3D = out
	return nil
}
