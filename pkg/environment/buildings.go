package environment

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// Building is a refuge, restaurant or hotel next to the road.
type Building struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"`
	Name      string     `json:"name"`
	Position  geo.Vec3   `json:"position"`
	Footprint [2]float64 `json:"size"` // [width, depth] in meters
	Stories   int        `json:"stories"`
	Rotation  float64    `json:"rotation"`
}

// WaterBody is a lake shown beside the route.
type WaterBody struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Position geo.Vec3 `json:"position"`
	RadiusM  float64  `json:"size"`
}

type buildingShape struct {
	footprint [2]float64
	stories   int
}

var buildingShapes = map[string]buildingShape{
	pass.POIRefuge:     {[2]float64{12, 8}, 2},
	pass.POIRestaurant: {[2]float64{15, 10}, 1},
	pass.POIHotel:      {[2]float64{25, 15}, 3},
}

const (
	buildingSetbackM = 20.0 // nearest building face to the centerline
	lakeSetbackM     = 150.0
)

// buildings turns refuge, restaurant and hotel POIs into buildings on
// alternating sides of the road.
func (p *placer) buildings(pois []pass.POI, loc locator, report *validation.Report) []Building {
	out := []Building{}
	for i, poi := range pois {
		shape, ok := buildingShapes[poi.Type]
		if !ok {
			continue
		}
		progress := p.progressFor(i, poi, loc, report)
		side := 1.0
		if len(out)%2 == 1 {
			side = -1
		}
		lateral := side * (buildingSetbackM + p.between(0, 30))
		lateral = p.clampLateral(lateral, shape.footprint[0])

		out = append(out, Building{
			ID:        fmt.Sprintf("building_%03d", len(out)),
			Type:      poi.Type,
			Name:      poi.Name,
			Position:  p.at(progress, lateral),
			Footprint: shape.footprint,
			Stories:   shape.stories,
			Rotation:  p.rng.Float64() * math.Pi / 6,
		})
	}
	return out
}

// water turns lake POIs into water bodies.
func (p *placer) water(pois []pass.POI, loc locator, report *validation.Report) []WaterBody {
	out := []WaterBody{}
	for i, poi := range pois {
		if poi.Type != pass.POILake {
			continue
		}
		progress := p.progressFor(i, poi, loc, report)
		radius := p.between(30, 100)
		side := 1.0
		if p.rng.Float64() < 0.5 {
			side = -1
		}
		lateral := p.clampLateral(side*(lakeSetbackM+radius+p.between(0, 200)), radius)

		out = append(out, WaterBody{
			ID:       fmt.Sprintf("water_%03d", len(out)),
			Name:     poi.Name,
			Type:     poi.Type,
			Position: p.at(progress, lateral),
			RadiusM:  radius,
		})
	}
	return out
}

// progressFor resolves a POI location, falling back to a random position
// and a warning.
func (p *placer) progressFor(i int, poi pass.POI, loc locator, report *validation.Report) float64 {
	if progress, ok := loc.locate(poi.Location); ok {
		return progress
	}
	progress := p.rng.Float64()
	report.AddWarning(validation.Result{
		Level:       validation.LevelScene,
		Path:        fmt.Sprintf("points_of_interest[%d].location", i),
		Message:     fmt.Sprintf("location of %q not understood, placed at random", poi.Name),
		ActualValue: poi.Location,
		Suggestions: []string{"Virage N", "km X", "Sommet", "Départ"},
	})
	return progress
}

// clampLateral keeps an object of the given extent inside the grid.
func (p *placer) clampLateral(z, extent float64) float64 {
	limit := math.Max(0, p.grid.PhysicalWidthM/2-extent)
	return math.Max(-limit, math.Min(limit, z))
}
