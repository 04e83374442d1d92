// Package environment scatters trees, rocks, buildings and water bodies over
// a synthesized terrain grid.
//
// Placement draws from a PCG generator seeded by the caller, normally with
// SeedFor(passID), so a pass always gets the same environment.
package environment

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// DefaultTreelineM is the altitude above which no tree is placed.
const DefaultTreelineM = 1800.0

const (
	treeSpacingM   = 50.0  // one tree per this many metres of route
	rockSpacingM   = 100.0 // one rock per this many metres of route
	roadClearanceM = 8.0   // keep scattered objects off the carriageway
)

// Params controls environment density and limits.
type Params struct {
	TreelineM float64 `koanf:"treeline_m" json:"treelineM" validate:"gte=0"`
}

// DefaultParams returns the reference environment settings.
func DefaultParams() Params {
	return Params{TreelineM: DefaultTreelineM}
}

// Input is what the populator places objects on.
type Input struct {
	Grid          *terrain.Grid
	RouteLengthKm float64 // resolves "km X" locations; 0 disables them
	POIs          []pass.POI
	Seed          uint64
}

// Set is the populated environment.
type Set struct {
	Trees       []Tree      `json:"trees"`
	Rocks       []Rock      `json:"rocks"`
	Buildings   []Building  `json:"buildings"`
	WaterBodies []WaterBody `json:"waterBodies"`
}

// Count returns the total number of placed objects.
func (s *Set) Count() int {
	return len(s.Trees) + len(s.Rocks) + len(s.Buildings) + len(s.WaterBodies)
}

// SeedFor derives the placement seed of a pass from its id (FNV-64a).
func SeedFor(passID string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(passID))
	return h.Sum64()
}

// Populate places every object class in a fixed order: trees, rocks,
// buildings, water. The report carries counts and any point of interest
// whose location could not be understood.
func Populate(in Input, params Params) (*Set, *validation.Report) {
	report := validation.NewReport()
	set := &Set{Trees: []Tree{}, Rocks: []Rock{}, Buildings: []Building{}, WaterBodies: []WaterBody{}}

	if in.Grid == nil || in.Grid.Resolution < 2 {
		report.AddError(validation.Result{
			Level:   validation.LevelScene,
			Path:    "terrain",
			Message: "environment needs a synthesized terrain grid",
		})
		return set, report
	}
	if params.TreelineM == 0 {
		params.TreelineM = DefaultTreelineM
	}

	p := &placer{
		grid: in.Grid,
		rng:  rand.New(rand.NewPCG(in.Seed, in.Seed^0x9e3779b97f4a7c15)),
	}

	var aboveTreeline int
	set.Trees, aboveTreeline = p.trees(params.TreelineM)
	set.Rocks = p.rocks()

	loc := newLocator(in.POIs, in.RouteLengthKm)
	set.Buildings = p.buildings(in.POIs, loc, report)
	set.WaterBodies = p.water(in.POIs, loc, report)

	report.AddInfo(validation.Result{
		Level: validation.LevelScene,
		Message: fmt.Sprintf("placed %d trees (%d draws above the %.0f m treeline), %d rocks, %d buildings, %d water bodies",
			len(set.Trees), aboveTreeline, params.TreelineM, len(set.Rocks), len(set.Buildings), len(set.WaterBodies)),
	})
	return set, report
}

// placer owns the generator so every object class draws from one stream.
type placer struct {
	grid *terrain.Grid
	rng  *rand.Rand
}

// groundPoint draws a random position on the terrain, off the road.
func (p *placer) groundPoint() geo.Vec3 {
	progress := p.rng.Float64()
	return p.at(progress, p.lateral())
}

// lateral draws an offset in (-halfWidth, halfWidth) outside the road
// clearance.
func (p *placer) lateral() float64 {
	half := p.grid.PhysicalWidthM / 2
	clearance := min(roadClearanceM, half)
	z := (p.rng.Float64()*2 - 1) * (half - clearance)
	if z < 0 {
		return z - clearance
	}
	return z + clearance
}

// at places a point on the terrain surface.
func (p *placer) at(progress, lateral float64) geo.Vec3 {
	return geo.V(progress*p.grid.PhysicalLengthM, p.grid.HeightAt(progress, lateral), lateral)
}

// between draws uniformly from [lo, hi).
func (p *placer) between(lo, hi float64) float64 {
	return lo + p.rng.Float64()*(hi-lo)
}
