package scene

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// ValidateDescriptor performs structural validation on a scene descriptor.
// It checks the terrain grid shape, the centerline ordering, guardrail
// attributes, entity ids and that entities lie on the terrain.
func ValidateDescriptor(d *Descriptor) *validation.Report {
	r := validation.NewReport()

	if d == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene descriptor is nil",
		})
		return r
	}

	validateTerrain(d, r)
	validateCenterline(d, r)
	validateGuardrails(d, r)
	validateEntityIDs(d, r)
	validateFootprint(d, r)
	validateCamera(d, r)

	return r
}

func validateTerrain(d *Descriptor, r *validation.Report) {
	g := d.Terrain
	if g == nil {
		r.AddError(validation.Result{Level: validation.LevelScene, Path: "terrain", Message: "terrain grid is missing"})
		return
	}
	if len(g.Heights) != g.Resolution || g.Resolution < 2 {
		r.AddError(validation.Result{
			Level:       validation.LevelScene,
			Path:        "terrain.heights",
			Message:     fmt.Sprintf("grid has %d rows for resolution %d", len(g.Heights), g.Resolution),
			ActualValue: len(g.Heights),
			Expected:    "resolution rows, resolution >= 2",
		})
		return
	}
	for i, row := range g.Heights {
		if len(row) != g.Resolution {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        fmt.Sprintf("terrain.heights[%d]", i),
				Message:     fmt.Sprintf("row %d has %d cells, want %d", i, len(row), g.Resolution),
				ActualValue: len(row),
			})
			continue
		}
		for j, h := range row {
			if math.IsNaN(h) || math.IsInf(h, 0) {
				r.AddError(validation.Result{
					Level:       validation.LevelScene,
					Path:        fmt.Sprintf("terrain.heights[%d][%d]", i, j),
					Message:     "height is not a finite number",
					ActualValue: fmt.Sprint(h),
				})
				return
			}
		}
	}
	if g.MinElevationM > g.MaxElevationM {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Path:    "terrain.minElevation",
			Message: fmt.Sprintf("min elevation %.1f above max elevation %.1f", g.MinElevationM, g.MaxElevationM),
		})
	}
	if g.PhysicalWidthM <= 0 || g.PhysicalLengthM <= 0 {
		r.AddError(validation.Result{
			Level:    validation.LevelScene,
			Path:     "terrain",
			Message:  fmt.Sprintf("physical size %.1f x %.1f m", g.PhysicalLengthM, g.PhysicalWidthM),
			Expected: "positive length and width",
		})
	}
}

func validateCenterline(d *Descriptor, r *validation.Report) {
	if d.Road == nil {
		r.AddError(validation.Result{Level: validation.LevelScene, Path: "road", Message: "road geometry is missing"})
		return
	}
	line := d.Road.Centerline
	if len(line) < 2 {
		r.AddError(validation.Result{
			Level:       validation.LevelScene,
			Path:        "road.centerline",
			Message:     "centerline needs at least 2 points",
			ActualValue: len(line),
		})
		return
	}
	for i, p := range line {
		if !p.IsFinite() {
			r.AddError(validation.Result{
				Level:   validation.LevelScene,
				Path:    fmt.Sprintf("road.centerline[%d]", i),
				Message: "centerline point is not finite",
			})
			return
		}
		if i > 0 && p.X <= line[i-1].X {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        fmt.Sprintf("road.centerline[%d]", i),
				Message:     fmt.Sprintf("centerline x %.2f does not advance past %.2f", p.X, line[i-1].X),
				ActualValue: p.X,
				Expected:    "strictly increasing x",
			})
			return
		}
	}
}

func validateGuardrails(d *Descriptor, r *validation.Report) {
	if d.Road == nil {
		return
	}
	n := len(d.Road.Centerline)
	for i, g := range d.Road.Guardrails {
		path := fmt.Sprintf("road.guardrails[%d]", i)
		if g.StartIndex < 0 || g.EndIndex >= n || g.StartIndex >= g.EndIndex {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        path,
				Message:     fmt.Sprintf("guardrail spans [%d, %d] outside centerline of %d points", g.StartIndex, g.EndIndex, n),
				ActualValue: [2]int{g.StartIndex, g.EndIndex},
			})
		}
		if g.Side != road.SideOuter && g.Side != road.SideBoth {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        path + ".side",
				Message:     fmt.Sprintf("unknown guardrail side %q", g.Side),
				ActualValue: g.Side,
				Suggestions: []string{road.SideOuter, road.SideBoth},
			})
		}
		if g.Type != road.GuardrailStandard && g.Type != road.GuardrailMountain {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        path + ".type",
				Message:     fmt.Sprintf("unknown guardrail type %q", g.Type),
				ActualValue: g.Type,
				Suggestions: []string{road.GuardrailStandard, road.GuardrailMountain},
			})
		}
	}
}

// entityRef is a flattened environment object for the cross-class checks.
type entityRef struct {
	id   string
	path string
	pos  geo.Vec3
}

func entities(d *Descriptor) []entityRef {
	env := d.Environment
	if env == nil {
		return nil
	}
	refs := make([]entityRef, 0, env.Count())
	for i, t := range env.Trees {
		refs = append(refs, entityRef{t.ID, fmt.Sprintf("environment.trees[%d]", i), t.Position})
	}
	for i, rk := range env.Rocks {
		refs = append(refs, entityRef{rk.ID, fmt.Sprintf("environment.rocks[%d]", i), rk.Position})
	}
	for i, b := range env.Buildings {
		refs = append(refs, entityRef{b.ID, fmt.Sprintf("environment.buildings[%d]", i), b.Position})
	}
	for i, w := range env.WaterBodies {
		refs = append(refs, entityRef{w.ID, fmt.Sprintf("environment.waterBodies[%d]", i), w.Position})
	}
	return refs
}

func validateEntityIDs(d *Descriptor, r *validation.Report) {
	refs := entities(d)
	seen := make(map[string]string, len(refs))

	for _, e := range refs {
		if e.id == "" {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     "entity has empty ID",
				Path:        e.path + ".id",
				ActualValue: "",
				Expected:    "non-empty string",
			})
			continue
		}
		if prev, exists := seen[e.id]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate entity ID %q at %s and %s", e.id, prev, e.path),
				Path:        e.path + ".id",
				ActualValue: e.id,
			})
		}
		seen[e.id] = e.path
	}
}

func validateFootprint(d *Descriptor, r *validation.Report) {
	if d.Terrain == nil {
		return
	}
	const tolerance = 1.0
	g := d.Terrain
	outside := 0
	var first entityRef
	for _, e := range entities(d) {
		if !g.Contains(e.pos.X, e.pos.Z, tolerance) {
			if outside == 0 {
				first = e
			}
			outside++
		}
	}
	if outside > 0 {
		r.AddWarning(validation.Result{
			Level:       validation.LevelScene,
			Message:     fmt.Sprintf("%d entities outside the terrain footprint, first %q at (%.1f, %.1f)", outside, first.id, first.pos.X, first.pos.Z),
			Path:        first.path + ".position",
			ActualValue: outside,
		})
	}
}

func validateCamera(d *Descriptor, r *validation.Report) {
	names := make(map[string]bool, len(d.Camera.Presets))
	for i, p := range d.Camera.Presets {
		if names[p.Name] {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Path:        fmt.Sprintf("camera.presets[%d]", i),
				Message:     fmt.Sprintf("duplicate camera preset %q", p.Name),
				ActualValue: p.Name,
			})
		}
		names[p.Name] = true
	}
	if _, ok := d.Camera.Preset(d.Camera.Default); !ok {
		r.AddWarning(validation.Result{
			Level:       validation.LevelScene,
			Path:        "camera.default",
			Message:     fmt.Sprintf("default camera %q has no preset", d.Camera.Default),
			ActualValue: d.Camera.Default,
		})
	}
}
