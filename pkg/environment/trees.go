package environment

import (
	"fmt"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
)

// Species by altitude band.
const (
	SpeciesDeciduous  = "deciduous"
	SpeciesConiferous = "coniferous"
	SpeciesAlpine     = "alpine"
)

const (
	deciduousMaxM  = 800.0
	coniferousMaxM = 1500.0
)

// Tree is a placed tree.
type Tree struct {
	ID       string   `json:"id"`
	Species  string   `json:"type"`
	Position geo.Vec3 `json:"position"`
	Height   float64  `json:"size"`
	CanopyD  float64  `json:"canopyDiameter"`
}

// SpeciesAt returns the species growing at an altitude.
func SpeciesAt(altitudeM float64) string {
	switch {
	case altitudeM < deciduousMaxM:
		return SpeciesDeciduous
	case altitudeM <= coniferousMaxM:
		return SpeciesConiferous
	default:
		return SpeciesAlpine
	}
}

// trees draws one candidate per 50 m of route and drops those above the
// treeline. It returns the placed trees and the number dropped.
func (p *placer) trees(treelineM float64) ([]Tree, int) {
	n := int(p.grid.PhysicalLengthM / treeSpacingM)
	trees := make([]Tree, 0, n)
	dropped := 0

	for k := 0; k < n; k++ {
		pos := p.groundPoint()
		// size draws happen before the treeline test so the stream does not
		// depend on which candidates survive
		grow := p.rng.Float64()
		spread := p.rng.Float64()
		if pos.Y > treelineM {
			dropped++
			continue
		}

		species := SpeciesAt(pos.Y)
		var h, c float64
		switch species {
		case SpeciesDeciduous:
			h, c = 8.0+7.0*grow, 4.0+4.0*spread // 8-15m, 4-8m
		case SpeciesConiferous:
			h, c = 10.0+15.0*grow, 3.0+3.0*spread // 10-25m, 3-6m
		default:
			h, c = 2.0+3.0*grow, 1.5+1.5*spread // 2-5m, 1.5-3m
		}

		trees = append(trees, Tree{
			ID:       fmt.Sprintf("tree_%05d", len(trees)),
			Species:  species,
			Position: pos,
			Height:   h,
			CanopyD:  c,
		})
	}
	return trees, dropped
}
