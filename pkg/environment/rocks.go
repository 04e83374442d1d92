package environment

import (
	"fmt"
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
)

// Rock kinds.
const (
	RockBoulder = "boulder"
	RockStone   = "stone"
)

// maxRockDraws bounds the rejection sampling per rock. The last draw is kept
// when none is accepted.
const maxRockDraws = 8

// Rock is a placed rock.
type Rock struct {
	ID       string   `json:"id"`
	Kind     string   `json:"type"`
	Position geo.Vec3 `json:"position"`
	Size     float64  `json:"size"`     // metres across
	Rotation float64  `json:"rotation"` // radians about the vertical axis
}

// rocks places one rock per 100 m of route. Candidate positions are
// accepted with probability 0.3 + 0.7 x normalized height, which pushes
// rocks toward the high ground.
func (p *placer) rocks() []Rock {
	n := int(p.grid.PhysicalLengthM / rockSpacingM)
	rocks := make([]Rock, 0, n)

	for k := 0; k < n; k++ {
		var pos geo.Vec3
		var norm float64
		for d := 0; d < maxRockDraws; d++ {
			pos = p.groundPoint()
			norm = p.grid.Normalized(pos.Y)
			if p.rng.Float64() < 0.3+0.7*norm {
				break
			}
		}

		kind := RockStone
		size := p.between(0.3, 1.5)
		if norm > 0.6 {
			kind = RockBoulder
			size = p.between(1.5, 4.0)
		}
		rocks = append(rocks, Rock{
			ID:       fmt.Sprintf("rock_%05d", k),
			Kind:     kind,
			Position: pos,
			Size:     size,
			Rotation: p.rng.Float64() * 2 * math.Pi,
		})
	}
	return rocks
}
