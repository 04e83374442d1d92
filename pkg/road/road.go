// Package road builds the 3D road geometry of a climb: a sampled centerline
// in scene space plus surface, guardrail, tunnel and bridge records.
package road

import (
	"math"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

const (
	DefaultWidthM          = 6.0
	DefaultVerticalOffsetM = 2.0
	DefaultMaxSamples      = 500

	descentSlope      = -0.05 // guardrail on descents steeper than this
	steepDescentSlope = -0.1  // guardrails on both sides
	exposedAltitudeM  = 900.0 // guardrail above this whatever the slope
	mountainAltitudeM = 1200.0
)

// Params controls road sampling and dimensions. A zero WidthM or MaxSamples
// takes the default; VerticalOffsetM is used as given, so Params{} lays the
// road directly on the profile. Use DefaultParams for the reference offset.
type Params struct {
	WidthM          float64 `koanf:"width_m" json:"widthM" validate:"gt=0"`
	VerticalOffsetM float64 `koanf:"vertical_offset_m" json:"verticalOffsetM" validate:"gte=0"`
	MaxSamples      int     `koanf:"max_samples" json:"maxSamples" validate:"min=2"`
}

// DefaultParams returns the reference road settings.
func DefaultParams() Params {
	return Params{
		WidthM:          DefaultWidthM,
		VerticalOffsetM: DefaultVerticalOffsetM,
		MaxSamples:      DefaultMaxSamples,
	}
}

func (p Params) withDefaults() Params {
	if p.WidthM == 0 {
		p.WidthM = DefaultWidthM
	}
	if p.MaxSamples == 0 {
		p.MaxSamples = DefaultMaxSamples
	}
	return p
}

// Guardrail sides and types.
const (
	SideOuter = "outer"
	SideBoth  = "both"

	GuardrailStandard = "standard"
	GuardrailMountain = "mountain"
)

// Geometry is the road as handed to the scene.
type Geometry struct {
	Centerline      []geo.Vec3       `json:"centerline"`
	WidthM          float64          `json:"width"`
	SurfaceSegments []SurfaceSegment `json:"surfaceSegments"`
	Guardrails      []Guardrail      `json:"guardrails"`
	Tunnels         []Structure      `json:"tunnels"`
	Bridges         []Structure      `json:"bridges"`
}

// SurfaceSegment describes the pavement between two centerline indices
// (inclusive).
type SurfaceSegment struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Material   string `json:"material"`
	Condition  string `json:"condition"`
}

// Guardrail runs between two consecutive centerline points.
type Guardrail struct {
	StartIndex int      `json:"startIndex"`
	EndIndex   int      `json:"endIndex"`
	Start      geo.Vec3 `json:"start"`
	End        geo.Vec3 `json:"end"`
	Side       string   `json:"side"`
	Type       string   `json:"type"`
	Slope      float64  `json:"slope"`
}

// Structure is a tunnel or bridge between two centerline indices.
type Structure struct {
	StartIndex int    `json:"startIndex"`
	EndIndex   int    `json:"endIndex"`
	Name       string `json:"name,omitempty"`
}

// Build samples the profile into a centerline laid along the X axis over
// physicalLengthM metres (0: the profile span) and derives the road records.
func Build(points []profile.Point, physicalLengthM float64, params Params) (*Geometry, error) {
	if err := profile.Validate(points); err != nil {
		return nil, err
	}
	params = params.withDefaults()
	if err := validation.ValidateStruct(params); err != nil {
		return nil, err
	}

	startKm := points[0].DistanceKm
	spanKm := points[len(points)-1].DistanceKm - startKm
	if physicalLengthM == 0 {
		physicalLengthM = spanKm * 1000
	}

	samples := Sample(points, params.MaxSamples)
	centerline := make([]geo.Vec3, len(samples))
	for k, p := range samples {
		progress := (p.DistanceKm - startKm) / spanKm
		centerline[k] = geo.V(progress*physicalLengthM, p.ElevationM+params.VerticalOffsetM, 0)
	}

	return &Geometry{
		Centerline:      centerline,
		WidthM:          params.WidthM,
		SurfaceSegments: defaultSurface(len(centerline)),
		Guardrails:      Guardrails(samples, centerline),
		Tunnels:         DetectTunnels(centerline),
		Bridges:         DetectBridges(centerline),
	}, nil
}

// Sample picks at most max evenly spaced points by index, always keeping the
// first and last point.
func Sample(points []profile.Point, max int) []profile.Point {
	if max < 2 {
		max = 2
	}
	n := len(points)
	if n <= max {
		out := make([]profile.Point, n)
		copy(out, points)
		return out
	}
	out := make([]profile.Point, max)
	step := float64(n-1) / float64(max-1)
	for k := range out {
		out[k] = points[int(math.Round(float64(k)*step))]
	}
	return out
}

// defaultSurface is a single good asphalt record over the whole road. Real
// surface data would replace it.
func defaultSurface(n int) []SurfaceSegment {
	return []SurfaceSegment{{StartIndex: 0, EndIndex: n - 1, Material: "asphalt", Condition: "good"}}
}

// Guardrails emits one record per consecutive centerline pair that descends
// more steeply than 5% or starts above 900 m. samples are the profile points
// the centerline was built from; their ground elevation drives the altitude
// rules.
func Guardrails(samples []profile.Point, centerline []geo.Vec3) []Guardrail {
	out := []Guardrail{}
	for k := 0; k+1 < len(centerline); k++ {
		a, b := centerline[k], centerline[k+1]
		slope := a.Slope(b)
		elev := samples[k].ElevationM
		if slope >= descentSlope && elev <= exposedAltitudeM {
			continue
		}

		side := SideOuter
		if slope < steepDescentSlope {
			side = SideBoth
		}
		typ := GuardrailStandard
		if elev > mountainAltitudeM {
			typ = GuardrailMountain
		}
		out = append(out, Guardrail{
			StartIndex: k,
			EndIndex:   k + 1,
			Start:      a,
			End:        b,
			Side:       side,
			Type:       typ,
			Slope:      slope,
		})
	}
	return out
}

// DetectTunnels returns no tunnels until the road carries structure data.
func DetectTunnels(centerline []geo.Vec3) []Structure {
	return []Structure{}
}

// DetectBridges returns no bridges until the road carries structure data.
func DetectBridges(centerline []geo.Vec3) []Structure {
	return []Structure{}
}
