// Package terrain synthesizes a heightmap around a climb from its elevation
// profile. The grid runs along the route on its first axis and across it on
// the second; the route itself follows the middle column.
//
// Synthesis is a pure function of its inputs. The variation added to the
// profile elevation is a sum of sinusoids over the cell indices, so the same
// profile and parameters always produce the same heights.
package terrain

import (
	"context"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

const (
	DefaultWidthM            = 2000.0
	DefaultGridResolution    = 128
	DefaultHeightScale       = 1.0
	DefaultParallelThreshold = 65536 // cells; 256x256 and up run row-parallel

	floorBelowMinM = 200.0 // heights never drop more than this below the lowest profile point
	valleyStart    = 0.4   // fraction of half-width where the valley falloff begins
	valleyDepthM   = 150.0
	noiseBaseM     = 10.0  // noise amplitude on the centerline
	noiseLateralM  = 190.0 // extra amplitude at the grid edge
)

// Params controls the size and resolution of the synthesized grid.
type Params struct {
	WidthM         float64 `koanf:"width_m" json:"widthM" validate:"gt=0"`
	LengthM        float64 `koanf:"length_m" json:"lengthM" validate:"gte=0"` // 0: profile span
	GridResolution int     `koanf:"grid_resolution" json:"gridResolution" validate:"min=2,max=1024"`
	HeightScale    float64 `koanf:"height_scale" json:"heightScale" validate:"gt=0"`
	// ParallelThreshold is the cell count from which rows are computed
	// concurrently. It does not affect the output.
	ParallelThreshold int `koanf:"parallel_threshold" json:"-" validate:"gte=0"`
}

// DefaultParams returns the reference grid settings.
func DefaultParams() Params {
	return Params{
		WidthM:            DefaultWidthM,
		GridResolution:    DefaultGridResolution,
		HeightScale:       DefaultHeightScale,
		ParallelThreshold: DefaultParallelThreshold,
	}
}

// withDefaults fills zero fields before validation. LengthM stays 0 and is
// resolved against the profile by Synthesize.
func (p Params) withDefaults() Params {
	if p.WidthM == 0 {
		p.WidthM = DefaultWidthM
	}
	if p.GridResolution == 0 {
		p.GridResolution = DefaultGridResolution
	}
	if p.HeightScale == 0 {
		p.HeightScale = DefaultHeightScale
	}
	if p.ParallelThreshold == 0 {
		p.ParallelThreshold = DefaultParallelThreshold
	}
	return p
}

// Grid is a synthesized heightmap. Heights[i][j] is the terrain elevation in
// metres at along-route index i and lateral index j.
type Grid struct {
	Heights         [][]float64 `json:"heights"`
	Resolution      int         `json:"resolution"`
	PhysicalWidthM  float64     `json:"physicalWidth"`
	PhysicalLengthM float64     `json:"physicalLength"`
	MinElevationM   float64     `json:"minElevation"`
	MaxElevationM   float64     `json:"maxElevation"`
	Bands           []Band      `json:"terrainTypes"`
}

// sampler holds what a row worker needs to compute one row.
type sampler struct {
	points      []profile.Point
	startKm     float64
	spanKm      float64
	res         int
	widthM      float64
	heightScale float64
	floorM      float64
}

// Synthesize builds the terrain grid for a profile. It fails with
// *validation.InvalidProfileError for unusable profiles and with
// *validation.FieldErrors for out-of-range parameters.
func Synthesize(ctx context.Context, points []profile.Point, params Params) (*Grid, error) {
	if err := profile.Validate(points); err != nil {
		return nil, err
	}
	params = params.withDefaults()
	if err := validation.ValidateStruct(params); err != nil {
		return nil, err
	}

	startKm := points[0].DistanceKm
	spanKm := points[len(points)-1].DistanceKm - startKm
	length := params.LengthM
	if length == 0 {
		length = spanKm * 1000
	}

	minElev := math.Inf(1)
	for _, p := range points {
		minElev = math.Min(minElev, p.ElevationM)
	}

	s := sampler{
		points:      points,
		startKm:     startKm,
		spanKm:      spanKm,
		res:         params.GridResolution,
		widthM:      params.WidthM,
		heightScale: params.HeightScale,
		floorM:      minElev - floorBelowMinM,
	}

	heights := make([][]float64, s.res)
	if s.res*s.res >= params.ParallelThreshold {
		if err := s.fillParallel(ctx, heights); err != nil {
			return nil, err
		}
	} else {
		for i := range heights {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			heights[i] = s.row(i)
		}
	}

	g := &Grid{
		Heights:         heights,
		Resolution:      s.res,
		PhysicalWidthM:  s.widthM,
		PhysicalLengthM: length,
		Bands:           DefaultBands(),
	}
	g.MinElevationM, g.MaxElevationM = heightRange(heights)
	return g, nil
}

func (s sampler) fillParallel(ctx context.Context, heights [][]float64) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range heights {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			heights[i] = s.row(i)
			return nil
		})
	}
	return g.Wait()
}

// row computes the heights of along-route index i.
func (s sampler) row(i int) []float64 {
	last := float64(s.res - 1)
	progress := float64(i) / last
	base := profile.ElevationAt(s.points, s.startKm+progress*s.spanKm)

	row := make([]float64, s.res)
	half := s.widthM / 2
	for j := range row {
		lateral := (float64(j)/last - 0.5) * s.widthM
		ratio := math.Abs(lateral) / half

		amplitude := noiseBaseM + noiseLateralM*ratio
		h := base + noise(i, j)*amplitude*s.heightScale
		if ratio > valleyStart {
			h -= (ratio - valleyStart) / (1 - valleyStart) * valleyDepthM * s.heightScale
		}
		row[j] = math.Max(h, s.floorM)
	}
	return row
}

// noise is a smooth deterministic variation in [-1, 1] built from three
// sinusoids over the cell indices.
func noise(i, j int) float64 {
	x, y := float64(i), float64(j)
	return math.Sin(x*0.1)*math.Cos(y*0.1)*0.5 +
		math.Sin(x*0.05+y*0.07)*0.3 +
		math.Sin(x*0.23)*math.Sin(y*0.19)*0.2
}

func heightRange(heights [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, row := range heights {
		for _, h := range row {
			lo = math.Min(lo, h)
			hi = math.Max(hi, h)
		}
	}
	return lo, hi
}
