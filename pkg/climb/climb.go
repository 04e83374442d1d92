// Package climb exposes the analysis and visualization operations over a
// pass store. A Service holds only its configuration and collaborators;
// every call is independent of the others.
package climb

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/analytics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/environment"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene2d"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

// Params groups the tunables of every pipeline stage.
type Params struct {
	Analysis    analytics.Options  `koanf:"analysis" json:"analysis"`
	Terrain     terrain.Params     `koanf:"terrain" json:"terrain"`
	Road        road.Params        `koanf:"road" json:"road"`
	Environment environment.Params `koanf:"environment" json:"environment"`
}

// DefaultParams returns the reference settings of all stages.
func DefaultParams() Params {
	return Params{
		Analysis:    analytics.DefaultOptions(),
		Terrain:     terrain.DefaultParams(),
		Road:        road.DefaultParams(),
		Environment: environment.DefaultParams(),
	}
}

// Service runs the pipelines against passes read from a Store.
type Service struct {
	store  pass.Store
	params Params
	log    zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithParams replaces the default stage parameters.
func WithParams(p Params) Option {
	return func(s *Service) { s.params = p }
}

// WithLogger sets the logger used for per-operation debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// New creates a Service reading passes from store.
func New(store pass.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		params: DefaultParams(),
		log:    logging.WithComponent("climb"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Params returns the stage parameters in use.
func (s *Service) Params() Params { return s.params }

// Store returns the pass store the service reads from.
func (s *Service) Store() pass.Store { return s.store }

// AnalyzeProfile segments and scores a raw elevation profile.
func (s *Service) AnalyzeProfile(points []profile.Point) (*analytics.Analysis, error) {
	start := time.Now()
	a, err := analytics.Analyze(points, s.params.Analysis)
	if err != nil {
		return nil, err
	}
	s.log.Debug().
		Int("points", len(points)).
		Int("segments", len(a.Segments)).
		Int("score", a.DifficultyScore.Score).
		Dur("took", time.Since(start)).
		Msg("profile analyzed")
	return a, nil
}

// PassAnalysis analyzes the stored profile of a pass.
func (s *Service) PassAnalysis(ctx context.Context, id string) (*analytics.Analysis, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeProfile(p.ElevationProfile)
}

// PassVisualization returns the colour-segmented profile of a pass.
func (s *Service) PassVisualization(ctx context.Context, id string) (*scene2d.Visualization, error) {
	start := time.Now()
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := analytics.Analyze(p.ElevationProfile, s.params.Analysis)
	if err != nil {
		return nil, err
	}
	v := scene2d.Assemble2D(p, a)
	s.log.Debug().
		Str("pass", id).
		Int("segments", len(v.Segments)).
		Dur("took", time.Since(start)).
		Msg("pass visualization")
	return v, nil
}

// SceneOption adjusts a single 3D synthesis.
type SceneOption func(*sceneConfig)

type sceneConfig struct {
	mode scene.Mode
}

// WithMode selects day or night lighting.
func WithMode(m scene.Mode) SceneOption {
	return func(c *sceneConfig) { c.mode = m }
}

// Pass3DVisualization synthesizes the 3D scene of a pass: terrain, road,
// environment, lighting and camera presets. Passes without coordinates fail
// with *validation.MissingGeodataError.
func (s *Service) Pass3DVisualization(ctx context.Context, id string, opts ...SceneOption) (*scene.Descriptor, error) {
	start := time.Now()
	cfg := sceneConfig{mode: scene.ModeDay}
	for _, opt := range opts {
		opt(&cfg)
	}

	p, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.HasGeodata() {
		return nil, &validation.MissingGeodataError{PassID: p.ID}
	}

	segments, err := profile.Segmenter{TargetLengthKm: s.params.Analysis.SegmentLengthKm}.Split(p.ElevationProfile)
	if err != nil {
		return nil, err
	}
	summary := profile.Summarize(p.ElevationProfile, segments)

	grid, err := terrain.Synthesize(ctx, p.ElevationProfile, s.params.Terrain)
	if err != nil {
		return nil, err
	}
	rd, err := road.Build(p.ElevationProfile, grid.PhysicalLengthM, s.params.Road)
	if err != nil {
		return nil, err
	}
	env, report := environment.Populate(environment.Input{
		Grid:          grid,
		RouteLengthKm: summary.TotalDistanceKm,
		POIs:          p.PointsOfInterest,
		Seed:          environment.SeedFor(p.ID),
	}, s.params.Environment)
	if err := report.Err(); err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		s.log.Warn().Str("pass", id).Str("path", w.Path).Msg(w.Message)
	}

	d := scene.Assemble(scene.Input{
		PassID:      p.ID,
		Name:        p.Name,
		Summary:     summary,
		Terrain:     grid,
		Road:        rd,
		Environment: env,
		Route:       p.Route(),
		Mode:        cfg.mode,
		ParamsKey:   s.ParamsKey(cfg.mode),
	})

	ev := s.log.Debug()
	if ev.Enabled() {
		ev = ev.Interface("terrainTypes", grid.TypeCounts())
	}
	ev.Str("pass", id).
		Str("mode", string(cfg.mode)).
		Int("segments", len(segments)).
		Int("resolution", grid.Resolution).
		Int("objects", env.Count()).
		Dur("took", time.Since(start)).
		Msg("3d visualization")
	return d, nil
}

// ParamsKey is the stable encoding of everything besides the pass that a
// 3D scene depends on. Equal keys yield equal scenes for the same pass.
func (s *Service) ParamsKey(mode scene.Mode) string {
	if mode == "" {
		mode = scene.ModeDay
	}
	b, err := json.Marshal(struct {
		Params
		Mode scene.Mode `json:"mode"`
	}{s.params, mode})
	if err != nil {
		return fmt.Sprintf("%+v/%s", s.params, mode)
	}
	return string(b)
}
