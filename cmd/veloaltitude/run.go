package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/logging"
	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/metrics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/server"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/climb"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene2d"
)

var errInvalid = errors.New("pass records have validation errors")

// loadPass loads one pass record and wraps it in a single-pass service.
func (a *app) loadPass(path string) (*climb.Service, *pass.Pass, error) {
	p, err := pass.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading pass: %w", err)
	}
	svc := climb.New(pass.NewMemoryStore(p), climb.WithParams(a.cfg.Climb()))
	return svc, p, nil
}

func (a *app) runAnalyze(ctx context.Context, w io.Writer, path string, asJSON bool) error {
	svc, p, err := a.loadPass(path)
	if err != nil {
		return err
	}
	analysis, err := svc.PassAnalysis(ctx, p.ID)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, analysis)
	}
	printAnalysis(w, p, analysis)
	return nil
}

func (a *app) runVisualize(ctx context.Context, w io.Writer, path string) error {
	svc, p, err := a.loadPass(path)
	if err != nil {
		return err
	}
	v, err := svc.PassVisualization(ctx, p.ID)
	if err != nil {
		return err
	}
	return writeJSON(w, v)
}

func (a *app) runScene(ctx context.Context, w io.Writer, path, modeName string) error {
	mode, err := scene.ParseMode(modeName)
	if err != nil {
		return err
	}
	svc, p, err := a.loadPass(path)
	if err != nil {
		return err
	}
	d, err := svc.Pass3DVisualization(ctx, p.ID, climb.WithMode(mode))
	if err != nil {
		return err
	}
	if report := scene.ValidateDescriptor(d); !report.Valid {
		printValidationReport(os.Stderr, report)
		return fmt.Errorf("scene %s failed structural checks", d.ID)
	}
	return writeJSON(w, d)
}

func (a *app) runChart(ctx context.Context, w io.Writer, path, out string) error {
	svc, p, err := a.loadPass(path)
	if err != nil {
		return err
	}
	v, err := svc.PassVisualization(ctx, p.ID)
	if err != nil {
		return err
	}
	if out == "" {
		return scene2d.RenderChart(v, w)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := scene2d.RenderChart(v, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s\n", out)
	return nil
}

// runValidate checks a single record or every record of a directory.
func (a *app) runValidate(w io.Writer, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	var passes []*pass.Pass
	if info.IsDir() {
		passes, err = pass.LoadDir(path)
	} else {
		var p *pass.Pass
		p, err = pass.Load(path)
		passes = []*pass.Pass{p}
	}
	if err != nil {
		return err
	}

	valid := true
	for i, p := range passes {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%s)\n", p.Name, p.ID)
		report := pass.Validate(p)
		printValidationReport(w, report)
		valid = valid && report.Valid
	}
	if !valid {
		return errInvalid
	}
	return nil
}

// runEnrich fills coordinates_3d by sampling the elevation profile along
// the route and writes the record back out as YAML.
func (a *app) runEnrich(ctx context.Context, w io.Writer, path, out string) error {
	p, err := pass.Load(path)
	if err != nil {
		return fmt.Errorf("loading pass: %w", err)
	}
	if err := pass.Enrich3D(ctx, p, pass.ProfileAltitude(p)); err != nil {
		return err
	}

	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	if out == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s (%d points)\n", out, len(p.Coordinates3D))
	return nil
}

func (a *app) runServe(ctx context.Context, dir string) error {
	passes, err := pass.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("loading passes: %w", err)
	}
	for _, p := range passes {
		report := pass.Validate(p)
		if !report.Valid {
			return fmt.Errorf("pass %s: %w", p.ID, report.Err())
		}
		for _, warn := range report.Warnings {
			logging.Warn().Str("pass", p.ID).Str("path", warn.Path).Msg(warn.Message)
		}
		logging.Debug().
			Str("pass", p.ID).
			Int("points", len(p.ElevationProfile)).
			Bool("has3d", p.HasGeodata()).
			Msg("pass ready")
	}
	metrics.PassesLoaded.Set(float64(len(passes)))
	logging.Info().Int("passes", len(passes)).Str("dir", dir).Msg("passes loaded")

	svc := climb.New(pass.NewMemoryStore(passes...), climb.WithParams(a.cfg.Climb()))
	srv := server.New(svc, server.Options{
		Port:          a.cfg.Server.Port,
		RateLimit:     a.cfg.Server.RateLimit,
		RateWindow:    a.cfg.Server.RateWindow,
		CacheTTL:      a.cfg.Server.CacheTTL,
		CacheCapacity: a.cfg.Server.CacheCapacity,
		SceneTimeout:  a.cfg.Server.SceneTimeout,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := srv.Start(ctx); err != nil {
		logging.Error().Err(err).Int("port", a.cfg.Server.Port).Msg("server stopped")
		return err
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
