package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/cache"
	"github.com/Alexandredadadadada/velo-altitude-sub000/internal/metrics"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/climb"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/scene2d"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

const maxBodyBytes = 1 << 20

type analyzeRequest struct {
	Points []profile.Point `json:"points"`
}

// passSummary is the list view of a pass.
type passSummary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Region     string  `json:"region,omitempty"`
	LengthKm   float64 `json:"length"`
	ElevationM float64 `json:"elevation"`
	Has3D      bool    `json:"has3d"`
}

// passDetail is a pass together with its schema report.
type passDetail struct {
	*pass.Pass
	Validation *validation.Report `json:"validation"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	passes, err := s.svc.Store().List(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	stats := s.scenes.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"passes": len(passes),
		"sceneCache": map[string]any{
			"entries":   stats.Entries,
			"hits":      stats.Hits,
			"misses":    stats.Misses,
			"evictions": stats.Evictions,
			"hitRate":   stats.HitRate(),
		},
	})
}

func (s *Server) handleAnalyzeProfile(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: "invalid JSON body: " + err.Error()})
		return
	}

	start := time.Now()
	a, err := s.svc.AnalyzeProfile(req.Points)
	metrics.RecordOperation(metrics.OpAnalyze, time.Since(start), errorKind(err))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListPasses(w http.ResponseWriter, r *http.Request) {
	passes, err := s.svc.Store().List(r.Context())
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	out := make([]passSummary, len(passes))
	for i, p := range passes {
		out[i] = passSummary{
			ID:         p.ID,
			Name:       p.Name,
			Region:     p.Region,
			LengthKm:   p.LengthKm,
			ElevationM: p.ElevationM,
			Has3D:      p.HasGeodata(),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetPass(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Store().Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, passDetail{Pass: p, Validation: pass.Validate(p)})
}

func (s *Server) handlePassAnalysis(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a, err := s.svc.PassAnalysis(r.Context(), chi.URLParam(r, "id"))
	metrics.RecordOperation(metrics.OpAnalyze, time.Since(start), errorKind(err))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	v, err := s.svc.PassVisualization(r.Context(), chi.URLParam(r, "id"))
	metrics.RecordOperation(metrics.OpVisualization, time.Since(start), errorKind(err))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleVisualization3D(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	mode, err := scene.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: err.Error()})
		return
	}

	key := cache.Key("scene", struct {
		PassID string `json:"passId"`
		Params string `json:"params"`
	}{id, s.svc.ParamsKey(mode)})

	start := time.Now()
	d, hit, err := s.scenes.GetOrLoad(r.Context(), key, func(ctx context.Context) (*scene.Descriptor, error) {
		ctx, cancel := context.WithTimeout(ctx, s.opts.SceneTimeout)
		defer cancel()
		return s.svc.Pass3DVisualization(ctx, id, climb.WithMode(mode))
	})
	metrics.RecordOperation(metrics.OpVisualization3D, time.Since(start), errorKind(err))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	metrics.RecordSceneCache(hit, s.scenes.Len())

	if hit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	v, err := s.svc.PassVisualization(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		metrics.RecordOperation(metrics.OpChart, time.Since(start), errorKind(err))
		s.respondErr(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = scene2d.RenderChart(v, &buf)
	metrics.RecordOperation(metrics.OpChart, time.Since(start), errorKind(err))
	if err != nil {
		s.respondErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// errorKind is the metrics label of err, empty for success.
func errorKind(err error) string {
	if err == nil {
		return ""
	}
	_, e := classify(err)
	return e.Code
}
