package road

import (
	"errors"
	"math"
	"testing"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/validation"
)

func build(t *testing.T, pts []profile.Point, length float64, params Params) *Geometry {
	t.Helper()
	g, err := Build(pts, length, params)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func longProfile(n int) []profile.Point {
	pts := make([]profile.Point, n)
	for i := range pts {
		pts[i] = profile.Pt(float64(i)*0.01, 800+float64(i)*0.7)
	}
	return pts
}

func TestBuildCenterline(t *testing.T) {
	pts := profile.Points([2]float64{0, 1000}, [2]float64{1, 1100}, [2]float64{2, 1300}, [2]float64{5, 1600})
	g := build(t, pts, 0, DefaultParams())

	want := []geo.Vec3{
		geo.V(0, 1002, 0),
		geo.V(1000, 1102, 0),
		geo.V(2000, 1302, 0),
		geo.V(5000, 1602, 0),
	}
	if len(g.Centerline) != len(want) {
		t.Fatalf("centerline has %d points, want %d", len(g.Centerline), len(want))
	}
	for i := range want {
		if got := g.Centerline[i]; math.Abs(got.X-want[i].X) > 1e-9 || got.Y != want[i].Y || got.Z != want[i].Z {
			t.Errorf("centerline[%d] = %+v, want %+v", i, g.Centerline[i], want[i])
		}
	}
	if g.WidthM != DefaultWidthM {
		t.Errorf("width = %v, want %v", g.WidthM, DefaultWidthM)
	}
}

func TestBuildScalesToPhysicalLength(t *testing.T) {
	pts := profile.Points([2]float64{2, 500}, [2]float64{4, 600})
	g := build(t, pts, 1000, Params{VerticalOffsetM: 0.5})
	last := g.Centerline[len(g.Centerline)-1]
	if last.X != 1000 || last.Y != 600.5 {
		t.Errorf("last point = %+v, want x=1000 y=600.5", last)
	}
	if g.Centerline[0].X != 0 {
		t.Errorf("centerline should start at x=0, got %v", g.Centerline[0].X)
	}
}

func TestBuildSamplesAtMost500(t *testing.T) {
	pts := longProfile(1801)
	g := build(t, pts, 0, Params{})
	if len(g.Centerline) != DefaultMaxSamples {
		t.Fatalf("centerline has %d points, want %d", len(g.Centerline), DefaultMaxSamples)
	}
	first, last := g.Centerline[0], g.Centerline[len(g.Centerline)-1]
	if first.X != 0 || math.Abs(last.X-18000) > 1e-6 {
		t.Errorf("sampling must keep both ends, got x=%v..%v", first.X, last.X)
	}
	for i := 1; i < len(g.Centerline); i++ {
		if g.Centerline[i].X <= g.Centerline[i-1].X {
			t.Fatalf("centerline not strictly increasing at %d", i)
		}
	}
}

func TestBuildZeroOffsetKeepsElevation(t *testing.T) {
	pts := profile.Points([2]float64{0, 1000}, [2]float64{1, 1100})
	g := build(t, pts, 0, Params{})
	if g.Centerline[0].Y != 1000 || g.Centerline[1].Y != 1100 {
		t.Errorf("centerline = %+v, want y on the profile", g.Centerline)
	}
	if g.WidthM != DefaultWidthM {
		t.Errorf("width = %v, want %v", g.WidthM, DefaultWidthM)
	}
}

func TestSampleClampsToEnds(t *testing.T) {
	pts := longProfile(10)
	for _, max := range []int{-1, 0, 1} {
		got := Sample(pts, max)
		if len(got) != 2 {
			t.Fatalf("Sample(max=%d) returned %d points, want 2", max, len(got))
		}
		if got[0] != pts[0] || got[1] != pts[9] {
			t.Errorf("Sample(max=%d) = %+v, want both ends", max, got)
		}
	}
}

func TestSampleShortProfileUnchanged(t *testing.T) {
	pts := longProfile(10)
	got := Sample(pts, 500)
	if len(got) != 10 {
		t.Fatalf("got %d samples, want 10", len(got))
	}
	got[0].ElevationM = -1
	if pts[0].ElevationM == -1 {
		t.Error("Sample must not alias its input")
	}
}

func TestBuildSurfaceAndStructures(t *testing.T) {
	g := build(t, longProfile(20), 0, Params{})
	if len(g.SurfaceSegments) != 1 {
		t.Fatalf("surface segments = %d, want 1", len(g.SurfaceSegments))
	}
	s := g.SurfaceSegments[0]
	if s.StartIndex != 0 || s.EndIndex != 19 || s.Material != "asphalt" || s.Condition != "good" {
		t.Errorf("unexpected surface %+v", s)
	}
	if g.Tunnels == nil || len(g.Tunnels) != 0 || g.Bridges == nil || len(g.Bridges) != 0 {
		t.Error("tunnels and bridges should be empty, non-nil")
	}
}

func TestGuardrailRules(t *testing.T) {
	pts := profile.Points(
		[2]float64{0, 500},
		[2]float64{1, 440}, // -6%: outer
		[2]float64{2, 300}, // -14%: both
		[2]float64{3, 310}, // climbing, low: none
		[2]float64{4, 311},
	)
	g := build(t, pts, 0, Params{})

	if len(g.Guardrails) != 2 {
		t.Fatalf("guardrails = %d, want 2: %+v", len(g.Guardrails), g.Guardrails)
	}
	if gr := g.Guardrails[0]; gr.StartIndex != 0 || gr.Side != SideOuter || gr.Type != GuardrailStandard {
		t.Errorf("first guardrail = %+v", gr)
	}
	if gr := g.Guardrails[1]; gr.StartIndex != 1 || gr.Side != SideBoth {
		t.Errorf("second guardrail = %+v", gr)
	}
}

func TestGuardrailAltitude(t *testing.T) {
	pts := profile.Points(
		[2]float64{0, 950},  // exposed, climbing: outer standard
		[2]float64{1, 1250}, // above 1200: mountain
		[2]float64{2, 1300},
	)
	g := build(t, pts, 0, Params{})
	if len(g.Guardrails) != 2 {
		t.Fatalf("guardrails = %d, want 2", len(g.Guardrails))
	}
	if g.Guardrails[0].Type != GuardrailStandard || g.Guardrails[0].Side != SideOuter {
		t.Errorf("first guardrail = %+v", g.Guardrails[0])
	}
	if g.Guardrails[1].Type != GuardrailMountain {
		t.Errorf("second guardrail type = %s, want mountain", g.Guardrails[1].Type)
	}
}

func TestGuardrailSlopeBoundary(t *testing.T) {
	// exactly -5% below 900 m is not steep enough
	pts := profile.Points([2]float64{0, 600}, [2]float64{1, 550})
	g := build(t, pts, 0, Params{})
	if len(g.Guardrails) != 0 {
		t.Errorf("expected no guardrail at exactly -5%%, got %+v", g.Guardrails)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(profile.Points([2]float64{0, 1}), 0, Params{}); !errors.Is(err, validation.ErrInvalidProfile) {
		t.Errorf("expected invalid profile, got %v", err)
	}
	var fe *validation.FieldErrors
	if _, err := Build(longProfile(5), 0, Params{MaxSamples: 1}); !errors.As(err, &fe) {
		t.Errorf("expected field errors, got %v", err)
	}
}
