package scene

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/environment"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
)

// sceneInput runs the synthesis pipeline over a small profile topping out
// at summit metres.
func sceneInput(t testing.TB, summit float64) Input {
	t.Helper()
	pts := profile.Points([2]float64{0, summit - 900}, [2]float64{3, summit - 500}, [2]float64{6, summit})

	segs, err := profile.Split(pts)
	require.NoError(t, err)
	grid, err := terrain.Synthesize(context.Background(), pts, terrain.Params{GridResolution: 24})
	require.NoError(t, err)
	rd, err := road.Build(pts, grid.PhysicalLengthM, road.Params{})
	require.NoError(t, err)
	env, report := environment.Populate(environment.Input{
		Grid:          grid,
		RouteLengthKm: 6,
		Seed:          environment.SeedFor("test-pass"),
		POIs:          []pass.POI{{Name: "Refuge", Type: pass.POIRefuge, Location: "km 4"}},
	}, environment.DefaultParams())
	require.True(t, report.Valid)

	return Input{
		PassID:      "test-pass",
		Name:        "Test Pass",
		Summary:     profile.Summarize(pts, segs),
		Terrain:     grid,
		Road:        rd,
		Environment: env,
		ParamsKey:   "res=24",
	}
}

func TestAssembleDayLowAltitude(t *testing.T) {
	d := Assemble(sceneInput(t, 1600))

	assert.Equal(t, ModeDay, d.Metadata.Mode)
	assert.Equal(t, 1600.0, d.Metadata.MaxAltitudeM)
	assert.Equal(t, "#ffffff", d.Lighting.Ambient.Color)
	assert.Equal(t, 0.00025, d.Lighting.Fog.Density)
	assert.True(t, d.Lighting.Sun.CastShadow)
	require.NotNil(t, d.Lighting.Sun.Position)
	assert.Equal(t, 4600.0, d.Lighting.Sun.Position.Y)

	assert.Equal(t, "atmospheric", d.Effects.Sky.Type)
	assert.Equal(t, 0.4, d.Effects.Clouds.Coverage)
	assert.Equal(t, 2100.0, d.Effects.Clouds.AltitudeM)
	assert.False(t, d.Effects.PostProcessing.Bloom)
}

func TestAssembleHighAltitude(t *testing.T) {
	low := Assemble(sceneInput(t, 1900))
	high := Assemble(sceneInput(t, 2642))

	assert.Equal(t, low.Lighting.Fog.Density/2, high.Lighting.Fog.Density)
	assert.Equal(t, "#dde8ff", high.Lighting.Ambient.Color)
	assert.Less(t, high.Effects.Clouds.Coverage, low.Effects.Clouds.Coverage)
	assert.Less(t, high.Effects.Sky.Turbidity, low.Effects.Sky.Turbidity)
}

func TestAssembleNight(t *testing.T) {
	in := sceneInput(t, 2200)
	in.Mode = ModeNight
	d := Assemble(in)

	assert.Equal(t, "starfield", d.Effects.Sky.Type)
	assert.True(t, d.Effects.PostProcessing.Bloom)
	assert.Equal(t, "#141c3a", d.Lighting.Ambient.Color)
	assert.Equal(t, 0.0002, d.Lighting.Fog.Density)
	assert.False(t, d.Lighting.Sun.CastShadow)
}

func TestDescriptorIDDeterministic(t *testing.T) {
	a := Assemble(sceneInput(t, 1600))
	b := Assemble(sceneInput(t, 1600))
	assert.Equal(t, a.ID, b.ID)

	id, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(5), id.Version())

	assert.NotEqual(t, DescriptorID("test-pass", "res=24"), DescriptorID("test-pass", "res=48"))
	assert.NotEqual(t, DescriptorID("a", "bc"), DescriptorID("ab", "c"))
}

func TestAssembleCamera(t *testing.T) {
	in := sceneInput(t, 1600)
	d := Assemble(in)

	require.Len(t, d.Camera.Presets, 4)
	for _, name := range []string{CameraStart, CameraMid, CameraSummit, CameraOverview} {
		_, ok := d.Camera.Preset(name)
		assert.True(t, ok, "missing preset %s", name)
	}
	summit, _ := d.Camera.Preset(CameraSummit)
	line := in.Road.Centerline
	assert.Equal(t, line[len(line)-1], summit.Target)

	overview, _ := d.Camera.Preset(CameraOverview)
	assert.Equal(t, in.Terrain.PhysicalLengthM/2, overview.Target.X)
	assert.Equal(t, CameraOverview, d.Camera.Default)
	assert.Greater(t, d.Camera.Follow.DistanceM, 0.0)
}

func TestAssembleTextures(t *testing.T) {
	d := Assemble(sceneInput(t, 1600))
	for _, b := range terrain.DefaultBands() {
		ref, ok := d.Textures.Terrain[b.Type]
		assert.True(t, ok, "no texture for %s", b.Type)
		assert.Contains(t, ref.Diffuse, string(b.Type))
	}
	assert.Contains(t, d.Textures.Road, "asphalt")
	assert.Len(t, d.Textures.Vegetation, 3)
}

func TestAssembleGeoBounds(t *testing.T) {
	in := sceneInput(t, 1600)
	assert.Nil(t, Assemble(in).GeoBounds)

	in.Route = geo.LineString([][2]float64{{6.40, 45.16}, {6.43, 45.06}})
	b := Assemble(in).GeoBounds
	require.NotNil(t, b)
	assert.Equal(t, 45.06, b.MinLat)
	assert.Equal(t, 6.43, b.MaxLon)
}

func TestAssembleWithoutGeometry(t *testing.T) {
	d := Assemble(Input{PassID: "bare", Summary: profile.Summary{MinElevationM: 100, MaxElevationM: 300}})
	require.Len(t, d.Camera.Presets, 1)
	assert.Equal(t, CameraOverview, d.Camera.Presets[0].Name)

	r := ValidateDescriptor(d)
	assert.False(t, r.Valid)
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeDay, "day": ModeDay, "night": ModeNight} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseMode("dusk")
	assert.Error(t, err)
}
