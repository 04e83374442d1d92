package environment

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/pass"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
)

func synthGrid(t *testing.T, pts ...[2]float64) *terrain.Grid {
	t.Helper()
	g, err := terrain.Synthesize(context.Background(), profile.Points(pts...), terrain.Params{GridResolution: 32})
	require.NoError(t, err)
	return g
}

// flatGrid is a 10 km x 2 km plateau at elevation m.
func flatGrid(m float64) *terrain.Grid {
	heights := make([][]float64, 3)
	for i := range heights {
		heights[i] = []float64{m, m, m}
	}
	return &terrain.Grid{
		Heights:         heights,
		Resolution:      3,
		PhysicalWidthM:  2000,
		PhysicalLengthM: 10000,
		MinElevationM:   m,
		MaxElevationM:   m,
		Bands:           terrain.DefaultBands(),
	}
}

func TestSeedFor(t *testing.T) {
	assert.Equal(t, SeedFor("alpe-dhuez"), SeedFor("alpe-dhuez"))
	assert.NotEqual(t, SeedFor("alpe-dhuez"), SeedFor("galibier"))
	// FNV-64a offset basis
	assert.Equal(t, uint64(0xcbf29ce484222325), SeedFor(""))
}

func TestPopulateDeterministic(t *testing.T) {
	g := synthGrid(t, [2]float64{0, 600}, [2]float64{5, 1400}, [2]float64{8, 2100})
	in := Input{Grid: g, RouteLengthKm: 8, Seed: SeedFor("galibier"), POIs: []pass.POI{
		{Name: "Refuge", Type: pass.POIRefuge, Location: "km 6"},
	}}

	a, _ := Populate(in, DefaultParams())
	b, _ := Populate(in, DefaultParams())
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different environments:\n%s", diff)
	}

	in.Seed = SeedFor("tourmalet")
	c, _ := Populate(in, DefaultParams())
	assert.NotEqual(t, a.Trees[0].Position, c.Trees[0].Position)
}

func TestPopulateTrees(t *testing.T) {
	g := synthGrid(t, [2]float64{0, 400}, [2]float64{5, 1300})
	set, report := Populate(Input{Grid: g, Seed: 7}, DefaultParams())
	require.True(t, report.Valid)

	// every candidate lies below the 1800 m treeline
	assert.Len(t, set.Trees, int(g.PhysicalLengthM/treeSpacingM))
	for _, tr := range set.Trees {
		assert.Equal(t, SpeciesAt(tr.Position.Y), tr.Species, "tree %s", tr.ID)
		assert.True(t, g.Contains(tr.Position.X, tr.Position.Z, 0), "tree %s outside grid", tr.ID)
		assert.GreaterOrEqual(t, math.Abs(tr.Position.Z), roadClearanceM, "tree %s on the road", tr.ID)
		assert.Greater(t, tr.Height, 0.0)
	}
}

func TestPopulateTreeline(t *testing.T) {
	g := synthGrid(t, [2]float64{0, 2000}, [2]float64{4, 2400})
	set, report := Populate(Input{Grid: g, Seed: 1}, Params{TreelineM: 1000})
	assert.Empty(t, set.Trees)
	require.Len(t, report.Info, 1)
	assert.Contains(t, report.Info[0].Message, "placed 0 trees")

	set, _ = Populate(Input{Grid: g, Seed: 1}, Params{TreelineM: 2200})
	for _, tr := range set.Trees {
		assert.LessOrEqual(t, tr.Position.Y, 2200.0)
		assert.Equal(t, SpeciesAlpine, tr.Species)
	}
}

func TestPopulateRocks(t *testing.T) {
	g := synthGrid(t, [2]float64{0, 900}, [2]float64{6, 1700})
	set, _ := Populate(Input{Grid: g, Seed: 99}, DefaultParams())

	require.Len(t, set.Rocks, int(g.PhysicalLengthM/rockSpacingM))
	for _, r := range set.Rocks {
		assert.True(t, g.Contains(r.Position.X, r.Position.Z, 0))
		assert.Contains(t, []string{RockBoulder, RockStone}, r.Kind)
		assert.Greater(t, r.Size, 0.0)
	}
}

func TestRocksFavourHighGround(t *testing.T) {
	g := synthGrid(t, [2]float64{0, 500}, [2]float64{20, 2500})
	set, _ := Populate(Input{Grid: g, Seed: 3}, DefaultParams())

	share := func(heights []float64) float64 {
		high := 0
		for _, h := range heights {
			if g.Normalized(h) > 0.5 {
				high++
			}
		}
		return float64(high) / float64(len(heights))
	}

	var cells, rocks []float64
	for _, row := range g.Heights {
		cells = append(cells, row...)
	}
	for _, r := range set.Rocks {
		rocks = append(rocks, r.Position.Y)
	}
	// uniform placement would match the share of high cells
	assert.Greater(t, share(rocks), share(cells)+0.05)
}

func TestPopulateBuildings(t *testing.T) {
	g := flatGrid(1500)
	pois := []pass.POI{
		{Name: "Église", Type: pass.POIMonument, Location: "Virage 16"},
		{Name: "Restaurant Le Virage", Type: pass.POIRestaurant, Location: "Virage 7"},
		{Name: "Hôtel du Col", Type: pass.POIHotel, Location: "Sommet"},
		{Name: "Refuge", Type: pass.POIRefuge, Location: "Départ"},
	}
	set, report := Populate(Input{Grid: g, POIs: pois, Seed: 5}, DefaultParams())
	assert.Empty(t, report.Warnings)

	require.Len(t, set.Buildings, 3)
	restaurant, hotel, refuge := set.Buildings[0], set.Buildings[1], set.Buildings[2]

	assert.Equal(t, pass.POIRestaurant, restaurant.Type)
	assert.InDelta(t, (1-7.0/17.0)*10000, restaurant.Position.X, 1e-6)
	assert.InDelta(t, 10000, hotel.Position.X, 1e-6)
	assert.Equal(t, 3, hotel.Stories)
	assert.InDelta(t, 0, refuge.Position.X, 1e-6)

	// alternating sides, clear of the road
	assert.Greater(t, restaurant.Position.Z, buildingSetbackM-1e-9)
	assert.Less(t, hotel.Position.Z, -buildingSetbackM+1e-9)
	for _, b := range set.Buildings {
		assert.Equal(t, 1500.0, b.Position.Y)
	}
}

func TestPopulateUnknownLocation(t *testing.T) {
	pois := []pass.POI{{Name: "Gîte", Type: pass.POIRefuge, Location: "près de la chapelle"}}
	set, report := Populate(Input{Grid: flatGrid(1000), POIs: pois, Seed: 11}, DefaultParams())

	require.Len(t, set.Buildings, 1)
	require.Len(t, report.Warnings, 1)
	assert.Equal(t, "points_of_interest[0].location", report.Warnings[0].Path)
	assert.True(t, report.Valid)
}

func TestPopulateWater(t *testing.T) {
	g := flatGrid(2000)
	pois := []pass.POI{
		{Name: "Lac Besson", Type: pass.POILake, Location: "km 9"},
		{Name: "Fontaine", Type: pass.POIWater, Location: "km 2"},
	}
	set, _ := Populate(Input{Grid: g, POIs: pois, RouteLengthKm: 12, Seed: 2}, DefaultParams())

	require.Len(t, set.WaterBodies, 1)
	w := set.WaterBodies[0]
	assert.Equal(t, "Lac Besson", w.Name)
	assert.InDelta(t, 0.75*10000, w.Position.X, 1e-6)
	assert.GreaterOrEqual(t, w.RadiusM, 30.0)
	assert.LessOrEqual(t, math.Abs(w.Position.Z)+w.RadiusM, g.PhysicalWidthM/2+1e-9)
	assert.Empty(t, set.Buildings)
}

func TestPopulateWithoutGrid(t *testing.T) {
	set, report := Populate(Input{}, DefaultParams())
	assert.False(t, report.Valid)
	assert.Zero(t, set.Count())
}

func TestSpeciesAt(t *testing.T) {
	cases := map[float64]string{
		200: SpeciesDeciduous, 799: SpeciesDeciduous,
		800: SpeciesConiferous, 1500: SpeciesConiferous,
		1501: SpeciesAlpine, 2500: SpeciesAlpine,
	}
	for alt, want := range cases {
		if got := SpeciesAt(alt); got != want {
			t.Errorf("SpeciesAt(%v) = %s, want %s", alt, got, want)
		}
	}
}

func TestLocate(t *testing.T) {
	pois := []pass.POI{{Location: "Virage 21"}, {Location: "Virage 3"}}
	l := newLocator(pois, 13.8)

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"Virage 21", 1 - 21.0/22.0, true},
		{"virage n°1", 1 - 1.0/22.0, true},
		{"Sommet", 1, true},
		{"Summit car park", 1, true},
		{"Départ", 0, true},
		{"km 6,9", 0.5, true},
		{"km 20", 1, true},
		{"", 0, false},
		{"au bord du lac", 0, false},
	}
	for _, c := range cases {
		got, ok := l.locate(c.in)
		if ok != c.ok || math.Abs(got-c.want) > 1e-9 {
			t.Errorf("locate(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.ok)
		}
	}

	if _, ok := newLocator(nil, 0).locate("km 3"); ok {
		t.Error("km locations need a route length")
	}
}
