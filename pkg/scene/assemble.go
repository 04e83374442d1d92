package scene

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/environment"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
)

// HighAltitudeM is the summit altitude above which the air is rendered
// thinner: less fog, cooler ambient light and fewer clouds.
const HighAltitudeM = 2000.0

// namespace scopes descriptor ids so they never collide with other SHA-1
// UUIDs derived from the same pass id.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://velo-altitude/scene"))

// Input is everything the assembler composes.
type Input struct {
	PassID      string
	Name        string
	Summary     profile.Summary
	Terrain     *terrain.Grid
	Road        *road.Geometry
	Environment *environment.Set
	Route       orb.LineString // optional; sets GeoBounds
	Mode        Mode
	// ParamsKey identifies the synthesis parameters. Together with PassID it
	// determines the descriptor ID.
	ParamsKey string
}

// Assemble composes the scene descriptor. It only applies threshold rules
// to its inputs and never fails; run ValidateDescriptor on the result to
// check its structure.
func Assemble(in Input) *Descriptor {
	mode := in.Mode
	if mode == "" {
		mode = ModeDay
	}
	high := in.Summary.MaxElevationM > HighAltitudeM

	d := &Descriptor{
		ID: DescriptorID(in.PassID, in.ParamsKey),
		Metadata: Metadata{
			PassID:          in.PassID,
			Name:            in.Name,
			MinAltitudeM:    in.Summary.MinElevationM,
			MaxAltitudeM:    in.Summary.MaxElevationM,
			TotalDistanceKm: in.Summary.TotalDistanceKm,
			ElevationGainM:  in.Summary.TotalElevationGainM,
			Mode:            mode,
		},
		Terrain:     in.Terrain,
		Road:        in.Road,
		Environment: in.Environment,
		Lighting:    lighting(mode, high, in.Terrain, in.Summary.MaxElevationM),
		Textures:    textures(in.Terrain),
		Effects:     effects(mode, high, in.Summary.MaxElevationM),
		Camera:      camera(in.Terrain, in.Road, in.Summary),
		GeoBounds:   geo.BoundsOf(in.Route),
	}
	return d
}

// DescriptorID is the deterministic id of the scene of passID synthesized
// with the given parameters key.
func DescriptorID(passID, paramsKey string) string {
	return uuid.NewSHA1(namespace, []byte(passID+"\x00"+paramsKey)).String()
}

func lighting(mode Mode, high bool, grid *terrain.Grid, maxAlt float64) Lighting {
	var l Lighting
	if mode == ModeNight {
		l = Lighting{
			Ambient: Light{Color: "#1a2340", Intensity: 0.15},
			Sun:     Light{Color: "#aab8ff", Intensity: 0.3, CastShadow: false},
			Fog:     Fog{Color: "#0b1020", Density: 0.0004},
		}
		if high {
			l.Ambient.Color = "#141c3a"
		}
	} else {
		l = Lighting{
			Ambient: Light{Color: "#ffffff", Intensity: 0.5},
			Sun:     Light{Color: "#fff5e0", Intensity: 1.0, CastShadow: true},
			Fog:     Fog{Color: "#c8d8e8", Density: 0.00025},
		}
		if high {
			l.Ambient.Color = "#dde8ff"
		}
	}
	if high {
		l.Fog.Density /= 2
	}

	length, width := 10000.0, 2000.0
	if grid != nil {
		length, width = grid.PhysicalLengthM, grid.PhysicalWidthM
	}
	sun := geo.V(length/2, maxAlt+3000, -width)
	l.Sun.Position = &sun
	return l
}

func effects(mode Mode, high bool, maxAlt float64) Effects {
	e := Effects{
		Sky:    Sky{Type: "atmospheric", Turbidity: 8},
		Clouds: Clouds{Enabled: true, Coverage: 0.4, AltitudeM: maxAlt + 500},
		PostProcessing: PostProcessing{
			Bloom:        false,
			SSAO:         true,
			Antialiasing: true,
			ToneMapping:  "ACESFilmic",
		},
	}
	if mode == ModeNight {
		e.Sky = Sky{Type: "starfield", Turbidity: 0}
		e.PostProcessing.Bloom = true
	}
	if high {
		e.Sky.Turbidity /= 2
		e.Clouds.Coverage = 0.2
	}
	return e
}

const textureRoot = "textures/"

func textures(grid *terrain.Grid) Textures {
	t := Textures{
		Terrain: map[terrain.Type]TextureRef{},
		Road: map[string]TextureRef{
			"asphalt": {Diffuse: textureRoot + "road/asphalt_diffuse.jpg", Normal: textureRoot + "road/asphalt_normal.jpg", Repeat: 4},
			"gravel":  {Diffuse: textureRoot + "road/gravel_diffuse.jpg", Normal: textureRoot + "road/gravel_normal.jpg", Repeat: 4},
		},
		Vegetation: map[string]TextureRef{
			environment.SpeciesDeciduous:  {Diffuse: textureRoot + "vegetation/deciduous.png", Repeat: 1},
			environment.SpeciesConiferous: {Diffuse: textureRoot + "vegetation/conifer.png", Repeat: 1},
			environment.SpeciesAlpine:     {Diffuse: textureRoot + "vegetation/alpine_shrub.png", Repeat: 1},
		},
		Rock:  TextureRef{Diffuse: textureRoot + "rock/granite_diffuse.jpg", Normal: textureRoot + "rock/granite_normal.jpg", Repeat: 2},
		Water: TextureRef{Diffuse: textureRoot + "water/lake.jpg", Normal: textureRoot + "water/waves_normal.jpg", Repeat: 8},
	}

	bands := terrain.DefaultBands()
	if grid != nil && len(grid.Bands) > 0 {
		bands = grid.Bands
	}
	for _, b := range bands {
		name := string(b.Type)
		t.Terrain[b.Type] = TextureRef{
			Diffuse: textureRoot + "terrain/" + name + "_diffuse.jpg",
			Normal:  textureRoot + "terrain/" + name + "_normal.jpg",
			Repeat:  32,
		}
	}
	return t
}

// Camera preset names.
const (
	CameraStart    = "start"
	CameraMid      = "mid"
	CameraSummit   = "summit"
	CameraOverview = "overview"
)

func camera(grid *terrain.Grid, rd *road.Geometry, sum profile.Summary) Camera {
	c := Camera{
		Default: CameraOverview,
		Presets: []CameraPreset{},
		Follow:  FollowCamera{DistanceM: 30, HeightM: 12, LookAheadM: 60, Smoothing: 0.1},
	}

	length, width := 10000.0, 2000.0
	if grid != nil {
		length, width = grid.PhysicalLengthM, grid.PhysicalWidthM
	}
	midAlt := (sum.MinElevationM + sum.MaxElevationM) / 2

	if rd != nil && len(rd.Centerline) > 0 {
		line := rd.Centerline
		first, last := line[0], line[len(line)-1]
		mid := line[len(line)/2]
		ahead := line[min(len(line)-1, len(line)/20+1)]

		c.Presets = append(c.Presets,
			CameraPreset{Name: CameraStart, Position: first.Add(geo.V(-200, 150, 300)), Target: ahead, FOV: 60},
			CameraPreset{Name: CameraMid, Position: mid.Add(geo.V(0, 400, 800)), Target: mid, FOV: 55},
			CameraPreset{Name: CameraSummit, Position: last.Add(geo.V(200, 200, -400)), Target: last, FOV: 60},
		)
	}
	c.Presets = append(c.Presets, CameraPreset{
		Name:     CameraOverview,
		Position: geo.V(length/2, sum.MaxElevationM+length*0.4, width*1.5),
		Target:   geo.V(length/2, midAlt, 0),
		FOV:      45,
	})
	return c
}
