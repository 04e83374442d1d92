// Package scene composes terrain, road and environment into the descriptor
// handed to 3D rendering clients, and checks descriptors for structural
// problems.
package scene

import (
	"fmt"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/environment"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/road"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/terrain"
)

// Mode selects the lighting preset.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeNight Mode = "night"
)

// ParseMode accepts "day", "night" or "" (day).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeDay:
		return ModeDay, nil
	case ModeNight:
		return ModeNight, nil
	}
	return "", fmt.Errorf("unknown lighting mode %q (want day or night)", s)
}

// Descriptor is the complete 3D scene of a climb.
type Descriptor struct {
	ID          string           `json:"id"`
	Metadata    Metadata         `json:"metadata"`
	Terrain     *terrain.Grid    `json:"terrain"`
	Road        *road.Geometry   `json:"road"`
	Environment *environment.Set `json:"environment"`
	Lighting    Lighting         `json:"lighting"`
	Textures    Textures         `json:"textures"`
	Effects     Effects          `json:"effects"`
	Camera      Camera           `json:"camera"`
	GeoBounds   *geo.Bounds      `json:"geoBounds,omitempty"`
}

// Metadata holds scene-level information.
type Metadata struct {
	PassID          string  `json:"passId"`
	Name            string  `json:"name"`
	MinAltitudeM    float64 `json:"minAltitude"`
	MaxAltitudeM    float64 `json:"maxAltitude"`
	TotalDistanceKm float64 `json:"totalDistance"`
	ElevationGainM  float64 `json:"elevationGain"`
	Mode            Mode    `json:"mode"`
}

// Light is an ambient or directional light source.
type Light struct {
	Color      string    `json:"color"`
	Intensity  float64   `json:"intensity"`
	Position   *geo.Vec3 `json:"position,omitempty"`
	CastShadow bool      `json:"castShadow,omitempty"`
}

// Fog is exponential scene fog.
type Fog struct {
	Color   string  `json:"color"`
	Density float64 `json:"density"`
}

// Lighting is the full light setup.
type Lighting struct {
	Ambient Light `json:"ambient"`
	Sun     Light `json:"sun"` // the moon at night
	Fog     Fog   `json:"fog"`
}

// TextureRef points at a texture set and its tiling.
type TextureRef struct {
	Diffuse string  `json:"diffuse"`
	Normal  string  `json:"normal,omitempty"`
	Repeat  float64 `json:"repeat"`
}

// Textures maps scene materials to texture sets.
type Textures struct {
	Terrain    map[terrain.Type]TextureRef `json:"terrain"`
	Road       map[string]TextureRef       `json:"road"`
	Vegetation map[string]TextureRef       `json:"vegetation"`
	Rock       TextureRef                  `json:"rock"`
	Water      TextureRef                  `json:"water"`
}

// Sky is the background.
type Sky struct {
	Type      string  `json:"type"` // "atmospheric" or "starfield"
	Turbidity float64 `json:"turbidity"`
}

// Clouds is the cloud layer.
type Clouds struct {
	Enabled   bool    `json:"enabled"`
	Coverage  float64 `json:"coverage"` // 0-1
	AltitudeM float64 `json:"altitude"`
}

// PostProcessing toggles screen-space effects.
type PostProcessing struct {
	Bloom        bool   `json:"bloom"`
	SSAO         bool   `json:"ssao"`
	Antialiasing bool   `json:"antialiasing"`
	ToneMapping  string `json:"toneMapping"`
}

// Effects groups the atmospheric and post-processing settings.
type Effects struct {
	Sky            Sky            `json:"sky"`
	Clouds         Clouds         `json:"clouds"`
	PostProcessing PostProcessing `json:"postProcessing"`
}

// CameraPreset is a fixed viewpoint.
type CameraPreset struct {
	Name     string   `json:"name"`
	Position geo.Vec3 `json:"position"`
	Target   geo.Vec3 `json:"target"`
	FOV      float64  `json:"fov"`
}

// FollowCamera drives the camera that rides along the centerline.
type FollowCamera struct {
	DistanceM  float64 `json:"distance"`
	HeightM    float64 `json:"height"`
	LookAheadM float64 `json:"lookAhead"`
	Smoothing  float64 `json:"smoothing"`
}

// Camera holds the presets and follow-mode parameters.
type Camera struct {
	Default string         `json:"default"`
	Presets []CameraPreset `json:"presets"`
	Follow  FollowCamera   `json:"follow"`
}

// Preset returns the named preset.
func (c Camera) Preset(name string) (CameraPreset, bool) {
	for _, p := range c.Presets {
		if p.Name == name {
			return p, true
		}
	}
	return CameraPreset{}, false
}
