package pass

import (
	"github.com/paulmach/orb"

	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/geo"
	"github.com/Alexandredadadadada/velo-altitude-sub000/pkg/profile"
)

// Pass is a mountain pass or climb as stored by the data collaborator.
type Pass struct {
	ID               string          `yaml:"id" json:"id"`
	Name             string          `yaml:"name" json:"name"`
	Region           string          `yaml:"region" json:"region,omitempty"`
	LengthKm         float64         `yaml:"length" json:"length"`
	ElevationM       float64         `yaml:"elevation" json:"elevation"`
	ElevationProfile []profile.Point `yaml:"elevation_profile" json:"elevationProfile"`
	Coordinates      [][2]float64    `yaml:"coordinates" json:"coordinates,omitempty"`
	Coordinates3D    [][3]float64    `yaml:"coordinates_3d" json:"coordinates3d,omitempty"`
	PointsOfInterest []POI           `yaml:"points_of_interest" json:"pointsOfInterest,omitempty"`
}

// POI is a point of interest along the climb. Location is free text such as
// "Virage 7", "Sommet" or "km 12.5".
type POI struct {
	Name        string `yaml:"name" json:"name"`
	Type        string `yaml:"type" json:"type"`
	Location    string `yaml:"location" json:"location,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
}

// Point of interest types understood by the synthesis packages.
const (
	POIRefuge     = "refuge"
	POIRestaurant = "restaurant"
	POIHotel      = "hotel"
	POILake       = "lake"
	POIViewpoint  = "viewpoint"
	POIMonument   = "monument"
	POIWater      = "water"
)

var knownPOITypes = map[string]bool{
	POIRefuge: true, POIRestaurant: true, POIHotel: true, POILake: true,
	POIViewpoint: true, POIMonument: true, POIWater: true,
}

// HasGeodata reports whether the pass carries enough coordinates for 3D
// synthesis.
func (p *Pass) HasGeodata() bool {
	return len(p.Coordinates) >= 2 || len(p.Coordinates3D) >= 2
}

// Route returns the pass route as a line string, preferring the 2D
// coordinates and falling back to the 3D ones.
func (p *Pass) Route() orb.LineString {
	if len(p.Coordinates) > 0 {
		return geo.LineString(p.Coordinates)
	}
	ls := make(orb.LineString, len(p.Coordinates3D))
	for i, c := range p.Coordinates3D {
		ls[i] = orb.Point{c[0], c[1]}
	}
	return ls
}
