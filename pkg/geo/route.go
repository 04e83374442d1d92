package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
)

// LineString builds a route line from [lon, lat] pairs.
func LineString(coords [][2]float64) orb.LineString {
	ls := make(orb.LineString, len(coords))
	for i, c := range coords {
		ls[i] = orb.Point{c[0], c[1]}
	}
	return ls
}

// LengthKm returns the haversine length of the route in kilometres.
func LengthKm(ls orb.LineString) float64 {
	if len(ls) < 2 {
		return 0
	}
	return geo.LengthHaversine(ls) / 1000
}

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	MinLon float64 `json:"minLon"`
	MinLat float64 `json:"minLat"`
	MaxLon float64 `json:"maxLon"`
	MaxLat float64 `json:"maxLat"`
}

// BoundsOf returns the bounding box of the route, or nil for an empty route.
func BoundsOf(ls orb.LineString) *Bounds {
	if len(ls) == 0 {
		return nil
	}
	b := ls.Bound()
	return &Bounds{MinLon: b.Min.Lon(), MinLat: b.Min.Lat(), MaxLon: b.Max.Lon(), MaxLat: b.Max.Lat()}
}

// Center returns the centre of the box as [lon, lat].
func (b Bounds) Center() [2]float64 {
	return [2]float64{(b.MinLon + b.MaxLon) / 2, (b.MinLat + b.MaxLat) / 2}
}

// RouteFeature wraps the route in a GeoJSON feature collection carrying the
// given properties on its single LineString feature. Returns nil for routes
// with fewer than two points.
func RouteFeature(ls orb.LineString, props map[string]any) *geojson.FeatureCollection {
	if len(ls) < 2 {
		return nil
	}
	f := geojson.NewFeature(ls)
	for k, v := range props {
		f.Properties[k] = v
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(f)
	return fc
}

// Nearest returns the index of the route vertex closest to p.
func Nearest(ls orb.LineString, p orb.Point) int {
	best, bestDist := -1, 0.0
	for i, q := range ls {
		d := geo.DistanceHaversine(p, q)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
