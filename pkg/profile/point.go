// Package profile turns an ordered elevation profile into contiguous
// fixed-length segments and summary statistics.
package profile

import (
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Point is one sample of an elevation profile.
type Point struct {
	DistanceKm float64 `json:"distance" yaml:"distance"`
	ElevationM float64 `json:"elevation" yaml:"elevation"`
}

// Pt is a shorthand constructor for Point.
func Pt(distanceKm, elevationM float64) Point {
	return Point{DistanceKm: distanceKm, ElevationM: elevationM}
}

// Points builds a profile from [km, m] pairs.
func Points(pairs ...[2]float64) []Point {
	out := make([]Point, len(pairs))
	for i, p := range pairs {
		out[i] = Point{DistanceKm: p[0], ElevationM: p[1]}
	}
	return out
}

// UnmarshalJSON accepts both the pair form [km, m] used by pass records and
// the object form {"distance": km, "elevation": m}.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("elevation point needs 2 values, got %d", len(pair))
		}
		p.DistanceKm, p.ElevationM = pair[0], pair[1]
		return nil
	}
	type plain Point
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding elevation point: %w", err)
	}
	*p = Point(obj)
	return nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML documents.
func (p *Point) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		var pair []float64
		if err := node.Decode(&pair); err != nil {
			return fmt.Errorf("line %d: decoding elevation point: %w", node.Line, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: elevation point needs 2 values, got %d", node.Line, len(pair))
		}
		p.DistanceKm, p.ElevationM = pair[0], pair[1]
		return nil
	}
	type plain Point
	var obj plain
	if err := node.Decode(&obj); err != nil {
		return fmt.Errorf("line %d: decoding elevation point: %w", node.Line, err)
	}
	*p = Point(obj)
	return nil
}

// MarshalYAML writes the compact [km, m] pair form.
func (p Point) MarshalYAML() (any, error) {
	var n yaml.Node
	if err := n.Encode([]float64{p.DistanceKm, p.ElevationM}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return &n, nil
}
