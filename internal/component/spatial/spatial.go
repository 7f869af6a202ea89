// Package spatial sets the geospatial query parameters shared by geofilt,
// bbox and geodist.
package spatial

import (
	"github.com/kailas-cloud/solrkit/internal/component"
	"github.com/kailas-cloud/solrkit/internal/request"
)

// Spatial is the spatial component.
type Spatial struct {
	// Field is the location field (sfield).
	Field string
	// Distance is the radius in kilometers (d).
	Distance *float64
	// Point is the center as "lat,lon" (pt).
	Point string
}

// New returns a spatial component.
func New(field, point string, distance float64) *Spatial {
	return &Spatial{Field: field, Point: point, Distance: &distance}
}

// Type implements component.Component.
func (s *Spatial) Type() component.Type { return component.TypeSpatial }

// Build emits sfield, d and pt.
func Build(c component.Component, req *request.Request) error {
	s, err := component.As[*Spatial](c)
	if err != nil {
		return err
	}
	req.Add("sfield", s.Field)
	req.AddFloat("d", s.Distance)
	req.Add("pt", s.Point)
	return nil
}
