// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// GeoPointType is the GeoJSON type stored for every location in the system.
const GeoPointType = "Point"

// GeoPoint is a GeoJSON point as persisted in the document store.
// Coordinates are [longitude, latitude] and are always length 2 so the
// 2dsphere index on businesses stays valid.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(lon, lat float64) GeoPoint {
	return GeoPoint{
		Type:        GeoPointType,
		Coordinates: []float64{lon, lat},
	}
}

// Lon returns the longitude component of the point.
func (p GeoPoint) Lon() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}

	return p.Coordinates[0]
}

// Lat returns the latitude component of the point.
func (p GeoPoint) Lat() float64 {
	if len(p.Coordinates) != 2 {
		return 0
	}

	return p.Coordinates[1]
}

// Valid reports whether the point satisfies the stored-shape invariant.
func (p GeoPoint) Valid() bool {
	return p.Type == GeoPointType && len(p.Coordinates) == 2
}

// DistanceMeters returns the great-circle distance to other in meters.
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	return geo.Distance(
		orb.Point{p.Lon(), p.Lat()},
		orb.Point{other.Lon(), other.Lat()},
	)
}
