// Package geojsonexport renders a network's stations and depots as a
// GeoJSON FeatureCollection for visual debugging in any off-the-shelf
// GeoJSON viewer.
//
// The domain model carries no real-world coordinates (locations are
// opaque indices with a dead-head distance/time matrix, not a map), so
// this package lays stations out on a deterministic unit circle ordered
// by basetypes.LocationIdx rather than guessing at geography. The layout
// is for visual separation only; distances on the resulting map are not
// to scale and must not be read as the network's actual dead-head
// distances.
//
// No repo in the reference pack actually uses go.geojson (a grep across
// the pack found zero matches), so this package is grounded directly on
// github.com/paulmach/go.geojson's own documented API
// (NewFeatureCollection, NewPointFeature, Feature.Properties) rather than
// on a borrowed usage pattern.
package geojsonexport
