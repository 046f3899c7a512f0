// Package ingest decodes the JSON problem instance (vehicle types,
// locations, depots, routes, service trips, a dead-head matrix, and
// shunting/formation parameters) into locations.Locations,
// network.Network, and network.VehicleTypeCatalog values, and encodes a
// solved schedule back out as JSON.
//
// Grounded on: the input/output JSON wire format and the original's
// id-string-to-index resolution implied by original_source model/src/*
// (every domain type there is keyed by a small integer index internally,
// string ids only at the wire boundary).
package ingest
