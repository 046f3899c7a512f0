// Package basetypes defines the opaque identifier types, the station-side
// enum, and the finite/infinity arithmetic lattices (Distance, Duration)
// shared by every other package of the rolling-stock scheduler.
//
// Nothing in this package depends on any other package of the module; it
// sits at the bottom of the import graph the same way lvlath's core
// package anchors the rest of that module.
package basetypes
