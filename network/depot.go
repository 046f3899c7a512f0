// File: depot.go
// Role: Depot capacity model.
//
// Grounded on: original_source model/src/network/depot.rs (Depot,
// capacity_for: min(per-type, total), absence => forbidden).
package network

import "github.com/rssched/rollingstock-solver/basetypes"

// Depot is a location with per-vehicle-type spawn/despawn capacity.
// AllowedTypes maps a vehicle type to its own capacity limit; a nil pointer
// value means "unbounded for this type" (explicit None), and absence
// of the key means the type is forbidden at this depot.
type Depot struct {
	ID            basetypes.DepotIdx
	Location      basetypes.LocationIdx
	TotalCapacity basetypes.VehicleCount
	AllowedTypes  map[basetypes.VehicleTypeIdx]*basetypes.VehicleCount
}

// CapacityFor returns the effective spawn capacity for vehicleType at this
// depot: min(per-type, total) when both are finite, total when the
// per-type limit is explicitly unbounded, or (0, false) if the type is not
// allowed at all.
func (d *Depot) CapacityFor(vehicleType basetypes.VehicleTypeIdx) (capacity basetypes.VehicleCount, allowed bool) {
	limit, ok := d.AllowedTypes[vehicleType]
	if !ok {
		return 0, false
	}
	if limit == nil {
		return d.TotalCapacity, true
	}
	if *limit < d.TotalCapacity {
		return *limit, true
	}
	return d.TotalCapacity, true
}
