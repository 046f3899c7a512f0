package schedule

import "errors"

// Sentinel errors returned by package schedule. Wrapped with fmt.Errorf
// where additional context (a vehicle id, a node) is useful.
var (
	ErrNotAVehicle      = errors.New("schedule: not a real vehicle")
	ErrNotADummy        = errors.New("schedule: not a dummy vehicle")
	ErrNoCapacity       = errors.New("schedule: no depot has spawn capacity for this vehicle type")
	ErrNoDepotAvailable = errors.New("schedule: no reachable depot available")
	ErrConflict         = errors.New("schedule: segment conflicts with receiver's tour")
	ErrInconsistent     = errors.New("schedule: consistency check failed")
)
