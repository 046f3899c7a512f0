// File: indicators.go
// Role: the concrete first-phase Indicators and the Objective assembled
// from them, in dominance order: unserved passengers, depot balance
// violation, vehicle count, dead-head distance, seat-distance traveled.
//
// Grounded on: the stated first-phase objective ordering, evaluated
// against schedule.Schedule's existing query surface
// (NumberOfUnservedPassengers, TotalDepotBalanceViolation,
// NumberOfVehicles, TotalDeadHeadDistance, SeatDistanceTraveled).
package objective

import (
	"github.com/rssched/rollingstock-solver/schedule"
)

// Solution is the concrete S this package's first-phase Objective scores.
type Solution = *schedule.Schedule

// UnservedPassengers counts passengers left without a seat across every
// service node.
type UnservedPassengers struct{}

func (UnservedPassengers) Evaluate(s Solution) BaseValue { return Integer(int64(s.NumberOfUnservedPassengers())) }
func (UnservedPassengers) Name() string                  { return "unserved_passengers" }

// DepotBalanceViolation sums the absolute spawn/despawn imbalance across
// every (depot, type) pair.
type DepotBalanceViolation struct{}

func (DepotBalanceViolation) Evaluate(s Solution) BaseValue {
	return Integer(int64(s.TotalDepotBalanceViolation()))
}
func (DepotBalanceViolation) Name() string { return "depot_balance_violation" }

// VehicleCount counts real (non-dummy) vehicles in the schedule.
type VehicleCount struct{}

func (VehicleCount) Evaluate(s Solution) BaseValue { return Integer(int64(s.NumberOfVehicles())) }
func (VehicleCount) Name() string                  { return "vehicle_count" }

// DeadHeadDistance sums every vehicle's empty-running distance, in meters.
type DeadHeadDistance struct{}

func (DeadHeadDistance) Evaluate(s Solution) BaseValue {
	meters, ok := s.TotalDeadHeadDistance().Meters()
	if !ok {
		return Maximum()
	}
	return Integer(int64(meters))
}
func (DeadHeadDistance) Name() string { return "dead_head_distance" }

// SeatDistanceTraveled sums seats-offered times distance-traveled across
// every tour leg, a proxy for fleet utilization.
type SeatDistanceTraveled struct{}

func (SeatDistanceTraveled) Evaluate(s Solution) BaseValue { return Integer(s.SeatDistanceTraveled()) }
func (SeatDistanceTraveled) Name() string                  { return "seat_distance_traveled" }

// one builds a single-summand Level with an integer coefficient of 1.
func one(ind Indicator[Solution]) *Level[Solution] {
	return NewLevel(Summand[Solution]{Coefficient: IntegerCoefficient(1), Indicator: ind})
}

// FirstPhase builds the five-level Objective dominance order: unserved
// passengers, depot balance violation, vehicle count, dead-head distance,
// seat-distance traveled. The optional sixth (maintenance-counter
// violations) level is omitted since no maintenance counters are ingested.
func FirstPhase() *Objective[Solution] {
	return NewObjective(
		one(UnservedPassengers{}),
		one(DepotBalanceViolation{}),
		one(VehicleCount{}),
		one(DeadHeadDistance{}),
		one(SeatDistanceTraveled{}),
	)
}

// FirstPhaseCoefficients is FirstPhase's per-level weighting, overridable
// by an operator (config.Config.Objective) without touching the
// dominance order itself.
type FirstPhaseCoefficients struct {
	UnservedPassengers    float64
	DepotBalanceViolation float64
	VehicleCount          float64
	DeadHeadDistance      float64
	SeatDistanceTraveled  float64
}

// DefaultFirstPhaseCoefficients returns the unit weighting FirstPhase uses.
func DefaultFirstPhaseCoefficients() FirstPhaseCoefficients {
	return FirstPhaseCoefficients{1, 1, 1, 1, 1}
}

// FirstPhaseWithCoefficients builds the same five-level dominance order as
// FirstPhase but with each level's weight overridden by c. A weight of 1
// behaves exactly like FirstPhase's unit coefficient.
func FirstPhaseWithCoefficients(c FirstPhaseCoefficients) *Objective[Solution] {
	weighted := func(w float64, ind Indicator[Solution]) *Level[Solution] {
		return NewLevel(Summand[Solution]{Coefficient: FloatCoefficient(w), Indicator: ind})
	}
	return NewObjective(
		weighted(c.UnservedPassengers, UnservedPassengers{}),
		weighted(c.DepotBalanceViolation, DepotBalanceViolation{}),
		weighted(c.VehicleCount, VehicleCount{}),
		weighted(c.DeadHeadDistance, DeadHeadDistance{}),
		weighted(c.SeatDistanceTraveled, SeatDistanceTraveled{}),
	)
}
