// File: formation.go
// Role: TrainFormation, an ordered sequence of vehicle descriptors coupled
// to cover one coverable node.
//
// Grounded on: original_source/model/src/network/nodes.rs-adjacent
// TrainFormation usage throughout solution/src/schedule.rs (add a vehicle
// at the tail of every node's formation along a path, remove on
// delete/reassign) and solution/src/train_formation.rs's ordered-Vec
// semantics (first-occurrence remove, positional replace).
package trainformation

import (
	"errors"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
)

// ErrNotInFormation is returned by Remove/Replace when the vehicle id is
// not a member of the formation.
var ErrNotInFormation = errors.New("trainformation: vehicle not in formation")

// Member is a single coupled vehicle: its id, its type, and its seat count
// (cached so Seats/Capacity sums do not need a catalog lookup).
type Member struct {
	ID       basetypes.VehicleID
	Type     basetypes.VehicleTypeIdx
	Seats    basetypes.PassengerCount
	Capacity basetypes.PassengerCount
}

// TrainFormation is the ordered, non-deduplicated sequence of vehicles
// coupled together at a node. Immutable once built; every mutation returns
// a new TrainFormation.
type TrainFormation struct {
	members []Member
}

// Empty returns a TrainFormation with no coupled vehicles.
func Empty() *TrainFormation { return &TrainFormation{} }

// AddAtTail appends v to the end of the formation. The caller is
// responsible for not introducing a duplicate id.
func (f *TrainFormation) AddAtTail(v Member) *TrainFormation {
	out := make([]Member, len(f.members), len(f.members)+1)
	copy(out, f.members)
	out = append(out, v)
	return &TrainFormation{members: out}
}

// Remove drops the first occurrence of id, failing with ErrNotInFormation
// if absent.
func (f *TrainFormation) Remove(id basetypes.VehicleID) (*TrainFormation, error) {
	idx := f.indexOf(id)
	if idx < 0 {
		return nil, ErrNotInFormation
	}
	out := make([]Member, 0, len(f.members)-1)
	out = append(out, f.members[:idx]...)
	out = append(out, f.members[idx+1:]...)
	return &TrainFormation{members: out}, nil
}

// Replace swaps old for new in place, preserving order. Fails with
// ErrNotInFormation if old is absent.
func (f *TrainFormation) Replace(old basetypes.VehicleID, replacement Member) (*TrainFormation, error) {
	idx := f.indexOf(old)
	if idx < 0 {
		return nil, ErrNotInFormation
	}
	out := make([]Member, len(f.members))
	copy(out, f.members)
	out[idx] = replacement
	return &TrainFormation{members: out}, nil
}

func (f *TrainFormation) indexOf(id basetypes.VehicleID) int {
	for i, m := range f.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is a member of the formation.
func (f *TrainFormation) Contains(id basetypes.VehicleID) bool { return f.indexOf(id) >= 0 }

// Len returns the number of coupled vehicles.
func (f *TrainFormation) Len() int { return len(f.members) }

// Seats sums the seat count over every member.
func (f *TrainFormation) Seats() basetypes.PassengerCount {
	var total basetypes.PassengerCount
	for _, m := range f.members {
		total += m.Seats
	}
	return total
}

// Capacity sums the standing+seated capacity over every member.
func (f *TrainFormation) Capacity() basetypes.PassengerCount {
	var total basetypes.PassengerCount
	for _, m := range f.members {
		total += m.Capacity
	}
	return total
}

// Ids returns the member ids in formation order, a defensive copy.
func (f *TrainFormation) Ids() []basetypes.VehicleID {
	out := make([]basetypes.VehicleID, len(f.members))
	for i, m := range f.members {
		out[i] = m.ID
	}
	return out
}

// Members returns the full member list in formation order, a defensive
// copy.
func (f *TrainFormation) Members() []Member {
	out := make([]Member, len(f.members))
	copy(out, f.members)
	return out
}

// MemberFromCatalog builds a Member by looking up typ in the given
// catalog.
func MemberFromCatalog(id basetypes.VehicleID, typ basetypes.VehicleTypeIdx, catalog *network.VehicleTypeCatalog) Member {
	vt, _ := catalog.Get(typ)
	return Member{ID: id, Type: typ, Seats: vt.Seats, Capacity: vt.Capacity}
}
