// File: locations.go
// Role: pairwise dead-head distance/travel-time table between stations.
//
// Determinism:
//   - Distance/TravelTime/StationSides are pure lookups; missing entries
//     between two known stations are a construction-time error, never
//     silently treated as zero at query time.
//   - Diagonal entries (reposition within a station) must be present.
//
// Grounded on: original_source model/src/locations.rs (Locations,
// DeadHeadTrip) and src/locations.rs (the dist/tt/station_sides API),
// restructured around basetypes.LocationIdx instead of string codes.
package locations

import (
	"fmt"
	"sort"

	"github.com/rssched/rollingstock-solver/basetypes"
)

// DeadHeadTrip is the non-revenue movement characteristic between an
// ordered pair of locations.
type DeadHeadTrip struct {
	Distance         basetypes.Distance
	TravelTime       basetypes.Duration
	OriginSide       basetypes.StationSide
	DestinationSide  basetypes.StationSide
}

// Locations holds the full pairwise dead-head matrix for a fixed set of
// stations. A Locations value is immutable once built.
type Locations struct {
	names map[basetypes.LocationIdx]string
	trips map[basetypes.LocationIdx]map[basetypes.LocationIdx]DeadHeadTrip
}

// Builder assembles a Locations value incrementally, then freezes it with
// Build. Mirrors core.Graph's NewGraph+AddEdge staged-construction style.
type Builder struct {
	names map[basetypes.LocationIdx]string
	trips map[basetypes.LocationIdx]map[basetypes.LocationIdx]DeadHeadTrip
}

// NewBuilder starts an empty Locations builder.
func NewBuilder() *Builder {
	return &Builder{
		names: make(map[basetypes.LocationIdx]string),
		trips: make(map[basetypes.LocationIdx]map[basetypes.LocationIdx]DeadHeadTrip),
	}
}

// AddStation registers a station name for a location index. Calling it
// twice for the same index overwrites the name.
func (b *Builder) AddStation(idx basetypes.LocationIdx, name string) {
	b.names[idx] = name
}

// SetTrip records the dead-head characteristics from origin to destination.
// The diagonal (origin == destination, in-station reposition) must be set
// explicitly by the caller; it is not synthesized.
func (b *Builder) SetTrip(origin, destination basetypes.LocationIdx, trip DeadHeadTrip) {
	row, ok := b.trips[origin]
	if !ok {
		row = make(map[basetypes.LocationIdx]DeadHeadTrip)
		b.trips[origin] = row
	}
	row[destination] = trip
}

// Build freezes the builder into a Locations value. Returns an error if any
// pair of distinct registered stations lacks a dead-head entry, or if any
// station lacks a diagonal (in-station reposition) entry — both are
// disallowed ("missing entries between two real stations are
// disallowed").
func (b *Builder) Build() (*Locations, error) {
	for origin := range b.names {
		row, ok := b.trips[origin]
		if !ok {
			return nil, fmt.Errorf("locations: station %d has no dead-head row", origin)
		}
		if _, ok := row[origin]; !ok {
			return nil, fmt.Errorf("locations: station %d is missing its diagonal (in-station) dead-head entry", origin)
		}
		for destination := range b.names {
			if _, ok := row[destination]; !ok {
				return nil, fmt.Errorf("locations: missing dead-head entry %d -> %d", origin, destination)
			}
		}
	}
	return &Locations{names: b.names, trips: b.trips}, nil
}

// Name returns the display name of a station, or "" if unknown.
func (l *Locations) Name(idx basetypes.LocationIdx) string { return l.names[idx] }

// HasStation reports whether idx names a known station.
func (l *Locations) HasStation(idx basetypes.LocationIdx) bool {
	_, ok := l.names[idx]
	return ok
}

// StationIndices returns every known station index, sorted ascending.
func (l *Locations) StationIndices() []basetypes.LocationIdx {
	out := make([]basetypes.LocationIdx, 0, len(l.names))
	for idx := range l.names {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (l *Locations) lookup(a, b basetypes.LocationIdx) (DeadHeadTrip, bool) {
	row, ok := l.trips[a]
	if !ok {
		return DeadHeadTrip{}, false
	}
	trip, ok := row[b]
	return trip, ok
}

// Distance returns the dead-head distance from a to b, or Infinite if no
// entry exists (e.g. one endpoint is a synthetic "nowhere" location not
// present in the station set).
func (l *Locations) Distance(a, b basetypes.LocationIdx) basetypes.Distance {
	if trip, ok := l.lookup(a, b); ok {
		return trip.Distance
	}
	return basetypes.InfiniteDistance()
}

// TravelTime returns the dead-head travel time from a to b, or Infinite if
// no entry exists.
func (l *Locations) TravelTime(a, b basetypes.LocationIdx) basetypes.Duration {
	if trip, ok := l.lookup(a, b); ok {
		return trip.TravelTime
	}
	return basetypes.InfiniteDuration()
}

// StationSides returns the side on which a vehicle leaves a and the side on
// which it enters b. Defaults to (Front, Back) when the pair is unknown —
// sides are immaterial for an unreachable move.
func (l *Locations) StationSides(a, b basetypes.LocationIdx) (basetypes.StationSide, basetypes.StationSide) {
	if trip, ok := l.lookup(a, b); ok {
		return trip.OriginSide, trip.DestinationSide
	}
	return basetypes.Front, basetypes.Back
}
