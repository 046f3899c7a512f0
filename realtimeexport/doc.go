// Package realtimeexport renders a solved schedule as a GTFS-realtime
// FeedMessage: one TripUpdate per vehicle tour, carrying a
// StopTimeUpdate per service node the vehicle visits, in order.
//
// Grounded on: kasmar00-gtfs-polish-trains's
// polish_trains_gtfs/realtime/fact package (Container.AsGTFS building a
// gtfs.FeedMessage from domain facts, proto.Marshal/prototext.Marshal for
// binary vs human-readable dumps, the ptr[T] helper for the bindings'
// pointer-typed optional fields).
package realtimeexport
