package realtimeexport

import (
	"bytes"
	"io"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/schedule"
	"github.com/rssched/rollingstock-solver/tour"
)

const gtfsRealtimeVersion = "2.0"

// FeedMessage builds a gtfs.FeedMessage from a solved schedule: one
// TripUpdate per non-dummy vehicle tour, with one StopTimeUpdate per
// service node the vehicle covers, and one additional TripUpdate per
// dummy tour marked CANCELED (an unserved trip left on a dummy vehicle
// means no real vehicle could cover it).
func FeedMessage(s *schedule.Schedule, timestamp uint64) *gtfs.FeedMessage {
	nw := s.Network()

	g := &gtfs.FeedMessage{
		Header: &gtfs.FeedHeader{
			GtfsRealtimeVersion: ptr(gtfsRealtimeVersion),
			Timestamp:           ptr(timestamp),
		},
	}

	for _, id := range s.VehiclesIter() {
		t, ok := s.TourOf(id)
		if !ok {
			continue
		}
		g.Entity = append(g.Entity, tripUpdateEntity(nw, id, t, false))
	}
	for _, id := range s.DummyIter() {
		t, ok := s.TourOf(id)
		if !ok {
			continue
		}
		g.Entity = append(g.Entity, tripUpdateEntity(nw, id, t, true))
	}

	return g
}

func tripUpdateEntity(nw *network.Network, id basetypes.VehicleID, t *tour.Tour, cancelled bool) *gtfs.FeedEntity {
	var stopTimes []*gtfs.TripUpdate_StopTimeUpdate
	seq := uint32(0)
	for _, idx := range t.AllNodesIter() {
		node := nw.Node(idx)
		if node == nil || !node.IsService() {
			continue
		}
		seq++
		stopTimes = append(stopTimes, &gtfs.TripUpdate_StopTimeUpdate{
			StopSequence: ptr(seq),
			StopId:       ptr(nw.Locations().Name(node.Destination)),
			Arrival: &gtfs.TripUpdate_StopTimeEvent{
				Time: ptr(node.Arrival.Unix()),
			},
			Departure: &gtfs.TripUpdate_StopTimeEvent{
				Time: ptr(node.Departure.Unix()),
			},
		})
	}

	scheduleRelationship := gtfs.TripDescriptor_SCHEDULED
	if cancelled {
		scheduleRelationship = gtfs.TripDescriptor_CANCELED
	}

	return &gtfs.FeedEntity{
		Id: ptr(id.String()),
		TripUpdate: &gtfs.TripUpdate{
			Trip: &gtfs.TripDescriptor{
				TripId:               ptr(id.String()),
				ScheduleRelationship: ptr(scheduleRelationship),
			},
			StopTimeUpdate: stopTimes,
		},
	}
}

// Marshal encodes m as binary protobuf, the wire format GTFS-realtime
// consumers expect.
func Marshal(m *gtfs.FeedMessage) ([]byte, error) {
	return proto.Marshal(m)
}

// MarshalText encodes m as protobuf text format, for human inspection.
func MarshalText(m *gtfs.FeedMessage) ([]byte, error) {
	return prototext.Marshal(m)
}

// WriteTo writes m to w, either as binary protobuf or, when humanReadable
// is set, as protobuf text.
func WriteTo(w io.Writer, m *gtfs.FeedMessage, humanReadable bool) error {
	var data []byte
	var err error
	if humanReadable {
		data, err = MarshalText(m)
	} else {
		data, err = Marshal(m)
	}
	if err != nil {
		return err
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}

func ptr[T any](v T) *T { return &v }
