package greedy

import (
	"time"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
	"github.com/rssched/rollingstock-solver/schedule"
	"github.com/rssched/rollingstock-solver/tour"
)

// Greedy builds an initial EvaluatedSolution from an empty schedule.
type Greedy struct {
	nw      *network.Network
	catalog *network.VehicleTypeCatalog
	obj     *objective.Objective[objective.Solution]
}

// New builds a Greedy solver for the given network, vehicle-type catalog,
// and objective.
func New(nw *network.Network, catalog *network.VehicleTypeCatalog, obj *objective.Objective[objective.Solution]) *Greedy {
	return &Greedy{nw: nw, catalog: catalog, obj: obj}
}

// Solve walks the network's service nodes in iteration order, extending an
// existing vehicle whenever one can reach the next uncovered trip, else
// spawning a new vehicle of the catalog's first type for it alone. End
// depots are reassigned once, greedily, before the result is evaluated.
func (g *Greedy) Solve() (*objective.EvaluatedSolution[objective.Solution], error) {
	s := schedule.Empty(g.catalog, g.nw)

	for _, svc := range g.nw.ServiceNodes() {
		if s.IsFullyCovered(svc) {
			continue
		}

		if provider, ok := g.latestReachingVehicle(s, svc); ok {
			path, err := tour.NewPath([]basetypes.NodeIdx{svc}, g.nw)
			if err != nil {
				return nil, err
			}
			ns, err := s.AddPathToVehicleTour(provider, path)
			if err != nil {
				return nil, err
			}
			s = ns
			continue
		}

		types := g.catalog.Iter()
		if len(types) == 0 {
			continue
		}
		ns, _, err := s.SpawnVehicleForPath(types[0], []basetypes.NodeIdx{svc})
		if err != nil {
			return nil, err
		}
		s = ns
	}

	if withDepots, err := s.ReassignEndDepotsGreedily(); err == nil {
		s = withDepots
	}

	return g.obj.Evaluate(s), nil
}

// latestReachingVehicle picks, among s's existing vehicles whose tour can
// reach svc, the one whose last non-depot node ends latest — the Greedy
// heuristic's sole selection rule.
func (g *Greedy) latestReachingVehicle(s *schedule.Schedule, svc basetypes.NodeIdx) (basetypes.VehicleID, bool) {
	var best basetypes.VehicleID
	var bestEndTime time.Time
	found := false

	for _, id := range s.VehiclesIter() {
		t, ok := s.TourOf(id)
		if !ok {
			continue
		}
		last, ok := t.LastNonDepot()
		if !ok {
			continue
		}
		if !g.nw.CanReach(last, svc) {
			continue
		}
		endTime := g.nw.Node(last).EndTime()
		if !found || endTime.After(bestEndTime) {
			best = id
			bestEndTime = endTime
			found = true
		}
	}
	return best, found
}
