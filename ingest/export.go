package ingest

import (
	"encoding/json"
	"time"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/network"
	"github.com/rssched/rollingstock-solver/objective"
)

// tourOutput is one vehicle or dummy tour in the output document.
type tourOutput struct {
	Vehicle  string   `json:"vehicle"`
	Dummy    bool     `json:"dummy"`
	Type     string   `json:"type,omitempty"`
	NodeIDs  []string `json:"nodes"`
	NodeKind []string `json:"nodeKinds"`
}

// objectiveLevelOutput is one rung of the objective breakdown.
type objectiveLevelOutput struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// outputDocument is the result document written for a solved instance.
type outputDocument struct {
	Tours          []tourOutput           `json:"tours"`
	Objective      []objectiveLevelOutput `json:"objective"`
	RuntimeSeconds float64                `json:"runtimeSeconds"`
}

func marshalIndent(doc outputDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Export builds the output document for a solved schedule, its objective
// value, the objective that produced it (for per-level names), and the
// wall-clock runtime to report alongside it.
func Export(evaluated *objective.EvaluatedSolution[objective.Solution], obj *objective.Objective[objective.Solution], runtime time.Duration) ([]byte, error) {
	s := evaluated.Solution()
	nw := s.Network()
	catalog := s.VehicleTypes()

	doc := outputDocument{RuntimeSeconds: runtime.Seconds()}

	appendTour := func(id basetypes.VehicleID, dummy bool) {
		t, ok := s.TourOf(id)
		if !ok {
			return
		}
		nodes := t.AllNodesIter()
		out := tourOutput{Vehicle: id.String(), Dummy: dummy, NodeIDs: make([]string, len(nodes)), NodeKind: make([]string, len(nodes))}
		for i, n := range nodes {
			out.NodeIDs[i] = nodeLabel(nw, n)
			out.NodeKind[i] = n.Kind.String()
		}
		if !dummy {
			if typ, ok := s.VehicleTypeOf(id); ok {
				if vt, ok := catalog.Get(typ); ok {
					out.Type = vt.Name
				}
			}
		}
		doc.Tours = append(doc.Tours, out)
	}

	for _, id := range s.VehiclesIter() {
		appendTour(id, false)
	}
	for _, id := range s.DummyIter() {
		appendTour(id, true)
	}

	names := obj.LevelNames()
	value := evaluated.ObjectiveValue()
	doc.Objective = make([]objectiveLevelOutput, value.NumLevels())
	for i := range doc.Objective {
		name := ""
		if i < len(names) {
			name = names[i]
		}
		doc.Objective[i] = objectiveLevelOutput{Name: name, Value: value.Level(i).Float64()}
	}

	return marshalIndent(doc)
}

// nodeLabel renders a node as its service name when one exists, else its
// positional index — depots and maintenance placeholders have no name.
func nodeLabel(nw *network.Network, idx basetypes.NodeIdx) string {
	n := nw.Node(idx)
	if n != nil && n.Name != "" {
		return n.Name
	}
	return idx.String()
}
