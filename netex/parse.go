package netex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/rssched/rollingstock-solver/basetypes"
	"github.com/rssched/rollingstock-solver/locations"
)

// StopPlace is one <StopPlace> element's identity and, when present, its
// quays' platform-side hints.
type StopPlace struct {
	ID    string
	Name  string
	Quays []Quay
}

// Quay is one <Quay> child of a StopPlace; Side is read from a
// <Side>front|back</Side> extension element when present, defaulting to
// Front like the rest of this module's ingestion path.
type Quay struct {
	ID   string
	Side basetypes.StationSide
}

// VehicleTypeName is one <VehicleType> element's id and Name.
type VehicleTypeName struct {
	ID   string
	Name string
}

// ParseStopPlaces extracts every <StopPlace> element's id, Name, and quays
// from a NeTEx XML document.
func ParseStopPlaces(data []byte) ([]StopPlace, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("netex: parsing XML: %w", err)
	}

	var out []StopPlace
	for _, node := range xmlquery.Find(doc, "//StopPlace") {
		sp := StopPlace{
			ID:   node.SelectAttr("id"),
			Name: textOf(node, "Name"),
		}
		for _, quayNode := range xmlquery.Find(node, ".//Quay") {
			side := basetypes.Front
			if s := strings.ToLower(strings.TrimSpace(textOf(quayNode, "Side"))); s == "back" {
				side = basetypes.Back
			}
			sp.Quays = append(sp.Quays, Quay{ID: quayNode.SelectAttr("id"), Side: side})
		}
		if sp.ID != "" {
			out = append(out, sp)
		}
	}
	return out, nil
}

// ParseVehicleTypeNames extracts id/Name pairs from every <VehicleType>
// element in the document; elements without an id are skipped.
func ParseVehicleTypeNames(data []byte) ([]VehicleTypeName, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("netex: parsing XML: %w", err)
	}

	var out []VehicleTypeName
	for _, node := range xmlquery.Find(doc, "//VehicleType") {
		id := node.SelectAttr("id")
		if id == "" {
			continue
		}
		out = append(out, VehicleTypeName{ID: id, Name: textOf(node, "Name")})
	}
	return out, nil
}

func textOf(node *xmlquery.Node, childTag string) string {
	child := xmlquery.FindOne(node, childTag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.InnerText())
}

// MergeLocations registers every parsed StopPlace into lb as a station,
// assigning it the next unused basetypes.LocationIdx starting at next. It
// returns the id->index map for the newly added stations and the next
// still-unused index, so a caller ingesting both a JSON instance and a
// NeTEx extract can keep a single contiguous index space.
func MergeLocations(lb *locations.Builder, next basetypes.LocationIdx, stopPlaces []StopPlace) (map[string]basetypes.LocationIdx, basetypes.LocationIdx) {
	ids := make(map[string]basetypes.LocationIdx, len(stopPlaces))
	for _, sp := range stopPlaces {
		idx := next
		next++
		ids[sp.ID] = idx
		lb.AddStation(idx, sp.Name)
	}
	return ids, next
}

// QuaySide reports the Side recorded for quayID among sp's quays, or
// Front if quayID is unknown or carries no Side hint — the same fallback
// ingest.Parse uses for a JSON instance's own dead-head pairs.
func (sp StopPlace) QuaySide(quayID string) basetypes.StationSide {
	for _, q := range sp.Quays {
		if q.ID == quayID {
			return q.Side
		}
	}
	return basetypes.Front
}
