// Package netex supplements JSON-sourced instances with infrastructure
// data read from a NeTEx XML extract: StopPlace elements as an alternate
// source of locations, and VehicleType elements as an
// alternate source of vehicle-type names. It never replaces the JSON
// schema's own numeric fields (seats, capacity, dead-head metrics) — it
// only resolves identity and, where present, quay-side placement.
//
// Grounded on: theoremus-urban-solutions-netex-validator's
// validation/ids/extractor.go (xmlquery.Parse + xmlquery.Find with XPath
// node-set queries, node.SelectAttr/InnerText reads).
package netex
