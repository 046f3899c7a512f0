// Package mincostflow builds and solves the time-expanded min-cost-flow
// network used to seed an initial schedule: one source/sink pair, a
// (start-depot, end-depot) node per depot role and a (service.in,
// service.out) pair per timetabled trip, wired with dead-head-distance
// costs. The integral optimum is decoded by successive path extraction,
// each extracted path spawning one vehicle into an initially empty
// schedule.Schedule.
//
// Grounded on: flow/dinic.go (level-graph + residual-capMap
// shape, generalized here from max-flow to cost-aware successive shortest
// augmenting paths since dead-head distance is a real per-arc cost) and
// core.Graph (vertex/edge bookkeeping for the forward network; Edge.Weight
// carries arc cost, residual capacity is tracked in a side map exactly the
// way flow.buildCapMap keeps capacity separate from the core.Graph it was
// derived from).
package mincostflow
