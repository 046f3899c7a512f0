package mincostflow

import "errors"

// ErrInfeasible is returned when the maximum achievable flow falls short of
// the total required vehicle-slot demand: no feasible fully-covering
// schedule exists for the given depot capacities.
var ErrInfeasible = errors.New("mincostflow: maximum flow does not meet required demand")
