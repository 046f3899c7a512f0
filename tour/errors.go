package tour

import (
	"errors"
	"fmt"

	"github.com/rssched/rollingstock-solver/basetypes"
)

// Sentinel errors returned by package tour. Wrap with fmt.Errorf("...: %w")
// where a caller needs additional context.
var (
	ErrEmptyPath            = errors.New("tour: path has no nodes")
	ErrOnlyDepotsInPath     = errors.New("tour: path contains only depot nodes")
	ErrBadDepotStructure    = errors.New("tour: bad depot structure")
	ErrSegmentNotContiguous = errors.New("tour: segment is not a contiguous sub-path of the tour")
	ErrTourInfeasible       = errors.New("tour: resulting tour would have no feasible depot-to-depot closure")
)

// NotReachableError reports that node A cannot reach node B under the
// network's can-reach predicate, at a point where the caller required it.
type NotReachableError struct {
	A, B basetypes.NodeIdx
}

func (e *NotReachableError) Error() string {
	return fmt.Sprintf("tour: %s cannot reach %s", e.A, e.B)
}
