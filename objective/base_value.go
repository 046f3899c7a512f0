// File: base_value.go
// Role: BaseValue, the value lattice every Indicator evaluates to.
//
// Grounded on: original_source/objective_framework/src/coefficient.rs's
// Mul<BaseValue> match arms, which fix the arithmetic this file implements
// even though base_value.rs itself is not present in the retrieval pack.
package objective

import (
	"fmt"
	"math"

	"github.com/rssched/rollingstock-solver/basetypes"
)

type baseValueKind uint8

const (
	kindZero baseValueKind = iota
	kindInteger
	kindFloat
	kindDuration
	kindMaximum
)

// BaseValue is a tagged union over {Zero, Integer, Float, Duration,
// Maximum}. Zero is the additive identity; Maximum absorbs addition and
// sorts above every other value.
type BaseValue struct {
	kind     baseValueKind
	integer  int64
	float    float64
	duration basetypes.Duration
}

func Zero() BaseValue                           { return BaseValue{kind: kindZero} }
func Maximum() BaseValue                        { return BaseValue{kind: kindMaximum} }
func Integer(v int64) BaseValue                 { return BaseValue{kind: kindInteger, integer: v} }
func Float(v float64) BaseValue                 { return BaseValue{kind: kindFloat, float: v} }
func FromDuration(v basetypes.Duration) BaseValue { return BaseValue{kind: kindDuration, duration: v} }

// Add sums two BaseValues. Zero is the identity; Maximum absorbs; Duration
// saturates to Infinite on overflow (see Duration.Add). Adding across
// distinct non-Zero/non-Maximum kinds is a programming error elsewhere in
// this package (every Level's summands must evaluate to the same kind) and
// panics rather than silently coercing.
func (v BaseValue) Add(other BaseValue) BaseValue {
	switch {
	case v.kind == kindZero:
		return other
	case other.kind == kindZero:
		return v
	case v.kind == kindMaximum || other.kind == kindMaximum:
		return Maximum()
	}
	switch v.kind {
	case kindInteger:
		if other.kind != kindInteger {
			panic(fmt.Sprintf("objective: cannot add BaseValue kinds %d and %d", v.kind, other.kind))
		}
		return Integer(v.integer + other.integer)
	case kindFloat:
		if other.kind != kindFloat {
			panic(fmt.Sprintf("objective: cannot add BaseValue kinds %d and %d", v.kind, other.kind))
		}
		return Float(v.float + other.float)
	case kindDuration:
		if other.kind != kindDuration {
			panic(fmt.Sprintf("objective: cannot add BaseValue kinds %d and %d", v.kind, other.kind))
		}
		return FromDuration(v.duration.Add(other.duration))
	default:
		panic(fmt.Sprintf("objective: cannot add BaseValue kind %d", v.kind))
	}
}

// Compare orders Zero below any positive value below Maximum; Integer and
// Float compare numerically against each other; Duration compares by
// seconds, with Infinite treated as larger than any finite value.
func (v BaseValue) Compare(other BaseValue) int {
	if v.kind == kindMaximum && other.kind == kindMaximum {
		return 0
	}
	if v.kind == kindMaximum {
		return 1
	}
	if other.kind == kindMaximum {
		return -1
	}
	af := v.asFloat()
	bf := other.asFloat()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// asFloat reduces any non-Maximum BaseValue to a single comparable
// magnitude: Zero and Infinite Durations map to 0 and +Inf respectively.
func (v BaseValue) asFloat() float64 {
	switch v.kind {
	case kindZero:
		return 0
	case kindInteger:
		return float64(v.integer)
	case kindFloat:
		return v.float
	case kindDuration:
		if v.duration.IsInfinite() {
			return math.Inf(1)
		}
		sec, _ := v.duration.Seconds()
		return float64(sec)
	default:
		return 0
	}
}

// durationFromFloatSeconds converts a scaled float second count back into a
// basetypes.Duration, matching the original's saturate-to-Infinity-on-
// out-of-range cast.
func durationFromFloatSeconds(sec float64) basetypes.Duration {
	if sec < 0 || sec > float64(int64(1)<<62) {
		return basetypes.InfiniteDuration()
	}
	return basetypes.DurationFromSeconds(int64(sec))
}

// Float64 reduces v to a single float64 for reporting (JSON output, logs):
// Zero is 0, Maximum and an infinite Duration are +Inf, everything else is
// its natural numeric value.
func (v BaseValue) Float64() float64 {
	if v.kind == kindMaximum {
		return math.Inf(1)
	}
	return v.asFloat()
}

func (v BaseValue) String() string {
	switch v.kind {
	case kindZero:
		return "0"
	case kindInteger:
		return fmt.Sprintf("%d", v.integer)
	case kindFloat:
		return fmt.Sprintf("%g", v.float)
	case kindDuration:
		return v.duration.String()
	case kindMaximum:
		return "max"
	default:
		return "?"
	}
}
