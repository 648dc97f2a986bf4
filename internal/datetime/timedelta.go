// Package datetime reimplements the date/time value model from scratch
// against the reference interpreter's exact rendering and arithmetic
// rules (§4.7), the way the teacher interpreter's internal/builtins
// datetime_calc.go/datetime_format.go/datetime_info.go split the concern
// into value construction, string rendering, and derived queries.
package datetime

import (
	"fmt"
)

const (
	microsPerSecond = 1_000_000
	secondsPerDay   = 86400
	maxDays         = 999_999_999
)

// TimeDelta is a duration normalized so 0 <= Seconds < 86400 and
// 0 <= Microseconds < 1_000_000, with the sign folded entirely into
// Days, matching the reference interpreter's own normal form.
type TimeDelta struct {
	Days         int64
	Seconds      int64
	Microseconds int64
}

// NewTimeDelta builds a normalized TimeDelta from possibly
// out-of-range or mixed-sign components, the constructor form
// `timedelta(days=.., seconds=.., microseconds=..)` accepts.
func NewTimeDelta(days, seconds, microseconds int64) (TimeDelta, error) {
	// Fold seconds/microseconds carry into days first so the overflow
	// check below sees the true day count.
	carrySeconds := microseconds / microsPerSecond
	microseconds -= carrySeconds * microsPerSecond
	seconds += carrySeconds
	if microseconds < 0 {
		microseconds += microsPerSecond
		seconds--
	}

	carryDays := seconds / secondsPerDay
	seconds -= carryDays * secondsPerDay
	days += carryDays
	if seconds < 0 {
		seconds += secondsPerDay
		days--
	}

	if days > maxDays || days < -maxDays {
		return TimeDelta{}, fmt.Errorf("days=%d; must have magnitude <= %d", days, maxDays)
	}
	return TimeDelta{Days: days, Seconds: seconds, Microseconds: microseconds}, nil
}

// TotalMicroseconds expresses the delta as a single signed count of
// microseconds, the common unit used to implement arithmetic and
// comparisons without re-deriving carries each time.
func (d TimeDelta) TotalMicroseconds() int64 {
	return d.Days*secondsPerDay*microsPerSecond + d.Seconds*microsPerSecond + d.Microseconds
}

// FromMicroseconds is the inverse of TotalMicroseconds, renormalizing a
// raw microsecond count back into the day/second/microsecond form.
func FromMicroseconds(total int64) (TimeDelta, error) {
	days := total / (secondsPerDay * microsPerSecond)
	rem := total % (secondsPerDay * microsPerSecond)
	return NewTimeDelta(days, 0, rem)
}

// Add returns a+b, renormalized, erroring on magnitude overflow the
// same way the constructor does.
func Add(a, b TimeDelta) (TimeDelta, error) {
	return FromMicroseconds(a.TotalMicroseconds() + b.TotalMicroseconds())
}

// Neg returns -d; `-timedelta(days=1, seconds=30)` normalizes to
// `timedelta(days=-2, seconds=86370)` per §4.7.
func Neg(d TimeDelta) (TimeDelta, error) {
	return FromMicroseconds(-d.TotalMicroseconds())
}

// Sub returns a-b.
func Sub(a, b TimeDelta) (TimeDelta, error) {
	neg, err := Neg(b)
	if err != nil {
		return TimeDelta{}, err
	}
	return Add(a, neg)
}

// IsZero reports whether every component is zero.
func (d TimeDelta) IsZero() bool {
	return d.Days == 0 && d.Seconds == 0 && d.Microseconds == 0
}

// Compare returns -1, 0, or 1 comparing a to b.
func Compare(a, b TimeDelta) int {
	am, bm := a.TotalMicroseconds(), b.TotalMicroseconds()
	switch {
	case am < bm:
		return -1
	case am > bm:
		return 1
	default:
		return 0
	}
}

// Repr renders the `datetime.timedelta(...)` constructor form,
// omitting zero components (§4.7).
func (d TimeDelta) Repr() string {
	parts := make([]string, 0, 3)
	if d.Days != 0 {
		parts = append(parts, fmt.Sprintf("days=%d", d.Days))
	}
	if d.Seconds != 0 {
		parts = append(parts, fmt.Sprintf("seconds=%d", d.Seconds))
	}
	if d.Microseconds != 0 {
		parts = append(parts, fmt.Sprintf("microseconds=%d", d.Microseconds))
	}
	if len(parts) == 0 {
		parts = append(parts, "0")
	}
	return "datetime.timedelta(" + joinComma(parts) + ")"
}

// String renders the human form `"1 day, 1:00:00"` with correct
// day-count pluralization and an optional fractional-second suffix.
func (d TimeDelta) String() string {
	hh := d.Seconds / 3600
	mm := (d.Seconds % 3600) / 60
	ss := d.Seconds % 60
	clock := fmt.Sprintf("%d:%02d:%02d", hh, mm, ss)
	if d.Microseconds != 0 {
		clock += fmt.Sprintf(".%06d", d.Microseconds)
	}
	if d.Days == 0 {
		return clock
	}
	unit := "day"
	if d.Days != 1 && d.Days != -1 {
		unit = "days"
	}
	return fmt.Sprintf("%d %s, %s", d.Days, unit, clock)
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
