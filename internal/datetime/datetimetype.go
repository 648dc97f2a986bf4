package datetime

import "fmt"

// DateTime combines a Date and a Time with an optional fixed-offset
// TimeZone; TZ == nil means naive. This is the value backing the
// `datetime` constructor and all of its arithmetic.
type DateTime struct {
	D  Date
	T  Time
	TZ *TimeZone
}

// NewDateTime validates each component via NewDate/NewTime.
func NewDateTime(year, month, day, hour, minute, second, microsecond int, tz *TimeZone) (DateTime, error) {
	d, err := NewDate(year, month, day)
	if err != nil {
		return DateTime{}, err
	}
	t, err := NewTime(hour, minute, second, microsecond)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{D: d, T: t, TZ: tz}, nil
}

// Aware reports whether dt carries a tzinfo.
func (dt DateTime) Aware() bool {
	return dt.TZ != nil
}

// toAbsoluteMicros expresses dt as a microsecond offset from the epoch
// ordinal 0001-01-01 00:00:00, shifted to UTC when aware, the common
// unit comparison and subtraction both reduce to.
func (dt DateTime) toAbsoluteMicros() int64 {
	us := dt.D.ordinal()*secondsPerDay*microsPerSecond + dt.T.sinceMidnight()
	if dt.TZ != nil {
		us -= dt.TZ.OffsetSeconds * microsPerSecond
	}
	return us
}

// AddDelta returns dt shifted by td, renormalizing the day/time split
// and raising on overflow past year 9999 or before year 1.
func (dt DateTime) AddDelta(td TimeDelta) (DateTime, error) {
	total := dt.T.sinceMidnight() + td.Seconds*microsPerSecond + td.Microseconds
	dayShift := td.Days
	const dayMicros = secondsPerDay * microsPerSecond
	if total < 0 {
		borrow := (-total + dayMicros - 1) / dayMicros
		total += borrow * dayMicros
		dayShift -= borrow
	}
	dayShift += total / dayMicros
	total %= dayMicros

	newDate, err := dt.D.AddDelta(TimeDelta{Days: dayShift})
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{D: newDate, T: fromSinceMidnight(total), TZ: dt.TZ}, nil
}

// Sub returns a-b as a TimeDelta; both must be naive or both aware
// (§4.7), else a TypeError-shaped error with the canonical message.
func (a DateTime) Sub(b DateTime) (TimeDelta, error) {
	if a.Aware() != b.Aware() {
		return TimeDelta{}, errAwareNaiveSub
	}
	diff := a.toAbsoluteMicros() - b.toAbsoluteMicros()
	return FromMicroseconds(diff)
}

// errAwareNaiveSub and errAwareNaiveCompare carry the exact CPython
// wording §4.7 pins; the eval-layer datetime builtins translate these
// into TypeError.
var (
	errAwareNaiveSub     = fmt.Errorf("can't subtract offset-naive and offset-aware datetimes")
	errAwareNaiveCompare = fmt.Errorf("can't compare offset-naive and offset-aware datetimes")
)

// ErrAwareNaiveSub reports whether err is the aware/naive subtraction
// error, so callers can recognize it without string matching.
func ErrAwareNaiveSub(err error) bool { return err == errAwareNaiveSub }

// ErrAwareNaiveCompare reports whether err is the aware/naive ordering
// error.
func ErrAwareNaiveCompare(err error) bool { return err == errAwareNaiveCompare }

// Equal implements `==`: an aware/naive mismatch is simply False, never
// an error (§4.7).
func (a DateTime) Equal(b DateTime) bool {
	if a.Aware() != b.Aware() {
		return false
	}
	return a.toAbsoluteMicros() == b.toAbsoluteMicros()
}

// Compare implements ordering; an aware/naive mismatch raises, unlike
// Equal.
func (a DateTime) Compare(b DateTime) (int, error) {
	if a.Aware() != b.Aware() {
		return 0, errAwareNaiveCompare
	}
	am, bm := a.toAbsoluteMicros(), b.toAbsoluteMicros()
	switch {
	case am < bm:
		return -1, nil
	case am > bm:
		return 1, nil
	default:
		return 0, nil
	}
}

// Repr renders `datetime.datetime(Y, M, D, h, m[, s[, us]][, tzinfo=...])`,
// omitting trailing zero second/microsecond fields but always keeping
// hour/minute (CPython never strips those), per §4.7.
func (dt DateTime) Repr() string {
	s := "datetime.datetime" + fieldTuple(5, dt.D.Year, dt.D.Month, dt.D.Day, dt.T.Hour, dt.T.Minute, dt.T.Second, dt.T.Microsecond)
	if dt.TZ != nil {
		s = s[:len(s)-1] + ", tzinfo=" + dt.TZ.Repr() + ")"
	}
	return s
}

// String renders `YYYY-MM-DD HH:MM:SS[.ffffff]`, always including
// seconds (§4.7), with a `+HH:MM`/`+HH:MM:SS` suffix when aware.
func (dt DateTime) String() string {
	s := dt.D.String() + " " + fmt.Sprintf("%02d:%02d:%02d", dt.T.Hour, dt.T.Minute, dt.T.Second)
	if dt.T.Microsecond != 0 {
		s += fmt.Sprintf(".%06d", dt.T.Microsecond)
	}
	if dt.TZ != nil {
		s += dt.TZ.UTCOffsetString()
	}
	return s
}
