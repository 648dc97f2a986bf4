package datetime

import "fmt"

// TimeZone is a fixed UTC offset, the only tzinfo kind this
// implementation supports (no IANA database, no DST rules). Equality
// and hashing depend only on the offset, never on Name (§4.7).
type TimeZone struct {
	OffsetSeconds int64
	Name          string
}

// UTC is the singleton returned by timezone.utc, rendered specially by
// Repr.
var UTC = TimeZone{OffsetSeconds: 0, Name: "UTC"}

const maxOffsetSeconds = 24 * 3600

// NewTimeZone validates offset (strictly within ±24h, exclusive) and
// builds a TimeZone, the constructor form `timezone(offset, name=None)`
// accepts.
func NewTimeZone(offsetSeconds int64, name string) (TimeZone, error) {
	if offsetSeconds <= -maxOffsetSeconds || offsetSeconds >= maxOffsetSeconds {
		return TimeZone{}, fmt.Errorf("offset must be a timedelta strictly between -timedelta(hours=24) and timedelta(hours=24).")
	}
	return TimeZone{OffsetSeconds: offsetSeconds, Name: name}, nil
}

// Equal compares by offset alone.
func (tz TimeZone) Equal(other TimeZone) bool {
	return tz.OffsetSeconds == other.OffsetSeconds
}

// Offset returns the UTC offset as a normalized TimeDelta.
func (tz TimeZone) Offset() TimeDelta {
	td, _ := NewTimeDelta(0, tz.OffsetSeconds, 0)
	return td
}

// Repr renders `datetime.timezone.utc` for the UTC singleton, and
// `datetime.timezone(datetime.timedelta(...)[, 'name'])` otherwise —
// the offset itself rendered via TimeDelta's own normalized Repr, so a
// negative sub-second offset like timezone(timedelta(seconds=-1))
// naturally comes out as the normalized
// `datetime.timezone(datetime.timedelta(days=-1, seconds=86399))`.
func (tz TimeZone) Repr() string {
	if tz.OffsetSeconds == 0 && tz.Name == "UTC" {
		return "datetime.timezone.utc"
	}
	s := "datetime.timezone(" + tz.Offset().Repr()
	if tz.Name != "" {
		s += fmt.Sprintf(", '%s'", tz.Name)
	}
	return s + ")"
}

// String renders tzname(): the given Name if one was supplied,
// otherwise "UTC" for the zero offset or "UTC±HH:MM[:SS]" otherwise.
func (tz TimeZone) String() string {
	if tz.Name != "" {
		return tz.Name
	}
	if tz.OffsetSeconds == 0 {
		return "UTC"
	}
	return "UTC" + tz.UTCOffsetString()
}

// UTCOffsetString renders the "+HH:MM" / "+HH:MM:SS" suffix appended
// to str(datetime)/str(time) for an aware value.
func (tz TimeZone) UTCOffsetString() string {
	sign := "+"
	off := tz.OffsetSeconds
	if off < 0 {
		sign = "-"
		off = -off
	}
	hh := off / 3600
	mm := (off % 3600) / 60
	ss := off % 60
	if ss != 0 {
		return fmt.Sprintf("%s%02d:%02d:%02d", sign, hh, mm, ss)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, hh, mm)
}
