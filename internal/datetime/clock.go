package datetime

// Clock supplies wall time to date.today()/datetime.now()/datetime.now(tz)
// without the evaluator ever touching the OS clock (§4.7, §5
// "Determinism"): it returns the civil local date/time components
// together with the local UTC offset in seconds, both host-controlled
// so a test can pin a fixed instant.
type Clock func() (dt DateTime, utcOffsetSeconds int64)

// FixedClock returns a Clock that always answers the same instant,
// the form the test suite and any embedder wanting reproducible runs
// will use.
func FixedClock(local DateTime, utcOffsetSeconds int64) Clock {
	return func() (DateTime, int64) {
		return local, utcOffsetSeconds
	}
}

// Today returns the civil local date component of c, for date.today().
func Today(c Clock) Date {
	dt, _ := c()
	return dt.D
}

// Now returns the civil local date/time of c as a naive DateTime, for
// datetime.now() with no tz argument.
func Now(c Clock) DateTime {
	dt, _ := c()
	dt.TZ = nil
	return dt
}

// NowIn converts the civil local time of c to the given tz and returns
// an aware DateTime, for datetime.now(tz).
func NowIn(c Clock, tz TimeZone) DateTime {
	local, offset := c()
	utc, err := local.AddDelta(TimeDelta{Seconds: -offset})
	if err != nil {
		utc = local
	}
	shifted, err := utc.AddDelta(tz.Offset())
	if err != nil {
		shifted = utc
	}
	shifted.TZ = &tz
	return shifted
}
