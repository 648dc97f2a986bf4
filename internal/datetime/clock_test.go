package datetime

import "testing"

func fixedInstant() (DateTime, int64) {
	d, _ := NewDate(2023, 11, 14)
	t, _ := NewTime(22, 13, 20, 0)
	return DateTime{D: d, T: t}, -5 * 3600
}

func TestFixedClockToday(t *testing.T) {
	c := FixedClock(fixedInstant())
	if got, want := Today(c).String(), "2023-11-14"; got != want {
		t.Errorf("Today() = %q, want %q", got, want)
	}
}

func TestFixedClockNowNaive(t *testing.T) {
	c := FixedClock(fixedInstant())
	now := Now(c)
	if now.Aware() {
		t.Error("Now() must return a naive datetime")
	}
	if got, want := now.String(), "2023-11-14 22:13:20"; got != want {
		t.Errorf("Now() = %q, want %q", got, want)
	}
}

func TestFixedClockNowInUTC(t *testing.T) {
	c := FixedClock(fixedInstant())
	now := NowIn(c, UTC)
	if !now.Aware() {
		t.Error("NowIn() must return an aware datetime")
	}
	if got, want := now.String(), "2023-11-15 03:13:20+00:00"; got != want {
		t.Errorf("NowIn(UTC) = %q, want %q", got, want)
	}
}
