package datetime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestTimeDeltaRendering(t *testing.T) {
	cases := []struct {
		name string
		td   TimeDelta
	}{
		{"days_and_seconds", TimeDelta{Days: 1, Seconds: 3600}},
		{"zero", TimeDelta{}},
		{"seconds_only", TimeDelta{Seconds: 90}},
		{"with_micros", TimeDelta{Seconds: 1, Microseconds: 500}},
	}
	for _, c := range cases {
		snaps.MatchSnapshot(t, fmt_reprStr(c.name, c.td))
	}
}

func fmt_reprStr(name string, td TimeDelta) string {
	return name + ": repr=" + td.Repr() + " str=" + td.String()
}

func TestTimeDeltaNegation(t *testing.T) {
	td, err := NewTimeDelta(1, 30, 0)
	if err != nil {
		t.Fatalf("NewTimeDelta: %v", err)
	}
	neg, err := Neg(td)
	if err != nil {
		t.Fatalf("Neg: %v", err)
	}
	if got, want := neg.String(), "-2 days, 23:59:30"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTimeDeltaOverflow(t *testing.T) {
	_, err := NewTimeDelta(maxDays+1, 0, 0)
	if err == nil {
		t.Fatal("expected overflow error")
	}
	if got, want := err.Error(), "days=1000000000; must have magnitude <= 999999999"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestTimeDeltaRoundTrip(t *testing.T) {
	td, _ := NewTimeDelta(2, 100, 250)
	back, err := FromMicroseconds(td.TotalMicroseconds())
	if err != nil {
		t.Fatalf("FromMicroseconds: %v", err)
	}
	if back != td {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, td)
	}
}
