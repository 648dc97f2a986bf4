package datetime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDateTimeReprOmitsTrailingZeros(t *testing.T) {
	dt, err := NewDateTime(2024, 1, 15, 10, 30, 0, 0, nil)
	if err != nil {
		t.Fatalf("NewDateTime: %v", err)
	}
	snaps.MatchSnapshot(t, "repr="+dt.Repr()+" str="+dt.String())
}

func TestDateTimeReprKeepsHourMinute(t *testing.T) {
	midnight, err := NewDateTime(2024, 1, 15, 0, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("NewDateTime: %v", err)
	}
	if got, want := midnight.Repr(), "datetime.datetime(2024, 1, 15, 0, 0)"; got != want {
		t.Errorf("Repr() = %q, want %q", got, want)
	}

	onTheHour, err := NewDateTime(2024, 1, 15, 10, 0, 0, 0, nil)
	if err != nil {
		t.Fatalf("NewDateTime: %v", err)
	}
	if got, want := onTheHour.Repr(), "datetime.datetime(2024, 1, 15, 10, 0)"; got != want {
		t.Errorf("Repr() = %q, want %q", got, want)
	}
}

func TestDateTimeAwareNaiveEqualityNeverRaises(t *testing.T) {
	naive, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, nil)
	aware, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, &UTC)
	if aware.Equal(naive) {
		t.Error("aware == naive must be False")
	}
}

func TestDateTimeAwareNaiveCompareRaises(t *testing.T) {
	naive, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, nil)
	aware, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, &UTC)
	if _, err := aware.Compare(naive); !ErrAwareNaiveCompare(err) {
		t.Errorf("expected aware/naive compare error, got %v", err)
	}
}

func TestDateTimeAwareNaiveSubRaises(t *testing.T) {
	naive, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, nil)
	aware, _ := NewDateTime(2024, 1, 1, 12, 0, 0, 0, &UTC)
	if _, err := aware.Sub(naive); !ErrAwareNaiveSub(err) {
		t.Errorf("expected aware/naive sub error, got %v", err)
	}
}

func TestDateTimeArithmetic(t *testing.T) {
	dt, _ := NewDateTime(2024, 1, 15, 23, 30, 0, 0, nil)
	td, _ := NewTimeDelta(0, 3600, 0)
	next, err := dt.AddDelta(td)
	if err != nil {
		t.Fatalf("AddDelta: %v", err)
	}
	if got, want := next.String(), "2024-01-16 00:30:00"; got != want {
		t.Errorf("day rollover: got %q, want %q", got, want)
	}
}

func TestDateTimeAwareStringSuffix(t *testing.T) {
	tz, _ := NewTimeZone(5*3600+30*60, "")
	dt, _ := NewDateTime(2024, 1, 15, 10, 30, 0, 0, &tz)
	snaps.MatchSnapshot(t, dt.String())
}
