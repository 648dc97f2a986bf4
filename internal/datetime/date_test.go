package datetime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestDateRepr(t *testing.T) {
	d, err := NewDate(2024, 1, 15)
	if err != nil {
		t.Fatalf("NewDate: %v", err)
	}
	snaps.MatchSnapshot(t, "repr="+d.Repr()+" str="+d.String())
}

func TestDateArithmeticRoundTrip(t *testing.T) {
	d, _ := NewDate(2024, 2, 28)
	td, _ := NewTimeDelta(2, 0, 0)
	next, err := d.AddDelta(td)
	if err != nil {
		t.Fatalf("AddDelta: %v", err)
	}
	if got, want := next.String(), "2024-03-01"; got != want {
		t.Errorf("leap-year rollover: got %q, want %q", got, want)
	}
	if got := next.Sub(d); got.Days != 2 {
		t.Errorf("Sub: got %+v, want Days=2", got)
	}
}

func TestDateWeekday(t *testing.T) {
	d, _ := NewDate(2024, 1, 15) // a Monday
	if got := d.Weekday(); got != 0 {
		t.Errorf("Weekday() = %d, want 0 (Monday)", got)
	}
}

func TestDateOutOfRange(t *testing.T) {
	if _, err := NewDate(2024, 2, 30); err == nil {
		t.Fatal("expected error for Feb 30")
	}
	if _, err := NewDate(0, 1, 1); err == nil {
		t.Fatal("expected error for year 0")
	}
}

func TestDateOverflow(t *testing.T) {
	maxDate, _ := NewDate(9999, 12, 31)
	one, _ := NewTimeDelta(1, 0, 0)
	if _, err := maxDate.AddDelta(one); err == nil {
		t.Fatal("expected overflow error past year 9999")
	}
}
