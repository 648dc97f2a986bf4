package datetime

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

func TestTimeZoneUTCRepr(t *testing.T) {
	snaps.MatchSnapshot(t, "repr="+UTC.Repr()+" str="+UTC.String())
}

func TestTimeZoneNegativeSubSecondNormalizes(t *testing.T) {
	tz, err := NewTimeZone(-1, "")
	if err != nil {
		t.Fatalf("NewTimeZone: %v", err)
	}
	want := "datetime.timezone(datetime.timedelta(days=-1, seconds=86399))"
	if got := tz.Repr(); got != want {
		t.Errorf("Repr() = %q, want %q", got, want)
	}
}

func TestTimeZoneOffsetRange(t *testing.T) {
	want := "offset must be a timedelta strictly between -timedelta(hours=24) and timedelta(hours=24)."
	_, err := NewTimeZone(24*3600, "")
	if err == nil {
		t.Fatal("expected error for offset == 24h")
	}
	if got := err.Error(); got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
	if _, err := NewTimeZone(-24*3600, ""); err == nil {
		t.Fatal("expected error for offset == -24h")
	}
}

func TestTimeZoneUTCOffsetString(t *testing.T) {
	tz, _ := NewTimeZone(5*3600+30*60, "")
	if got, want := tz.UTCOffsetString(), "+05:30"; got != want {
		t.Errorf("UTCOffsetString() = %q, want %q", got, want)
	}
	tz2, _ := NewTimeZone(-90, "")
	if got, want := tz2.UTCOffsetString(), "-00:01:30"; got != want {
		t.Errorf("UTCOffsetString() = %q, want %q", got, want)
	}
}

func TestTimeZoneEqualityIgnoresName(t *testing.T) {
	a, _ := NewTimeZone(3600, "A")
	b, _ := NewTimeZone(3600, "B")
	if !a.Equal(b) {
		t.Error("expected timezones with equal offset but different names to compare equal")
	}
}
