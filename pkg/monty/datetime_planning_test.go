package monty

import "testing"

// montyCode is a direct port of original_source/examples/datetime_planning/main.py's
// embedded script: date/datetime arithmetic, weekday computation via the
// Sakamoto algorithm, and a dict-shaped result — the full host-facing
// round trip §6's embedding API is named after.
const montyCode = `
import datetime


def parse_date(iso_date):
    year = int(iso_date[0:4])
    month = int(iso_date[5:7])
    day = int(iso_date[8:10])
    return year, month, day


def parse_time(iso_datetime):
    hour = int(iso_datetime[11:13])
    minute = int(iso_datetime[14:16])
    second = int(iso_datetime[17:19])
    return hour, minute, second


def weekday_monday_zero(year, month, day):
    offsets = [0, 3, 2, 5, 0, 3, 5, 1, 4, 6, 2, 4]
    adjusted_year = year
    if month < 3:
        adjusted_year = adjusted_year - 1
    weekday_sunday_zero = (
        adjusted_year
        + adjusted_year // 4
        - adjusted_year // 100
        + adjusted_year // 400
        + offsets[month - 1]
        + day
    ) % 7
    return (weekday_sunday_zero + 6) % 7


today = datetime.date.today()
now_local = datetime.datetime.now()
in_one_hour = now_local + datetime.timedelta(hours=1)

today_iso = str(today)
now_iso = str(now_local)

year, month, day = parse_date(today_iso)
current_hour, _current_minute, _current_second = parse_time(now_iso)

today_weekday = weekday_monday_zero(year, month, day)
next_thursday_days = (3 - today_weekday + 7) % 7
if next_thursday_days == 0 and current_hour >= 15:
    next_thursday_days = 7

next_thursday_date = today + datetime.timedelta(days=next_thursday_days)
next_thursday_iso = str(next_thursday_date)
next_year, next_month, next_day = parse_date(next_thursday_iso)
next_thursday_3pm = datetime.datetime(next_year, next_month, next_day, 15, 0, 0)

if month == 12:
    first_year = year + 1
    first_month = 1
else:
    first_year = year
    first_month = month + 1

first_of_next_month = datetime.date(first_year, first_month, 1)
first_month_weekday = weekday_monday_zero(first_year, first_month, 1)
first_monday_offset = (0 - first_month_weekday + 7) % 7
first_monday_next_month = first_of_next_month + datetime.timedelta(days=first_monday_offset)

{
    'today': str(today),
    'in_one_hour': str(in_one_hour),
    'next_thursday_3pm': str(next_thursday_3pm),
    'first_monday_next_month': str(first_monday_next_month),
}
`

// TestDatetimePlanningExample runs the ported script with no OSAccess
// capability at all, so the evaluator falls back to its deterministic
// default clock (2023-11-14 22:13:20 local, §4.7) — the same "no wall
// clock unless the host opts in" guarantee the Rust original's
// `runner.run(os=OSAccess())` call exercises, with an empty capability
// bundle.
func TestDatetimePlanningExample(t *testing.T) {
	m, err := New(montyCode, nil, "datetime_planning.py")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := m.Run(nil, RunOptions{Limits: DefaultConfig().Limits()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got, ok := result.(map[string]interface{})
	if !ok {
		t.Fatalf("result type = %T, want map[string]interface{}", result)
	}

	want := map[string]string{
		"today":                    "2023-11-14",
		"in_one_hour":              "2023-11-14 23:13:20",
		"next_thursday_3pm":        "2023-11-16 15:00:00",
		"first_monday_next_month": "2023-12-04",
	}
	for k, w := range want {
		g, ok := got[k].(string)
		if !ok || g != w {
			t.Errorf("%s = %v, want %q", k, got[k], w)
		}
	}
}

// TestDatetimePlanningExampleMissingClock exercises the OSAccess
// "absent capability raises OSError" rule (§5, §6): passing a non-nil
// OSAccess with no ClockLocal callback must fail date.today() rather
// than silently defaulting.
func TestDatetimePlanningExampleMissingClock(t *testing.T) {
	m, err := New(montyCode, nil, "datetime_planning.py")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = m.Run(nil, RunOptions{Limits: DefaultConfig().Limits(), OS: &OSAccess{}})
	if err == nil {
		t.Fatal("expected an OSError for the missing clock_local capability")
	}
	scriptErr, ok := err.(*ScriptError)
	if !ok {
		t.Fatalf("err = %T, want *ScriptError", err)
	}
	if scriptErr.Exc.String() != "OSError: os.clock_local is not available" {
		t.Errorf("err = %s", scriptErr.Exc.String())
	}
}

// TestDatetimePlanningExampleCustomClock exercises a host-supplied
// ClockLocal, proving the capability is actually threaded through
// rather than always falling back to the default.
func TestDatetimePlanningExampleCustomClock(t *testing.T) {
	m, err := New(montyCode, nil, "datetime_planning.py")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	os := &OSAccess{
		ClockLocal: func() (int, int, int, int, int, int, int, int64) {
			return 2024, 12, 31, 10, 0, 0, 0, 0
		},
	}
	result, err := m.Run(nil, RunOptions{Limits: DefaultConfig().Limits(), OS: os})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	got := result.(map[string]interface{})
	if got["today"] != "2024-12-31" {
		t.Errorf("today = %v, want 2024-12-31", got["today"])
	}
	if got["first_monday_next_month"] != "2025-01-06" {
		t.Errorf("first_monday_next_month = %v, want 2025-01-06", got["first_monday_next_month"])
	}
}
