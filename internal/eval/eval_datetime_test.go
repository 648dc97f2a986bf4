package eval

import "testing"

// Grounded on original_source/examples/datetime_planning/main.py: the
// embedding example that exercises `import datetime`, date.today(),
// datetime.now(), and date/datetime ± timedelta arithmetic end to end.
func TestImportDatetimeDateToday(t *testing.T) {
	v := runOK(t, "import datetime\ndatetime.date.today()")
	if got := reprOf(t, "import datetime\nstr(datetime.date.today())"); got != "'2023-11-14'" {
		t.Errorf("str(date.today()) = %s", got)
	}
	if v.TypeName() != "date" {
		t.Errorf("date.today() TypeName = %s", v.TypeName())
	}
}

func TestImportDatetimeNowPlusTimedelta(t *testing.T) {
	got := reprOf(t, `
import datetime
now_local = datetime.datetime.now()
str(now_local + datetime.timedelta(hours=1))
`)
	if got != "'2023-11-14 23:13:20'" {
		t.Errorf("now + 1h = %s", got)
	}
}

func TestDateConstructorAndStr(t *testing.T) {
	got := reprOf(t, "import datetime\nstr(datetime.date(2024, 1, 15))")
	if got != "'2024-01-15'" {
		t.Errorf("str(date) = %s", got)
	}
}

func TestDatePlusTimedeltaAcrossMonthBoundary(t *testing.T) {
	got := reprOf(t, `
import datetime
(datetime.date(2024, 1, 31) + datetime.timedelta(days=1)).month
`)
	if got != "2" {
		t.Errorf("date + 1 day across month boundary = %s", got)
	}
}

func TestTimedeltaReprAndStr(t *testing.T) {
	if got := reprOf(t, "import datetime\nrepr(datetime.timedelta(days=1, seconds=3600))"); got != `"datetime.timedelta(days=1, seconds=3600)"` {
		t.Errorf("repr(timedelta) = %s", got)
	}
	if got := reprOf(t, "import datetime\nstr(datetime.timedelta(days=1, seconds=3600))"); got != "'1 day, 1:00:00'" {
		t.Errorf("str(timedelta) = %s", got)
	}
}

func TestNegatedTimedeltaNormalizes(t *testing.T) {
	got := reprOf(t, "import datetime\nstr(-datetime.timedelta(days=1, seconds=30))")
	if got != "'-2 days, 23:59:30'" {
		t.Errorf("str(-timedelta) = %s", got)
	}
}

func TestTimezoneUtcRepr(t *testing.T) {
	got := reprOf(t, "import datetime\nrepr(datetime.timezone.utc)")
	if got != `"datetime.timezone.utc"` {
		t.Errorf("repr(timezone.utc) = %s", got)
	}
}

func TestAwareNaiveEqualityNeverRaises(t *testing.T) {
	got := reprOf(t, `
import datetime
datetime.datetime(2024, 1, 1, 12, tzinfo=datetime.timezone.utc) == datetime.datetime(2024, 1, 1, 12)
`)
	if got != "False" {
		t.Errorf("aware == naive = %s, want False", got)
	}
}

func TestAwareNaiveComparisonRaisesTypeError(t *testing.T) {
	_, exc := run(t, `
import datetime
datetime.datetime(2024, 1, 1, 12, tzinfo=datetime.timezone.utc) < datetime.datetime(2024, 1, 1, 12)
`)
	if exc == nil {
		t.Fatal("expected a TypeError")
	}
	if exc.String() != "TypeError: can't compare offset-naive and offset-aware datetimes" {
		t.Errorf("exc = %s", exc.String())
	}
}

func TestTimedeltaOverflowRaisesOverflowError(t *testing.T) {
	_, exc := run(t, "import datetime\ndatetime.timedelta(days=1000000000)")
	if exc == nil {
		t.Fatal("expected an OverflowError")
	}
	if exc.String() != "OverflowError: days=1000000000; must have magnitude <= 999999999" {
		t.Errorf("exc = %s", exc.String())
	}
}

func TestDatetimePlanningExampleShape(t *testing.T) {
	got := reprOf(t, `
import datetime


def parse_date(iso_date):
    year = int(iso_date[0:4])
    month = int(iso_date[5:7])
    day = int(iso_date[8:10])
    return year, month, day


today = datetime.date.today()
today_iso = str(today)
year, month, day = parse_date(today_iso)

if month == 12:
    first_year = year + 1
    first_month = 1
else:
    first_year = year
    first_month = month + 1

first_of_next_month = datetime.date(first_year, first_month, 1)
str(first_of_next_month)
`)
	if got != "'2023-12-01'" {
		t.Errorf("first_of_next_month = %s", got)
	}
}
