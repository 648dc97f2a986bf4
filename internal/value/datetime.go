package value

import "github.com/mwildehahn/monty/internal/datetime"

// Date, DateTime, Time, TimeDelta, and TimeZone wrap the internal/datetime
// package's pure value types so they can flow through the evaluator like
// any other Value, per §3.1 and §4.7's `datetime` module.

type Date struct {
	V datetime.Date
}

func (d *Date) Kind() Kind       { return KindDate }
func (d *Date) TypeName() string { return "date" }

type DateTime struct {
	V datetime.DateTime
}

func (d *DateTime) Kind() Kind       { return KindDateTime }
func (d *DateTime) TypeName() string { return "datetime" }

type Time struct {
	V datetime.Time
}

func (t *Time) Kind() Kind       { return KindTime }
func (t *Time) TypeName() string { return "time" }

type TimeDelta struct {
	V datetime.TimeDelta
}

func (t *TimeDelta) Kind() Kind       { return KindTimeDelta }
func (t *TimeDelta) TypeName() string { return "timedelta" }

type TimeZone struct {
	V datetime.TimeZone
}

func (t *TimeZone) Kind() Kind       { return KindTimeZone }
func (t *TimeZone) TypeName() string { return "timezone" }
