package eval

import (
	"github.com/mwildehahn/monty/internal/datetime"
	"github.com/mwildehahn/monty/internal/exception"
	"github.com/mwildehahn/monty/internal/value"
)

// datetimeTypeNames is the closed set of `datetime` module members this
// evaluator resolves through the module registry (§4.7's `date`,
// `datetime`, `time`, `timedelta`, `timezone`).
var datetimeTypeNames = map[string]bool{
	"date": true, "datetime": true, "time": true,
	"timedelta": true, "timezone": true,
}

// evalDatetimeAttribute resolves attribute access rooted at a
// pre-registered module reference, a resolved module member
// (`datetime.date`), or a datetime-module value instance (`d.year`).
// The bool result reports whether this function owns the receiver at
// all, so evalAttribute can fall through to its other receiver kinds
// otherwise.
func (e *Evaluator) evalDatetimeAttribute(receiver value.Value, attr string) (value.Value, *exception.Exception, bool) {
	switch r := receiver.(type) {
	case *value.ModuleRef:
		if r.Name != "datetime" {
			return nil, nil, false
		}
		if !datetimeTypeNames[attr] {
			return nil, exception.AttributeErrorMissing("module", attr), true
		}
		return &value.ModuleAttr{Module: "datetime", Attr: attr}, nil, true
	case *value.ModuleAttr:
		switch r.Attr {
		case "date":
			if attr == "today" {
				return &value.ModuleAttr{Module: "datetime", Attr: "date.today"}, nil, true
			}
		case "datetime":
			if attr == "now" {
				return &value.ModuleAttr{Module: "datetime", Attr: "datetime.now"}, nil, true
			}
		case "timezone":
			if attr == "utc" {
				return &value.TimeZone{V: datetime.UTC}, nil, true
			}
		}
		return nil, exception.AttributeErrorMissing(receiver.TypeName(), attr), true
	case *value.Date:
		switch attr {
		case "year":
			return value.NewInt(int64(r.V.Year)), nil, true
		case "month":
			return value.NewInt(int64(r.V.Month)), nil, true
		case "day":
			return value.NewInt(int64(r.V.Day)), nil, true
		}
		return nil, exception.AttributeErrorMissing("date", attr), true
	case *value.Time:
		switch attr {
		case "hour":
			return value.NewInt(int64(r.V.Hour)), nil, true
		case "minute":
			return value.NewInt(int64(r.V.Minute)), nil, true
		case "second":
			return value.NewInt(int64(r.V.Second)), nil, true
		case "microsecond":
			return value.NewInt(int64(r.V.Microsecond)), nil, true
		}
		return nil, exception.AttributeErrorMissing("time", attr), true
	case *value.DateTime:
		switch attr {
		case "year":
			return value.NewInt(int64(r.V.D.Year)), nil, true
		case "month":
			return value.NewInt(int64(r.V.D.Month)), nil, true
		case "day":
			return value.NewInt(int64(r.V.D.Day)), nil, true
		case "hour":
			return value.NewInt(int64(r.V.T.Hour)), nil, true
		case "minute":
			return value.NewInt(int64(r.V.T.Minute)), nil, true
		case "second":
			return value.NewInt(int64(r.V.T.Second)), nil, true
		case "microsecond":
			return value.NewInt(int64(r.V.T.Microsecond)), nil, true
		case "tzinfo":
			if r.V.TZ == nil {
				return value.None, nil, true
			}
			return &value.TimeZone{V: *r.V.TZ}, nil, true
		}
		return nil, exception.AttributeErrorMissing("datetime", attr), true
	case *value.TimeDelta:
		switch attr {
		case "days":
			return value.NewInt(r.V.Days), nil, true
		case "seconds":
			return value.NewInt(r.V.Seconds), nil, true
		case "microseconds":
			return value.NewInt(r.V.Microseconds), nil, true
		}
		if m, ok := lookupMethod(receiver, attr); ok {
			return m, nil, true
		}
		return nil, exception.AttributeErrorMissing("timedelta", attr), true
	case *value.TimeZone:
		return nil, exception.AttributeErrorMissing("timezone", attr), true
	}
	return nil, nil, false
}

// callModuleAttr dispatches a call through a resolved `datetime` module
// member: either a type constructor or a module/type-level function
// (date.today, datetime.now).
func (e *Evaluator) callModuleAttr(f *value.ModuleAttr, args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	switch f.Attr {
	case "date":
		return e.constructDate(args, kwargs)
	case "date.today":
		if e.ClockMissing {
			return nil, missingCapability("clock_local")
		}
		return &value.Date{V: datetime.Today(e.Clock)}, nil
	case "datetime":
		return e.constructDateTime(args, kwargs)
	case "datetime.now":
		if e.ClockMissing {
			return nil, missingCapability("clock_local")
		}
		return e.constructDatetimeNow(args, kwargs)
	case "time":
		return e.constructTime(args, kwargs)
	case "timedelta":
		return e.constructTimeDelta(args, kwargs)
	case "timezone":
		return e.constructTimeZone(args, kwargs)
	}
	return nil, exception.TypeErrorNotCallable(f.TypeName())
}

// arg resolves the i'th positional-or-keyword parameter by Python
// calling-convention rules: try the keyword first (call sites may
// supply either form), then the positional slot, then def.
func arg(args []value.Value, kwargs map[string]value.Value, i int, name string, def value.Value) value.Value {
	if v, ok := kwargs[name]; ok {
		return v
	}
	if i < len(args) {
		return args[i]
	}
	return def
}

func intArg(args []value.Value, kwargs map[string]value.Value, i int, name string, def int64) (int64, *exception.Exception) {
	v := arg(args, kwargs, i, name, nil)
	if v == nil {
		return def, nil
	}
	iv, ok := value.AsIntValue(v)
	if !ok {
		return 0, exception.NewMessage(exception.TypeError, "'"+name+"' must be an integer")
	}
	n, _ := iv.Int64()
	return n, nil
}

func (e *Evaluator) constructDate(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	year, exc := intArg(args, kwargs, 0, "year", 0)
	if exc != nil {
		return nil, exc
	}
	month, exc := intArg(args, kwargs, 1, "month", 0)
	if exc != nil {
		return nil, exc
	}
	day, exc := intArg(args, kwargs, 2, "day", 0)
	if exc != nil {
		return nil, exc
	}
	d, err := datetime.NewDate(int(year), int(month), int(day))
	if err != nil {
		return nil, exception.NewMessage(exception.ValueError, err.Error())
	}
	return &value.Date{V: d}, nil
}

func (e *Evaluator) constructTime(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	hour, exc := intArg(args, kwargs, 0, "hour", 0)
	if exc != nil {
		return nil, exc
	}
	minute, exc := intArg(args, kwargs, 1, "minute", 0)
	if exc != nil {
		return nil, exc
	}
	second, exc := intArg(args, kwargs, 2, "second", 0)
	if exc != nil {
		return nil, exc
	}
	micro, exc := intArg(args, kwargs, 3, "microsecond", 0)
	if exc != nil {
		return nil, exc
	}
	t, err := datetime.NewTime(int(hour), int(minute), int(second), int(micro))
	if err != nil {
		return nil, exception.NewMessage(exception.ValueError, err.Error())
	}
	return &value.Time{V: t}, nil
}

func (e *Evaluator) constructDateTime(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	year, exc := intArg(args, kwargs, 0, "year", 0)
	if exc != nil {
		return nil, exc
	}
	month, exc := intArg(args, kwargs, 1, "month", 0)
	if exc != nil {
		return nil, exc
	}
	day, exc := intArg(args, kwargs, 2, "day", 0)
	if exc != nil {
		return nil, exc
	}
	hour, exc := intArg(args, kwargs, 3, "hour", 0)
	if exc != nil {
		return nil, exc
	}
	minute, exc := intArg(args, kwargs, 4, "minute", 0)
	if exc != nil {
		return nil, exc
	}
	second, exc := intArg(args, kwargs, 5, "second", 0)
	if exc != nil {
		return nil, exc
	}
	micro, exc := intArg(args, kwargs, 6, "microsecond", 0)
	if exc != nil {
		return nil, exc
	}
	tz, exc := tzArg(args, kwargs, 7, "tzinfo")
	if exc != nil {
		return nil, exc
	}
	dt, err := datetime.NewDateTime(int(year), int(month), int(day), int(hour), int(minute), int(second), int(micro), tz)
	if err != nil {
		return nil, exception.NewMessage(exception.ValueError, err.Error())
	}
	return &value.DateTime{V: dt}, nil
}

func (e *Evaluator) constructDatetimeNow(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	tz, exc := tzArg(args, kwargs, 0, "tz")
	if exc != nil {
		return nil, exc
	}
	if tz == nil {
		return &value.DateTime{V: datetime.Now(e.Clock)}, nil
	}
	return &value.DateTime{V: datetime.NowIn(e.Clock, *tz)}, nil
}

// missingCapability reports an OSAccess capability the host never
// configured, matching §5's "Absent capabilities cause the
// corresponding operations to raise OSError" rule.
func missingCapability(name string) *exception.Exception {
	return exception.NewMessage(exception.OSError, "os."+name+" is not available")
}

func tzArg(args []value.Value, kwargs map[string]value.Value, i int, name string) (*datetime.TimeZone, *exception.Exception) {
	v := arg(args, kwargs, i, name, nil)
	if v == nil || value.IsNone(v) {
		return nil, nil
	}
	tz, ok := v.(*value.TimeZone)
	if !ok {
		return nil, exception.NewMessage(exception.TypeError, "'"+name+"' must be a timezone or None")
	}
	return &tz.V, nil
}

func (e *Evaluator) constructTimeDelta(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	days, exc := intArg(args, kwargs, 0, "days", 0)
	if exc != nil {
		return nil, exc
	}
	seconds, exc := intArg(args, kwargs, 1, "seconds", 0)
	if exc != nil {
		return nil, exc
	}
	micro, exc := intArg(args, kwargs, 2, "microseconds", 0)
	if exc != nil {
		return nil, exc
	}
	milli, exc := intArg(args, kwargs, 3, "milliseconds", 0)
	if exc != nil {
		return nil, exc
	}
	minutes, exc := intArg(args, kwargs, 4, "minutes", 0)
	if exc != nil {
		return nil, exc
	}
	hours, exc := intArg(args, kwargs, 5, "hours", 0)
	if exc != nil {
		return nil, exc
	}
	weeks, exc := intArg(args, kwargs, 6, "weeks", 0)
	if exc != nil {
		return nil, exc
	}
	totalDays := days + 7*weeks
	totalSeconds := seconds + 60*minutes + 3600*hours
	totalMicros := micro + 1000*milli
	td, err := datetime.NewTimeDelta(totalDays, totalSeconds, totalMicros)
	if err != nil {
		return nil, exception.NewMessage(exception.OverflowError, err.Error())
	}
	return &value.TimeDelta{V: td}, nil
}

func (e *Evaluator) constructTimeZone(args []value.Value, kwargs map[string]value.Value) (value.Value, *exception.Exception) {
	offV := arg(args, kwargs, 0, "offset", nil)
	off, ok := offV.(*value.TimeDelta)
	if !ok {
		return nil, exception.NewMessage(exception.TypeError, "timezone() argument 1 must be datetime.timedelta, not "+offV.TypeName())
	}
	name := ""
	if n := arg(args, kwargs, 1, "name", nil); n != nil {
		if s, ok := n.(*value.Str); ok {
			name = s.String()
		}
	}
	offsetSeconds := off.V.Days*86400 + off.V.Seconds
	tz, err := datetime.NewTimeZone(offsetSeconds, name)
	if err != nil {
		return nil, exception.NewMessage(exception.ValueError, err.Error())
	}
	return &value.TimeZone{V: tz}, nil
}
