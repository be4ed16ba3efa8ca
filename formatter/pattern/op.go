package pattern

// Kind identifies what a compiled operation renders.
type Kind uint8

const (
	KindLiteral      Kind = iota // verbatim text
	KindLoggerName               // %n
	KindLevel                    // %l
	KindShortLevel               // %L
	KindThreadID                 // %t
	KindProcessID                // %P
	KindMessage                  // %v
	KindWeekdayAbbr              // %a
	KindWeekdayFull              // %A
	KindMonthAbbr                // %b %h
	KindMonthFull                // %B
	KindDateTime                 // %c
	KindYearShort                // %C
	KindShortDate                // %D %x
	KindYear                     // %Y
	KindMonth                    // %m
	KindDay                      // %d
	KindHour24                   // %H
	KindHour12                   // %I
	KindMinute                   // %M
	KindSecond                   // %S
	KindMillis                   // %e
	KindMicros                   // %f
	KindNanos                    // %F
	KindAMPM                     // %p
	KindClock12                  // %r
	KindClock24Short             // %R
	KindClock24                  // %T %X
	KindUTCOffset                // %z
	KindFull                     // %+
	KindMsgCounter               // %i
	kindCount
)

var kindNames = [kindCount]string{
	KindLiteral:      "literal",
	KindLoggerName:   "logger-name",
	KindLevel:        "level",
	KindShortLevel:   "short-level",
	KindThreadID:     "thread-id",
	KindProcessID:    "process-id",
	KindMessage:      "message",
	KindWeekdayAbbr:  "weekday-abbr",
	KindWeekdayFull:  "weekday",
	KindMonthAbbr:    "month-abbr",
	KindMonthFull:    "month-name",
	KindDateTime:     "date-time",
	KindYearShort:    "year-2",
	KindShortDate:    "short-date",
	KindYear:         "year",
	KindMonth:        "month",
	KindDay:          "day",
	KindHour24:       "hour-24",
	KindHour12:       "hour-12",
	KindMinute:       "minute",
	KindSecond:       "second",
	KindMillis:       "millis",
	KindMicros:       "micros",
	KindNanos:        "nanos",
	KindAMPM:         "am-pm",
	KindClock12:      "clock-12",
	KindClock24Short: "clock-24-short",
	KindClock24:      "clock-24",
	KindUTCOffset:    "utc-offset",
	KindFull:         "full",
	KindMsgCounter:   "msg-counter",
}

// String returns a stable, human-readable name for k
func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return kindNames[k]
}

// usesTime reports whether rendering k needs the calendar breakdown
func (k Kind) usesTime() bool {
	switch k {
	case KindLiteral, KindLoggerName, KindLevel, KindShortLevel, KindThreadID,
		KindProcessID, KindMessage, KindMillis, KindMicros, KindNanos, KindMsgCounter:
		return false
	default:
		return true
	}
}

// op is one step of a compiled program. Only KindLiteral uses text, only
// the space-padded kinds use width and only KindUTCOffset may carry an
// offset cache.
type op struct {
	kind    Kind
	width   int
	text    string
	offsets *OffsetCache
}

// Op describes one compiled operation for inspection and debugging.
type Op struct {
	Kind  Kind
	Width int
	Text  string
}
