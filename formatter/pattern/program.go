package pattern

import (
	"bytes"
	"os"
	"time"

	"github.com/philipp01105/patternlog/core"
)

// pid is captured once; %P renders it for every record
var pid = uint64(os.Getpid())

// Program is a compiled pattern. It is immutable after Compile and safe
// for concurrent use by any number of goroutines; the only shared mutable
// state is the lock-guarded OffsetCache of a %z operation.
type Program struct {
	pattern   string
	ops       []op
	ref       TimeReference
	eol       string
	needsTime bool
}

func (p *Program) push(o op) {
	if o.kind.usesTime() {
		p.needsTime = true
	}
	p.ops = append(p.ops, o)
}

// Pattern returns the source pattern
func (p *Program) Pattern() string { return p.pattern }

// TimeReference returns the calendar date/time directives render in
func (p *Program) TimeReference() TimeReference { return p.ref }

// EOL returns the terminator appended by Format
func (p *Program) EOL() string { return p.eol }

// Len returns the number of compiled operations
func (p *Program) Len() int { return len(p.ops) }

// Ops returns a copy of the compiled operations in rendering order
func (p *Program) Ops() []Op {
	out := make([]Op, len(p.ops))
	for i, o := range p.ops {
		out[i] = Op{Kind: o.kind, Width: o.width, Text: o.text}
	}
	return out
}

// Format renders e into buf followed by the line terminator.
func (p *Program) Format(e *core.Entry, buf *bytes.Buffer) {
	p.AppendBody(e, buf)
	buf.WriteString(p.eol)
}

// AppendBody renders e into buf without the line terminator. The time
// breakdown is computed at most once per call.
func (p *Program) AppendBody(e *core.Entry, buf *bytes.Buffer) {
	var bd Breakdown
	if p.needsTime {
		bd = BreakDown(e.Time, p.ref)
	}
	for i := range p.ops {
		p.ops[i].render(buf, e, &bd, p.ref)
	}
}

// render appends the output of one operation
func (o *op) render(buf *bytes.Buffer, e *core.Entry, bd *Breakdown, ref TimeReference) {
	switch o.kind {
	case KindLiteral:
		buf.WriteString(o.text)
	case KindLoggerName:
		PadLeft(buf, e.LoggerName, o.width)
	case KindLevel:
		PadLeft(buf, e.Level.String(), o.width)
	case KindShortLevel:
		PadLeft(buf, e.Level.ShortString(), o.width)
	case KindThreadID:
		PadRightUint(buf, e.ThreadID, o.width)
	case KindProcessID:
		PadRightUint(buf, pid, o.width)
	case KindMessage:
		buf.WriteString(e.Message)
	case KindWeekdayAbbr:
		PadRight(buf, weekdayAbbr[bd.Weekday], o.width)
	case KindWeekdayFull:
		PadRight(buf, weekdayFull[bd.Weekday], o.width)
	case KindMonthAbbr:
		PadRight(buf, monthAbbr[bd.Month], o.width)
	case KindMonthFull:
		PadRight(buf, monthFull[bd.Month], o.width)
	case KindDateTime:
		buf.WriteString(weekdayAbbr[bd.Weekday])
		buf.WriteByte(' ')
		buf.WriteString(monthAbbr[bd.Month])
		buf.WriteByte(' ')
		appendInt(buf, bd.Day)
		buf.WriteByte(' ')
		join3(buf, bd.Hour, bd.Minute, bd.Second, ':')
		buf.WriteByte(' ')
		appendInt(buf, bd.Year)
	case KindYearShort:
		pad2(buf, bd.Year%100)
	case KindShortDate:
		join3(buf, bd.Month+1, bd.Day, bd.Year%100, '/')
	case KindYear:
		appendInt(buf, bd.Year)
	case KindMonth:
		pad2(buf, bd.Month+1)
	case KindDay:
		pad2(buf, bd.Day)
	case KindHour24:
		pad2(buf, bd.Hour)
	case KindHour12:
		pad2(buf, to12h(bd.Hour))
	case KindMinute:
		pad2(buf, bd.Minute)
	case KindSecond:
		pad2(buf, bd.Second)
	case KindMillis:
		pad3(buf, Fraction(e.Time, time.Millisecond))
	case KindMicros:
		pad6(buf, Fraction(e.Time, time.Microsecond))
	case KindNanos:
		pad9(buf, Fraction(e.Time, time.Nanosecond))
	case KindAMPM:
		buf.WriteString(ampm(bd.Hour))
	case KindClock12:
		join3(buf, to12h(bd.Hour), bd.Minute, bd.Second, ':')
		buf.WriteByte(' ')
		buf.WriteString(ampm(bd.Hour))
	case KindClock24Short:
		join2(buf, bd.Hour, bd.Minute, ':')
	case KindClock24:
		join3(buf, bd.Hour, bd.Minute, bd.Second, ':')
	case KindUTCOffset:
		o.renderOffset(buf, e, bd, ref)
	case KindFull:
		renderFull(buf, e, bd)
	case KindMsgCounter:
		buf.WriteByte('#')
		appendUint(buf, e.MsgID)
	}
}

// renderOffset writes the zone offset as ±HH:MM
func (o *op) renderOffset(buf *bytes.Buffer, e *core.Entry, bd *Breakdown, ref TimeReference) {
	var minutes int
	switch {
	case ref == UTC:
		minutes = 0
	case o.offsets != nil:
		minutes = o.offsets.Minutes(e.Time)
	default:
		minutes = bd.Offset / 60
	}
	sign := byte('+')
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	buf.WriteByte(sign)
	join2(buf, minutes/60, minutes%60, ':')
}

// renderFull writes "[%Y-%m-%d %H:%M:%S.%e] [%n] [%l] %v"
func renderFull(buf *bytes.Buffer, e *core.Entry, bd *Breakdown) {
	buf.WriteByte('[')
	appendInt(buf, bd.Year)
	buf.WriteByte('-')
	join2(buf, bd.Month+1, bd.Day, '-')
	buf.WriteByte(' ')
	join3(buf, bd.Hour, bd.Minute, bd.Second, ':')
	buf.WriteByte('.')
	pad3(buf, Fraction(e.Time, time.Millisecond))
	buf.WriteString("] [")
	buf.WriteString(e.LoggerName)
	buf.WriteString("] [")
	buf.WriteString(e.Level.String())
	buf.WriteString("] ")
	buf.WriteString(e.Message)
}
