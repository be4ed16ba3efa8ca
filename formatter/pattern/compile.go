package pattern

// Option configures Compile
type Option func(*options)

type options struct {
	ref         TimeReference
	eol         string
	msgCounter  bool
	cacheOffset bool
	offsetQuery OffsetQuery
}

func defaultOptions() options {
	return options{
		ref:         Local,
		eol:         DefaultEOL,
		cacheOffset: cacheOffsetByDefault,
	}
}

// WithTimeReference selects local time (default) or UTC for every
// date/time directive of the program.
func WithTimeReference(ref TimeReference) Option {
	return func(o *options) { o.ref = ref }
}

// WithEOL replaces the platform line terminator appended after each record.
func WithEOL(eol string) Option {
	return func(o *options) { o.eol = eol }
}

// WithMessageCounter enables the %i directive. Without it %i is an unknown
// directive and is rendered literally.
func WithMessageCounter(enabled bool) Option {
	return func(o *options) { o.msgCounter = enabled }
}

// WithOffsetCache forces %z through an OffsetCache even on platforms whose
// breakdown already carries the zone offset.
func WithOffsetCache(enabled bool) Option {
	return func(o *options) { o.cacheOffset = enabled }
}

// withOffsetQuery swaps the zone database lookup used by offset caches.
func withOffsetQuery(q OffsetQuery) Option {
	return func(o *options) {
		o.offsetQuery = q
		o.cacheOffset = true
	}
}

type scanState uint8

const (
	scanningLiteral scanState = iota
	collectingWidth
)

// Compile turns a pattern into a Program. Compilation never fails: an
// unknown directive is kept as literal text and a trailing "%" or
// "%<digits>" without a flag is dropped. Width prefixes above 4096 are
// clamped to 4096.
func Compile(pattern string, opts ...Option) *Program {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	p := &Program{
		pattern: pattern,
		ref:     o.ref,
		eol:     o.eol,
	}

	state := scanningLiteral
	literalStart := -1
	widthStart := 0
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch state {
		case scanningLiteral:
			if c != '%' {
				if literalStart < 0 {
					literalStart = i
				}
				continue
			}
			if literalStart >= 0 {
				p.push(op{kind: KindLiteral, text: pattern[literalStart:i]})
				literalStart = -1
			}
			widthStart = i + 1
			state = collectingWidth
		case collectingWidth:
			if c >= '0' && c <= '9' {
				continue
			}
			p.push(o.resolve(c, pattern[widthStart:i], pattern[widthStart-1:i+1]))
			state = scanningLiteral
		}
	}
	if state == scanningLiteral && literalStart >= 0 {
		p.push(op{kind: KindLiteral, text: pattern[literalStart:]})
	}
	return p
}

// parseWidth reads an unsigned decimal run, clamping at maxWidth
func parseWidth(digits string) int {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
		if n > maxWidth {
			return maxWidth
		}
	}
	return n
}

// resolve maps a flag and its width digits to an operation. directive is
// the full "%<digits><flag>" text, kept verbatim for unknown flags.
func (o *options) resolve(flag byte, digits, directive string) op {
	width := parseWidth(digits)
	switch flag {
	case 'n':
		return op{kind: KindLoggerName, width: width}
	case 'l':
		return op{kind: KindLevel, width: width}
	case 'L':
		return op{kind: KindShortLevel, width: width}
	case 't':
		return op{kind: KindThreadID, width: width}
	case 'P':
		return op{kind: KindProcessID, width: width}
	case 'v':
		return op{kind: KindMessage}
	case 'a':
		return op{kind: KindWeekdayAbbr, width: width}
	case 'A':
		return op{kind: KindWeekdayFull, width: width}
	case 'b', 'h':
		return op{kind: KindMonthAbbr, width: width}
	case 'B':
		return op{kind: KindMonthFull, width: width}
	case 'c':
		return op{kind: KindDateTime}
	case 'C':
		return op{kind: KindYearShort}
	case 'D', 'x':
		return op{kind: KindShortDate}
	case 'Y':
		return op{kind: KindYear}
	case 'm':
		return op{kind: KindMonth}
	case 'd':
		return op{kind: KindDay}
	case 'H':
		return op{kind: KindHour24}
	case 'I':
		return op{kind: KindHour12}
	case 'M':
		return op{kind: KindMinute}
	case 'S':
		return op{kind: KindSecond}
	case 'e':
		return op{kind: KindMillis}
	case 'f':
		return op{kind: KindMicros}
	case 'F':
		return op{kind: KindNanos}
	case 'p':
		return op{kind: KindAMPM}
	case 'r':
		return op{kind: KindClock12}
	case 'R':
		return op{kind: KindClock24Short}
	case 'T', 'X':
		return op{kind: KindClock24}
	case 'z':
		zop := op{kind: KindUTCOffset}
		if o.cacheOffset && o.ref == Local {
			zop.offsets = NewOffsetCache(o.offsetQuery)
		}
		return zop
	case '+':
		return op{kind: KindFull}
	case 'i':
		if o.msgCounter {
			return op{kind: KindMsgCounter}
		}
	}
	return op{kind: KindLiteral, text: directive}
}
