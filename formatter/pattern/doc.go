// Package pattern compiles printf/strftime-like log patterns into
// programs and renders log entries with them.
//
// A pattern is plain text with directives of the form %<width><flag>:
//
//	%+                         [2023-09-23 15:35:46.123] [app] [info] message
//	%Y-%m-%d %H:%M:%S.%e %v    2023-09-23 15:35:46.123 message
//	[%8n] [%-L] %v             [     app] [%-L] message
//
// Compile scans the pattern once and produces an immutable Program: an
// ordered list of operations, one per literal run or directive. Format
// then breaks the entry's timestamp down once (local time or UTC, chosen
// at compile time), runs every operation in order against a
// *bytes.Buffer and appends the line terminator.
//
// Logging flags: n logger name, l level, L short level, t thread id,
// P process id, v message, + full line, i message counter (only with
// WithMessageCounter). Date and time flags follow strftime: a A b h B c
// C D x Y m d H I M S p r R T X z, plus e f F for the milliseconds,
// microseconds and nanoseconds within the current second.
//
// The optional width is a minimum field width, padded with spaces: to
// the left for n, l and L and to the right for t, P, a, A, b, h and B.
// Other flags parse the width and ignore it.
//
// Compilation never fails. An unknown flag, including a second %, is
// rendered verbatim together with its % and width digits; a % or
// %<digits> at the very end of the pattern is dropped.
//
// Numbers wider than their fixed field are written in full rather than
// truncated. On platforms where reading the zone offset is expensive
// (Windows) %z keeps its offset in an OffsetCache refreshed at most
// every OffsetRefreshInterval; elsewhere it reads the offset from the
// breakdown directly.
package pattern
