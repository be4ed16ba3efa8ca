package pattern

import (
	"bytes"
	"strconv"
)

// maxWidth bounds the width prefix of a directive so that a typo like
// %99999999n cannot make a single record allocate gigabytes of spaces.
const maxWidth = 4096

// spaces backs space padding; widths beyond its length are written in chunks
const spaces = "                                                                "

func appendInt(buf *bytes.Buffer, n int) {
	buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(n), 10))
}

func appendUint(buf *bytes.Buffer, n uint64) {
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), n, 10))
}

// pad2 writes n as exactly two digits when 0 <= n <= 99, otherwise as a
// plain decimal number.
func pad2(buf *bytes.Buffer, n int) {
	if n < 0 || n > 99 {
		appendInt(buf, n)
		return
	}
	buf.WriteByte(byte('0' + n/10))
	buf.WriteByte(byte('0' + n%10))
}

// pad3 writes n as exactly three digits when 0 <= n <= 999, otherwise as a
// plain decimal number.
func pad3(buf *bytes.Buffer, n int) {
	if n < 0 || n > 999 {
		appendInt(buf, n)
		return
	}
	buf.WriteByte(byte('0' + n/100))
	pad2(buf, n%100)
}

// pad6 writes n as two three-digit groups when 0 <= n <= 999999.
func pad6(buf *bytes.Buffer, n int) {
	if n < 0 || n > 999999 {
		appendInt(buf, n)
		return
	}
	pad3(buf, n/1000)
	pad3(buf, n%1000)
}

// pad9 writes n as three three-digit groups when 0 <= n <= 999999999.
func pad9(buf *bytes.Buffer, n int) {
	if n < 0 || n > 999999999 {
		appendInt(buf, n)
		return
	}
	pad3(buf, n/1000000)
	pad6(buf, n%1000000)
}

// ZeroPad appends n left-filled with '0' to width digits. Supported widths
// are 2, 3, 6 and 9; any other width, a negative n or an n with more digits
// than width is written as a plain decimal number. Digits are never dropped.
func ZeroPad(buf *bytes.Buffer, n, width int) {
	switch width {
	case 2:
		pad2(buf, n)
	case 3:
		pad3(buf, n)
	case 6:
		pad6(buf, n)
	case 9:
		pad9(buf, n)
	default:
		appendInt(buf, n)
	}
}

func writeSpaces(buf *bytes.Buffer, n int) {
	for n > 0 {
		chunk := min(n, len(spaces))
		buf.WriteString(spaces[:chunk])
		n -= chunk
	}
}

// PadLeft right-aligns s in a field of width columns.
func PadLeft(buf *bytes.Buffer, s string, width int) {
	writeSpaces(buf, width-len(s))
	buf.WriteString(s)
}

// PadRight left-aligns s in a field of width columns.
func PadRight(buf *bytes.Buffer, s string, width int) {
	buf.WriteString(s)
	writeSpaces(buf, width-len(s))
}

// PadRightUint left-aligns the decimal form of n in a field of width columns.
func PadRightUint(buf *bytes.Buffer, n uint64, width int) {
	start := buf.Len()
	appendUint(buf, n)
	writeSpaces(buf, width-(buf.Len()-start))
}

// join2 writes two zero-padded values separated by sep, e.g. "15:04".
func join2(buf *bytes.Buffer, v1, v2 int, sep byte) {
	pad2(buf, v1)
	buf.WriteByte(sep)
	pad2(buf, v2)
}

// join3 writes three zero-padded values separated by sep, e.g. "15:04:05".
func join3(buf *bytes.Buffer, v1, v2, v3 int, sep byte) {
	join2(buf, v1, v2, sep)
	buf.WriteByte(sep)
	pad2(buf, v3)
}
