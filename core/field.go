package core

import (
	"fmt"
	"strconv"
	"time"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field represents a key-value pair for structured logging
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     interface{}
}

// AppendValue appends the text form of the field's value to dst.
// Numeric kinds never allocate; AnyType goes through fmt.
func (f Field) AppendValue(dst []byte) []byte {
	switch f.Type {
	case StringType, ErrorType:
		return append(dst, f.Str...)
	case IntType, Int64Type:
		return strconv.AppendInt(dst, f.Int64, 10)
	case Float64Type:
		return strconv.AppendFloat(dst, f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.AppendBool(dst, f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).AppendFormat(dst, time.RFC3339)
	case DurationType:
		return append(dst, time.Duration(f.Int64).String()...)
	case AnyType:
		return fmt.Appendf(dst, "%v", f.Any)
	default:
		return dst
	}
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	if f.Type == StringType || f.Type == ErrorType {
		return f.Str
	}
	return string(f.AppendValue(nil))
}
