package core

import (
	"errors"
	"testing"
	"time"
)

func TestField_StringValue(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{"String field", Field{Type: StringType, Str: "hello"}, "hello"},
		{"Int field", Field{Type: IntType, Int64: 42}, "42"},
		{"Negative int64", Field{Type: Int64Type, Int64: -1234567890}, "-1234567890"},
		{"Bool true", Field{Type: BoolType, Int64: 1}, "true"},
		{"Bool false", Field{Type: BoolType, Int64: 0}, "false"},
		{"Float64 field", Field{Type: Float64Type, Float64: 3.14}, "3.14"},
		{"Duration field", Field{Type: DurationType, Int64: int64(5 * time.Second)}, "5s"},
		{"Error field", Field{Type: ErrorType, Str: "an error occurred"}, "an error occurred"},
		{"Any field", Field{Type: AnyType, Any: errors.New("boxed")}, "boxed"},
		{"Unknown type", Field{Type: FieldType(200)}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.field.StringValue(); got != tt.want {
				t.Errorf("Field.StringValue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestField_AppendValueKeepsPrefix(t *testing.T) {
	f := Field{Type: IntType, Int64: 7}
	got := string(f.AppendValue([]byte("n=")))
	if got != "n=7" {
		t.Errorf("AppendValue() = %q, want %q", got, "n=7")
	}
}

func BenchmarkFieldAppendValue(b *testing.B) {
	fields := []Field{
		{Type: StringType, Str: "test"},
		{Type: IntType, Int64: 42},
		{Type: BoolType, Int64: 1},
		{Type: Float64Type, Float64: 3.14},
	}
	buf := make([]byte, 0, 64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, f := range fields {
			buf = f.AppendValue(buf[:0])
		}
	}
}
