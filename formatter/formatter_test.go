package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/patternlog/core"
)

var testTime = time.Date(2026, 2, 18, 13, 0, 0, 5000000, time.UTC)

func TestPatternFormatter_Default(t *testing.T) {
	f := NewPatternFormatter(Config{UTC: true, EOL: "\n"})

	entry := &core.Entry{
		Time:       testTime,
		Level:      core.InfoLevel,
		LoggerName: "api",
		Message:    "test message",
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "[2026-02-18 13:00:00.005] [api] [info] test message\n"
	if string(result) != want {
		t.Errorf("Format() = %q, want %q", result, want)
	}
	if f.Pattern != DefaultPattern {
		t.Errorf("Pattern = %q, want %q", f.Pattern, DefaultPattern)
	}
}

func TestPatternFormatter_CustomPattern(t *testing.T) {
	f := NewPatternFormatter(Config{Pattern: "%H:%M:%S %L %t %v", UTC: true, EOL: "\n"})

	entry := &core.Entry{
		Time:     testTime,
		Level:    core.WarnLevel,
		ThreadID: 9,
		Message:  "disk almost full",
	}

	result, _ := f.Format(entry)
	if got, want := string(result), "13:00:00 W 9 disk almost full\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestPatternFormatter_DefaultEOL(t *testing.T) {
	f := NewPatternFormatter(Config{Pattern: "%v"})
	result, _ := f.Format(&core.Entry{Message: "x"})
	if !strings.HasSuffix(string(result), f.Program().EOL()) || f.EOL == "" {
		t.Errorf("Format() = %q, want platform terminator", result)
	}
}

func TestPatternFormatter_WithFields(t *testing.T) {
	f := NewPatternFormatter(Config{Pattern: "%v", EOL: "\n"})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got, want := string(result), "test key1=value1 key2=42\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}

	f = NewPatternFormatter(Config{Pattern: "%v", EOL: "\n", OmitFields: true})
	result, _ = f.Format(entry)
	if got, want := string(result), "test\n"; got != want {
		t.Errorf("Format() with OmitFields = %q, want %q", got, want)
	}
}

func TestPatternFormatter_WithCaller(t *testing.T) {
	f := NewPatternFormatter(Config{Pattern: "%v", IncludeCaller: true, EOL: "\n"})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Caller: core.CallerInfo{
			File:      "/path/to/file.go",
			ShortFile: "file.go",
			Line:      123,
			Function:  "main.main",
			Defined:   true,
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if got, want := string(result), "test caller=file.go:123\n"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestPatternFormatter_MessageCounter(t *testing.T) {
	entry := &core.Entry{MsgID: 7, Message: "m"}

	on, _ := NewPatternFormatter(Config{Pattern: "%i %v", MessageCounter: true, EOL: "\n"}).Format(entry)
	off, _ := NewPatternFormatter(Config{Pattern: "%i %v", EOL: "\n"}).Format(entry)

	if string(on) != "#7 m\n" {
		t.Errorf("with counter = %q, want %q", on, "#7 m\n")
	}
	if string(off) != "%i m\n" {
		t.Errorf("without counter = %q, want %q", off, "%i m\n")
	}
}

func TestPatternFormatter_FormatToMatchesFormat(t *testing.T) {
	f := NewPatternFormatter(Config{UTC: true})
	entry := &core.Entry{Time: testTime, Level: core.ErrorLevel, LoggerName: "db", Message: "boom",
		Fields: []core.Field{{Key: "attempt", Type: core.IntType, Int64: 3}}}

	want, _ := f.Format(entry)

	var w bytes.Buffer
	if err := f.FormatTo(entry, &w); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	if w.String() != string(want) {
		t.Errorf("FormatTo() = %q, want %q", w.String(), want)
	}

	var buf bytes.Buffer
	f.FormatEntry(entry, &buf)
	if buf.String() != string(want) {
		t.Errorf("FormatEntry() = %q, want %q", buf.String(), want)
	}
}

func TestJSONFormatter_Basic(t *testing.T) {
	f := NewJSONFormatter(Config{UTC: true})

	entry := &core.Entry{
		Time:       testTime,
		Level:      core.InfoLevel,
		LoggerName: "api",
		ThreadID:   12,
		Message:    "test message",
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if data["level"] != "info" {
		t.Errorf("Expected level 'info', got: %v", data["level"])
	}
	if data["message"] != "test message" {
		t.Errorf("Expected message 'test message', got: %v", data["message"])
	}
	if data["logger"] != "api" {
		t.Errorf("Expected logger 'api', got: %v", data["logger"])
	}
	if data["thread"] != float64(12) {
		t.Errorf("Expected thread 12, got: %v", data["thread"])
	}
	if data["time"] != "2026-02-18T13:00:00.005000000+00:00" {
		t.Errorf("Expected RFC 3339 time, got: %v", data["time"])
	}
	if _, ok := data["id"]; ok {
		t.Error("id should only be present with MessageCounter")
	}

	ts, err := time.Parse(time.RFC3339Nano, data["time"].(string))
	if err != nil || !ts.Equal(testTime) {
		t.Errorf("time round trip = %v, %v; want %v", ts, err, testTime)
	}
}

func TestJSONFormatter_TimestampPattern(t *testing.T) {
	f := NewJSONFormatter(Config{UTC: true, TimestampPattern: "%D %T", MessageCounter: true})
	result, _ := f.Format(&core.Entry{Time: testTime, MsgID: 3, Message: "x"})

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if data["time"] != "02/18/26 13:00:00" {
		t.Errorf("time = %v", data["time"])
	}
	if data["id"] != float64(3) {
		t.Errorf("id = %v, want 3", data["id"])
	}
}

func TestJSONFormatter_WithFields(t *testing.T) {
	f := NewJSONFormatter(Config{})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Fields: []core.Field{
			{Key: "str", Type: core.StringType, Str: "value"},
			{Key: "int", Type: core.IntType, Int64: 42},
			{Key: "bool", Type: core.BoolType, Int64: 1},
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	if data["str"] != "value" {
		t.Errorf("Expected str='value', got: %v", data["str"])
	}
	if data["int"] != float64(42) { // JSON numbers are float64
		t.Errorf("Expected int=42, got: %v", data["int"])
	}
	if data["bool"] != true {
		t.Errorf("Expected bool=true, got: %v", data["bool"])
	}
}

func TestJSONFormatter_Escaping(t *testing.T) {
	f := NewJSONFormatter(Config{})
	entry := &core.Entry{Time: testTime, LoggerName: `a"b`, Message: "line1\nline2\t\x01\\"}

	result, _ := f.Format(entry)
	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON %q: %v", result, err)
	}
	if data["message"] != entry.Message || data["logger"] != entry.LoggerName {
		t.Errorf("escaped values did not survive: %v", data)
	}
}

func TestJSONFormatter_WithCaller(t *testing.T) {
	f := NewJSONFormatter(Config{IncludeCaller: true})

	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test",
		Caller: core.CallerInfo{
			File:      "/path/to/file.go",
			ShortFile: "file.go",
			Line:      123,
			Function:  "main.main",
			Defined:   true,
		},
	}

	result, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal(result, &data); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}

	caller, ok := data["caller"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected caller object in JSON")
	}

	if caller["file"] != "file.go" {
		t.Errorf("Expected file='file.go', got: %v", caller["file"])
	}
	if caller["line"] != float64(123) {
		t.Errorf("Expected line=123, got: %v", caller["line"])
	}
}

func BenchmarkPatternFormatter(b *testing.B) {
	f := NewPatternFormatter(Config{})
	entry := &core.Entry{
		Time:       time.Now(),
		Level:      core.InfoLevel,
		LoggerName: "bench",
		Message:    "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}

func BenchmarkJSONFormatter(b *testing.B) {
	f := NewJSONFormatter(Config{})
	entry := &core.Entry{
		Time:    time.Now(),
		Level:   core.InfoLevel,
		Message: "test message",
		Fields: []core.Field{
			{Key: "key1", Type: core.StringType, Str: "value1"},
			{Key: "key2", Type: core.IntType, Int64: 42},
		},
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = f.Format(entry)
	}
}
