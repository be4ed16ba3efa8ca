package cli

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/valyala/fastjson"

	"github.com/philipp01105/patternlog/core"
)

// Keys recognised in JSON log lines. The first key of each group that is
// present wins; every other key becomes a field.
var (
	levelKeys   = []string{"level", "severity"}
	messageKeys = []string{"msg", "message"}
	timeKeys    = []string{"time", "ts", "timestamp"}
	nameKeys    = []string{"logger", "name"}
	threadKeys  = []string{"thread", "tid"}
	idKeys      = []string{"id", "seq"}
)

var errNotObject = errors.New("log line is not a JSON object")

// lineDecoder turns JSON log lines into entries. It is not safe for
// concurrent use.
type lineDecoder struct {
	parser fastjson.Parser
	// defaults for records that lack the key
	level core.Level
	name  string
	now   func() time.Time
}

// decode fills e from one JSON object. e must be empty.
func (d *lineDecoder) decode(line []byte, e *core.Entry) error {
	v, err := d.parser.ParseBytes(line)
	if err != nil {
		return fmt.Errorf("parse log line: %w", err)
	}
	obj, err := v.Object()
	if err != nil {
		return errNotObject
	}

	e.Level = d.level
	e.LoggerName = d.name
	e.Time = d.now()

	used := make(map[string]bool, 6)
	if key, val := lookup(obj, levelKeys); val != nil {
		used[key] = true
		if l, ok := core.ParseLevel(string(val.GetStringBytes())); ok {
			e.Level = l
		}
	}
	if key, val := lookup(obj, messageKeys); val != nil {
		used[key] = true
		e.Message = valueString(val)
	}
	if key, val := lookup(obj, timeKeys); val != nil {
		used[key] = true
		t, err := parseTime(val)
		if err != nil {
			return err
		}
		e.Time = t
	}
	if key, val := lookup(obj, nameKeys); val != nil {
		used[key] = true
		e.LoggerName = valueString(val)
	}
	if key, val := lookup(obj, threadKeys); val != nil {
		used[key] = true
		e.ThreadID = val.GetUint64()
	}
	if key, val := lookup(obj, idKeys); val != nil {
		used[key] = true
		e.MsgID = val.GetUint64()
	}

	obj.Visit(func(key []byte, val *fastjson.Value) {
		if used[string(key)] {
			return
		}
		e.Fields = append(e.Fields, jsonField(string(key), val))
	})
	return nil
}

func lookup(obj *fastjson.Object, keys []string) (string, *fastjson.Value) {
	for _, k := range keys {
		if v := obj.Get(k); v != nil {
			return k, v
		}
	}
	return "", nil
}

// valueString returns strings unquoted and anything else as JSON text
func valueString(v *fastjson.Value) string {
	if v.Type() == fastjson.TypeString {
		return string(v.GetStringBytes())
	}
	return v.String()
}

// parseTime accepts RFC 3339 strings and numeric Unix times in seconds,
// with an optional fraction
func parseTime(v *fastjson.Value) (time.Time, error) {
	switch v.Type() {
	case fastjson.TypeString:
		t, err := time.Parse(time.RFC3339Nano, string(v.GetStringBytes()))
		if err != nil {
			return time.Time{}, fmt.Errorf("parse log time: %w", err)
		}
		return t, nil
	case fastjson.TypeNumber:
		sec, frac := math.Modf(v.GetFloat64())
		return time.Unix(int64(sec), int64(math.Round(frac*1e9))), nil
	default:
		return time.Time{}, fmt.Errorf("parse log time: unsupported %s value", v.Type())
	}
}

// jsonField converts an extra JSON member into a field
func jsonField(key string, v *fastjson.Value) core.Field {
	switch v.Type() {
	case fastjson.TypeString:
		return core.Field{Key: key, Type: core.StringType, Str: string(v.GetStringBytes())}
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return core.Field{Key: key, Type: core.Int64Type, Int64: n}
		}
		return core.Field{Key: key, Type: core.Float64Type, Float64: v.GetFloat64()}
	case fastjson.TypeTrue:
		return core.Field{Key: key, Type: core.BoolType, Int64: 1}
	case fastjson.TypeFalse:
		return core.Field{Key: key, Type: core.BoolType}
	default:
		// null, objects and arrays keep their JSON text
		return core.Field{Key: key, Type: core.StringType, Str: v.String()}
	}
}
