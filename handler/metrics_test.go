package handler

import (
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/philipp01105/patternlog/core"
)

func TestStatsCollector(t *testing.T) {
	h := NewConsoleHandler(ConsoleConfig{Writer: &discardWriter{}})
	defer h.Close()
	for i := 0; i < 3; i++ {
		_ = h.Handle(newEntry(core.InfoLevel, "counted"))
	}

	c := NewStatsCollector("console", h)

	// processed, blocked and one dropped series per level
	if n := testutil.CollectAndCount(c); n != 8 {
		t.Errorf("CollectAndCount() = %d, want 8", n)
	}

	const want = `
# HELP nlog_handler_processed_total Log entries written by the handler.
# TYPE nlog_handler_processed_total counter
nlog_handler_processed_total{handler="console"} 3
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "nlog_handler_processed_total"); err != nil {
		t.Error(err)
	}
}

func TestStatsCollector_Dropped(t *testing.T) {
	w := newGateWriter()
	h := NewConsoleHandler(ConsoleConfig{
		Writer:         w,
		Async:          true,
		BufferSize:     1,
		Formatter:      linePattern("%v"),
		OverflowPolicy: map[core.Level]OverflowPolicy{core.WarnLevel: DropNewest},
	})
	for i := 0; i < 5; i++ {
		_ = h.Handle(newEntry(core.WarnLevel, "w"))
	}

	c := NewStatsCollector("async", h)
	dropped := h.Stats().DroppedTotal[core.WarnLevel]
	if dropped == 0 {
		t.Fatal("expected dropped entries")
	}

	want := `
# HELP nlog_handler_dropped_total Log entries dropped because the async queue was full.
# TYPE nlog_handler_dropped_total counter
nlog_handler_dropped_total{handler="async",level="critical"} 0
nlog_handler_dropped_total{handler="async",level="debug"} 0
nlog_handler_dropped_total{handler="async",level="error"} 0
nlog_handler_dropped_total{handler="async",level="info"} 0
nlog_handler_dropped_total{handler="async",level="trace"} 0
nlog_handler_dropped_total{handler="async",level="warning"} ` + strconv.FormatUint(dropped, 10) + `
`
	if err := testutil.CollectAndCompare(c, strings.NewReader(want), "nlog_handler_dropped_total"); err != nil {
		t.Error(err)
	}

	close(w.gate)
	_ = h.Close()
}

func TestStatsCollector_Register(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	console := NewConsoleHandler(ConsoleConfig{Writer: &discardWriter{}})
	file, err := NewFileHandler(FileConfig{Filename: t.TempDir() + "/metrics.log"})
	if err != nil {
		t.Fatal(err)
	}
	defer console.Close()
	defer file.Close()

	if err := reg.Register(NewStatsCollector("console", console)); err != nil {
		t.Fatalf("Register(console) error = %v", err)
	}
	if err := reg.Register(NewStatsCollector("file", file)); err != nil {
		t.Fatalf("Register(file) error = %v", err)
	}

	if n, err := testutil.GatherAndCount(reg, "nlog_handler_blocked_total"); err != nil || n != 2 {
		t.Errorf("GatherAndCount(blocked) = %d, %v; want 2", n, err)
	}
}
