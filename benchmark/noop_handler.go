package benchmark

import (
	"sync/atomic"

	"github.com/philipp01105/patternlog/core"
)

// noopHandler counts records without formatting them, isolating the cost
// of the logger front end
type noopHandler struct {
	records atomic.Uint64
}

func newNoopHandler() *noopHandler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	h.records.Add(1)
	return nil
}

func (h *noopHandler) HandleLog(hdr core.Header, _, _ []core.Field) error {
	_ = len(hdr.Message)
	h.records.Add(1)
	return nil
}

func (h *noopHandler) CanRecycleEntry() bool {
	return true
}

func (h *noopHandler) Close() error {
	return nil
}
