package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/patternlog/core"
)

// MultiHandler sends log entries to multiple handlers. Children that
// keep entries after Handle returns (async handlers) receive their own
// copy, so the caller may always recycle the entry it passed in.
type MultiHandler struct {
	handlers     []Handler
	fastHandlers []FastHandler // cached FastHandler interfaces (nil when handler doesn't implement it)
	ownsEntry    []bool        // true when the child keeps the entry after Handle
	allFast      bool          // true when every child implements FastHandler
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		fastHandlers: make([]FastHandler, len(handlers)),
		ownsEntry:    make([]bool, len(handlers)),
		allFast:      true,
	}
	for i, h := range handlers {
		if fh, ok := h.(FastHandler); ok {
			m.fastHandlers[i] = fh
		} else {
			m.allFast = false
		}
		rc, ok := h.(interface{ CanRecycleEntry() bool })
		m.ownsEntry[i] = !ok || !rc.CanRecycleEntry()
	}
	return m
}

// HandleLog processes log data directly without requiring a pooled Entry.
// When all children implement FastHandler, this avoids Entry allocation
// entirely. Errors from every child are combined.
func (h *MultiHandler) HandleLog(hdr core.Header, loggerFields, callFields []core.Field) error {
	var err error
	if h.allFast {
		for _, fh := range h.fastHandlers {
			err = multierr.Append(err, fh.HandleLog(hdr, loggerFields, callFields))
		}
		return err
	}

	// Mixed path: build a pooled entry for non-fast handlers
	entry := core.GetEntry()
	entry.Fill(&hdr, loggerFields, callFields)
	for i, handler := range h.handlers {
		if fh := h.fastHandlers[i]; fh != nil {
			err = multierr.Append(err, fh.HandleLog(hdr, loggerFields, callFields))
			continue
		}
		err = multierr.Append(err, h.handleOne(i, handler, entry))
	}
	core.PutEntry(entry)
	return err
}

// Handle processes a log entry by sending it to all handlers
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for i, handler := range h.handlers {
		err = multierr.Append(err, h.handleOne(i, handler, entry))
	}
	return err
}

func (h *MultiHandler) handleOne(i int, handler Handler, entry *core.Entry) error {
	if h.ownsEntry[i] {
		return handler.Handle(entry.Clone())
	}
	return handler.Handle(entry)
}

// CanRecycleEntry always returns true: children that keep entries get copies.
func (h *MultiHandler) CanRecycleEntry() bool {
	return true
}

// Close closes all handlers and returns every error encountered
func (h *MultiHandler) Close() error {
	var err error
	for _, handler := range h.handlers {
		err = multierr.Append(err, handler.Close())
	}
	return err
}
