package core

import "time"

// Header is a log record without its fields. It lets handlers that
// format synchronously receive a record by value instead of through a
// pooled Entry.
type Header struct {
	Time       time.Time
	Level      Level
	LoggerName string
	ThreadID   uint64
	MsgID      uint64
	Message    string
	Caller     CallerInfo
}

// Fill overwrites e with h followed by the logger's fields and the
// call-site fields, reusing e's field storage.
func (e *Entry) Fill(h *Header, loggerFields, callFields []Field) {
	e.Time = h.Time
	e.Level = h.Level
	e.LoggerName = h.LoggerName
	e.ThreadID = h.ThreadID
	e.MsgID = h.MsgID
	e.Message = h.Message
	e.Caller = h.Caller
	e.Fields = e.Fields[:0]
	if len(loggerFields) > 0 {
		e.Fields = append(e.Fields, loggerFields...)
	}
	if len(callFields) > 0 {
		e.Fields = append(e.Fields, callFields...)
	}
}

// Clone returns a pooled copy of e with its own field storage
func (e *Entry) Clone() *Entry {
	c := GetEntry()
	c.Time = e.Time
	c.Level = e.Level
	c.LoggerName = e.LoggerName
	c.ThreadID = e.ThreadID
	c.MsgID = e.MsgID
	c.Message = e.Message
	c.Caller = e.Caller
	c.Fields = append(c.Fields, e.Fields...)
	return c
}
