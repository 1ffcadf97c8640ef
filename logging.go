package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// tickLogHandler is a structured JSON log handler for one running session:
// every record gets the session's correlation id and current frame number
// attached, then is written as one JSON object per line.
type tickLogHandler struct {
	writer     *os.File
	level      slog.Level
	sessionID  string
	frameNo    *int
	extraAttrs map[string]interface{}
}

// NewTickLogHandler creates a handler that tags every record with
// sessionID and whatever *frameNo currently holds at the time the record is
// written (the caller is expected to update the pointee once per tick).
func NewTickLogHandler(writer *os.File, level slog.Level, sessionID string, frameNo *int) *tickLogHandler {
	return &tickLogHandler{
		writer:    writer,
		level:     level,
		sessionID: sessionID,
		frameNo:   frameNo,
	}
}

func (h *tickLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *tickLogHandler) Handle(_ context.Context, r slog.Record) error {
	severity := convertToSeverity(r.Level)

	attrs := map[string]interface{}{}
	r.Attrs(func(attr slog.Attr) bool {
		attrs[attr.Key] = attr.Value.Any()
		return true
	})
	for k, v := range h.extraAttrs {
		attrs[k] = v
	}

	logEntry := map[string]interface{}{
		"severity": severity,
		"message":  r.Message,
		"time":     time.Now().Format(time.RFC3339Nano),
		"session":  h.sessionID,
	}
	if h.frameNo != nil {
		logEntry["frame"] = *h.frameNo
	}
	for k, v := range attrs {
		logEntry[k] = v
	}

	encoder := json.NewEncoder(h.writer)
	return encoder.Encode(logEntry)
}

func (h *tickLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandler := *h
	newHandler.extraAttrs = make(map[string]interface{}, len(h.extraAttrs)+len(attrs))
	for k, v := range h.extraAttrs {
		newHandler.extraAttrs[k] = v
	}
	for _, attr := range attrs {
		newHandler.extraAttrs[attr.Key] = attr.Value.Any()
	}
	return &newHandler
}

func (h *tickLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func convertToSeverity(level slog.Level) string {
	switch level {
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	case slog.LevelDebug:
		return "DEBUG"
	default:
		return "DEFAULT"
	}
}
