package main

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/google/uuid"
)

func main() {
	frameNo := 0
	sessionID := uuid.NewString()
	handler := NewTickLogHandler(os.Stdout, slog.LevelInfo, sessionID, &frameNo)
	slog.SetDefault(slog.New(handler))

	wsURL := os.Getenv("SNAKEAGENT_WS_URL")
	if wsURL == "" {
		wsURL = "ws://localhost:8080/harness"
	}

	myColor := Color(1)
	if raw := os.Getenv("SNAKEAGENT_MY_COLOR"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			myColor = Color(parsed)
		} else {
			slog.Error("invalid SNAKEAGENT_MY_COLOR, using default", "value", raw, "default", myColor)
		}
	}

	slog.Info("starting snakeagent", "session", sessionID, "ws_url", wsURL, "my_color", myColor)

	h := newHarness(sessionID, myColor, &frameNo)
	if err := h.run(context.Background(), wsURL); err != nil {
		slog.Error("harness exited", "session", sessionID, "error", err.Error())
		os.Exit(1)
	}
}
