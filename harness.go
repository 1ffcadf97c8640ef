package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"
)

// Tick-budget constants (spec.md §5's "time-bounded" requirement): before
// frame 1024 the harness is still ticking at 9Hz, after that at 60Hz, and
// only three quarters of either period is ever spent searching, leaving
// headroom for serialization and network round-trip.
const (
	earlyTickPeriod  = time.Second / 9
	lateTickPeriod   = time.Second / 60
	tickBudgetFactor = 0.75
	fastTickFrame    = 1024
)

// tickDeadline is the wall-clock point by which Search must return a move
// for the given frame number.
func tickDeadline(now time.Time, frameNo int) time.Time {
	period := lateTickPeriod
	if frameNo < fastTickFrame {
		period = earlyTickPeriod
	}
	budget := time.Duration(float64(period) * tickBudgetFactor)
	return now.Add(budget)
}

// tickRequest is one inbound message: the textual grid snapshot for the
// current frame, spec.md §6's round-trip format, one string per row.
type tickRequest struct {
	Grid    []string `json:"grid"`
	MyColor Color    `json:"my_color"`
	FrameNo int      `json:"frame"`
}

// tickResponse is the harness's reply: the chosen direction, or "none" for
// NO_CHANGE.
type tickResponse struct {
	Direction string `json:"direction"`
	FrameNo   int    `json:"frame"`
}

var directionName = map[Direction]string{
	Up:    "up",
	Right: "right",
	Down:  "down",
	Left:  "left",
	Unset: "none",
}

// harness drives one websocket session end to end: dial, then for every
// tick request received, observe the new state, search for a move within
// this tick's deadline, and send the response back.
type harness struct {
	sessionID string
	myColor   Color
	state     *GameState
	frameNo   *int
}

func newHarness(sessionID string, myColor Color, frameNo *int) *harness {
	return &harness{sessionID: sessionID, myColor: myColor, frameNo: frameNo}
}

// run dials wsURL and services tick requests until the connection closes or
// ctx is canceled.
func (h *harness) run(ctx context.Context, wsURL string) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial harness websocket: %w", err)
	}
	defer conn.Close()

	slog.Info("harness connected", "session", h.sessionID, "url", wsURL)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("read tick request: %w", err)
		}

		resp := h.handleTick(message)

		out, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("marshal tick response: %w", err)
		}
		if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
			return fmt.Errorf("write tick response: %w", err)
		}
	}
}

// handleTick decodes one request, updates h.state, and searches for a move.
// A malformed request or an Observe error leaves h.state untouched and
// answers NO_CHANGE, per spec.md §7.
func (h *harness) handleTick(message []byte) tickResponse {
	receivedAt := time.Now()

	var req tickRequest
	if err := json.Unmarshal(message, &req); err != nil {
		slog.Error("malformed tick request", "session", h.sessionID, "error", err.Error())
		return tickResponse{Direction: directionName[Unset]}
	}

	next, err := ObserveLines(h.state, req.Grid, h.myColor)
	if err != nil {
		slog.Error("observe failed, keeping previous state", "session", h.sessionID, "frame", req.FrameNo, "error", err.Error())
		return tickResponse{Direction: directionName[Unset], FrameNo: req.FrameNo}
	}
	h.state = next
	if h.frameNo != nil {
		*h.frameNo = next.FrameNo
	}

	deadline := tickDeadline(receivedAt, next.FrameNo)
	dir := Search(next, deadline)

	slog.Info("tick resolved",
		"session", h.sessionID,
		"frame", next.FrameNo,
		"direction", directionName[dir],
		"duration_ms", time.Since(receivedAt).Milliseconds(),
	)

	return tickResponse{Direction: directionName[dir], FrameNo: next.FrameNo}
}
