package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// cellToken returns the 2-character encoding ParseGrid expects for one cell.
func cellToken(glyph byte, color Color) string {
	c := byte(' ')
	if color >= 1 && color <= 9 {
		c = '0' + byte(color)
	}
	return string([]byte{glyph, c})
}

// buildGrid lays out a width x height board of void cells, then overlays the
// given (position -> token) overrides.
func buildGrid(width, height int, overrides map[Position]string) []string {
	lines := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			pos := Position{X: x, Y: y}
			if tok, ok := overrides[pos]; ok {
				sb.WriteString(tok)
			} else {
				sb.WriteString(cellToken(' ', 0))
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

func gameStateFromLines(t *testing.T, lines []string, myColor Color) *GameState {
	t.Helper()
	state, err := ObserveLines(nil, lines, myColor)
	assert.NoError(t, err)
	return state
}

func TestAnalyzeReachabilityOpenBoard(t *testing.T) {
	lines := buildGrid(5, 4, map[Position]string{
		{X: 1, Y: 1}: cellToken('@', 1),
		{X: 1, Y: 2}: cellToken('$', 1),
	})
	state := gameStateFromLines(t, lines, 1)

	result := AnalyzeReachability(state, time.Time{})
	assert.Len(t, result.Partitions, 3, "up, right and left are open; down is the snake's own tail")
}

func TestAnalyzeReachabilityMergesPartitionsThatReconverge(t *testing.T) {
	// A head with a wall directly below it, but open corridors further
	// below: the left and right initial steps must reconverge into one
	// union-find partition once they both reach the row under the wall.
	lines := buildGrid(5, 5, map[Position]string{
		{X: 2, Y: 1}: cellToken('@', 1),
		{X: 2, Y: 2}: cellToken('#', 0),
	})
	state := gameStateFromLines(t, lines, 1)

	result := AnalyzeReachability(state, time.Time{})
	_, reachable := result.ForInitial(Position{X: 2, Y: 2})
	assert.False(t, reachable, "directly below the head is a wall, not a reachable initial step")

	leftNeighbor, ok := result.ForInitial(Position{X: 1, Y: 1})
	assert.True(t, ok)
	rightNeighbor, ok := result.ForInitial(Position{X: 3, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, leftNeighbor.PartitionSize, rightNeighbor.PartitionSize,
		"both sides flow around the single wall cell into the same open region")
}

func TestAnalyzeReachabilityNoSnake(t *testing.T) {
	state := &GameState{Grid: NewGrid(3, 3), SnakesByColor: map[Color]*Snake{}}
	result := AnalyzeReachability(state, time.Time{})
	assert.Empty(t, result.Partitions)
}

func TestAnalyzeReachabilityRespectsDeadline(t *testing.T) {
	lines := buildGrid(20, 20, map[Position]string{
		{X: 5, Y: 5}: cellToken('@', 1),
		{X: 5, Y: 6}: cellToken('$', 1),
	})
	state := gameStateFromLines(t, lines, 1)

	result := AnalyzeReachability(state, time.Now().Add(-time.Second))
	// The deadline has already passed, so the walk stops at or near its
	// first check and cannot have explored the whole open board.
	for _, p := range result.Partitions {
		assert.Less(t, p.PartitionSize, 400)
	}
}
