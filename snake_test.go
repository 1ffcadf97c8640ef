package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSnakeDefaults(t *testing.T) {
	s := NewSnake(true, Position{X: 1, Y: 1}, Position{X: 0, Y: 1}, 3)
	assert.True(t, s.Alive)
	assert.True(t, s.GrowUncertain)
	assert.Equal(t, 0, s.HeadHistoryLen())
}

func TestSnakeHeadHistoryDequeOrder(t *testing.T) {
	s := NewSnake(true, Position{X: 0, Y: 0}, Position{X: 0, Y: 0}, 1)
	s.pushHead(Position{X: 3, Y: 0}) // pushed first, so it ends up oldest
	s.pushHead(Position{X: 2, Y: 0})
	s.pushHead(Position{X: 1, Y: 0}) // pushed last, so it ends up most recent

	// pushHead always prepends, so after three calls index 0 is the last
	// one pushed and the end of the slice is the first one pushed.
	assert.Equal(t, []Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}}, s.HeadHistory())

	last, ok := s.lastHeadHistory()
	assert.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 0}, last)

	popped, ok := s.popTail()
	assert.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 0}, popped)
	assert.Equal(t, []Position{{X: 1, Y: 0}, {X: 2, Y: 0}}, s.HeadHistory())
}

func TestSnakePopTailEmpty(t *testing.T) {
	s := NewSnake(true, Position{X: 0, Y: 0}, Position{X: 0, Y: 0}, 1)
	_, ok := s.popTail()
	assert.False(t, ok)
	_, ok = s.lastHeadHistory()
	assert.False(t, ok)
}

func TestSnakeDirection(t *testing.T) {
	s := NewSnake(true, Position{X: 2, Y: 0}, Position{X: 0, Y: 0}, 1)
	_, ok := s.Direction()
	assert.False(t, ok, "no history recorded yet")

	s.setHeadHistory([]Position{{X: 1, Y: 0}})
	dir, ok := s.Direction()
	assert.True(t, ok)
	assert.Equal(t, Right, dir)
}

func TestSnakeCloneIsIndependent(t *testing.T) {
	s := NewSnake(true, Position{X: 0, Y: 0}, Position{X: 0, Y: 0}, 1)
	s.pushHead(Position{X: -1, Y: 0})

	clone := s.Clone()
	clone.pushHead(Position{X: -2, Y: 0})
	clone.Score = 100

	assert.Equal(t, []Position{{X: -1, Y: 0}}, s.HeadHistory())
	assert.Equal(t, 0, s.Score)
	assert.Len(t, clone.HeadHistory(), 2)
}
