package main

// GameState is the full reconstructed game model for one tick: the grid,
// every snake seen so far keyed by color, and the two distinguished
// pointers the search cares about.
type GameState struct {
	Grid          *Grid
	SnakesByColor map[Color]*Snake
	MySnake       *Snake
	EnemySnake    *Snake
	FrameNo       int
}

// newGameState allocates an empty state over a grid of the given size.
func newGameState(width, height int) *GameState {
	return &GameState{
		Grid:          NewGrid(width, height),
		SnakesByColor: make(map[Color]*Snake),
	}
}

// Clone deep-copies the grid and every snake record, then rebinds
// MySnake/EnemySnake into the new map. No part of the clone aliases the
// original.
func (s *GameState) Clone() *GameState {
	cp := &GameState{
		Grid:          s.Grid.Clone(),
		SnakesByColor: make(map[Color]*Snake, len(s.SnakesByColor)),
		FrameNo:       s.FrameNo,
	}
	for color, snake := range s.SnakesByColor {
		cp.SnakesByColor[color] = snake.Clone()
	}
	if s.MySnake != nil {
		cp.MySnake = cp.SnakesByColor[s.MySnake.Color]
	}
	if s.EnemySnake != nil {
		cp.EnemySnake = cp.SnakesByColor[s.EnemySnake.Color]
	}
	return cp
}
