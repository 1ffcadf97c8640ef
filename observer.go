package main

import "log/slog"

// Observe reconstructs a GameState by differencing a fresh snapshot against
// the previous tick's state. old may be nil for the first tick. It mutates
// nothing in old; the returned state owns entirely new Snake records.
//
// Per spec.md §7, a malformed snapshot must be detected before it can
// become the next old_state, so EncodeSnapshot's error is simply
// propagated: the caller is expected to leave old_state untouched and emit
// NO_CHANGE for this tick.
func Observe(old *GameState, width, height int, rows [][]RawCell, myColor Color) (*GameState, error) {
	grid, err := EncodeSnapshot(width, height, rows)
	if err != nil {
		return nil, err
	}
	return observeGrid(old, grid, myColor), nil
}

// ObserveLines is Observe's counterpart for the textual round-trip format
// (spec.md §6): each string in lines is one row, two characters per cell,
// as produced by (*Grid).Serialize.
func ObserveLines(old *GameState, lines []string, myColor Color) (*GameState, error) {
	grid, err := ParseGrid(lines)
	if err != nil {
		return nil, err
	}
	return observeGrid(old, grid, myColor), nil
}

func observeGrid(old *GameState, grid *Grid, myColor Color) *GameState {
	next := &GameState{
		Grid:          grid,
		SnakesByColor: make(map[Color]*Snake),
	}
	if old != nil {
		next.FrameNo = old.FrameNo + 1
		for color, snake := range old.SnakesByColor {
			next.SnakesByColor[color] = snake.Clone()
		}
	}

	// Step 1: one tick has elapsed, so definite grow debt decreases.
	for _, snake := range next.SnakesByColor {
		if snake.Grow > 0 {
			snake.Grow--
		}
	}

	// Step 2: scan the new grid once for heads/tails/lengths; scan the old
	// grid (if any) for tails only, to detect vacated tails.
	headsByColor := make(map[Color]Position)
	tailsByColor := make(map[Color]Position)
	lengthsByColor := make(map[Color]int)
	grid.Iter(func(x, y int, c Cell) {
		if !c.Kind.IsLiveSegment() {
			return
		}
		pos := Position{X: x, Y: y}
		switch c.Kind {
		case KindHead:
			headsByColor[c.Color] = pos
		case KindTail:
			tailsByColor[c.Color] = pos
		}
		lengthsByColor[c.Color]++
	})

	oldTailsByColor := make(map[Color]Position)
	if old != nil {
		old.Grid.Iter(func(x, y int, c Cell) {
			if c.Kind == KindTail {
				oldTailsByColor[c.Color] = Position{X: x, Y: y}
			}
		})
	}

	// Step 3: reconcile every color with a HEAD this tick.
	for color, headPos := range headsByColor {
		needsTrace := false
		snake, known := next.SnakesByColor[color]
		if known {
			if IsNeighbor(snake.HeadPos, headPos) {
				snake.pushHead(snake.HeadPos)
				if old != nil {
					oldCell := old.Grid.Get(headPos)
					if oldCell.Kind.IsFood() {
						value := int(oldCell.Kind)
						snake.Grow += value
						snake.Score += value
					}
				}
			} else {
				needsTrace = true
			}
			snake.HeadPos = headPos
			snake.TailPos = tailsByColor[color]
		} else {
			snake = NewSnake(true, headPos, tailsByColor[color], color)
			next.SnakesByColor[color] = snake
			needsTrace = true
		}

		if oldTailPos, hadOldTail := oldTailsByColor[color]; hadOldTail && oldTailPos != snake.TailPos {
			if last, ok := snake.lastHeadHistory(); ok && last == oldTailPos {
				snake.popTail()
			}
			if snake.GrowUncertain {
				snake.GrowUncertain = false
			}
		}

		snake.Length = lengthsByColor[color]

		if needsTrace {
			path := traceSnakePath(grid, snake.HeadPos)
			snake.setHeadHistory(path[1:])
			snake.Grow = 0
			snake.GrowUncertain = true
			slog.Info("snake needed re-trace", "color", color, "history_len", len(path)-1)
		}
	}

	// Step 4: any previously known color with no TAIL this tick has died.
	for color, snake := range next.SnakesByColor {
		if _, stillAlive := tailsByColor[color]; !stillAlive {
			snake.Alive = false
		}
	}

	// Step 5: bind my_snake and enemy_snake.
	if my, ok := next.SnakesByColor[myColor]; ok {
		next.MySnake = my
	}
	if next.EnemySnake == nil {
		for color, snake := range next.SnakesByColor {
			if color != myColor {
				next.EnemySnake = snake
				break
			}
		}
	}

	return next
}

// traceSnakePath walks from a HEAD or TAIL of start's color through
// neighboring same-color live segments, stopping as soon as zero or more
// than one candidate continuation exists. It gives up on self-touching
// bodies rather than guessing, leaving the caller to mark the result
// uncertain.
func traceSnakePath(g *Grid, start Position) []Position {
	startCell := g.Get(start)
	color := startCell.Color

	segments := []Position{start}
	for {
		current := segments[len(segments)-1]
		var candidates []Position
		for _, n := range Neighbors(current) {
			if len(segments) > 1 && n == segments[len(segments)-2] {
				continue
			}
			c := g.Get(n)
			if c.Kind.IsLiveSegment() && c.Color == color {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) != 1 {
			break
		}
		segments = append(segments, candidates[0])
	}
	return segments
}
