package main

import "sort"

// MoveSet maps an acting snake's color to the direction it attempts this
// tick. Colors absent from the map are not considered (spec.md §4.4 takes
// "a mapping moves: color -> direction for some subset of snakes").
type MoveSet map[Color]Direction

// AdvanceGame is the pure one-tick transition function ("advance_game" in
// spec.md §4.4): it clones s, applies moves, and resolves every
// interaction — movement, growth, food, tail-cycles, collisions, kill
// credit, and death repainting. It never mutates s. The returned bool is
// the uncertainty bit: true if any should_grow call had to guess, in which
// case the caller should treat this subtree with the static heuristic
// rather than recursing further.
func AdvanceGame(s *GameState, moves MoveSet) (*GameState, bool) {
	next := s.Clone()
	next.FrameNo++

	nextHead := make(map[Color]Position, len(moves))
	for color, dir := range moves {
		snake := s.SnakesByColor[color]
		nextHead[color] = snake.HeadPos.Move(dir)
	}

	tails := make(map[Position]Color, len(s.SnakesByColor))
	for color, snake := range s.SnakesByColor {
		tails[snake.TailPos] = color
	}

	headsCollide := make(map[Position][]Color)
	for color, pos := range nextHead {
		headsCollide[pos] = append(headsCollide[pos], color)
	}

	dependencies := make(map[Color]Color)
	for color, pos := range nextHead {
		if owner, ok := tails[pos]; ok {
			dependencies[color] = owner
		}
	}

	uncertainty := false
	shouldGrow := func(snake *Snake) bool {
		if snake.HeadHistoryLen() != snake.Length-1 {
			uncertainty = true
			return true
		}
		if snake.GrowUncertain {
			uncertainty = true
			return true
		}
		return snake.Grow > 0
	}

	dies := make(map[Color]bool)
	movesOK := make(map[Color]bool)
	kills := make(map[Color][]Color)

	colors := make([]Color, 0, len(nextHead))
	for color := range nextHead {
		colors = append(colors, color)
	}

	if len(colors) == 2 && dependencies[colors[0]] == colors[1] && dependencies[colors[1]] == colors[0] {
		// Two-snake mutual tail chase: either resolve as a legal chase, or
		// both die if either side would have grown into it.
		snake0 := s.SnakesByColor[colors[0]]
		snake1 := s.SnakesByColor[colors[1]]
		if shouldGrow(snake0) || shouldGrow(snake1) {
			dies[colors[0]] = true
			dies[colors[1]] = true
		} else {
			movesOK[colors[0]] = true
			movesOK[colors[1]] = true
		}
	} else {
		// Stable topological order: colors with no dependency act first.
		sort.SliceStable(colors, func(i, j int) bool {
			_, iDep := dependencies[colors[i]]
			_, jDep := dependencies[colors[j]]
			return !iDep && jDep
		})

		for _, color := range colors {
			if dep, hasDep := dependencies[color]; hasDep {
				if color == dep {
					// Self-tail-chase: provisionally count as moving.
					movesOK[color] = true
				}
				depSnake := s.SnakesByColor[dep]
				if shouldGrow(depSnake) || !movesOK[dep] {
					if color == dep {
						delete(movesOK, color)
					} else {
						kills[dep] = append(kills[dep], color)
					}
					dies[color] = true
					continue
				}
				// dep vacates its tail and is itself alive: fall through
				// to the normal collision checks below.
			}

			dest := nextHead[color]
			destCell := s.Grid.Get(dest)
			switch {
			case destCell.Kind.IsObstacle():
				dies[color] = true
			case destCell.Kind == KindBody || destCell.Kind == KindHead:
				dies[color] = true
				kills[destCell.Color] = append(kills[destCell.Color], color)
			case len(headsCollide[dest]) > 1:
				dies[color] = true
				movesOK[color] = true
			default:
				if destCell.Kind.IsFood() {
					value := int(destCell.Kind)
					newSnake := next.SnakesByColor[color]
					newSnake.Grow += value
					newSnake.Score += value
				}
				movesOK[color] = true
			}
		}
	}

	// Apply movements.
	needsVoid := make(map[Position]bool)
	avoidsVoid := make(map[Position]bool)
	for color := range movesOK {
		oldSnake := s.SnakesByColor[color]
		newSnake := next.SnakesByColor[color]
		if shouldGrow(oldSnake) {
			newSnake.Length++
			if newSnake.Grow > 0 {
				newSnake.Grow--
			}
		} else {
			if oldTail, ok := newSnake.popTail(); ok {
				needsVoid[oldTail] = true
			}
			if newTail, ok := newSnake.lastHeadHistory(); ok {
				next.Grid.Set(newTail, Cell{Kind: KindTail, Color: color})
				newSnake.TailPos = newTail
			}
		}
		newSnake.pushHead(newSnake.HeadPos)
		next.Grid.Set(newSnake.HeadPos, Cell{Kind: KindBody, Color: color})
		newSnake.HeadPos = nextHead[color]
		next.Grid.Set(newSnake.HeadPos, Cell{Kind: KindHead, Color: color})
		avoidsVoid[newSnake.HeadPos] = true
	}
	for pos := range needsVoid {
		if !avoidsVoid[pos] {
			next.Grid.Set(pos, Cell{Kind: KindVoid})
		}
	}

	// Mark deaths via the grid's bulk recolor.
	for color := range dies {
		next.Grid.RepaintDead(color)
		next.SnakesByColor[color].Alive = false
	}

	// Award kills: a killer that itself died this tick earns nothing, so
	// mutual kills score nothing for either side.
	for victim := range dies {
		delete(kills, victim)
	}
	for killer, victims := range kills {
		next.SnakesByColor[killer].Score += 1000 * len(victims)
	}

	return next, uncertainty
}
