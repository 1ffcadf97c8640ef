package main

import (
	"errors"
	"time"
)

// maxSearchDepth bounds iterative deepening so a generous deadline can never
// spin the ply count past what a 2-snake board could ever need.
const maxSearchDepth = 64

// errSearchTimedOut unwinds the recursion the instant the deadline passes,
// discarding whatever partial result that branch was building.
var errSearchTimedOut = errors.New("search timed out")

// bfsDeadline gives the BFS analyzer a quarter of whatever tick budget is
// left, so Search still gets a usable partial BFS result to reason with even
// when the reachability scan alone would have exhausted the whole tick.
func bfsDeadline(now, tickDeadline time.Time) time.Time {
	remaining := tickDeadline.Sub(now)
	if remaining <= 0 {
		return now
	}
	return now.Add(remaining / 4)
}

// legalMoves lists the four directions, excluding the one directly
// reversing the snake's last move (a snake can never double back into its
// own neck). If no previous move is known yet, all four are legal.
func legalMoves(snake *Snake) []Direction {
	cur, known := snake.Direction()
	moves := make([]Direction, 0, 4)
	for _, d := range AllDirections {
		if known && d == cur.Opposite() {
			continue
		}
		moves = append(moves, d)
	}
	return moves
}

type dirHeuristic struct {
	dir Direction
	h   Heuristic
}

// Search picks the direction for my_snake's next move: iterative-deepening
// minimax (I maximize, the enemy minimizes) up to deadline, returning the
// best move found at the last fully completed depth. If no depth completes
// at all, it falls back to Fallback.
func Search(state *GameState, deadline time.Time) Direction {
	if state == nil || state.MySnake == nil || !state.MySnake.Alive {
		return Unset
	}

	bfs := AnalyzeReachability(state, bfsDeadline(time.Now(), deadline))

	myMoves := legalMoves(state.MySnake)
	if len(myMoves) == 0 {
		return Fallback(state, bfs)
	}

	best := myMoves[0]
	haveResult := false

	for maxDepth := 1; maxDepth <= maxSearchDepth; maxDepth++ {
		if time.Now().After(deadline) {
			break
		}

		results := make([]dirHeuristic, 0, len(myMoves))
		timedOut := false
		for _, dir := range myMoves {
			initialHeadPos := state.MySnake.HeadPos.Move(dir)
			h, err := exploreMyMove(state, dir, 0, maxDepth, deadline, bfs, initialHeadPos)
			if err != nil {
				timedOut = true
				break
			}
			results = append(results, dirHeuristic{dir: dir, h: h})
		}
		if timedOut || len(results) == 0 {
			break
		}

		depthBest := results[0]
		for _, r := range results[1:] {
			if depthBest.h.Less(r.h) {
				depthBest = r
			}
		}
		best = depthBest.dir
		haveResult = true
	}

	if !haveResult {
		return Fallback(state, bfs)
	}
	return best
}

// minimax evaluates state, depth plies into the tree already, maximizing
// over my_snake's remaining moves. initialHeadPos identifies which root-level
// BFS partition this whole branch descends from, so leaves can attribute
// entering_small_partition and food_score back to the correct one.
func minimax(state *GameState, depth, maxDepth int, deadline time.Time, bfs BFSResult, initialHeadPos Position) (Heuristic, error) {
	if time.Now().After(deadline) {
		return Heuristic{}, errSearchTimedOut
	}
	if depth >= maxDepth || state.MySnake == nil || !state.MySnake.Alive {
		return evaluateLeaf(state, bfs, initialHeadPos, depth), nil
	}

	myMoves := legalMoves(state.MySnake)
	if len(myMoves) == 0 {
		return evaluateLeaf(state, bfs, initialHeadPos, depth), nil
	}

	var best Heuristic
	first := true
	for _, dir := range myMoves {
		h, err := exploreMyMove(state, dir, depth, maxDepth, deadline, bfs, initialHeadPos)
		if err != nil {
			return Heuristic{}, err
		}
		if first || best.Less(h) {
			best = h
			first = false
		}
	}
	return best, nil
}

// exploreMyMove applies my_snake's candidate move, then lets the enemy
// respond as the minimizer (if it is alive and has legal moves), and returns
// the worst (for me) resulting heuristic across the enemy's replies.
func exploreMyMove(state *GameState, myDir Direction, depth, maxDepth int, deadline time.Time, bfs BFSResult, initialHeadPos Position) (Heuristic, error) {
	if state.EnemySnake == nil || !state.EnemySnake.Alive {
		child, uncertain := AdvanceGame(state, MoveSet{state.MySnake.Color: myDir})
		return afterMove(child, uncertain, depth, maxDepth, deadline, bfs, initialHeadPos)
	}

	enemyMoves := legalMoves(state.EnemySnake)
	if len(enemyMoves) == 0 {
		child, uncertain := AdvanceGame(state, MoveSet{state.MySnake.Color: myDir})
		return afterMove(child, uncertain, depth, maxDepth, deadline, bfs, initialHeadPos)
	}

	var worst Heuristic
	first := true
	for _, enemyDir := range enemyMoves {
		moves := MoveSet{state.MySnake.Color: myDir, state.EnemySnake.Color: enemyDir}
		child, uncertain := AdvanceGame(state, moves)
		h, err := afterMove(child, uncertain, depth, maxDepth, deadline, bfs, initialHeadPos)
		if err != nil {
			return Heuristic{}, err
		}
		if first || h.Less(worst) {
			worst = h
			first = false
		}
	}
	return worst, nil
}

// afterMove either evaluates the resulting state directly, when the
// transition that produced it had to guess (uncertain), or recurses one ply
// deeper. Recursing past an uncertain transition would compound a guess on
// top of a guess, so search stops there rather than trusting it further.
func afterMove(child *GameState, uncertain bool, depth, maxDepth int, deadline time.Time, bfs BFSResult, initialHeadPos Position) (Heuristic, error) {
	if time.Now().After(deadline) {
		return Heuristic{}, errSearchTimedOut
	}
	if uncertain {
		return evaluateLeaf(child, bfs, initialHeadPos, depth), nil
	}
	return minimax(child, depth+1, maxDepth, deadline, bfs, initialHeadPos)
}

func evaluateLeaf(state *GameState, bfs BFSResult, initialHeadPos Position, depth int) Heuristic {
	var branchPtr *BFSPartition
	if branch, ok := bfs.ForInitial(initialHeadPos); ok {
		branchPtr = &branch
	}
	return Evaluate(state, bfs, branchPtr, depth)
}

// Fallback chooses a move without any lookahead, for when no full search
// depth completes before the deadline: among non-reverse directions, prefer
// the one whose BFS partition is not small (my length or larger), breaking
// ties by food_score then partition_size. If BFS found nothing at all,
// prefer a direction that steps directly onto our own tail (always vacated
// next tick if we don't grow). Otherwise NO_CHANGE.
func Fallback(state *GameState, bfs BFSResult) Direction {
	if state == nil || state.MySnake == nil {
		return Unset
	}

	reverse, haveReverse := state.MySnake.Direction()
	myLength := state.MySnake.Length

	type scored struct {
		dir           Direction
		smallFlag     int
		foodScore     float64
		partitionSize int
	}
	var candidates []scored
	for _, p := range bfs.Partitions {
		dir := Direction(p.Position.Sub(state.MySnake.HeadPos))
		if haveReverse && dir == reverse.Opposite() {
			continue
		}
		smallFlag := 0
		if p.PartitionSize < myLength {
			smallFlag = -1
		}
		candidates = append(candidates, scored{dir, smallFlag, p.FoodScore, p.PartitionSize})
	}
	if len(candidates) > 0 {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.smallFlag != best.smallFlag {
				if c.smallFlag > best.smallFlag {
					best = c
				}
				continue
			}
			if c.foodScore != best.foodScore {
				if c.foodScore > best.foodScore {
					best = c
				}
				continue
			}
			if c.partitionSize > best.partitionSize {
				best = c
			}
		}
		return best.dir
	}

	for _, n := range Neighbors(state.MySnake.HeadPos) {
		if n == state.MySnake.TailPos {
			return Direction(n.Sub(state.MySnake.HeadPos))
		}
	}

	return Unset
}
