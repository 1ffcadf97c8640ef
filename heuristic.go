package main

// maxFrame is the frame at which the game is declared over regardless of
// liveness (spec.md §6's "Game bound").
const maxFrame = 8192

// Heuristic is the lexicographic tuple spec.md §4.6 scores search leaves
// with. Larger is better for my_snake in every field, compared field by
// field in the order listed.
type Heuristic struct {
	GameResult             int // +1 win, -1 loss, 0 otherwise
	Liveness               int // +1 iff only I am alive
	EnteringSmallPartition int // -1 iff this branch traps me, 0 otherwise
	ScoreDelta             int
	FoodScore              float64
	PartitionSize          int
	Depth                  int // sign flips with the outcome, see Evaluate
}

// Less reports whether a ranks strictly worse than b for my_snake.
func (a Heuristic) Less(b Heuristic) bool {
	if a.GameResult != b.GameResult {
		return a.GameResult < b.GameResult
	}
	if a.Liveness != b.Liveness {
		return a.Liveness < b.Liveness
	}
	if a.EnteringSmallPartition != b.EnteringSmallPartition {
		return a.EnteringSmallPartition < b.EnteringSmallPartition
	}
	if a.ScoreDelta != b.ScoreDelta {
		return a.ScoreDelta < b.ScoreDelta
	}
	if a.FoodScore != b.FoodScore {
		return a.FoodScore < b.FoodScore
	}
	if a.PartitionSize != b.PartitionSize {
		return a.PartitionSize < b.PartitionSize
	}
	return a.Depth < b.Depth
}

// Evaluate computes the heuristic tuple for state at the given search
// depth, given the BFS analysis of the root position and the partition
// branch corresponding to the initial move under consideration (nil if the
// chosen initial direction led directly into an occupied cell).
func Evaluate(state *GameState, bfs BFSResult, branch *BFSPartition, depth int) Heuristic {
	if branch == nil {
		branch = &BFSPartition{}
	}

	meLives := state.MySnake != nil && state.MySnake.Alive
	myLength := 0
	if state.MySnake != nil {
		myLength = state.MySnake.Length
	}
	enemyLives := state.EnemySnake != nil && state.EnemySnake.Alive
	myScore := 0
	if state.MySnake != nil {
		myScore = state.MySnake.Score
	}
	enemyScore := 0
	if state.EnemySnake != nil {
		enemyScore = state.EnemySnake.Score
	}

	if state.FrameNo >= maxFrame {
		meLives = false
		enemyLives = false
	}

	gameResult := 0
	liveness := 0
	switch {
	case meLives && enemyLives:
		liveness = 0
	case meLives:
		liveness = 1
		if myScore > enemyScore {
			gameResult = 1
		}
	case enemyLives:
		liveness = -1
		if myScore < enemyScore {
			gameResult = -1
		}
	default:
		liveness = 0
		switch {
		case myScore > enemyScore:
			gameResult = 1
		case myScore < enemyScore:
			gameResult = -1
		default:
			gameResult = 0
		}
	}

	enteringSmallPartition := 0
	if bfs.FullyExploredDistance >= depth && branch.PartitionSize < myLength {
		enteringSmallPartition = -1
	}

	depthTiebreak := depth
	if !(gameResult < 0 || liveness < 0) {
		depthTiebreak = -depth
	}

	return Heuristic{
		GameResult:             gameResult,
		Liveness:               liveness,
		EnteringSmallPartition: enteringSmallPartition,
		ScoreDelta:             myScore - enemyScore,
		FoodScore:              branch.FoodScore,
		PartitionSize:          branch.PartitionSize,
		Depth:                  depthTiebreak,
	}
}
