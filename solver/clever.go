// Package solver implements an autonomous Player that searches the game
// tree exactly, to a configurable depth, with a transposition cache keyed
// on a canonicalized table position.
package solver

import (
	"fmt"
	"log"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
)

// PreferenceSet holds, for each player, an ordered list of opponents that
// player would rather see win when it cannot win itself. A nil or empty
// set means no preference: any non-self winner is as bad as any other.
type PreferenceSet [][]int

// cachedMove is a transposition-cache entry in canonical coordinates:
// other/suit are relative to the position's own canonicalizing rotation
// and suit permutation, not to any particular calling player.
type cachedMove struct {
	other  int
	suit   int
	result int
}

// moveResult is the outcome of evaluating a position: the move to make,
// the eventual winner (a player id, fish.NoWinner for a draw or
// out-of-depth result), and, when the result is a draw caused by a
// repeated position, the canonical position that repeated (empty
// otherwise).
type moveResult struct {
	other   int
	suit    int
	result  int
	drawPos string
}

// CleverPlayer is a deterministic, exact solver: given enough depth it
// always finds a winning line if one exists, prefers draws to losses,
// and among losses prefers whichever opponent ranks best in its
// preference list.
type CleverPlayer struct {
	MaxDepth    int
	MaxHasDepth int
	Progress    int
	Preferences PreferenceSet
	Symmetric   bool

	currentProgress int
	cache           map[string]cachedMove
	pool            *fish.TablePool
}

// NewCleverPlayer constructs a solver. preferences may be nil. symmetric
// exploits player-rotation symmetry in the transposition cache; it is
// only sound when preferences is empty or itself rotation-symmetric.
func NewCleverPlayer(maxDepth, maxHasDepth, progress int, preferences PreferenceSet, symmetric bool) *CleverPlayer {
	return &CleverPlayer{
		MaxDepth:    maxDepth,
		MaxHasDepth: maxHasDepth,
		Progress:    progress,
		Preferences: preferences,
		Symmetric:   symmetric,
		cache:       make(map[string]cachedMove),
	}
}

// Info reports how many distinct positions have been cached so far.
func (c *CleverPlayer) Info() string {
	return fmt.Sprintf("cache size: %d", len(c.cache))
}

// NextMove runs the full-depth search and returns just the move.
func (c *CleverPlayer) NextMove(this int, table *fish.Table, history map[string]struct{}) (int, int) {
	res := c.EvaluateMove(this, table, history, c.MaxDepth)
	return res.other, res.suit
}

// HasCard answers a request using the full has-card search depth.
func (c *CleverPlayer) HasCard(this, other, suit int, table *fish.Table, history map[string]struct{}) bool {
	return c.EvaluateHasCard(this, other, suit, table, history, c.MaxHasDepth)
}

func prefIndex(prefs PreferenceSet, this, winner int) (int, bool) {
	if len(prefs) == 0 {
		return 0, false
	}
	for i, p := range prefs[this] {
		if p == winner {
			return i, true
		}
	}
	return 0, false
}

// ensurePool lazily creates the table pool used for the speculative
// clones in evaluateMoveUncached and EvaluateHasCard, sized for the
// number of seats at the table it first sees.
func (c *CleverPlayer) ensurePool(numPlayers int) *fish.TablePool {
	if c.pool == nil {
		c.pool = fish.NewTablePool(numPlayers)
	}
	return c.pool
}

// EvaluateMove searches for this player's best move from table, to the
// given depth, consulting and maintaining the transposition cache.
func (c *CleverPlayer) EvaluateMove(this int, table *fish.Table, history map[string]struct{}, depth int) moveResult {
	c.ensurePool(table.NumPlayers())
	permutation := table.DerivePermutation(this)
	pos := table.CanonicalPosition(permutation, this, c.Symmetric)
	key := pos.Text(36)
	n := table.NumPlayers()

	if cached, ok := c.cache[key]; ok {
		other := (cached.other + this) % n
		suit := permutation[cached.suit]
		result := cached.result
		if result >= 0 {
			result = (result + this) % n
		}
		return moveResult{other: other, suit: suit, result: result}
	}

	res := c.evaluateMoveUncached(this, table, history, depth, permutation)

	if c.Progress > 0 {
		c.currentProgress++
		if c.currentProgress == c.Progress {
			c.currentProgress = 0
			log.Printf("solver: %s", c.Info())
		}
	}

	otherC := (n + res.other - this) % n
	resultC := res.result
	if resultC >= 0 {
		resultC = (n + resultC - this) % n
	}
	suitC := indexOf(permutation, res.suit)

	_, repeated := history[res.drawPos]
	if resultC >= 0 || !repeated {
		c.cache[key] = cachedMove{other: otherC, suit: suitC, result: resultC}
	}

	return res
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	panic("solver: suit not found in permutation")
}

func cloneHistory(history map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(history)+1)
	for k := range history {
		out[k] = struct{}{}
	}
	return out
}

// evaluateMoveUncached does the actual minimax search behind EvaluateMove.
// Candidate moves are classified into buckets as they're explored
// (immediate win returns early; draw, out-of-depth, preferred-other-win,
// lose, and immediate-lose are recorded), then resolved in priority
// order: a move that might still win outranks nothing, but among moves
// that cannot win for this player, a draw beats running out of depth
// beats handing the win to a preferred opponent (in preference order)
// beats losing to an unwanted opponent beats losing immediately.
func (c *CleverPlayer) evaluateMoveUncached(this int, table *fish.Table, history map[string]struct{}, depth int, permutation []int) moveResult {
	legalMoves := table.LegalMoves(this, permutation)
	if len(legalMoves) == 0 {
		panic("solver: no legal moves available")
	}

	var draw, outOfDepth, lose, immediateLose *moveResult
	var otherWinners []*moveResult
	if len(c.Preferences) > 0 {
		otherWinners = make([]*moveResult, len(c.Preferences[this]))
	}

	for _, mv := range legalMoves {
		other, suit := mv[0], mv[1]
		clone := c.pool.CloneInto(table)

		has := c.EvaluateHasCard(other, this, suit, clone, history, depth-1)
		if has {
			clone.Transfer(suit, this, other)
		} else {
			clone.NoTransfer(suit, this, other)
		}

		winner := clone.TestWinner(this)
		if winner == fish.Illegal {
			log.Printf("solver: illegal state after move other=%d suit=%d has=%v, skipping", other, suit, has)
			c.pool.Put(clone)
			continue
		}
		if winner == this {
			c.pool.Put(clone)
			return moveResult{other: other, suit: suit, result: winner}
		}
		if winner != fish.NoWinner {
			rec := moveResult{other: other, suit: suit, result: winner}
			if idx, ok := prefIndex(c.Preferences, this, winner); ok {
				otherWinners[idx] = &rec
			} else {
				immediateLose = &rec
			}
			c.pool.Put(clone)
			continue
		}
		if depth == 0 {
			rec := moveResult{other: other, suit: suit, result: fish.NoWinner}
			outOfDepth = &rec
			c.pool.Put(clone)
			continue
		}

		next := clone.NextPlayer(this)
		nextPos := clone.Position(next)
		nextKey := nextPos.Text(36)
		if _, ok := history[nextKey]; ok {
			rec := moveResult{other: other, suit: suit, result: fish.NoWinner, drawPos: nextKey}
			draw = &rec
			c.pool.Put(clone)
			continue
		}

		newHistory := cloneHistory(history)
		newHistory[nextKey] = struct{}{}
		sub := c.EvaluateMove(next, clone, newHistory, depth-1)
		c.pool.Put(clone)

		if sub.result == this {
			return moveResult{other: other, suit: suit, result: sub.result}
		}
		if sub.result < 0 {
			rec := moveResult{other: other, suit: suit, result: fish.NoWinner, drawPos: sub.drawPos}
			draw = &rec
			continue
		}
		if idx, ok := prefIndex(c.Preferences, this, sub.result); ok {
			rec := moveResult{other: other, suit: suit, result: sub.result}
			otherWinners[idx] = &rec
		} else {
			rec := moveResult{other: other, suit: suit, result: sub.result}
			lose = &rec
		}
	}

	if draw != nil {
		return *draw
	}
	if outOfDepth != nil {
		return *outOfDepth
	}
	for _, w := range otherWinners {
		if w != nil {
			return *w
		}
	}
	if lose != nil {
		return *lose
	}
	if immediateLose != nil {
		return *immediateLose
	}
	panic("solver: every legal move was illegal — should never happen")
}

// EvaluateHasCard decides, from asked's point of view, how to answer
// asker's request for suit: true to admit holding it, false to deny.
// asked is the player being asked (the decision-maker here); asker is
// the player who asked.
func (c *CleverPlayer) EvaluateHasCard(asked, asker, suit int, table *fish.Table, history map[string]struct{}, givenDepth int) bool {
	if forced, yes := table.HasCard(suit, asker, asked); forced {
		return yes
	}
	c.ensurePool(table.NumPlayers())

	yesTable := c.pool.CloneInto(table)
	yesTable.Transfer(suit, asker, asked)
	yesWinner := yesTable.TestWinner(asker)
	if yesWinner == asked {
		c.pool.Put(yesTable)
		return true
	}

	depth := givenDepth
	if c.MaxHasDepth < depth {
		depth = c.MaxHasDepth
	}
	if depth == 0 {
		c.pool.Put(yesTable)
		return yesWinner != fish.NoWinner
	}

	// next_player is deliberately derived once, from the yes-branch
	// table, and reused for the no-branch recursion below: that is what
	// the original solver does, and the two branches agree on it in
	// every reachable case since they differ by only one card.
	nextPlayer := yesTable.NextPlayer(asker)

	if yesWinner != fish.NoWinner {
		if _, ok := prefIndex(c.Preferences, asked, yesWinner); ok {
			c.pool.Put(yesTable)
			return false
		}
	} else {
		sub := c.EvaluateMove(nextPlayer, yesTable, history, depth-1)
		yesWinner = sub.result
		if yesWinner == asked {
			c.pool.Put(yesTable)
			return true
		}
	}
	c.pool.Put(yesTable)

	noTable := c.pool.CloneInto(table)
	noTable.NoTransfer(suit, asker, asked)
	noWinner := noTable.TestWinner(asker)
	if noWinner == asked {
		c.pool.Put(noTable)
		return false
	}
	if noWinner != fish.NoWinner {
		if _, ok := prefIndex(c.Preferences, asked, noWinner); ok {
			c.pool.Put(noTable)
			return true
		}
	} else {
		sub := c.EvaluateMove(nextPlayer, noTable, history, depth-1)
		noWinner = sub.result
		if noWinner == asked {
			c.pool.Put(noTable)
			return false
		}
	}
	c.pool.Put(noTable)

	if yesWinner < 0 {
		return true
	}
	if noWinner < 0 {
		return false
	}

	if len(c.Preferences) > 0 {
		p := c.Preferences[asked]
		// The preference rank compared below is the winner's position
		// within p when it appears there, and len(p) otherwise; a lower
		// rank is preferred.
		yesPreference := len(p)
		if idx, ok := prefIndex(c.Preferences, asked, yesWinner); ok {
			yesPreference = idx
		}
		noPreference := len(p)
		if idx, ok := prefIndex(c.Preferences, asked, noWinner); ok {
			noPreference = idx
		}
		if yesPreference < noPreference {
			return true
		}
		if noPreference < yesPreference {
			return false
		}
	}

	return false
}
