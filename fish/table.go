package fish

import (
	"math/big"
	"sort"
	"strings"
)

// Table holds every player's hand and the cross-hand operations that move
// cards between them and test for a winner.
type Table struct {
	hands []*Hand
}

// NewTable deals numPlayers hands of four unknown cards each.
func NewTable(numPlayers int) *Table {
	hands := make([]*Hand, numPlayers)
	for i := range hands {
		hands[i] = NewHand()
	}
	return &Table{hands: hands}
}

// NumPlayers returns the number of seats at the table.
func (t *Table) NumPlayers() int {
	return len(t.hands)
}

// Hand returns the hand belonging to player i.
func (t *Table) Hand(i int) *Hand {
	return t.hands[i]
}

// IsEmpty reports whether player holds no cards.
func (t *Table) IsEmpty(player int) bool {
	return t.hands[player].IsEmpty()
}

// Clone deep-copies the table for speculative search.
func (t *Table) Clone() *Table {
	hands := make([]*Hand, len(t.hands))
	for i, h := range t.hands {
		hands[i] = h.Clone()
	}
	return &Table{hands: hands}
}

// Reset deals numPlayers fresh hands into the table in place, reusing its
// existing Hand allocations where possible.
func (t *Table) Reset(numPlayers int) {
	if cap(t.hands) >= numPlayers && len(t.hands) == numPlayers {
		for _, h := range t.hands {
			h.Reset()
		}
		return
	}
	t.hands = make([]*Hand, numPlayers)
	for i := range t.hands {
		t.hands[i] = NewHand()
	}
}

// String renders every hand in seat order, separated by "/".
func (t *Table) String() string {
	parts := make([]string, len(t.hands))
	for i, h := range t.hands {
		parts[i] = h.String()
	}
	return strings.Join(parts, "/")
}

// Transfer moves one card of suit from source to asker, as the result of
// asker successfully asking for it. It returns false if either hand's
// knowledge state contradicts the transfer.
func (t *Table) Transfer(suit, asker, source int) bool {
	if !t.hands[asker].EnsureHave(suit) {
		return false
	}
	if !t.hands[source].Remove(suit) {
		return false
	}
	t.hands[asker].Add(suit)
	return true
}

// NoTransfer records that source denied asker's request for suit: asker
// must legally have been able to ask, and source is now proven void.
func (t *Table) NoTransfer(suit, asker, source int) bool {
	if !t.hands[asker].EnsureHave(suit) {
		return false
	}
	if !t.hands[source].EnsureHaveNot(suit) {
		return false
	}
	return true
}

// Legal reports whether asker could legally ask source for suit.
func (t *Table) Legal(asker, source, suit int) bool {
	n := len(t.hands)
	if asker == source {
		return false
	}
	if asker < 0 || asker >= n || source < 0 || source >= n {
		return false
	}
	if suit < 0 || suit >= n {
		return false
	}
	return t.hands[asker].IsLegal(suit)
}

// TestWinner closes the table's knowledge via ShakeDown and reports the
// outcome: Illegal on contradiction, a player id if the table is fully
// determined or some player already holds a four-of-a-kind (scanned in
// rotation starting at lastPlayer), or NoWinner otherwise.
func (t *Table) TestWinner(lastPlayer int) int {
	if !t.ShakeDown() {
		return Illegal
	}

	allDetermined := true
	for _, h := range t.hands {
		if !h.IsDetermined() {
			allDetermined = false
			break
		}
	}
	if allDetermined {
		return lastPlayer
	}

	n := len(t.hands)
	for i := 0; i < n; i++ {
		p := (lastPlayer + i) % n
		if t.hands[p].HasFourOfAKind() {
			return p
		}
	}
	return NoWinner
}

// LegalMoves enumerates (other, suit) pairs this player could legally and
// usefully ask for, opponents visited in rotation order starting just
// after this player and suits visited in permutation order within each
// opponent. A pair is omitted when the asked player is forced to hold
// none of that suit, or when (for an indeterminate opponent) every card
// of that suit is already spoken for elsewhere.
func (t *Table) LegalMoves(this int, permutation []int) [][2]int {
	n := len(t.hands)
	totals := make(map[int]int)
	for _, h := range t.hands {
		h.RunningTotals(totals)
	}

	thisHand := t.hands[this]
	var moves [][2]int
	for i := 1; i < n; i++ {
		other := (this + i) % n
		for _, suit := range permutation {
			if !thisHand.IsLegal(suit) {
				continue
			}
			_, thisHasKnown := thisHand.known[suit]
			total := totals[suit]

			forced, yes := t.hands[other].HasCard(suit)
			if forced {
				if !yes {
					continue
				}
				moves = append(moves, [2]int{other, suit})
				continue
			}
			implied := total
			if !thisHasKnown {
				implied++
			}
			if implied >= CardsPerSuit {
				continue
			}
			moves = append(moves, [2]int{other, suit})
		}
	}
	return moves
}

// Position returns the table's canonical position using the identity
// suit permutation, without player-rotation symmetry. It is used for
// plain draw-history tracking by the game driver.
func (t *Table) Position(lastPlayer int) *big.Int {
	permutation := make([]int, len(t.hands))
	for i := range permutation {
		permutation[i] = i
	}
	return t.CanonicalPosition(permutation, lastPlayer, false)
}

// CanonicalPosition folds every hand, visited in rotation starting at
// lastPlayer, into one big integer under the given suit permutation. When
// playerSymmetric is true the rotation start point itself is not encoded,
// so positions equivalent under player rotation collapse to one key; this
// is only sound when the caller's decision-making (e.g. preference
// vectors) is itself rotation-symmetric.
func (t *Table) CanonicalPosition(permutation []int, lastPlayer int, playerSymmetric bool) *big.Int {
	n := len(t.hands)
	pos := big.NewInt(0)
	for i := 0; i < n; i++ {
		h := t.hands[(i+lastPlayer)%n]
		pos = h.Position(pos, permutation)
	}
	if !playerSymmetric {
		pos.Mul(pos, big.NewInt(int64(n)))
		pos.Add(pos, big.NewInt(int64(lastPlayer)))
	}
	return pos
}

// DerivePermutation computes the suit permutation that canonicalizes the
// table as seen starting from lastPlayer: suits held in greater quantity
// (or voided) by hands earlier in rotation order sort first.
func (t *Table) DerivePermutation(lastPlayer int) []int {
	n := len(t.hands)
	rankings := make([]int64, n)
	for i := 0; i < n; i++ {
		h := t.hands[(i+lastPlayer)%n]
		h.AdjustRanking(rankings)
	}

	result := make([]int, n)
	for i := range result {
		result[i] = i
	}
	sort.SliceStable(result, func(a, b int) bool {
		return rankings[result[a]] > rankings[result[b]]
	})
	return result
}

// HasCard answers whether asked holds suit, as seen by asker, consulting
// direct knowledge first and falling back to speculative shake-downs of
// both possible answers. forced is false when neither answer can be
// proven; yes is then meaningless.
func (t *Table) HasCard(suit, asker, asked int) (forced bool, yes bool) {
	if forced, yes := t.hands[asked].HasCard(suit); forced {
		return forced, yes
	}

	denyAttempt := t.Clone()
	if !denyAttempt.NoTransfer(suit, asker, asked) || !denyAttempt.ShakeDown() {
		return true, true
	}

	grantAttempt := t.Clone()
	if !grantAttempt.Transfer(suit, asker, asked) || !grantAttempt.ShakeDown() {
		return true, false
	}

	return false, false
}

// NextPlayer returns the next seat in rotation after this that still
// holds cards. It panics if no other seat has any cards left, which would
// mean the game should already have ended.
func (t *Table) NextPlayer(this int) int {
	n := len(t.hands)
	p := (this + 1) % n
	for t.hands[p].IsEmpty() {
		p = (p + 1) % n
		if p == this {
			panic("fish: NextPlayer found no other non-empty hand")
		}
	}
	return p
}
