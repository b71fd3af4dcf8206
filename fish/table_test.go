package fish

import "testing"

func TestTransferMovesACard(t *testing.T) {
	table := &Table{hands: []*Hand{
		newKnownHand(map[int]int{0: 1}, 3),
		newKnownHand(map[int]int{}, 4),
	}}
	if !table.Transfer(0, 1, 0) {
		t.Fatalf("transfer should succeed")
	}
	if table.hands[1].known[0] != 2 {
		t.Fatalf("asker should now hold two of suit 0 (the one it asked with and the one received), known=%v", table.hands[1].known)
	}
	if _, ok := table.hands[0].known[0]; ok {
		t.Fatalf("source should no longer hold suit 0")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	table := &Table{hands: []*Hand{
		newKnownHand(map[int]int{0: 1}, 3),
		newKnownHand(map[int]int{}, 4),
	}}
	clone := table.Clone()
	clone.Transfer(0, 1, 0)
	if _, ok := table.hands[0].known[0]; !ok {
		t.Fatalf("mutating a clone must not affect the original")
	}
}

func TestNextPlayerSkipsEmptyHands(t *testing.T) {
	table := &Table{hands: []*Hand{
		newKnownHand(map[int]int{0: 1}, 0),
		newKnownHand(map[int]int{}, 0),
		newKnownHand(map[int]int{1: 1}, 0),
	}}
	if got := table.NextPlayer(0); got != 2 {
		t.Fatalf("NextPlayer(0) = %d, want 2", got)
	}
}

func TestLegalMovesOnlyOffersLegalSuits(t *testing.T) {
	table := NewTable(3)
	perm := []int{0, 1, 2}
	moves := table.LegalMoves(0, perm)
	if len(moves) == 0 {
		t.Fatalf("a fresh hand should have at least one legal move")
	}
	for _, m := range moves {
		other, suit := m[0], m[1]
		if other == 0 {
			t.Fatalf("a move cannot target the asking player itself")
		}
		if !table.hands[0].IsLegal(suit) {
			t.Fatalf("offered suit %d is not legal for player 0", suit)
		}
	}
}

func TestTestWinnerIllegalOnOverflow(t *testing.T) {
	table := &Table{hands: []*Hand{
		newKnownHand(map[int]int{0: 3}, 0),
		newKnownHand(map[int]int{0: 2}, 0),
	}}
	if got := table.TestWinner(0); got != Illegal {
		t.Fatalf("TestWinner = %d, want Illegal", got)
	}
}

func TestCanonicalPositionInvariantUnderRotationFlag(t *testing.T) {
	table := NewTable(3)
	p1 := table.Position(0)
	p2 := table.Position(0)
	if p1.Cmp(p2) != 0 {
		t.Fatalf("Position should be deterministic for identical tables")
	}
}
