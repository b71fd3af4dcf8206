package fish

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Hand is one player's cards under imperfect information: some suits are
// known with a count, some suits are known to be absent (voided), and the
// rest of the hand is an undifferentiated pile of unknown-suit cards.
type Hand struct {
	known   map[int]int
	voids   map[int]struct{}
	unknown int
}

// NewHand returns a hand with all four cards unknown.
func NewHand() *Hand {
	return &Hand{
		known:   make(map[int]int),
		voids:   make(map[int]struct{}),
		unknown: CardsPerSuit,
	}
}

// IsEmpty reports whether the hand holds no cards at all.
func (h *Hand) IsEmpty() bool {
	return len(h.known) == 0 && h.unknown == 0
}

// EnsureHave asserts the holder has at least one card of suit. It returns
// false if that contradicts a recorded void.
func (h *Hand) EnsureHave(suit int) bool {
	if _, ok := h.known[suit]; ok {
		return true
	}
	if _, ok := h.voids[suit]; ok {
		return false
	}
	h.removeUnknown()
	h.known[suit] = 1
	return true
}

// removeUnknown promotes one unknown card out of the undifferentiated
// pile. Once the pile is empty, any remaining voids are vacuous (there is
// nothing left they could be hiding) and are dropped.
func (h *Hand) removeUnknown() {
	h.unknown--
	if h.unknown == 0 {
		h.voids = make(map[int]struct{})
	}
}

// EnsureHaveNot asserts the holder has no cards of suit. It returns false
// if that contradicts a recorded known card.
func (h *Hand) EnsureHaveNot(suit int) bool {
	if _, ok := h.known[suit]; ok {
		return false
	}
	h.voids[suit] = struct{}{}
	return true
}

// Remove takes one physical card of suit away from the hand. It returns
// false if the hand cannot possibly be holding that suit.
func (h *Hand) Remove(suit int) bool {
	if count, ok := h.known[suit]; ok {
		if count > 1 {
			h.known[suit] = count - 1
		} else {
			delete(h.known, suit)
		}
		return true
	}
	if _, ok := h.voids[suit]; ok {
		return false
	}
	h.removeUnknown()
	return true
}

// Add gives the hand one more card of suit.
func (h *Hand) Add(suit int) {
	h.known[suit]++
}

// HasFourOfAKind reports whether any known suit has reached four cards.
func (h *Hand) HasFourOfAKind() bool {
	for _, c := range h.known {
		if c == CardsPerSuit {
			return true
		}
	}
	return false
}

// IsDetermined reports whether every card in the hand has a known suit.
func (h *Hand) IsDetermined() bool {
	return h.unknown == 0
}

// RunningTotals adds this hand's known counts into a shared per-suit total.
func (h *Hand) RunningTotals(totals map[int]int) {
	for suit, count := range h.known {
		totals[suit] += count
	}
}

// KillUnknown records that the unknown pile cannot contain suit, because
// all four cards of that suit are already accounted for elsewhere. It
// returns true iff this added a new void (false if already voided, or if
// there is no unknown pile left to constrain).
func (h *Hand) KillUnknown(suit int) bool {
	if h.unknown <= 0 {
		return false
	}
	if _, ok := h.voids[suit]; ok {
		return false
	}
	h.voids[suit] = struct{}{}
	return true
}

// ForceUnknowns resolves the unknown pile when every suit but one has been
// voided: the pile must be the one remaining suit. numSuits is the total
// number of suits in play.
func (h *Hand) ForceUnknowns(numSuits int) bool {
	if h.unknown == 0 {
		return false
	}
	if len(h.voids) != numSuits-1 {
		return false
	}
	target := -1
	for s := 0; s < numSuits; s++ {
		if _, ok := h.voids[s]; !ok {
			target = s
			break
		}
	}
	if target < 0 {
		return false
	}
	h.known[target] += h.unknown
	h.unknown = 0
	h.voids = make(map[int]struct{})
	return true
}

// IsLegal reports whether the holder could legally ask for suit: either
// they are known to have it, or the unknown pile might still contain it.
func (h *Hand) IsLegal(suit int) bool {
	if _, ok := h.known[suit]; ok {
		return true
	}
	if h.unknown == 0 {
		return false
	}
	if _, ok := h.voids[suit]; ok {
		return false
	}
	return true
}

// HasCard reports whether the question "does this hand hold suit?" is
// logically forced, and if so what the answer is. When forced is false,
// yes is meaningless and must not be used.
func (h *Hand) HasCard(suit int) (forced bool, yes bool) {
	if _, ok := h.known[suit]; ok {
		return true, true
	}
	if h.unknown == 0 {
		return true, false
	}
	if _, ok := h.voids[suit]; ok {
		return true, false
	}
	return false, true
}

// FillSomeUnknowns moves count cards out of the unknown pile into known
// suit. It returns false, changing nothing, if the pile doesn't hold
// enough cards, and panics if suit is voided.
func (h *Hand) FillSomeUnknowns(suit int, count int) bool {
	if h.unknown < count {
		return false
	}
	if _, ok := h.voids[suit]; ok {
		panic("fish: FillSomeUnknowns on a voided suit")
	}
	h.unknown -= count
	h.known[suit] += count
	return true
}

// FillUnknowns resolves every remaining unknown card in the hand from the
// per-suit deficits recorded in totals (suit -> cards already accounted
// for elsewhere), for a hand that is the sole holder of any unknowns.
// numSuits suits not present in totals are treated as having a total of
// zero.
func (h *Hand) FillUnknowns(totals map[int]int, numSuits int) bool {
	for suit := 0; suit < numSuits; suit++ {
		count := totals[suit]
		if count < CardsPerSuit {
			if !h.FillSomeUnknowns(suit, CardsPerSuit-count) {
				return false
			}
		}
	}
	if h.unknown != 0 {
		panic("fish: FillUnknowns left unknown cards unresolved")
	}
	return true
}

// Position folds this hand's knowledge state into a running canonical
// position integer, visiting suits in the given permutation order.
func (h *Hand) Position(pos *big.Int, permutation []int) *big.Int {
	four := big.NewInt(CardsPerSuit)
	for _, suit := range permutation {
		pos.Mul(pos, four)
		pos.Add(pos, big.NewInt(int64(h.known[suit])))
	}
	eight := big.NewInt(8)
	pos.Mul(pos, eight)
	pos.Add(pos, big.NewInt(int64(h.unknown)))
	two := big.NewInt(2)
	for _, suit := range permutation {
		pos.Mul(pos, two)
		if _, ok := h.voids[suit]; ok {
			pos.Add(pos, big.NewInt(1))
		}
	}
	return pos
}

// AdjustRanking accumulates this hand's contribution to a suit-ranking
// vector used to derive a canonicalizing permutation: suits held in
// greater quantity, or voided, rank earlier in hands visited earlier.
func (h *Hand) AdjustRanking(rankings []int64) {
	n := int64(len(rankings))
	for i := range rankings {
		rankings[i] *= n
	}
	for s := range rankings {
		rankings[s] += int64(h.known[s])
	}
	for i := range rankings {
		rankings[i] *= 2
	}
	for s := range rankings {
		if _, ok := h.voids[s]; ok {
			rankings[s]++
		}
	}
}

// Clone deep-copies the hand for speculative search.
func (h *Hand) Clone() *Hand {
	known := make(map[int]int, len(h.known))
	for s, c := range h.known {
		known[s] = c
	}
	voids := make(map[int]struct{}, len(h.voids))
	for s := range h.voids {
		voids[s] = struct{}{}
	}
	return &Hand{known: known, voids: voids, unknown: h.unknown}
}

// Reset returns the hand to a freshly-dealt state of four unknown cards.
func (h *Hand) Reset() {
	for s := range h.known {
		delete(h.known, s)
	}
	for s := range h.voids {
		delete(h.voids, s)
	}
	h.unknown = CardsPerSuit
}

// String renders the hand as known-suit digits, then a "?" per unknown
// card, then an "x" followed by voided-suit digits if any. Suit order
// within each section is numeric, for determinism; it is not otherwise
// meaningful.
func (h *Hand) String() string {
	var b strings.Builder

	suits := make([]int, 0, len(h.known))
	for s := range h.known {
		suits = append(suits, s)
	}
	sort.Ints(suits)
	for _, s := range suits {
		for i := 0; i < h.known[s]; i++ {
			b.WriteString(strconv.Itoa(s))
		}
	}

	for i := 0; i < h.unknown; i++ {
		b.WriteByte('?')
	}

	if len(h.voids) > 0 {
		b.WriteByte('x')
		voidSuits := make([]int, 0, len(h.voids))
		for s := range h.voids {
			voidSuits = append(voidSuits, s)
		}
		sort.Ints(voidSuits)
		for _, s := range voidSuits {
			b.WriteString(strconv.Itoa(s))
		}
	}

	return b.String()
}
