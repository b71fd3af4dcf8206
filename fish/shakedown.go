package fish

import (
	"fmt"
	"sort"
)

// ShakeDown closes the table's knowledge state under every logical
// consequence of what has been observed so far: card counts that must
// sum to four, hands with no room left for more unknowns, suits that can
// only belong to one remaining candidate, and so on. It returns false if
// the accumulated knowledge is self-contradictory (more than four cards
// of some suit, or a hand that cannot possibly hold the cards it is known
// to need). The rule order below is load-bearing: later rules assume the
// totals snapshot taken at the top of the iteration.
func (t *Table) ShakeDown() bool {
	n := len(t.hands)

	for {
		anyChanges := false

		totals := make(map[int]int)
		for _, h := range t.hands {
			h.RunningTotals(totals)
		}

		// Rules 1-4: per-suit saturation and tight-fit allocation.
		for suit, total := range totals {
			if anyChanges {
				break
			}
			if total > CardsPerSuit {
				return false
			}
			if total == CardsPerSuit {
				for _, h := range t.hands {
					if h.KillUnknown(suit) {
						anyChanges = true
					}
				}
				continue
			}

			var candidates []*Hand
			unknownSum := 0
			for _, h := range t.hands {
				if h.unknown <= 0 {
					continue
				}
				if _, void := h.voids[suit]; void {
					continue
				}
				candidates = append(candidates, h)
				unknownSum += h.unknown
			}

			remainder := CardsPerSuit - total
			if len(candidates) == 1 {
				candidates[0].FillSomeUnknowns(suit, remainder)
				anyChanges = true
			} else {
				if unknownSum < remainder {
					return false
				}
				if unknownSum == remainder {
					for _, h := range candidates {
						h.FillSomeUnknowns(suit, h.unknown)
					}
					anyChanges = true
				}
			}
		}

		// Rule 5: a hand voided everywhere but one suit must hold its
		// unknowns in that suit.
		for _, h := range t.hands {
			if h.ForceUnknowns(n) {
				anyChanges = true
			}
		}

		if anyChanges {
			continue
		}

		// Rule 6: if exactly one hand has any unknowns left, it must
		// account for every suit's remaining deficit.
		var holders []*Hand
		for _, h := range t.hands {
			if h.unknown > 0 {
				holders = append(holders, h)
			}
		}
		if len(holders) == 1 {
			if !holders[0].FillUnknowns(totals, n) {
				return false
			}
			anyChanges = true
		}

		if anyChanges {
			continue
		}

		for suit := 0; suit < n; suit++ {
			if _, ok := totals[suit]; !ok {
				totals[suit] = 0
			}
		}

		// Rule 7: demand-pressure. A hand with more than one unknown
		// card can only be holding suits that still have room; if room
		// elsewhere is too tight, some of its unknowns are forced.
		for _, h := range t.hands {
			if h.unknown <= 1 {
				continue
			}
			possible := 0
			for suit, total := range totals {
				if total >= CardsPerSuit {
					continue
				}
				if _, void := h.voids[suit]; void {
					continue
				}
				possible += CardsPerSuit - total
			}
			if possible < h.unknown {
				return false
			}
			for suit, total := range totals {
				if total >= CardsPerSuit {
					continue
				}
				if _, void := h.voids[suit]; void {
					continue
				}
				remaining := possible - (CardsPerSuit - total)
				if remaining < h.unknown {
					h.FillSomeUnknowns(suit, h.unknown-remaining)
					anyChanges = true
				}
			}
		}

		if anyChanges {
			continue
		}

		// Rule 8: sparse-suit allocation. A suit seen twice or fewer
		// times must still come from somewhere; if the unknowns outside
		// one hand can't cover the observed count, that hand is forced
		// to hold some of it. This rule deliberately does not set
		// anyChanges: any fill it performs surfaces on the next full
		// ShakeDown call's totals recompute rather than an immediate
		// extra iteration here.
		for suit, total := range totals {
			if total > 2 {
				continue
			}
			slots := 0
			for _, h := range t.hands {
				if _, void := h.voids[suit]; void {
					continue
				}
				slots += h.unknown
			}
			for _, h := range t.hands {
				if _, void := h.voids[suit]; void {
					continue
				}
				otherSlots := slots - h.unknown
				if otherSlots < total {
					h.FillSomeUnknowns(suit, total-otherSlots)
				}
			}
		}

		if anyChanges {
			continue
		}

		// Rule 9: group exclusion. Hands that share the exact same set
		// of live (non-voided) suits form a group; if the group's total
		// remaining unknowns exactly matches the group's suits' deficit,
		// no hand outside the group can hold any of those suits.
		type group struct {
			suits   []int
			players []int
		}
		groups := make(map[string]*group)
		for idx, h := range t.hands {
			if h.unknown <= 0 || len(h.voids) <= 1 {
				continue
			}
			var suits []int
			for s := 0; s < n; s++ {
				if _, void := h.voids[s]; !void {
					suits = append(suits, s)
				}
			}
			sort.Ints(suits)
			key := fmt.Sprint(suits)
			g, ok := groups[key]
			if !ok {
				g = &group{suits: suits}
				groups[key] = g
			}
			g.players = append(g.players, idx)
		}

		for _, g := range groups {
			if len(g.players) <= 1 {
				continue
			}
			missing := CardsPerSuit * len(g.suits)
			for _, s := range g.suits {
				missing -= totals[s]
			}
			holes := 0
			for _, idx := range g.players {
				holes += t.hands[idx].unknown
			}
			if missing < holes {
				return false
			}
			if missing == holes {
				inGroup := make(map[int]bool, len(g.players))
				for _, idx := range g.players {
					inGroup[idx] = true
				}
				for idx, h := range t.hands {
					if inGroup[idx] {
						continue
					}
					for _, s := range g.suits {
						if h.KillUnknown(s) {
							anyChanges = true
						}
					}
				}
			}
		}

		if !anyChanges {
			return true
		}
	}
}
