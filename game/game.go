// Package game drives a round-robin game to completion: it asks each
// seated player for a move in turn, applies it to the table, and checks
// for a winner or a repeated position after every turn.
package game

import (
	"log"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
	"github.com/MarcusRainbow/QuantumGoFish/player"
)

// Play runs one game to completion and returns the winning player id (or
// fish.NoWinner on a draw) along with the number of turns taken.
//
// seatToInstance maps each seat to an index into instances, so the same
// Player value can occupy more than one seat — a single symmetric
// CleverPlayer, say, seated as both player 0 and player 1, sharing one
// transposition cache across both. len(seatToInstance) is the number of
// players in the game; instances need only be as long as the number of
// distinct players actually used.
func Play(seatToInstance []int, instances []player.Player) (winner int, turns int) {
	numPlayers := len(seatToInstance)
	table := fish.NewTable(numPlayers)
	history := make(map[string]struct{})

	for {
		for i := 0; i < numPlayers; i++ {
			if table.IsEmpty(i) {
				log.Printf("game: player %d has no cards, skipping turn", i)
				continue
			}

			asker := instances[seatToInstance[i]]
			other, suit := asker.NextMove(i, table, history)
			log.Printf("game: player %d asks player %d for suit %d", i, other, suit)

			asked := instances[seatToInstance[other]]
			if asked.HasCard(other, i, suit, table, history) {
				table.Transfer(suit, i, other)
			} else {
				table.NoTransfer(suit, i, other)
			}
			turns++

			result := table.TestWinner(i)
			if result == fish.Illegal {
				log.Panicf("game: table reached an illegal state after player %d asked player %d for suit %d", i, other, suit)
			}
			if result != fish.NoWinner {
				log.Printf("game: player %d wins", result)
				return result, turns
			}

			pos := table.Position(i)
			key := pos.Text(36)
			if _, seen := history[key]; seen {
				log.Printf("game: position repeated, declaring a draw")
				return fish.NoWinner, turns
			}
			history[key] = struct{}{}
		}
	}
}
