// Package player defines the capability a seat at the table needs: decide
// on a move, and decide how to answer a request.
package player

import "github.com/MarcusRainbow/QuantumGoFish/fish"

// Player is the contract the game driver consumes. It does not know or
// care whether an implementation is a human at a terminal or a solver
// searching the game tree.
type Player interface {
	// NextMove chooses (other, suit) to ask for on this player's turn.
	// The returned move must satisfy table.Legal(this, other, suit).
	NextMove(this int, table *fish.Table, history map[string]struct{}) (other int, suit int)

	// HasCard answers whether this player holds suit, having been asked
	// by other. The answer must be truthful with respect to the actual
	// physical cards; a lie produces an illegal table downstream.
	HasCard(this, other, suit int, table *fish.Table, history map[string]struct{}) bool

	// Info returns a short implementation-specific status string, used
	// for diagnostics only.
	Info() string
}
