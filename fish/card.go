// Package fish implements the imperfect-information knowledge engine for
// the Go Fish variant: hands of cards whose suits are only partially
// known, and the constraint-propagation procedure that closes a table's
// knowledge under everything the rules of the game imply.
package fish

// NoWinner indicates that, given current knowledge, no player can yet be
// shown to have won and the table is not fully determined either.
const NoWinner = -1

// Illegal indicates a table state that cannot correspond to any legal
// deal: ShakeDown found a contradiction, such as some suit appearing more
// than four times across all hands.
const Illegal = -2

// CardsPerSuit is fixed by the rules of the game: four of a kind wins.
const CardsPerSuit = 4
