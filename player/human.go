package player

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/MarcusRainbow/QuantumGoFish/fish"
)

// HumanPlayer drives a seat from the terminal: it prompts for a move (or
// an answer to a request) and reads the reply from stdin.
type HumanPlayer struct {
	scanner *bufio.Scanner
}

// NewHumanPlayer returns a player that reads from stdin.
func NewHumanPlayer() *HumanPlayer {
	return &HumanPlayer{scanner: bufio.NewScanner(os.Stdin)}
}

func (p *HumanPlayer) askFor(msg string, this int) string {
	fmt.Printf("%d> %s", this, msg)
	if !p.scanner.Scan() {
		return "q"
	}
	return strings.TrimSpace(p.scanner.Text())
}

// NextMove repeatedly prompts for an opponent and a suit until it sees a
// legal request. Typing "q" quits the process, matching the original
// interactive client.
func (p *HumanPlayer) NextMove(this int, table *fish.Table, history map[string]struct{}) (int, int) {
	for {
		otherLine := p.askFor("Which player do you want to ask? ", this)
		if isQuit(otherLine) {
			os.Exit(0)
		}
		suitLine := p.askFor("Which suit do you want to ask for? ", this)
		if isQuit(suitLine) {
			os.Exit(0)
		}

		other, err1 := strconv.Atoi(otherLine)
		suit, err2 := strconv.Atoi(suitLine)
		if err1 != nil || err2 != nil {
			fmt.Println("please enter numbers")
			continue
		}
		if !table.Legal(this, other, suit) {
			fmt.Println("that is not a legal request")
			continue
		}
		return other, suit
	}
}

// HasCard consults the table's forced knowledge first; only an
// indeterminate question is actually put to the human.
func (p *HumanPlayer) HasCard(this, other, suit int, table *fish.Table, history map[string]struct{}) bool {
	if forced, yes := table.HasCard(suit, other, this); forced {
		return yes
	}
	for {
		line := p.askFor(fmt.Sprintf("Do you have a %d? (y/n) ", suit), this)
		if isQuit(line) {
			os.Exit(0)
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Println("please answer y or n")
		}
	}
}

// Info returns a fixed status string: a human player has no internal
// search state to report.
func (p *HumanPlayer) Info() string {
	return "no info"
}

func isQuit(s string) bool {
	return strings.EqualFold(s, "q")
}
