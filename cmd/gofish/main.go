// Package main provides the gofish CLI: build a player roster from
// repeated "human"/"clever" tokens and either play one interactive game
// or run a batch of simulated games and report aggregate statistics.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/MarcusRainbow/QuantumGoFish/game"
	"github.com/MarcusRainbow/QuantumGoFish/player"
	"github.com/MarcusRainbow/QuantumGoFish/simulation"
	"github.com/MarcusRainbow/QuantumGoFish/solver"
)

// Version information (set by build flags).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// CLI flags
var (
	maxDepth    int
	maxHasDepth int
	progress    int
	prefsArg    string
	simulate    int
	seed        int64
	verbose     bool
	showVersion bool
)

func init() {
	flag.IntVar(&maxDepth, "max-depth", 1000, "how deep the clever solver searches for a move")
	flag.IntVar(&maxHasDepth, "max-has-depth", 1000, "how deep the clever solver searches answering has-card")
	flag.IntVar(&progress, "progress", 0, "log solver progress every N uncached position evaluations (0 disables)")
	flag.StringVar(&prefsArg, "prefs", "", "comma-separated preference matrix, e.g. 1,2,0 for three players")
	flag.IntVar(&simulate, "simulate", 0, "run N simulated games instead of one interactive game")
	flag.Int64Var(&seed, "seed", 0, "random seed for -simulate batches (0 = use current time)")
	flag.BoolVar(&verbose, "verbose", false, "log each turn as it happens")
	flag.BoolVar(&showVersion, "version", false, "show version information")
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("gofish %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	prefs, symmetric := parsePrefs(prefsArg)

	seatToInstance, instances, err := buildRoster(flag.Args(), prefs, symmetric)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\ntry %s -h\n", err, os.Args[0])
		os.Exit(1)
	}

	if simulate > 0 {
		runBatch(seatToInstance, instances)
		return
	}

	winner, turns := game.Play(seatToInstance, instances)
	if winner < 0 {
		fmt.Printf("Result is a draw after %d turns\n", turns)
	} else {
		fmt.Printf("Win for player %d after %d turns\n", winner, turns)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "%s [flags] [human|clever]*\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g. %s -max-depth=3 -prefs=1,2,0 human human clever\n\n", os.Args[0])
	flag.PrintDefaults()
}

// buildRoster turns a sequence of "human"/"clever" tokens into a seat
// assignment and the distinct player instances behind it, reusing the
// same instance on repeat tokens — so "clever clever" seats two
// different players sharing one transposition cache.
func buildRoster(tokens []string, prefs solver.PreferenceSet, symmetric bool) ([]int, []player.Player, error) {
	var instances []player.Player
	var seatToInstance []int
	humanIdx, haveHuman := -1, false
	cleverIdx, haveClever := -1, false

	for _, tok := range tokens {
		switch tok {
		case "human":
			if !haveHuman {
				humanIdx = len(instances)
				instances = append(instances, player.NewHumanPlayer())
				haveHuman = true
			}
			seatToInstance = append(seatToInstance, humanIdx)
		case "clever":
			if !haveClever {
				cleverIdx = len(instances)
				instances = append(instances, solver.NewCleverPlayer(maxDepth, maxHasDepth, progress, prefs, symmetric))
				haveClever = true
			}
			seatToInstance = append(seatToInstance, cleverIdx)
		default:
			return nil, nil, fmt.Errorf("unrecognised player type %q", tok)
		}
	}

	if len(seatToInstance) < 2 {
		return nil, nil, fmt.Errorf("need at least two players")
	}
	return seatToInstance, instances, nil
}

// parsePrefs parses a flat "a,b,c,..." preference list into a per-player
// preference matrix and detects whether it is rotation-symmetric (each
// player's preferences equal player 0's, shifted by its seat index mod
// the number of players). A blank argument means no preferences and
// trivially-symmetric play.
func parsePrefs(arg string) (solver.PreferenceSet, bool) {
	if arg == "" {
		return nil, true
	}

	fields := strings.Split(arg, ",")
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			fmt.Fprintf(os.Stderr, "error -- prefs value %q is not a number\n", f)
			os.Exit(1)
		}
		values[i] = v
	}

	// Sensible preference lengths are 3 (three players), 8 (four
	// players), 15 (five players), etc: len == n*(n-2) for some n.
	prefsLen := 0
	for n := 3; n < 10; n++ {
		if len(values) == n*(n-2) {
			prefsLen = n
			break
		}
	}
	if prefsLen == 0 {
		fmt.Fprintln(os.Stderr, "error -- prefs are not a suitable length (3, 8, 15 etc.)")
		os.Exit(1)
	}

	partLen := prefsLen - 2
	prefs := make(solver.PreferenceSet, prefsLen)
	src := 0
	for i := 0; i < prefsLen; i++ {
		part := make([]int, partLen)
		for j := 0; j < partLen; j++ {
			part[j] = values[src]
			src++
		}
		prefs[i] = part
	}

	symmetric := true
	pref0 := prefs[0]
	for i, pref := range prefs {
		for k, p0 := range pref0 {
			if pref[k] != (p0+i)%prefsLen {
				symmetric = false
				break
			}
		}
		if !symmetric {
			break
		}
	}

	return prefs, symmetric
}

// runBatch plays -simulate games with the configured roster and prints
// aggregate win/draw/turn statistics.
func runBatch(seatToInstance []int, instances []player.Player) {
	batchSeed := seed
	if batchSeed == 0 {
		batchSeed = time.Now().UnixNano()
	}

	roster := func(gameIndex int, rng *rand.Rand) ([]int, []player.Player) {
		return seatToInstance, instances
	}

	stats := simulation.RunBatch(len(seatToInstance), simulate, uint64(batchSeed), roster)

	fmt.Printf("Played %d games\n", stats.TotalGames)
	for seat, wins := range stats.Wins {
		fmt.Printf("  player %d wins: %d\n", seat, wins)
	}
	fmt.Printf("  draws: %d\n", stats.Draws)
	fmt.Printf("  avg turns: %.1f, median turns: %d\n", stats.AvgTurns, stats.MedianTurns)
}
