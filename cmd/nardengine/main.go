// nardengine - command-line front end for the nardy move engine
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/yourusername/nardengine/pkg/engine"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if len(os.Args) < 2 {
		// Light to move on the starting board with 1-2.
		printMoves(engine.InitialBoard(), engine.Light, [2]int{1, 2})
		return
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "moves":
		cmdMoves(args)
	case "home":
		cmdHome(args)
	case "pips":
		cmdPips(args)
	case "show":
		cmdShow(args)
	case "positions":
		cmdPositions(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`nardengine - Long Nardy Move Engine

Usage: nardengine [command] [options]

Commands:
  moves      List legal moves for a dice roll
  home       Check whether a side has every checker home
  pips       Pip counts for both sides
  show       Print the board cell by cell and the closest reference positions
  positions  List or search the reference positions (-q text, -tag name)

With no command, prints light's moves for 1-2 on the starting board.
Use "nardengine <command> -h" for command-specific help.

Position ID Format:
  24 characters, one per cell 0-23. The starting board is
  "fAAAAAAAAAAAvAAAAAAAAAAA". An omitted position means the starting board.`)
}

// positionFlags registers -position/-p and -debug on fs.
type positionFlags struct {
	long, short *string
	debug       *bool
}

func addPositionFlags(fs *flag.FlagSet) positionFlags {
	return positionFlags{
		long:  fs.String("position", "", "Position ID (default: starting board)"),
		short: fs.String("p", "", "Position ID (short form)"),
		debug: fs.Bool("debug", false, "Enable debug logging"),
	}
}

func (pf positionFlags) board() engine.Board {
	if *pf.debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	pos := *pf.long
	if pos == "" {
		pos = *pf.short
	}
	board, err := parsePosition(pos)
	if err != nil {
		fail(err)
	}
	return board
}

func parsePosition(posStr string) (engine.Board, error) {
	posStr = strings.TrimSpace(posStr)
	if posStr == "" {
		return engine.InitialBoard(), nil
	}
	board, err := engine.BoardFromPositionID(posStr)
	if err != nil {
		return engine.Board{}, fmt.Errorf("invalid position ID: %w", err)
	}
	return board, nil
}

func parseDice(diceStr string) ([2]int, error) {
	parts := strings.Split(diceStr, ",")
	if len(parts) != 2 {
		parts = strings.Split(diceStr, "-")
	}
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("dice should be in format '5,3' or '5-3'")
	}

	d1, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	d2, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || d1 < 1 || d1 > engine.MaxDie || d2 < 1 || d2 > engine.MaxDie {
		return [2]int{}, fmt.Errorf("dice values must be 1-6")
	}

	return [2]int{d1, d2}, nil
}

func parseColorFlag(s string) engine.Color {
	c, err := engine.ParseColor(s)
	if err != nil {
		fail(err)
	}
	return c
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdMoves(args []string) {
	fs := flag.NewFlagSet("moves", flag.ExitOnError)
	pf := addPositionFlags(fs)
	colorFlag := fs.String("c", "light", "Side to move (light or dark)")
	diceFlag := fs.String("dice", "", "Dice roll (e.g., 5,3 or 5-3)")
	diceShort := fs.String("d", "", "Dice roll (short form)")
	fs.Parse(args)

	dice := *diceFlag
	if dice == "" {
		dice = *diceShort
	}
	if dice == "" {
		fmt.Fprintln(os.Stderr, "Error: dice required")
		fmt.Fprintln(os.Stderr, "Usage: nardengine moves [-p <positionID>] [-c light|dark] -d <roll>")
		os.Exit(1)
	}

	diceRoll, err := parseDice(dice)
	if err != nil {
		fail(err)
	}

	printMoves(pf.board(), parseColorFlag(*colorFlag), diceRoll)
}

func printMoves(board engine.Board, color engine.Color, dice [2]int) {
	moves, err := engine.FindMoves(board, color, dice)
	if err != nil {
		fail(err)
	}

	if len(moves) == 0 {
		fmt.Println("No legal moves (forced to pass)")
		return
	}

	fmt.Printf("Legal moves for %s, roll %d-%d:\n", color, dice[0], dice[1])
	for i, m := range moves {
		fmt.Printf("  %d. %s\n", i+1, engine.FormatMove(m))
	}
}

func cmdHome(args []string) {
	fs := flag.NewFlagSet("home", flag.ExitOnError)
	pf := addPositionFlags(fs)
	colorFlag := fs.String("c", "light", "Side to check (light or dark)")
	fs.Parse(args)

	board := pf.board()
	color := parseColorFlag(*colorFlag)
	if engine.IsHome(&board, color) {
		fmt.Printf("%s is home\n", color)
	} else {
		fmt.Printf("%s is not home\n", color)
	}
}

func cmdPips(args []string) {
	fs := flag.NewFlagSet("pips", flag.ExitOnError)
	pf := addPositionFlags(fs)
	fs.Parse(args)

	board := pf.board()
	race := engine.Race(&board)
	for i, c := range []engine.Color{engine.Light, engine.Dark} {
		fmt.Printf("%-5s  pips %3d  checkers %2d  home %v\n", c, race.Pips[i], race.Pieces[i], race.Home[i])
	}
	fmt.Printf("Light leads by %d pips\n", -race.PipDifference(engine.Light))
}

func cmdShow(args []string) {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	pf := addPositionFlags(fs)
	nearest := fs.Int("n", 3, "Number of similar reference positions to list")
	fs.Parse(args)

	board := pf.board()
	fmt.Printf("Position: %s\n", board.PositionID())
	fmt.Printf("Category: %s\n", engine.ClassifyPosition(board))
	for pos, c := range board {
		if c.Count == 0 {
			continue
		}
		head := ""
		if p := (engine.Piece{Color: c.Occupant, Position: pos}); p.IsHead() {
			head = " (head)"
		}
		fmt.Printf("  %2d: %2d %s%s\n", pos, c.Count, c.Occupant, head)
	}

	similar := engine.DefaultPositionDB().FindSimilar(board, *nearest)
	if len(similar) > 0 {
		fmt.Println("Similar reference positions:")
	}
	for _, s := range similar {
		fmt.Printf("  %3.0f%%  %s\n", s.Similarity*100, s.Entry.Name)
	}
}

func cmdPositions(args []string) {
	fs := flag.NewFlagSet("positions", flag.ExitOnError)
	query := fs.String("q", "", "Search name, description and tags")
	tag := fs.String("tag", "", "Only positions with this exact tag")
	fs.Parse(args)

	db := engine.DefaultPositionDB()
	entries := selectPositions(db, *query, *tag)
	log.Debug().Int("total", db.Count()).Int("matched", len(entries)).Msg("position catalogue")

	for _, p := range entries {
		fmt.Printf("%-24s  %-11s  %s\n", p.ID, p.Category, p.Name)
		fmt.Printf("%-24s  %s\n", "", p.Description)
	}
}

// selectPositions returns the query matches (all positions for an empty
// query) that also carry tag, when one is given.
func selectPositions(db *engine.PositionDB, query, tag string) []*engine.PositionEntry {
	entries := db.All()
	if query != "" {
		entries = db.Search(query)
	}
	if tag == "" {
		return entries
	}
	tagged := db.GetByTag(tag)
	return lo.Filter(entries, func(p *engine.PositionEntry, _ int) bool {
		return lo.Contains(tagged, p)
	})
}
