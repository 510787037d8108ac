package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"bananagrams/internal/config"
	"bananagrams/internal/engine"
)

// runSolve is the interactive terminal front end: the user types the
// letters drawn so far (cumulative), the engine solves incrementally, and
// the board is rendered with tiles inherited from the previous round
// dimmed and newly placed tiles highlighted. Raw terminal mode is only
// entered for the live board view; line input uses normal buffered
// stdin, mirroring the teacher's mix of both modes in its own solve.go.
func runSolve() {
	cfg := config.Load("config.json")
	dict := loadDictionary(cfg)
	e := engine.New(dict, cfg.BoardSize, cfg.Settings())

	reader := bufio.NewReader(os.Stdin)
	hand := ""

	fmt.Println("Bananagrams solver. Enter the letters drawn so far (cumulative), or:")
	fmt.Println("  reset      - start a new game")
	fmt.Println("  quit       - exit")
	fmt.Println()

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch strings.ToLower(line) {
		case "quit", "exit":
			return
		case "reset":
			e.Reset()
			hand = ""
			fmt.Println("Session reset.")
			continue
		case "":
			continue
		}

		hand = line
		sol, err := e.Solve(context.Background(), hand)
		if err != nil {
			fmt.Println("No solution:", err)
			continue
		}
		printSolution(sol)
	}
}

func printSolution(sol *engine.Solution) {
	if err := initTerminal(); err == nil {
		if err := enableRaw(); err == nil {
			defer disableRaw()
		}
	}
	for _, row := range sol.Board {
		line := ""
		for _, cell := range row {
			switch {
			case cell == " ":
				line += ". "
			case strings.HasSuffix(cell, "*"):
				// inherited from the previous board: dim.
				line += "\x1b[2m" + cell[:1] + "\x1b[0m "
			default:
				// newly placed this round: bold green.
				line += "\x1b[32;1m" + cell + "\x1b[0m "
			}
		}
		fmt.Println(line)
	}
	fmt.Printf("solved in %dms\n", sol.ElapsedMS)
}
