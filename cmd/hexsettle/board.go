package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexsettle/internal/engine"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Deal a board and print it",
	Long: `Deal a board from the configured seed and print every tile, the
corners that carry ports and the starting thief position.

Examples:
  hexsettle board
  hexsettle board --seed 42`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	cfg, logger := setup()

	g, err := engine.New(cfg.GameOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error dealing board: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("board dealt", "seed", cfg.Game.Seed)
	b := g.Board()

	fmt.Println(titleStyle.Render(fmt.Sprintf("Board - seed %d", cfg.Game.Seed)))
	fmt.Println()

	fmt.Printf("  %-4s  %-20s  %s\n", "Tile", "Terrain", "Corners")
	fmt.Printf("  %-4s  %-20s  %s\n", "----", "-------", "-------")
	for _, t := range b.Tiles() {
		// Pad outside the style so escape codes do not break the columns.
		name := t.Terrain().String()
		pad := strings.Repeat(" ", max(0, 20-len(name)))
		marker := ""
		if t.ID() == b.ThiefTile() {
			marker = badStyle.Render("  <- thief")
		}
		fmt.Printf("  %-4d  %s%s  %v%s\n", t.ID(), terrainString(t.Terrain()), pad, t.Corners(), marker)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Ports"))
	for _, c := range b.Corners() {
		if p, ok := c.Port(); ok {
			fmt.Printf("  corner %-3d  %s\n", c.ID(), p)
		}
	}

	fmt.Println()
	fmt.Printf("%d tiles, %d corners, %d development cards\n", len(b.Tiles()), len(b.Corners()), g.DeckSize())
}
