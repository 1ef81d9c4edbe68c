package main

import (
	"fmt"

	"github.com/spf13/cobra"

	// Register the action handlers.
	_ "github.com/vovakirdan/hexsettle/internal/actions"
	"github.com/vovakirdan/hexsettle/internal/registry"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the actions a player can request",
	Long:  `Shows every registered action with the arguments a play script passes to it.`,
	Args:  cobra.NoArgs,
	Run:   runActions,
}

func runActions(_ *cobra.Command, _ []string) {
	list := registry.List()

	if len(list) == 0 {
		fmt.Println("No actions registered.")
		return
	}

	fmt.Println("Available actions:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 6 // "Action" header
	for _, info := range list {
		if len(info.Name) > maxNameLen {
			maxNameLen = len(info.Name)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxNameLen, "Action", "Arguments")
	fmt.Printf("  %-*s  %s\n", maxNameLen, "------", "---------")
	for _, info := range list {
		fmt.Printf("  %-*s  %s\n", maxNameLen, info.Name, info.Usage)
	}

	fmt.Println()
	fmt.Println("Arguments are key=value pairs; bundles look like brick:1,ore:2.")
}
