package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hexsettle/internal/engine"
	"github.com/vovakirdan/hexsettle/internal/resource"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	badStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)

// resourceStyles maps resource kinds to terminal colors.
var resourceStyles = map[resource.Kind]lipgloss.Style{
	resource.Brick:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	resource.Lumber: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	resource.Wool:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	resource.Grain:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	resource.Ore:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
}

// terrainString renders a tile's terrain in its resource color.
func terrainString(t engine.Terrain) string {
	if p, ok := t.(engine.Producing); ok {
		if s, ok := resourceStyles[p.Resource]; ok {
			return s.Render(t.String())
		}
	}
	return dimStyle.Render(t.String())
}
