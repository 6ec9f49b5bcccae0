// Package display renders cards for terminal output, shared by the CLI and
// the TUI so both color suits the same way.
package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pokersim/holdem/internal/deck"
)

var (
	redSuit = lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	blackSuit = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)
)

// Card renders one card with its suit color: hearts and diamonds red, clubs
// and spades white.
func Card(c deck.Card) string {
	switch c.Suit() {
	case deck.Hearts, deck.Diamonds:
		return redSuit.Render(c.String())
	default:
		return blackSuit.Render(c.String())
	}
}

// Cards renders a space-separated hand.
func Cards(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return strings.Join(parts, " ")
}
