package tui

import "github.com/charmbracelet/lipgloss"

const cardWidth = 30

type styles struct {
	title       lipgloss.Style
	subtitle    lipgloss.Style
	card        lipgloss.Style
	cardFocused lipgloss.Style
	cardHeader  lipgloss.Style
	cardMeta    lipgloss.Style
	highlight   lipgloss.Color
	detail      lipgloss.Style
	placeholder lipgloss.Style
	button      lipgloss.Style
	buttonOff   lipgloss.Style
	hint        lipgloss.Style
	status      lipgloss.Style
	errStatus   lipgloss.Style
	footer      lipgloss.Style
}

func newStyles(highlight string) styles {
	if highlight == "" {
		highlight = "12"
	}
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(cardWidth)
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Underline(true),
		subtitle:    lipgloss.NewStyle().Faint(true),
		card:        card,
		cardFocused: card.Border(lipgloss.ThickBorder()),
		cardHeader:  lipgloss.NewStyle().Bold(true),
		cardMeta:    lipgloss.NewStyle().Faint(true),
		highlight:   lipgloss.Color(highlight),
		detail:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		placeholder: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 2).Faint(true),
		button:      lipgloss.NewStyle().Bold(true).Padding(0, 1).Border(lipgloss.ThickBorder()),
		buttonOff:   lipgloss.NewStyle().Faint(true).Padding(0, 1).Border(lipgloss.NormalBorder()),
		hint:        lipgloss.NewStyle().Italic(true).Faint(true),
		status:      lipgloss.NewStyle().Faint(true),
		errStatus:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		footer:      lipgloss.NewStyle().Faint(true),
	}
}
