package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jask/skillboard/internal/database/repository"
)

const placeholderMessage = "No assessment profiles were found. Try creating one."

// card is the render-ready form of one record.
type card struct {
	key         string
	header      string
	meta        string
	description string
	extra       []string
	selected    bool
	focused     bool
}

// formatDate renders t in UTC so the shown day never shifts with the local zone.
func formatDate(t time.Time, layout string) string {
	if layout == "" {
		layout = "Mon Jan 02 2006"
	}
	return t.UTC().Format(layout)
}

func competencyCard(c repository.Competency, layout string) card {
	return card{
		key:         c.ID,
		header:      c.Name,
		meta:        formatDate(c.Date, layout),
		description: c.Description,
	}
}

func assessmentCard(a repository.Assessment, layout string) card {
	return card{
		key:         a.ID,
		header:      a.FullName,
		meta:        formatDate(a.Date, layout),
		description: a.Description,
		extra:       []string{a.AvatarURL, assessmentLink(a)},
	}
}

func assessmentLink(a repository.Assessment) string {
	return "/assessments/" + a.Username
}

func renderCard(c card, st styles) string {
	lines := []string{st.cardHeader.Render(c.header), st.cardMeta.Render(c.meta)}
	if c.description != "" {
		lines = append(lines, c.description)
	}
	for _, e := range c.extra {
		if e != "" {
			lines = append(lines, st.cardMeta.Render(e))
		}
	}
	box := st.card
	if c.focused {
		box = st.cardFocused
	}
	if c.selected {
		box = box.BorderForeground(st.highlight)
	}
	return box.Render(strings.Join(lines, "\n"))
}

// renderCardGrid lays cards out left to right, wrapping to width.
func renderCardGrid(cards []card, width int, st styles) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := cardsPerRow(width)
	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		rendered := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			rendered = append(rendered, renderCard(c, st))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func cardsPerRow(width int) int {
	// border and padding add four columns to every card
	n := width / (cardWidth + 4)
	if n < 1 {
		return 1
	}
	return n
}

func renderDetail(c repository.Competency, layout string, st styles) string {
	lines := []string{
		st.title.Render(c.Name),
		st.cardMeta.Render(formatDate(c.Date, layout)),
	}
	desc := c.Description
	if desc == "" {
		desc = "(no description)"
	}
	lines = append(lines, "", desc, "", st.cardHeader.Render("Subcompetencies"))
	if len(c.Subcompetencies) == 0 {
		lines = append(lines, "  (none)")
	}
	for _, sub := range c.Subcompetencies {
		lines = append(lines, "  • "+sub.Name)
	}
	return st.detail.Render(strings.Join(lines, "\n"))
}

func renderPlaceholder(st styles) string {
	return st.placeholder.Render(placeholderMessage)
}
