package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quotefeed/internal/feed"
)

// View renders the UI
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	status := m.renderStatusBar()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(status)

	var content string
	switch {
	case m.showingAd:
		content = m.renderAd(contentHeight)
	case m.mode == modeSaved:
		content = m.renderSaved(contentHeight)
	case m.mode == modeDaily:
		content = m.renderDaily(contentHeight)
	case m.mode == modeSubmit:
		content = m.renderSubmit(contentHeight)
	case m.mode == modeAbout:
		content = m.renderAbout(contentHeight)
	default:
		content = m.renderFeed(contentHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, content, status)
}

func (m Model) renderHeader() string {
	seq := m.deps.Sequencer
	title := "  QUOTEFEED"
	switch m.mode {
	case modeSaved:
		title += "  ·  saved"
	case modeDaily:
		title += "  ·  quote of the day"
	case modeSubmit:
		title += "  ·  submit"
	case modeAbout:
		title += "  ·  about"
	default:
		if seq.State() == feed.StateReady {
			title += fmt.Sprintf("  ·  %d/%d", m.cursor+1, seq.Len())
		}
	}
	if seq.Syncing() {
		title += "  ·  syncing"
	}
	return Header.Width(m.width).Render(title)
}

func (m Model) renderFeed(height int) string {
	seq := m.deps.Sequencer

	switch seq.State() {
	case feed.StateLoading:
		return m.center(height, m.spin.View()+" fetching quotes")
	case feed.StateEmpty:
		return m.center(height, HelpStyle.Render("No quotes available. [r] retry"))
	}

	q, ok := m.quoteAt(m.cursor)
	if !ok {
		return m.center(height, "")
	}

	cardWidth := clamp(m.width-8, 24, 70)
	body := QuoteText.Width(cardWidth - 8).Render("“" + q.Text + "”")

	lines := []string{body, ""}
	author := q.Author
	if author == "" {
		author = "Unknown"
	}
	lines = append(lines, AuthorLine.Render("— "+author))

	if len(q.Tags) > 0 {
		var chips []string
		for _, t := range q.Tags {
			chips = append(chips, TagBadge.Render(t))
		}
		lines = append(lines, "", strings.Join(chips, ""))
	}
	if m.deps.Ledger.IsFavorite(m.ctx, q.ID) {
		lines = append(lines, "", FavoriteMark.Render("♥ saved"))
	}

	card := QuoteCard.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	return m.center(height, card)
}

func (m Model) renderAd(height int) string {
	card := AdCard.Render(lipgloss.JoinVertical(lipgloss.Center,
		"ADVERTISEMENT",
		"",
		"Support quotefeed by enduring this slot.",
		HelpStyle.Render("press any key to continue"),
	))
	return m.center(height, card)
}

func (m Model) renderSaved(height int) string {
	if len(m.saved) == 0 {
		return m.center(height, HelpStyle.Render("Nothing saved yet. Press [f] on a quote to keep it."))
	}

	var rows []string
	for i, q := range m.saved {
		line := fmt.Sprintf("“%s” — %s", truncate(q.Text, m.width-20), q.Author)
		if i == m.savedCursor {
			rows = append(rows, SelectedItem.Render(line))
		} else {
			rows = append(rows, NormalItem.Render(line))
		}
	}
	list := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return padToHeight(list, height)
}

func (m Model) renderDaily(height int) string {
	if !m.dailyLoaded {
		return m.center(height, m.spin.View()+" picking")
	}
	if !m.dailyOK {
		return m.center(height, HelpStyle.Render("No pick today. [r] retry"))
	}

	q := m.dailyQuote
	cardWidth := clamp(m.width-8, 24, 70)
	card := QuoteCard.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
		QuoteText.Width(cardWidth-8).Render("“"+q.Text+"”"),
		"",
		AuthorLine.Render("— "+q.Author),
	))
	return m.center(height, card)
}

func (m Model) renderSubmit(height int) string {
	form := lipgloss.JoinVertical(lipgloss.Left,
		"Quote",
		m.quoteInput.View(),
		"",
		"Author",
		m.authorInput.View(),
		"",
		HelpStyle.Render("[enter] next/send  [tab] switch field  [esc] cancel"),
	)
	return m.center(height, form)
}

func (m Model) renderAbout(height int) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		"quotefeed",
		"",
		"A personal quotes feed for the terminal.",
		"Quotes sync from a configurable source and keep",
		"working offline from the local cache.",
		"",
		HelpStyle.Render("j/k  browse        f  save quote"),
		HelpStyle.Render("s    share         n  content filter"),
		HelpStyle.Render("d    daily quote   a  submit a quote"),
		HelpStyle.Render("tab  saved list    q  quit"),
		"",
		HelpStyle.Render("press any key to close"),
	)
	return m.center(height, body)
}

func (m Model) renderStatusBar() string {
	if m.err != nil {
		return ErrorStyle.Width(m.width).Render("Error: " + m.err.Error() + " (press any key to dismiss)")
	}
	text := m.status
	if text == "" {
		switch m.mode {
		case modeSaved:
			text = "[↑↓] navigate  [f] remove  [s] share  [esc] back"
		case modeDaily:
			text = "[s] share  [r] retry  [esc] back"
		case modeSubmit:
			text = "[enter] send  [esc] back"
		default:
			text = "[↑↓] browse  [f] save  [s] share  [n] filter  [d] daily  [a] submit  [q] quit"
		}
	}
	return StatusBar.Width(m.width).Render("  " + text)
}

func (m Model) center(height int, content string) string {
	if height < 1 {
		height = 1
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, content)
}

func padToHeight(s string, height int) string {
	lines := lipgloss.Height(s)
	if lines >= height {
		return s
	}
	return s + strings.Repeat("\n", height-lines)
}

func truncate(s string, max int) string {
	if max < 8 {
		max = 8
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
