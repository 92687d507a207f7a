package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorWarn      = lipgloss.Color("214") // Orange
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// QuoteCard frames the quote currently on screen.
var QuoteCard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(1, 3)

// QuoteText style for the quote body.
var QuoteText = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// AuthorLine style for the attribution under a quote.
var AuthorLine = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Italic(true)

// TagBadge style for tag chips.
var TagBadge = lipgloss.NewStyle().
	Foreground(colorPrimary).
	Background(lipgloss.Color("236")).
	Padding(0, 1).
	MarginRight(1)

// FavoriteMark style for the saved-quote heart.
var FavoriteMark = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// AdCard frames the interstitial placeholder slot.
var AdCard = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorWarn).
	Foreground(colorWarn).
	Padding(1, 3)

// SelectedItem style for the highlighted row in list views.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected rows in list views.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Padding(0, 1)

// StatusBar style for the bottom bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help and hint text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 1)
