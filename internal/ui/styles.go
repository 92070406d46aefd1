package ui

import "github.com/charmbracelet/lipgloss"

// Colors used in the application.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorGold      = lipgloss.Color("220")
	colorError     = lipgloss.Color("196")
)

// fadeRamp runs from background-dim to full brightness; the hero indexes
// into it during a crossfade.
var fadeRamp = []lipgloss.Color{"236", "238", "241", "244", "248", "252", "255"}

// Header is the top bar with the app name and breadcrumb.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// HeaderCrumb is the screen title inside the header.
var HeaderCrumb = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(colorPrimary)

// SectionTitle heads a home row or list.
var SectionTitle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight).
	Padding(0, 1)

// SectionTitleFocused marks the row that has focus.
var SectionTitleFocused = SectionTitle.
	Underline(true)

// SelectedItem style for the currently highlighted item.
var SelectedItem = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// NormalItem style for unselected items.
var NormalItem = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Padding(0, 1)

// Meta style for years, counts and other secondary text.
var Meta = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Rating style for the star rating.
var Rating = lipgloss.NewStyle().
	Foreground(colorGold)

// HeroBox frames the carousel.
var HeroBox = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorPrimary).
	Padding(0, 2)

// HeroBoxFocused frames the carousel when it has focus.
var HeroBoxFocused = HeroBox.
	BorderForeground(colorHighlight)

// Dot styles for the slide indicator.
var (
	DotActive   = lipgloss.NewStyle().Foreground(colorHighlight)
	DotInactive = lipgloss.NewStyle().Foreground(colorMuted)
)

// Tab styles for the detail screen.
var (
	TabActive = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)
	TabInactive = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)
)

// Label style for detail field names.
var Label = lipgloss.NewStyle().
	Foreground(colorSecondary).
	Width(12)

// Link style for URLs.
var Link = lipgloss.NewStyle().
	Foreground(lipgloss.Color("39")).
	Underline(true)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// StatusBarText style for descriptive text in status bar.
var StatusBarText = lipgloss.NewStyle().
	Foreground(colorSecondary)

// ErrorStyle for displaying errors.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(colorError).
	Bold(true).
	Padding(0, 1)

// HelpStyle for empty states and hints.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// SearchBar style for the search input.
var SearchBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("240")).
	Padding(0, 1)

// SearchPrompt style for the "/" prompt.
var SearchPrompt = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// SuggestionBox frames the suggestion dropdown.
var SuggestionBox = lipgloss.NewStyle().
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorMuted).
	Padding(0, 1)

// PageCurrent and PageOther style the numbered pager.
var (
	PageCurrent = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("255")).
			Background(colorPrimary).
			Padding(0, 1)
	PageOther = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Padding(0, 1)
)

// DebugPanel style for the debug overlay.
var DebugPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorMuted).
	Padding(1, 2)

// DebugHeaderStyle for section headers in the debug overlay.
var DebugHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
