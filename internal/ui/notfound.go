package ui

import tea "github.com/charmbracelet/bubbletea"

type notFoundScreen struct {
	route Route
}

func (n *notFoundScreen) Init() tea.Cmd          { return nil }
func (n *notFoundScreen) Update(tea.Msg) tea.Cmd { return nil }
func (n *notFoundScreen) Title() string          { return "Not Found" }
func (n *notFoundScreen) Route() Route           { return n.route }
func (n *notFoundScreen) Loading() bool          { return false }
func (n *notFoundScreen) Focus()                 {}
func (n *notFoundScreen) Blur()                  {}
func (n *notFoundScreen) Close()                 {}

func (n *notFoundScreen) View(width, height int) string {
	return ErrorStyle.Render("404 · Page not found") + "\n" +
		Meta.Render("  "+truncateRunes(n.route.Path, width-4)) + "\n" +
		HelpStyle.Render("esc to go back, H for home")
}
