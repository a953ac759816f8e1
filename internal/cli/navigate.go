package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg tells every view on the stack to re-read program data after
// a mutation made above it (e.g. an edit form on top of an entity table).
type refreshViewMsg struct{}

// formCompleteMsg is sent when an edit form completes or is cancelled.
// The appModel pops the form view and then runs nextCmd.
type formCompleteMsg struct {
	nextCmd tea.Cmd
}

// statusFlashMsg shows a transient one-line notice in the status bar.
type statusFlashMsg struct {
	text string
}

// quitMsg requests an orderly shutdown.
type quitMsg struct{}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// refreshViews returns a tea.Cmd that broadcasts a data refresh.
func refreshViews() tea.Cmd {
	return func() tea.Msg { return refreshViewMsg{} }
}

// flash returns a tea.Cmd that shows a transient status notice.
func flash(text string) tea.Cmd {
	return func() tea.Msg { return statusFlashMsg{text: text} }
}
