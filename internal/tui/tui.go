package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func Run(opts Options) error {
	applyThemePreference(opts.Theme)
	applyColorProfilePreference()
	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
