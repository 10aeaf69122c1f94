package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.toggle()
			return m, nil
		}
	}

	if m.active == devicePane {
		m.devices, cmd = m.devices.Update(msg)
	} else {
		m.flows, cmd = m.flows.Update(msg)
	}
	return m, cmd
}

func (m *BrowserModel) toggle() {
	if m.active == devicePane {
		m.active = flowPane
		m.devices.Blur()
		m.flows.Focus()
		return
	}
	m.active = devicePane
	m.flows.Blur()
	m.devices.Focus()
}
