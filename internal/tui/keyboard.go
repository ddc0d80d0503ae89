package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/slide/internal/slider"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from anywhere, including the picker
	if key.Matches(msg, Keys.ForceQuit) {
		m.teardown()
		return m, tea.Quit
	}

	// Route to the picker while it is open
	if m.Picker.IsVisible() {
		var cmd tea.Cmd
		var idx int
		var chosen bool
		m.Picker, cmd, idx, chosen = m.Picker.Update(msg)
		if chosen {
			m.dispatch(slider.JumpTo{Index: idx})
		}
		return m, cmd
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		m.teardown()
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		return m, nil

	case key.Matches(msg, Keys.Escape):
		m.Help.ShowAll = false
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Everything else needs a loaded listing
	if m.Slider.Phase != slider.PhaseReady {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.Left):
		m.dispatch(slider.StepLeftEvent{})

	case key.Matches(msg, Keys.Right):
		m.dispatch(slider.StepRightEvent{})

	case key.Matches(msg, Keys.First):
		if !m.Slider.IsEmpty() {
			m.dispatch(slider.JumpTo{Index: 0})
		}

	case key.Matches(msg, Keys.Last):
		if !m.Slider.IsEmpty() {
			m.dispatch(slider.JumpTo{Index: m.Slider.Len() - 1})
		}

	case key.Matches(msg, Keys.Jump):
		// One key per indicator; keys past the end of the strip do nothing
		if idx := int(msg.Runes[0] - '1'); idx < m.Slider.Len() {
			m.dispatch(slider.JumpTo{Index: idx})
		}

	case key.Matches(msg, Keys.Filter):
		if !m.Slider.IsEmpty() {
			cmd := m.Picker.Show(m.imageTitles())
			return m, cmd
		}

	case key.Matches(msg, Keys.Open):
		if img, ok := m.Slider.CurrentImage(); ok && m.Opener != nil {
			return m, OpenImageCmd(m.Opener, img.DownloadURL)
		}
	}

	return m, nil
}

// handleMouseMsg maps clicks on the arrows and indicator strip, and the
// scroll wheel, to slider events
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.Picker.IsVisible() || m.Slider.Phase != slider.PhaseReady {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.dispatch(slider.StepLeftEvent{})
		return m, nil
	case tea.MouseButtonWheelDown:
		m.dispatch(slider.StepRightEvent{})
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if ev := m.layout().hitTest(msg.X, msg.Y, m.Slider.Len()); ev != nil {
		m.dispatch(ev)
	}
	return m, nil
}
