package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/slide/internal/slider"
	"github.com/mmcdole/slide/internal/tui/styles"
)

// View renders the slider. What is drawn depends only on the slider phase:
// Failed shows the error alone, Loading a spinner alone, and Ready the
// arrows, the current image card and the indicator strip.
func (m Model) View() string {
	switch m.Slider.Phase {
	case slider.PhaseFailed:
		return m.renderFailed()
	case slider.PhaseReady:
		// fall through to the slider below
	default:
		return m.renderLoading()
	}

	if m.Picker.IsVisible() {
		return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.Picker.View())
	}

	l := m.layout()
	sections := []string{
		m.renderHeader(),
		m.renderCardRow(l),
		"",
		m.renderStrip(l),
		"",
		m.renderFooter(),
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderFailed() string {
	return styles.ErrorStyle.Render(m.Slider.Err) + "\n\n" + styles.DimStyle.Render("q quit")
}

func (m Model) renderLoading() string {
	return m.Spinner.View() + " Loading..."
}

// renderHeader renders the title line and the blank line under it
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("slide")
	source := styles.DimStyle.Render(m.opts.SourceURL)
	position := ""
	if n := m.Slider.Len(); n > 0 {
		position = styles.AccentStyle.Render(fmt.Sprintf("%d / %d", m.Slider.Current+1, n))
	}
	if m.FromCache {
		position += styles.DimStyle.Render(" (cached)")
	}

	line := strings.Join(nonEmpty(title, position, source), "  ")
	if m.Width > 0 {
		line = lipgloss.NewStyle().MaxWidth(m.Width).Render(line)
	}
	return line + "\n"
}

// renderCardRow renders the left arrow, the card and the right arrow
func (m Model) renderCardRow(l sliderLayout) string {
	arrowStyle := styles.ArrowStyle
	if !m.Slider.Navigable() {
		arrowStyle = styles.ArrowDisabledStyle
	}
	arrowBox := lipgloss.NewStyle().
		Width(ArrowWidth).
		Height(CardHeight).
		Align(lipgloss.Center).
		AlignVertical(lipgloss.Center)

	left := arrowBox.Render(arrowStyle.Render(styles.ArrowLeftChar))
	right := arrowBox.Render(arrowStyle.Render(styles.ArrowRightChar))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderCard(l.cardWidth), right)
}

// renderCard renders the visible image, or an empty frame when there is none
func (m Model) renderCard(width int) string {
	// Border takes two columns and two rows; padding two more columns
	inner := width - 4
	frame := styles.CardStyle
	lines := make([]string, CardHeight-2)

	if img, ok := m.Slider.CurrentImage(); ok {
		lines[0] = styles.TitleStyle.Render(styles.Truncate(img.GetTitle(), inner))
		lines[1] = styles.SubtitleStyle.Render(styles.Truncate("#"+img.ID+"  "+img.GetDescription(), inner))
		lines[3] = styles.AccentStyle.Render(styles.Truncate(img.DownloadURL, inner))
		if img.URL != "" {
			lines[4] = styles.DimStyle.Render(styles.Truncate(img.URL, inner))
		}
	} else {
		frame = styles.EmptyCardStyle
		lines[2] = styles.DimStyle.Render("No images")
	}

	return frame.
		Width(width - 2).
		Height(CardHeight - 2).
		Render(strings.Join(lines, "\n"))
}

// renderStrip renders one indicator per image, wrapped to the card width
func (m Model) renderStrip(l sliderLayout) string {
	indent := strings.Repeat(" ", ArrowWidth)
	indicators := m.Slider.Indicators()
	if len(indicators) == 0 {
		return indent
	}

	var rows []string
	var b strings.Builder
	for i, in := range indicators {
		if i > 0 && i%l.perRow == 0 {
			rows = append(rows, indent+b.String())
			b.Reset()
		}
		if in.Selected {
			b.WriteString(styles.IndicatorSelectedStyle.Render(styles.IndicatorSelectedChar))
		} else {
			b.WriteString(styles.IndicatorStyle.Render(styles.IndicatorChar))
		}
		b.WriteString(" ")
	}
	rows = append(rows, indent+b.String())
	return strings.Join(rows, "\n")
}

// renderFooter renders the status message or the help bar
func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}
	return m.Help.View(Keys)
}

func nonEmpty(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
