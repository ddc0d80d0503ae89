package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/slide/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// pickerRows is the number of matches shown at once
const pickerRows = 8

// Picker is a fuzzy finder over image titles. Choosing an entry yields
// its index in the listing.
type Picker struct {
	visible bool
	input   textinput.Model
	titles  []string
	matches fuzzy.Matches
	cursor  int
}

// NewPicker creates a new picker
func NewPicker() Picker {
	ti := textinput.New()
	ti.Placeholder = "Author..."
	ti.CharLimit = 64
	ti.Width = 30
	ti.Prompt = "/ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return Picker{input: ti}
}

// Show opens the picker over titles (one per image, in listing order)
func (p *Picker) Show(titles []string) tea.Cmd {
	p.visible = true
	p.titles = titles
	p.input.SetValue("")
	p.applyFilter()
	return p.input.Focus()
}

// Hide dismisses the picker
func (p *Picker) Hide() {
	p.visible = false
	p.input.Blur()
}

// IsVisible returns whether the picker is shown
func (p Picker) IsVisible() bool {
	return p.visible
}

// Matches returns the listing indices currently shown, best first
func (p Picker) Matches() []int {
	out := make([]int, len(p.matches))
	for i, m := range p.matches {
		out[i] = m.Index
	}
	return out
}

// Update handles input events, returns (picker, cmd, chosen index, chosen)
func (p Picker) Update(msg tea.Msg) (Picker, tea.Cmd, int, bool) {
	if !p.visible {
		return p, nil, 0, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, PickerKeys.Enter):
			if len(p.matches) == 0 {
				return p, nil, 0, false
			}
			idx := p.matches[p.cursor].Index
			p.Hide()
			return p, nil, idx, true
		case key.Matches(keyMsg, PickerKeys.Escape):
			p.Hide()
			return p, nil, 0, false
		case key.Matches(keyMsg, PickerKeys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, 0, false
		case key.Matches(keyMsg, PickerKeys.Down):
			if p.cursor < len(p.matches)-1 {
				p.cursor++
			}
			return p, nil, 0, false
		}
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.applyFilter()
	}
	return p, cmd, 0, false
}

func (p *Picker) applyFilter() {
	p.cursor = 0

	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		// No query: everything, in listing order
		p.matches = make(fuzzy.Matches, len(p.titles))
		for i, t := range p.titles {
			p.matches[i] = fuzzy.Match{Str: t, Index: i}
		}
		return
	}

	p.matches = fuzzy.Find(query, p.titles)
}

// View renders the picker modal
func (p Picker) View() string {
	if !p.visible {
		return ""
	}

	const modalWidth = 40

	var rows []string
	start := max(0, p.cursor-pickerRows+1)
	end := min(len(p.matches), start+pickerRows)
	for i := start; i < end; i++ {
		rows = append(rows, renderMatch(p.matches[i], i == p.cursor, modalWidth))
	}
	if len(p.matches) == 0 {
		rows = append(rows, styles.DimStyle.Render("No matches"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Jump to author"),
		p.input.View(),
		"",
		strings.Join(rows, "\n"),
		"",
		help.New().ShortHelpView(PickerKeys.ShortHelp()),
	)

	return styles.ModalStyle.Render(content)
}

// renderMatch renders one result row with matched characters highlighted
func renderMatch(m fuzzy.Match, selected bool, width int) string {
	base := styles.NormalRowStyle
	hl := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedRowStyle
		hl = hl.Background(styles.SlateLight)
	}

	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}

	text := styles.Truncate(m.Str, width-2)
	var b strings.Builder
	for i, r := range text {
		if matched[i] {
			b.WriteString(hl.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	pad := width - 2 - lipgloss.Width(text)
	if pad > 0 {
		b.WriteString(base.Render(strings.Repeat(" ", pad)))
	}
	return base.Render(" ") + b.String() + base.Render(" ")
}
