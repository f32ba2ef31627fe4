package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PickerItem is one selectable row in the picker.
type PickerItem struct {
	ID          string
	Title       string
	Description string
}

// PickerModel is an interactive fuzzy-filtered list. Type to filter,
// arrows to move, enter to select, esc to cancel.
type PickerModel struct {
	filter   textinput.Model
	title    string
	items    []PickerItem
	visible  []PickerItem
	choice   *PickerItem
	cursor   int
	width    int
	height   int
	done     bool
	canceled bool
}

// NewPicker creates a picker over the given items.
func NewPicker(title string, items []PickerItem) PickerModel {
	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = "> "
	filter.Focus()

	return PickerModel{
		title:   title,
		items:   items,
		visible: items,
		filter:  filter,
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			m.done = true
			return m, tea.Quit

		case "enter":
			if len(m.visible) > 0 {
				choice := m.visible[m.cursor]
				m.choice = &choice
			}
			m.done = true
			return m, tea.Quit

		case "up", "ctrl+k":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case "down", "ctrl+j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *PickerModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.visible = m.items
	} else {
		m.visible = nil
		for _, item := range m.items {
			haystack := strings.ToLower(item.Title + " " + item.Description)
			if strings.Contains(haystack, query) {
				m.visible = append(m.visible, item)
			}
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m PickerModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	const maxRows = 12
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}
	end := start + maxRows
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := start; i < end; i++ {
		item := m.visible[i]
		line := item.Title
		if item.Description != "" {
			line += "  " + SubtleStyle.Render(item.Description)
		}
		if i == m.cursor {
			b.WriteString(PromptStyle.Render("❯ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(SubtleStyle.Render("  no matches"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(fmt.Sprintf("%d/%d  [↑↓] move  [enter] select  [esc] cancel",
		len(m.visible), len(m.items))))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// Pick runs the picker and returns the chosen item, or false if the user
// canceled.
func Pick(title string, items []PickerItem) (PickerItem, bool, error) {
	program := tea.NewProgram(NewPicker(title, items))
	final, err := program.Run()
	if err != nil {
		return PickerItem{}, false, fmt.Errorf("picker failed: %w", err)
	}

	result, ok := final.(PickerModel)
	if !ok || result.canceled || result.choice == nil {
		return PickerItem{}, false, nil
	}
	return *result.choice, true, nil
}
