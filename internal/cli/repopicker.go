package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)
)

type repoItem struct {
	fullName string
	current  bool
}

func (i repoItem) Title() string {
	if i.current {
		return "✔ " + i.fullName
	}

	return i.fullName
}

func (i repoItem) Description() string {
	owner, _, _ := strings.Cut(i.fullName, "/")

	desc := "owner: " + owner
	if i.current {
		desc += " | current sync target"
	}

	return desc
}

func (i repoItem) FilterValue() string {
	return i.fullName
}

// RepoPickerModel lets the user choose the repository solutions are pushed to.
type RepoPickerModel struct {
	list     list.Model
	selected string
	quitting bool
}

func (m RepoPickerModel) Init() tea.Cmd {
	return nil
}

func (m RepoPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(repoItem); ok {
				m.selected = i.fullName
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m RepoPickerModel) View() string {
	if m.quitting {
		return ""
	}

	return docStyle.Render(m.list.View())
}

// Selected returns the chosen owner/name, or "" when the picker was cancelled.
func (m RepoPickerModel) Selected() string {
	return m.selected
}

// NewRepoPicker builds a picker over repos; current is highlighted.
func NewRepoPicker(repos []string, current string) RepoPickerModel {
	items := make([]list.Item, len(repos))
	for i, repo := range repos {
		items[i] = repoItem{fullName: repo, current: repo == current}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Select a repository (%d)", len(repos))

	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return RepoPickerModel{list: l}
}

// PickRepository runs the picker and returns the chosen repository.
func PickRepository(repos []string, current string) (string, error) {
	if len(repos) == 0 {
		return "", fmt.Errorf("no repositories found")
	}

	final, err := tea.NewProgram(NewRepoPicker(repos, current), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("error running repository picker: %w", err)
	}

	picker, ok := final.(RepoPickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	return picker.Selected(), nil
}
