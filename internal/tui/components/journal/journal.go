package journal

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/steadhq/stead/internal/models"
)

type EditReflectionMsg struct{}

type Model struct {
	reflection *models.Reflection
	width      int
	height     int
	viewport   viewport.Model
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("114")).
			MarginBottom(1)

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1)
)

func New(reflection *models.Reflection, width, height int) Model {
	m := Model{
		reflection: reflection,
		width:      width,
		height:     height,
		viewport:   viewport.New(width, height),
	}
	m.updateViewportContent()
	return m
}

func (m *Model) SetReflection(reflection *models.Reflection) {
	m.reflection = reflection
	m.updateViewportContent()
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e", "w":
			return m, func() tea.Msg { return EditReflectionMsg{} }
		}
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewportContent()
}

func (m *Model) updateViewportContent() {
	var sections []string

	sections = append(sections, titleStyle.Render("Today's Reflection"))

	if m.reflection == nil {
		sections = append(sections, sectionStyle.Render(emptyStyle.Render("Nothing written for today yet.")))
	} else {
		if m.reflection.Went != "" {
			sections = append(sections, sectionStyle.Render(headingStyle.Render("Went well")+"\n"+bodyStyle.Render(m.reflection.Went)))
		}
		if m.reflection.Learned != "" {
			sections = append(sections, sectionStyle.Render(headingStyle.Render("Learned")+"\n"+bodyStyle.Render(m.reflection.Learned)))
		}
		if m.reflection.Gratitude != "" {
			sections = append(sections, sectionStyle.Render(headingStyle.Render("Grateful for")+"\n"+bodyStyle.Render(m.reflection.Gratitude)))
		}
		if m.reflection.Mood > 0 {
			sections = append(sections, sectionStyle.Render(headingStyle.Render("Mood")+"\n"+bodyStyle.Render(fmt.Sprintf("%d/5", m.reflection.Mood))))
		}
	}

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		MarginTop(2).
		Render("Press 'e' to write today's reflection")

	sections = append(sections, helpText)

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	m.viewport.SetContent(lipgloss.NewStyle().Padding(0, 2).Render(content))
}
