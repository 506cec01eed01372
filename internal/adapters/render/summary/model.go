package summary

import (
	"errors"
	"io"

	"github.com/bnema/zprov/internal/application"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type sectionMsg string

type summaryCompleteMsg struct{}

// model collects the summary blocks one message at a time, in the order they are emitted.
type model struct {
	pending []string
	blocks  []string
}

func newModel(report application.Report, opts RenderOptions) model {
	return model{pending: sections(report, opts, newStyles())}
}

func (m model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.pending)+1)
	for _, block := range m.pending {
		cmds = append(cmds, emitSection(block))
	}
	cmds = append(cmds, func() tea.Msg { return summaryCompleteMsg{} })

	return tea.Sequence(cmds...)
}

func emitSection(block string) tea.Cmd {
	return func() tea.Msg {
		return sectionMsg(block)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sectionMsg:
		m.blocks = append(m.blocks, string(msg))
		return m, nil
	case summaryCompleteMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.blocks...)
}

func Render(report application.Report, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(report, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
