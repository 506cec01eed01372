package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type taskDoneMsg struct {
	err error
}

// taskSpinnerModel shows label next to a spinner until task reports back.
type taskSpinnerModel struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	err     error
	done    bool
}

func newTaskSpinnerModel(label string, task tea.Cmd) taskSpinnerModel {
	return taskSpinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
		),
		label: label,
		task:  task,
	}
}

func (m taskSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

func (m taskSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case taskDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m taskSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

// runTaskSpinner runs task behind a spinner drawn on logs' stream. Log lines written while the
// spinner is up are printed above it.
func runTaskSpinner(ctx context.Context, logs *spinnerLogWriter, label string, task func(context.Context) error) error {
	taskCmd := func() tea.Msg {
		return taskDoneMsg{err: task(ctx)}
	}

	p := tea.NewProgram(
		newTaskSpinnerModel(label, taskCmd),
		tea.WithInput(nil),
		tea.WithOutput(logs.out),
		tea.WithContext(ctx),
	)

	logs.attach(p)
	defer logs.detach()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(taskSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

// spinnerLogWriter hands complete log lines to a running spinner program, or writes them
// straight to out when no spinner is attached.
type spinnerLogWriter struct {
	mu      sync.Mutex
	out     io.Writer
	program *tea.Program
}

func newSpinnerLogWriter(out io.Writer) *spinnerLogWriter {
	return &spinnerLogWriter{out: out}
}

func (w *spinnerLogWriter) attach(p *tea.Program) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.program = p
}

func (w *spinnerLogWriter) detach() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.program = nil
}

func (w *spinnerLogWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.program == nil {
		return w.out.Write(p)
	}

	// Send gives up once the program has shut down, unlike Program.Println.
	w.program.Send(tea.Println(strings.TrimRight(string(p), "\n"))())
	return len(p), nil
}
