package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/codesim/pysim"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

func diffLineStyle(line string) lipgloss.Style {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return mutedStyle
	case strings.HasPrefix(line, "+"):
		return resultStyle
	case strings.HasPrefix(line, "-"):
		return errorStyle
	case strings.HasPrefix(line, "@@"):
		return helpKeyStyle
	default:
		return lipgloss.NewStyle()
	}
}

type keyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit input"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "ctrl+d"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// inputRequestedMsg reports that the run is blocked on input().
type inputRequestedMsg struct {
	req pysim.InputRequest
}

// runFinishedMsg reports that the run completed.
type runFinishedMsg struct {
	output string
	err    error
}

type runModel struct {
	textInput   textinput.Model
	run         *pysim.Run
	cancel      context.CancelFunc
	output      string
	pending     *pysim.InputRequest
	finished    bool
	runErr      error
	width       int
	height      int
	quitting    bool
	initialized bool
}

func newRunModel(run *pysim.Run, cancel context.CancelFunc) runModel {
	ti := textinput.New()
	ti.Placeholder = "type a value..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "> "

	return runModel{
		textInput: ti,
		run:       run,
		cancel:    cancel,
	}
}

// waitForRun blocks until the run asks for input or completes.
func waitForRun(run *pysim.Run) tea.Cmd {
	return func() tea.Msg {
		req, ok := <-run.Requests()
		if ok {
			return inputRequestedMsg{req: req}
		}
		out, err := run.Wait(context.Background())
		return runFinishedMsg{output: out, err: err}
	}
}

func (m runModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForRun(m.run))
}

func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case inputRequestedMsg:
		req := msg.req
		m.pending = &req
		m.output = m.run.Output()
		if req.Prompt != "" {
			m.textInput.Prompt = req.Prompt
		} else {
			m.textInput.Prompt = "> "
		}
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, nil

	case runFinishedMsg:
		m.pending = nil
		m.finished = true
		m.output = msg.output
		m.runErr = msg.err
		m.textInput.Blur()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case key.Matches(msg, keys.Enter):
			if m.finished {
				m.quitting = true
				return m, tea.Quit
			}
			if m.pending == nil {
				return m, nil
			}
			value := m.textInput.Value()
			if err := m.run.Resolve(value); err != nil {
				m.runErr = err
				return m, nil
			}
			m.output += m.pending.Prompt + value + "\n"
			m.pending = nil
			m.textInput.SetValue("")
			m.textInput.Blur()
			return m, waitForRun(m.run)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m runModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("codesim run") + " " + mutedStyle.Render(m.status()) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	output := strings.TrimRight(m.output, "\n")
	if output == "" {
		output = mutedStyle.Render("(no output yet)")
	}
	b.WriteString(borderStyle.Render(output) + "\n\n")

	if m.runErr != nil {
		b.WriteString(errorStyle.Render("✗ "+m.runErr.Error()) + "\n\n")
	}
	if m.pending != nil {
		b.WriteString(m.textInput.View() + "\n\n")
	}

	footer := helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	if m.pending != nil {
		footer = helpKeyStyle.Render("enter") + helpDescStyle.Render(" submit  ") + footer
	} else if m.finished {
		footer = helpKeyStyle.Render("enter") + helpDescStyle.Render(" close  ") + footer
	}
	b.WriteString(footer)
	return b.String()
}

func (m runModel) status() string {
	switch {
	case m.finished:
		return pysim.StateCompleted.String()
	case m.pending != nil:
		return pysim.StateAwaitingInput.String()
	default:
		return pysim.StateRunning.String()
	}
}

func runTUI(ctx context.Context, interp *pysim.Interpreter, source string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	run := interp.Start(ctx, source)
	p := tea.NewProgram(newRunModel(run, cancel), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
