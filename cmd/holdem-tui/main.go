package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pokersim/holdem/internal/analysis"
	"github.com/pokersim/holdem/internal/deck"
	"github.com/pokersim/holdem/internal/display"
)

var CLI struct {
	Opponents int   `short:"o" default:"1" help:"Number of random opponents (1-8)"`
	Trials    int   `short:"n" default:"5000" help:"Trials per analysis"`
	Seed      int64 `help:"Random seed (0 for the fixed default)"`
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// model is the Bubble Tea model for the interactive equity explorer.
type model struct {
	input     textinput.Model
	opponents int
	trials    int
	seed      int64

	report  *analysis.LiveReport
	err     error
	running bool
}

type reportMsg analysis.LiveReport

type errMsg struct{ err error }

func newModel() model {
	ti := textinput.New()
	ti.Placeholder = "Enter cards, hole first (e.g. AsKd or AsKd Td7s8h)"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 60
	ti.Prompt = "> "
	ti.PromptStyle = titleStyle

	return model{
		input:     ti,
		opponents: CLI.Opponents,
		trials:    CLI.Trials,
		seed:      CLI.Seed,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.running {
				return m, nil
			}
			m.running = true
			m.err = nil
			return m, m.analyze(m.input.Value())
		}
		switch msg.String() {
		case "+":
			if m.opponents < 8 {
				m.opponents++
			}
			return m, nil
		case "-":
			if m.opponents > 1 {
				m.opponents--
			}
			return m, nil
		}

	case reportMsg:
		report := analysis.LiveReport(msg)
		m.report = &report
		m.running = false
		return m, nil

	case errMsg:
		m.err = msg.err
		m.running = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) analyze(value string) tea.Cmd {
	opponents := m.opponents
	trials := m.trials
	seed := m.seed
	return func() tea.Msg {
		cards, err := deck.ParseCards(value)
		if err != nil {
			return errMsg{err}
		}
		report, err := analysis.Live(context.Background(), cards, opponents, trials, seed)
		if err != nil {
			return errMsg{err}
		}
		return reportMsg(report)
	}
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("holdem equity explorer"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("opponents: %d", m.opponents)))
	b.WriteString("\n")

	switch {
	case m.running:
		b.WriteString("\nrunning...\n")
	case m.err != nil:
		b.WriteString("\n" + errStyle.Render(m.err.Error()) + "\n")
	case m.report != nil:
		b.WriteString(m.renderReport())
	}

	b.WriteString("\n" + helpStyle.Render("enter: analyze · +/-: opponents · esc: quit"))
	return b.String()
}

func (m model) renderReport() string {
	r := m.report
	var b strings.Builder

	if r.Message != "" {
		b.WriteString("\n" + labelStyle.Render(r.Message) + "\n")
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("hole: ") + display.Cards(r.Hole))
	if len(r.Board) > 0 {
		b.WriteString(labelStyle.Render("  board: ") + display.Cards(r.Board))
	}
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("win"), valueStyle.Render(fmt.Sprintf("%.1f%%", r.WinRate*100)),
		labelStyle.Render("tie"), valueStyle.Render(fmt.Sprintf("%.1f%%", r.TieRate*100)),
		labelStyle.Render("loss"), valueStyle.Render(fmt.Sprintf("%.1f%%", r.LossRate*100)),
		labelStyle.Render("equity"), valueStyle.Render(fmt.Sprintf("%.1f%%", r.Equity*100))))

	if r.CurrentHand != "" {
		b.WriteString(labelStyle.Render("current hand: ") + valueStyle.Render(r.CurrentHand) + "\n")
	}
	for _, draw := range r.Draws {
		b.WriteString(labelStyle.Render(draw) + "\n")
	}

	b.WriteString("\n" + analysis.StrategyMessage(r.WinRate, r.TieRate) + "\n")
	return b.String()
}

func main() {
	kctx := kong.Parse(&CLI)

	p := tea.NewProgram(newModel())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		kctx.Exit(1)
	}
}
