// Package preview is the interactive question preview screen: it generates
// questions through the full pipeline and lets the user answer them, showing
// the correct option and distractor reasoning after each answer.
package preview

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"github.com/primagen/primagen/internal/orchestrator"
	"github.com/primagen/primagen/internal/ui/components"
	"github.com/primagen/primagen/internal/ui/layout"
	"github.com/primagen/primagen/internal/ui/theme"
)

// Model is the root Bubble Tea model for the preview session.
type Model struct {
	generator *orchestrator.Generator
	request   orchestrator.Request
	total     int

	width  int
	height int

	current  *orchestrator.EnhancedQuestion
	choice   components.MultiChoice
	spin     spinner.Model
	loadErr  error
	answered int
	correct  int
	done     bool
}

// questionMsg delivers a freshly generated question to the model.
type questionMsg struct {
	question *orchestrator.EnhancedQuestion
	err      error
}

// New creates a preview session generating count questions for the request.
func New(generator *orchestrator.Generator, request orchestrator.Request, count int) Model {
	if count <= 0 {
		count = 5
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{generator: generator, request: request, total: count, spin: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generateNext(), m.spin.Tick)
}

// generateNext runs one pipeline call off the UI loop.
func (m Model) generateNext() tea.Cmd {
	gen, req := m.generator, m.request
	return func() tea.Msg {
		q, err := gen.Generate(context.Background(), req)
		return questionMsg{question: q, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.current != nil || m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case questionMsg:
		m.loadErr = msg.err
		m.current = msg.question
		if msg.question != nil {
			options := make([]string, len(msg.question.Options))
			for i, opt := range msg.question.Options {
				options[i] = opt.Text
			}
			m.choice = components.NewMultiChoice(msg.question.Text, options, msg.question.CorrectIndex)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			if m.done {
				return m, tea.Quit
			}
			if m.choice.Submitted {
				return m.advance()
			}
		}
		if m.current != nil && !m.choice.Submitted {
			var cmd tea.Cmd
			wasSubmitted := m.choice.Submitted
			m.choice, cmd = m.choice.Update(msg)
			if !wasSubmitted && m.choice.Submitted {
				m.answered++
				if m.choice.IsCorrect() {
					m.correct++
				}
			}
			return m, cmd
		}
	}
	return m, nil
}

// advance moves to the next question or finishes the session.
func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.answered >= m.total {
		m.done = true
		return m, nil
	}
	m.current = nil
	return m, tea.Batch(m.generateNext(), m.spin.Tick)
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader("Question Preview", m.correct, m.answered, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	content := m.content()

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m Model) keyHints() []layout.KeyHint {
	if m.done || m.choice.Submitted {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Q", Description: "Quit"},
	}
}

func (m Model) content() string {
	switch {
	case m.done:
		return theme.Card.Render(fmt.Sprintf(
			"%s\n\n%s",
			theme.Title.Render("Session complete"),
			theme.Body.Render(fmt.Sprintf("You answered %d of %d correctly.", m.correct, m.total)),
		))

	case m.loadErr != nil:
		return theme.Card.Render(
			theme.Incorrect.Render("Generation failed") + "\n\n" +
				theme.Body.Render(m.loadErr.Error()))

	case m.current == nil:
		return "  " + m.spin.View() + theme.Hint.Render(" Generating question...")
	}

	progress := components.ProgressBar{
		Caption: fmt.Sprintf("Question %d/%d", m.answered+1, m.total),
		Done:    m.answered,
		Total:   m.total,
		Width:   40,
	}

	body := m.choice.View()
	if m.choice.Submitted {
		body += "\n" + m.feedback()
	}

	meta := theme.Hint.Render(fmt.Sprintf("  %s · %s · level %s",
		m.current.Format, m.current.Setup.ScenarioTheme, m.current.Level.DisplayName()))

	return progress.View() + "\n\n" + theme.Card.Render(body) + "\n" + meta
}

// feedback explains the chosen distractor's misconception, when one matched.
func (m Model) feedback() string {
	if m.choice.IsCorrect() {
		return theme.Correct.Render("Correct!")
	}

	chosen := m.current.Options[m.choice.ChosenIndex]
	line := theme.Incorrect.Render("Not quite.") + " " +
		theme.Body.Render(fmt.Sprintf("The answer is %s.",
			m.current.Options[m.current.CorrectIndex].Text))

	for _, d := range m.current.Distractors {
		if d.Value == chosen.Value && d.Reasoning != "" {
			line += "\n" + theme.Hint.Render("Likely slip: "+d.Reasoning)
			break
		}
	}
	return line
}

// Run starts the preview program.
func Run(generator *orchestrator.Generator, request orchestrator.Request, count int) error {
	p := tea.NewProgram(New(generator, request, count))
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}
