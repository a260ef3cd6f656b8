// Package prompt handles synchronous question-and-answer interaction with the
// operator and the console styles used by alertctl commands.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the operator aborts a prompt with Ctrl+C or Esc.
var ErrCancelled = errors.New("prompt cancelled")

// Prompter asks the operator for values, one question at a time.
type Prompter interface {
	// Ask returns the typed answer, or defaultValue when the answer is empty.
	Ask(question, defaultValue string, secret bool) (string, error)
	// Confirm asks a yes/no question.
	Confirm(question string, defaultValue bool) (bool, error)
}

// Terminal prompts on a terminal using a single-field Bubble Tea program per question.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns a Terminal reading keys from in and rendering to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

func (t *Terminal) run(m inputModel) (inputModel, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("failed to run prompt: %w", err)
	}
	result := final.(inputModel)
	if result.cancelled {
		return result, ErrCancelled
	}
	return result, nil
}

// Ask implements Prompter.
func (t *Terminal) Ask(question, defaultValue string, secret bool) (string, error) {
	result, err := t.run(newInputModel(question, defaultValue, secret))
	if err != nil {
		return "", err
	}
	return result.Value(), nil
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(question string, defaultValue bool) (bool, error) {
	hint := "y/N"
	if defaultValue {
		hint = "Y/n"
	}
	result, err := t.run(newInputModel(fmt.Sprintf("%s (%s)", question, hint), "", false))
	if err != nil {
		return false, err
	}
	return ParseYesNo(result.Value(), defaultValue), nil
}

// Defaults answers every question with its default. It backs --non-interactive.
type Defaults struct{}

// Ask implements Prompter.
func (Defaults) Ask(_, defaultValue string, _ bool) (string, error) { return defaultValue, nil }

// Confirm implements Prompter.
func (Defaults) Confirm(_ string, defaultValue bool) (bool, error) { return defaultValue, nil }

// ParseYesNo interprets a yes/no answer, falling back to defaultValue for
// anything unrecognised.
func ParseYesNo(answer string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return defaultValue
	}
}

// inputModel is a one-question Bubble Tea model.
type inputModel struct {
	question     string
	defaultValue string
	secret       bool
	input        textinput.Model
	done         bool
	cancelled    bool
}

func newInputModel(question, defaultValue string, secret bool) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = defaultValue
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		ti.Placeholder = ""
	}
	ti.Focus()
	return inputModel{
		question:     question,
		defaultValue: defaultValue,
		secret:       secret,
		input:        ti,
	}
}

func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	if m.done || m.cancelled {
		// Leave the answered question on screen, masked if secret.
		answer := m.Value()
		if m.secret && answer != "" {
			answer = strings.Repeat("•", 8)
		}
		return QuestionStyle.Render(m.question) + " " + AnswerStyle.Render(answer) + "\n"
	}
	return QuestionStyle.Render(m.question) + "\n" + m.input.View() + "\n"
}

// Value returns the trimmed answer or the default when nothing was typed.
func (m inputModel) Value() string {
	v := strings.TrimSpace(m.input.Value())
	if v == "" {
		return m.defaultValue
	}
	return v
}
