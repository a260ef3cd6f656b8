package prompt

import "github.com/charmbracelet/lipgloss"

// Console styles shared by prompts and command output.
var (
	QuestionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	AnswerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	TitleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	SuccessStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	HintStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("11"))
	MutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
