package terminal

import "github.com/charmbracelet/lipgloss"

var (
	// Role colors: blue for questions, emerald for answers.
	colorQuestion = lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#60a5fa"}
	colorAnswer   = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34d399"}

	// UI colors.
	colorBright = lipgloss.AdaptiveColor{Light: "#0f172a", Dark: "#f1f5f9"}
	colorDim    = lipgloss.AdaptiveColor{Light: "#94a3b8", Dark: "#64748b"}
	colorMatch  = lipgloss.AdaptiveColor{Light: "#fef08a", Dark: "#854d0e"}
)

var (
	styleQuestionBadge = lipgloss.NewStyle().Foreground(colorQuestion).Bold(true)
	styleAnswerBadge   = lipgloss.NewStyle().Foreground(colorAnswer).Bold(true)

	styleTitle = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleMeta  = lipgloss.NewStyle().Foreground(colorDim)
	styleEmpty = lipgloss.NewStyle().Foreground(colorDim).Italic(true)
	styleMatch = lipgloss.NewStyle().Background(colorMatch).Bold(true)

	styleSeparator = lipgloss.NewStyle().Foreground(colorDim)
)
