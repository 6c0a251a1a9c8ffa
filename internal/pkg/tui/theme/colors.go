package theme

import "github.com/charmbracelet/lipgloss"

// Color palette of the Celeris starter
var (
	// Primary colors
	Blue      = lipgloss.Color("#1E88E5")
	LightBlue = lipgloss.Color("#90CAF9")
	PaleBlue  = lipgloss.Color("#E3F2FD")
	DeepBlue  = lipgloss.Color("#0D47A1")

	// Neutrals
	White     = lipgloss.Color("#FFFFFF")
	LightGray = lipgloss.Color("#9CA3AF")
	DimGray   = lipgloss.Color("#6B7280")
	DarkGray  = lipgloss.Color("#374151")

	// Semantic colors
	Success = lipgloss.Color("#22C55E")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
)
