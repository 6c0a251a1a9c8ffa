package components

import (
	"strings"

	"github.com/Alazar42/CelerisProjectStarter/internal/pkg/tui/theme"
)

// KeyBinding is one hint of the help line
type KeyBinding struct {
	Key  string
	Desc string
}

// HelpBar renders key hints on one line, e.g. "esc cancel · q quit"
type HelpBar struct {
	Bindings []KeyBinding
	styles   *theme.Styles
}

// NewHelpBar creates a help line with the given hints
func NewHelpBar(bindings ...KeyBinding) HelpBar {
	return HelpBar{
		Bindings: bindings,
		styles:   theme.Default(),
	}
}

// SetBindings replaces the hints. With no bindings the bar renders nothing.
func (h *HelpBar) SetBindings(bindings ...KeyBinding) {
	h.Bindings = bindings
}

// View renders the help line
func (h HelpBar) View() string {
	parts := make([]string, 0, len(h.Bindings))
	for _, kb := range h.Bindings {
		parts = append(parts, h.styles.HelpKey.Render(kb.Key)+" "+h.styles.Muted.Render(kb.Desc))
	}
	return strings.Join(parts, h.styles.Muted.Render(" · "))
}
