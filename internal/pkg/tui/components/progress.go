package components

import (
	"strings"

	"github.com/Alazar42/CelerisProjectStarter/internal/pkg/tui/theme"
)

// Steps shows pipeline progress as a checklist
type Steps struct {
	Labels  []string
	Current int
	Failed  bool
	styles  *theme.Styles
}

// NewSteps creates a checklist with nothing started yet
func NewSteps(labels ...string) Steps {
	return Steps{
		Labels:  labels,
		Current: -1,
		styles:  theme.Default(),
	}
}

// SetCurrent marks every step before current as done.
// A current equal to len(Labels) marks all steps done.
func (s *Steps) SetCurrent(current int) {
	s.Current = current
}

// Fail marks the current step as failed
func (s *Steps) Fail() {
	s.Failed = true
}

// View renders the checklist
func (s Steps) View() string {
	var b strings.Builder

	for i, label := range s.Labels {
		switch {
		case i < s.Current:
			b.WriteString(s.styles.ProgressDone.Render("✓ " + label))
		case i == s.Current && s.Failed:
			b.WriteString(s.styles.Error.Render("✗ " + label))
		case i == s.Current:
			b.WriteString(s.styles.ProgressActive.Render("• " + label))
		default:
			b.WriteString(s.styles.ProgressInactive.Render("· " + label))
		}
		if i < len(s.Labels)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
