// Package tui is the interactive progress view for a project creation run.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alazar42/CelerisProjectStarter/internal/domain"
	"github.com/Alazar42/CelerisProjectStarter/internal/pkg/tui/components"
	"github.com/Alazar42/CelerisProjectStarter/internal/pkg/tui/theme"
	"github.com/Alazar42/CelerisProjectStarter/internal/scaffold"
	"github.com/Alazar42/CelerisProjectStarter/internal/util"
)

// StageMsg reports a stage transition of the run.
type StageMsg struct{ Stage domain.Stage }

// BytesMsg reports the cumulative downloaded byte count.
type BytesMsg struct{ Total int64 }

// CleanupMsg reports that transient files could not be removed.
type CleanupMsg struct{ Err error }

// DoneMsg ends the view with the outcome of the run.
type DoneMsg struct {
	Result *domain.Result
	Err    error
}

// App shows the checklist and the download bar until the run finishes.
type App struct {
	project  string
	expected int64
	cancel   context.CancelFunc

	stages []domain.Stage
	steps  components.Steps
	bar    progress.Model
	help   components.HelpBar
	styles *theme.Styles

	bytes      int64
	canceling  bool
	done       bool
	result     *domain.Result
	err        error
	cleanupErr error
}

// NewApp creates the view for one run. expected only scales the download bar;
// cancel is called when the user aborts.
func NewApp(project string, expected int64, withRepository bool, cancel context.CancelFunc) *App {
	stages := []domain.Stage{
		domain.StageCheckingConnectivity,
		domain.StageDownloading,
		domain.StageExtracting,
		domain.StageMaterializing,
		domain.StagePatching,
	}
	if withRepository {
		stages = append(stages, domain.StageInitializingRepository)
	}
	stages = append(stages, domain.StageCleaningUp)

	labels := make([]string, len(stages))
	for i, s := range stages {
		labels[i] = s.String()
	}

	return &App{
		project:  project,
		expected: expected,
		cancel:   cancel,
		stages:   stages,
		steps:    components.NewSteps(labels...),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		help:     components.NewHelpBar(components.KeyBinding{Key: "esc", Desc: "cancel"}),
		styles:   theme.Default(),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if a.done {
				return a, tea.Quit
			}
			if !a.canceling {
				a.canceling = true
				a.help.SetBindings()
				a.cancel()
			}
		}

	case tea.WindowSizeMsg:
		if w := msg.Width - 24; w > 10 && w < 60 {
			a.bar.Width = w
		}

	case StageMsg:
		if i := a.indexOf(msg.Stage); i >= 0 {
			a.steps.SetCurrent(i)
		}

	case BytesMsg:
		a.bytes = msg.Total

	case CleanupMsg:
		a.cleanupErr = msg.Err

	case DoneMsg:
		a.done = true
		a.result = msg.Result
		a.err = msg.Err
		a.finishSteps(msg.Err)
		return a, tea.Quit
	}

	return a, nil
}

// Err returns the outcome once the view has quit.
func (a *App) Err() error {
	return a.err
}

func (a *App) indexOf(stage domain.Stage) int {
	for i, s := range a.stages {
		if s == stage {
			return i
		}
	}
	return -1
}

func (a *App) finishSteps(err error) {
	if err == nil {
		a.steps.SetCurrent(len(a.stages))
		return
	}

	var stepErr *scaffold.StepError
	switch {
	case errors.As(err, &stepErr):
		if i := a.indexOf(stepErr.Stage); i >= 0 {
			a.steps.SetCurrent(i)
		}
	case errors.Is(err, domain.ErrNoConnectivity):
		a.steps.SetCurrent(a.indexOf(domain.StageCheckingConnectivity))
	default:
		// rejected before any step ran
		return
	}
	a.steps.Fail()
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Creating " + a.project))
	b.WriteString("\n")
	b.WriteString(a.steps.View())
	b.WriteString("\n\n")

	if a.bytes > 0 {
		b.WriteString(a.bar.ViewAs(a.percent()))
		b.WriteString("  ")
		b.WriteString(a.styles.Muted.Render("Downloaded: " + util.FormatBytes(a.bytes)))
		b.WriteString("\n")
	}

	if a.cleanupErr != nil {
		b.WriteString(a.styles.Warning.Render("Some temporary files could not be removed: " + a.cleanupErr.Error()))
		b.WriteString("\n")
	}

	switch {
	case a.done && a.err == nil:
		b.WriteString(a.styles.Success.Render(fmt.Sprintf("Project created at %s", a.result.ProjectPath)))
		b.WriteString(" ")
		b.WriteString(a.styles.Muted.Render("(" + util.FormatDuration(a.result.Duration) + ")"))
		b.WriteString("\n")
	case a.done:
		b.WriteString(a.styles.Error.Render(scaffold.Describe(a.err)))
		b.WriteString("\n")
	case a.canceling:
		b.WriteString(a.styles.Warning.Render("Canceling..."))
		b.WriteString("\n")
	default:
		b.WriteString(a.styles.Help.Render(a.help.View()))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (a *App) percent() float64 {
	if a.expected <= 0 {
		return 0
	}
	p := float64(a.bytes) / float64(a.expected)
	if p > 1 {
		return 1
	}
	return p
}
