package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/lock"
	apptui "github.com/Alazar42/CelerisProjectStarter/internal/app/tui"
	"github.com/Alazar42/CelerisProjectStarter/internal/domain"
	"github.com/Alazar42/CelerisProjectStarter/internal/infrastructure/config"
	"github.com/Alazar42/CelerisProjectStarter/internal/scaffold"
	"github.com/Alazar42/CelerisProjectStarter/internal/util"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a project from the starter template",
	Long: `Create a project from the Celeris starter template.

The template is downloaded into the destination folder, copied to
<dir>/<name> and the CMake project is renamed to <name>. Temporary files
are removed whether or not the run succeeds.

Examples:
  celeris new MyGame                 # Create ./MyGame
  celeris new MyGame --dir ~/code    # Create ~/code/MyGame
  celeris new MyGame --git           # Also initialize a git repository
  celeris new MyGame --plain         # Line-based output, no progress view`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

// Flags
var (
	newDir     string
	newGit     bool
	newPlain   bool
	newVerbose bool
)

func init() {
	newCmd.Flags().StringVarP(&newDir, "dir", "d", ".", "Folder to create the project in")
	newCmd.Flags().BoolVar(&newGit, "git", false, "Initialize a git repository with an initial commit")
	newCmd.Flags().BoolVar(&newPlain, "plain", false, "Print plain progress lines instead of the interactive view")
	newCmd.Flags().BoolVarP(&newVerbose, "verbose", "v", false, "Log every step to stderr (implies --plain)")
}

func runNew(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	req, err := domain.NewProjectRequest(args[0], newDir)
	if err != nil {
		return err
	}

	dataDir, err := util.GetXDGDataDir()
	if err != nil {
		return err
	}
	release, err := lock.NewRunLock(dataDir).Acquire(req.ProjectPath())
	if err != nil {
		var locked *lock.ErrLocked
		if errors.As(err, &locked) {
			return fmt.Errorf("%w: %v", domain.ErrRunInProgress, locked)
		}
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	defer func() { _ = release() }()

	interactive := !newPlain && !newVerbose && isTerminal(cmd.OutOrStdout())

	logOut := cmd.ErrOrStderr()
	if interactive {
		logOut = io.Discard
	}
	app := NewAppContext(ctx, cfg, newLogger(logOut, newVerbose), newGit)
	defer func() { _ = app.Close(context.WithoutCancel(ctx)) }()

	if interactive {
		return runInteractive(ctx, cmd, app, req)
	}
	return runPlain(ctx, cmd.OutOrStdout(), app, req)
}

// runInteractive runs the pipeline next to the progress view. Quitting the
// view cancels the run.
func runInteractive(ctx context.Context, cmd *cobra.Command, app *AppContext, req domain.ProjectRequest) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	view := apptui.NewApp(req.Name, app.Config.Template.ExpectedArchiveBytes, newGit, cancel)
	program := tea.NewProgram(view,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	progress := scaffold.NewProgress()
	obs := scaffold.ObserverFuncs{
		OnStage:   func(s domain.Stage) { program.Send(apptui.StageMsg{Stage: s}) },
		OnBytes:   progress.Publish,
		OnCleanup: func(err error) { program.Send(apptui.CleanupMsg{Err: err}) },
	}

	var g errgroup.Group
	g.Go(func() error {
		for n := range progress.Updates() {
			program.Send(apptui.BytesMsg{Total: n})
		}
		return nil
	})
	g.Go(func() error {
		res, err := app.Service.Create(ctx, req, obs)
		progress.Close()
		program.Send(apptui.DoneMsg{Result: res, Err: err})
		return err
	})

	if _, err := program.Run(); err != nil {
		cancel()
		_ = g.Wait()
		return fmt.Errorf("failed to run progress view: %w", err)
	}
	if err := g.Wait(); err != nil {
		return shownError{err}
	}
	return nil
}

// runPlain prints one line per stage and a summary.
func runPlain(ctx context.Context, out io.Writer, app *AppContext, req domain.ProjectRequest) error {
	progress := scaffold.NewProgress()
	obs := scaffold.ObserverFuncs{
		OnStage: func(s domain.Stage) {
			if s == domain.StageIdle || s.Terminal() {
				return
			}
			fmt.Fprintf(out, "%s...\n", capitalize(s.String()))
		},
		OnBytes: progress.Publish,
		OnCleanup: func(err error) {
			fmt.Fprintf(out, "Warning: some temporary files could not be removed: %v\n", err)
		},
	}

	var g errgroup.Group
	g.Go(func() error {
		for n := range progress.Updates() {
			app.Logger.Debug("download progress", "bytes", n, "expected", app.Config.Template.ExpectedArchiveBytes)
		}
		return nil
	})

	res, err := app.Service.Create(ctx, req, obs)
	progress.Close()
	_ = g.Wait()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Downloaded: %s\n", util.FormatBytes(res.BytesDownloaded))
	fmt.Fprintf(out, "Project created at %s (%s)\n", res.ProjectPath, util.FormatDuration(res.Duration))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
