package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Alazar42/CelerisProjectStarter/internal/scaffold"
)

var rootCmd = &cobra.Command{
	Use:   "celeris",
	Short: "Create new projects from the Celeris starter template",
	Long: `celeris scaffolds a new project from the Celeris starter template.

It downloads the latest template, copies the project folder into place and
renames the CMake project to the name you choose.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// shownError marks an error the command already rendered for the user.
type shownError struct{ error }

func (e shownError) Unwrap() error { return e.error }

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var shown shownError
		if !errors.As(err, &shown) {
			fmt.Fprintln(os.Stderr, scaffold.Describe(err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(configCmd)
}
