package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/lock"
	"github.com/Alazar42/CelerisProjectStarter/internal/infrastructure/config"
	"github.com/Alazar42/CelerisProjectStarter/internal/util"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the configuration celeris will use, after applying CELERIS_*
environment variables.

Examples:
  celeris config
  CELERIS_ARCHIVE_URL=http://localhost:8080/main.zip celeris config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	lockPath := "(unavailable)"
	if dir, err := util.GetXDGDataDir(); err == nil {
		lockPath = lock.NewRunLock(dir).Path()
	}

	return printConfig(cmd.OutOrStdout(), cfg, lockPath)
}

func printConfig(out io.Writer, cfg *config.Starter, lockPath string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Template")
	fmt.Fprintf(w, "  Archive URL\t%s\n", cfg.Template.ArchiveURL)
	fmt.Fprintf(w, "  Archive file\t%s\n", cfg.Template.ArchiveFileName)
	fmt.Fprintf(w, "  Template folder\t%s\n", cfg.Template.TemplateFolder)
	fmt.Fprintf(w, "  Extract dir\t%s\n", cfg.Template.ExtractDir)
	fmt.Fprintf(w, "  Placeholder\t%s\n", cfg.Template.Placeholder)
	fmt.Fprintf(w, "  Build file\t%s\n", cfg.Template.BuildFile)
	fmt.Fprintf(w, "  Expected size\t%s\n", util.FormatBytes(cfg.Template.ExpectedArchiveBytes))
	fmt.Fprintln(w, "Network")
	fmt.Fprintf(w, "  Probe URL\t%s\n", cfg.Network.ProbeURL)
	fmt.Fprintf(w, "  Probe timeout\t%s\n", cfg.Network.ProbeTimeout)
	fmt.Fprintf(w, "  Connect timeout\t%s\n", cfg.Network.ConnectTimeout)
	fmt.Fprintf(w, "  Response header timeout\t%s\n", cfg.Network.ResponseHeaderTimeout)
	fmt.Fprintln(w, "Git")
	fmt.Fprintf(w, "  Author\t%s <%s>\n", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	fmt.Fprintln(w, "Metrics")
	if cfg.Otel.Enabled {
		fmt.Fprintf(w, "  OTLP endpoint\t%s (insecure: %t)\n", cfg.Otel.Endpoint, cfg.Otel.Insecure)
	} else {
		fmt.Fprintln(w, "  OTLP endpoint\tdisabled")
	}
	fmt.Fprintf(w, "Lock file\t%s\n", lockPath)

	return w.Flush()
}
