package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/archive"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/download"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/gitrepo"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/materialize"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/otel"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/patch"
	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/probe"
	"github.com/Alazar42/CelerisProjectStarter/internal/infrastructure/config"
	"github.com/Alazar42/CelerisProjectStarter/internal/ports"
	"github.com/Alazar42/CelerisProjectStarter/internal/scaffold"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config  *config.Starter
	Logger  *slog.Logger
	Metrics ports.MetricsExporter
	Service *scaffold.Service
}

// NewAppContext wires the pipeline adapters from cfg. withRepository enables
// the git init step.
func NewAppContext(ctx context.Context, cfg *config.Starter, logger *slog.Logger, withRepository bool) *AppContext {
	var metrics ports.MetricsExporter
	exp, err := otel.NewExporter(ctx, cfg.Otel)
	switch {
	case err == nil:
		metrics = exp
	case errors.Is(err, otel.ErrDisabled):
		metrics = otel.NewNoOpExporter()
	default:
		logger.Warn("metrics disabled", "error", err)
		metrics = otel.NewNoOpExporter()
	}

	deps := scaffold.Deps{
		Probe:        probe.NewHTTPProbe(cfg.Network.ProbeURL, cfg.Network.ProbeTimeout),
		Downloader:   download.NewHTTPDownloader(cfg.Network.ConnectTimeout, cfg.Network.ResponseHeaderTimeout),
		Extractor:    archive.NewZipExtractor(),
		Materializer: materialize.NewTreeCopier(),
		Patcher:      patch.NewNameReplacer(),
		Metrics:      metrics,
		Logger:       logger,
	}
	if withRepository {
		deps.Repository = gitrepo.NewInitializer(cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	}

	return &AppContext{
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
		Service: scaffold.NewService(cfg.Template, deps),
	}
}

// Close flushes pending metrics.
func (a *AppContext) Close(ctx context.Context) error {
	if a.Metrics != nil {
		return a.Metrics.Close(ctx)
	}
	return nil
}

// newLogger logs warnings to w, or everything from debug up when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
