// Package scaffold runs the download, extract, copy and patch pipeline that
// turns the starter template into a new project.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"sync/atomic"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/uuid"

	"github.com/Alazar42/CelerisProjectStarter/internal/adapters/otel"
	"github.com/Alazar42/CelerisProjectStarter/internal/domain"
	"github.com/Alazar42/CelerisProjectStarter/internal/infrastructure/config"
	"github.com/Alazar42/CelerisProjectStarter/internal/ports"
)

// Deps are the pipeline steps. Repository may be nil to skip repository init;
// Metrics and Logger default to no-ops.
type Deps struct {
	Probe        ports.ConnectivityProbe
	Downloader   ports.Downloader
	Extractor    ports.Extractor
	Materializer ports.Materializer
	Patcher      ports.Patcher
	Repository   ports.RepositoryInitializer
	Metrics      ports.MetricsExporter
	Logger       *slog.Logger
}

// Service creates projects from the starter template, one run at a time.
type Service struct {
	tmpl    config.Template
	deps    Deps
	newFS   func(root string) billy.Filesystem
	now     func() time.Time
	running atomic.Bool
}

// NewService creates a Service for the given template layout.
func NewService(tmpl config.Template, deps Deps) *Service {
	if deps.Metrics == nil {
		deps.Metrics = otel.NewNoOpExporter()
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		tmpl:  tmpl,
		deps:  deps,
		newFS: func(root string) billy.Filesystem { return osfs.New(root) },
		now:   time.Now,
	}
}

// run carries the state of one Create call.
type run struct {
	id          string
	started     time.Time
	stage       domain.Stage
	bytes       int64
	ownsProject bool
	obs         Observer
	log         *slog.Logger
}

func (r *run) enter(stage domain.Stage) {
	r.stage = stage
	r.log.Debug("stage changed", "stage", stage.String())
	r.obs.StageChanged(stage)
}

// Create scaffolds req.Name inside req.Destination.
//
// Input and connectivity rejections return domain errors before any file is
// written. Failures past that point return a *StepError after the archive, the
// extraction root and any partially created project directory were removed.
// Cleanup problems never change the outcome; they are logged, passed to
// obs.CleanupFailed and attached to the Result or StepError.
func (s *Service) Create(ctx context.Context, req domain.ProjectRequest, obs Observer) (*domain.Result, error) {
	if obs == nil {
		obs = NopObserver
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil, domain.ErrRunInProgress
	}
	defer s.running.Store(false)

	id := uuid.NewString()
	r := &run{
		id:      id,
		started: s.now(),
		obs:     obs,
		log:     s.deps.Logger.With("run_id", id, "project", req.Name),
	}
	r.log.Info("creating project", "destination", req.Destination)

	r.enter(domain.StageValidatingInput)
	fs, err := s.validate(req)
	if err != nil {
		return nil, s.reject(ctx, r, err)
	}

	r.enter(domain.StageCheckingConnectivity)
	if !s.deps.Probe.Reachable(ctx) {
		return nil, s.reject(ctx, r, domain.ErrNoConnectivity)
	}

	runErr := s.execute(ctx, r, fs, req)
	failedStage := r.stage

	r.enter(domain.StageCleaningUp)
	cleanupErr := s.cleanup(fs, req.Name, runErr != nil && r.ownsProject)
	if cleanupErr != nil {
		r.log.Warn("cleanup incomplete", "error", cleanupErr)
		obs.CleanupFailed(cleanupErr)
	}

	elapsed := s.now().Sub(r.started)
	if runErr != nil {
		r.enter(domain.StageFailed)
		r.log.Error("project creation failed", "stage", failedStage.String(), "error", runErr)
		s.export(ctx, r, "failed", failedStage, cleanupErr != nil, elapsed)
		return nil, &StepError{Stage: failedStage, Err: runErr, CleanupErr: cleanupErr}
	}

	r.enter(domain.StageSucceeded)
	r.log.Info("project created", "path", req.ProjectPath(), "bytes", r.bytes, "duration", elapsed)
	s.export(ctx, r, "succeeded", 0, cleanupErr != nil, elapsed)
	return &domain.Result{
		RunID:           r.id,
		ProjectPath:     req.ProjectPath(),
		BytesDownloaded: r.bytes,
		Duration:        elapsed,
		CleanupErr:      cleanupErr,
	}, nil
}

// validate returns the filesystem rooted at the destination once req is usable.
func (s *Service) validate(req domain.ProjectRequest) (billy.Filesystem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.Name == s.tmpl.ArchiveFileName || req.Name == s.tmpl.ExtractDir {
		return nil, &domain.ValidationError{Field: "name", Reason: fmt.Sprintf("%q is used for temporary files", req.Name)}
	}

	fs := s.newFS(req.Destination)
	exists, err := pathExists(fs, req.Name)
	if err != nil {
		return nil, &domain.ValidationError{Field: "name", Reason: err.Error()}
	}
	if exists {
		return nil, domain.ErrProjectExists
	}

	// Transient paths are removed at the end of the run, so they must not hold user data.
	for _, p := range []string{s.tmpl.ArchiveFileName, s.tmpl.ExtractDir} {
		exists, err := pathExists(fs, p)
		if err != nil {
			return nil, &domain.ValidationError{Field: "destination", Reason: err.Error()}
		}
		if exists {
			return nil, &domain.ValidationError{
				Field:  "destination",
				Reason: fmt.Sprintf("%s already exists in %s; remove it and try again", p, req.Destination),
			}
		}
	}
	return fs, nil
}

func (s *Service) reject(ctx context.Context, r *run, err error) error {
	r.log.Info("project creation rejected", "stage", r.stage.String(), "reason", err)
	s.export(ctx, r, "rejected", r.stage, false, s.now().Sub(r.started))
	r.enter(domain.StageIdle)
	return err
}

func (s *Service) execute(ctx context.Context, r *run, fs billy.Filesystem, req domain.ProjectRequest) error {
	r.enter(domain.StageDownloading)
	n, err := s.deps.Downloader.Download(ctx, fs, s.tmpl.ArchiveURL, s.tmpl.ArchiveFileName, func(total int64) {
		r.bytes = total
		r.obs.Downloaded(total)
	})
	if err != nil {
		return err
	}
	r.bytes = n

	r.enter(domain.StageExtracting)
	if err := s.deps.Extractor.Extract(ctx, fs, s.tmpl.ArchiveFileName, s.tmpl.ExtractDir); err != nil {
		return err
	}

	r.enter(domain.StageMaterializing)
	src := path.Join(s.tmpl.ExtractDir, s.tmpl.TemplateFolder)
	info, err := fs.Stat(src)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrTemplateLayout, s.tmpl.TemplateFolder)
	}
	r.ownsProject = true
	if err := s.deps.Materializer.Materialize(ctx, fs, src, req.Name); err != nil {
		return err
	}

	r.enter(domain.StagePatching)
	patched, err := s.deps.Patcher.Patch(fs, req.Name, s.tmpl.BuildFile, s.tmpl.Placeholder, req.Name)
	if err != nil {
		return err
	}
	if !patched {
		r.log.Warn("build file not found, project name left unpatched", "file", s.tmpl.BuildFile)
	}

	if s.deps.Repository != nil {
		r.enter(domain.StageInitializingRepository)
		if err := s.deps.Repository.Init(ctx, req.ProjectPath()); err != nil {
			return err
		}
	}
	return nil
}

// cleanup removes the archive and the extraction root, plus the project
// directory when a failed run created it.
func (s *Service) cleanup(fs billy.Filesystem, project string, removeProject bool) error {
	var errs []error
	if err := fs.Remove(s.tmpl.ArchiveFileName); err != nil && !errors.Is(err, os.ErrNotExist) {
		errs = append(errs, fmt.Errorf("failed to remove archive: %w", err))
	}
	if err := util.RemoveAll(fs, s.tmpl.ExtractDir); err != nil {
		errs = append(errs, fmt.Errorf("failed to remove extraction directory: %w", err))
	}
	if removeProject {
		if err := util.RemoveAll(fs, project); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove partial project: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) export(ctx context.Context, r *run, outcome string, stage domain.Stage, cleanupFailed bool, elapsed time.Duration) {
	m := &ports.RunMetrics{
		RunID:           r.id,
		Outcome:         outcome,
		BytesDownloaded: r.bytes,
		CleanupFailed:   cleanupFailed,
		Duration:        elapsed,
	}
	if outcome != "succeeded" {
		m.FailedStage = stage.String()
	}
	if err := s.deps.Metrics.ExportRunMetrics(context.WithoutCancel(ctx), m); err != nil {
		r.log.Debug("failed to export run metrics", "error", err)
	}
}

func pathExists(fs billy.Filesystem, p string) (bool, error) {
	_, err := fs.Lstat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
