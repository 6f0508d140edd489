package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quantmind-br/autoload-priority/internal/autoload"
	"github.com/quantmind-br/autoload-priority/internal/composer"
	"github.com/quantmind-br/autoload-priority/internal/config"
	"github.com/quantmind-br/autoload-priority/internal/domain"
	"github.com/quantmind-br/autoload-priority/internal/priority"
	"github.com/quantmind-br/autoload-priority/internal/utils"
)

// Orchestrator applies promotion to the manifests of one or more projects
type Orchestrator struct {
	config   *config.Config
	store    domain.ManifestStore
	logger   *utils.Logger
	opts     domain.CommonOptions
	progress io.Writer
}

// OrchestratorOptions contains options for creating an orchestrator
type OrchestratorOptions struct {
	domain.CommonOptions
	Config *config.Config
	// Store defaults to a FileStore using the config's write retry settings
	Store domain.ManifestStore
	// Logger defaults to one built from the config's logging section
	Logger *utils.Logger
	// Progress receives a batch progress bar when set
	Progress io.Writer
}

// NewOrchestrator creates a new orchestrator with the given configuration
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   cfg.Logging.Level,
			Format:  cfg.Logging.Format,
			Verbose: opts.Verbose,
		})
	}

	store := opts.Store
	if store == nil {
		store = NewFileStore(utils.NewRetrier(utils.RetrierOptions{
			MaxRetries:      cfg.Write.MaxRetries,
			InitialInterval: cfg.Write.InitialDelay,
			MaxInterval:     cfg.Write.MaxDelay,
		}))
	}

	return &Orchestrator{
		config:   cfg,
		store:    store,
		logger:   logger,
		opts:     opts.CommonOptions,
		progress: opts.Progress,
	}, nil
}

// Logger returns the orchestrator's logger
func (o *Orchestrator) Logger() *utils.Logger {
	return o.logger
}

// ProjectFromConfig builds the single project described by the config's
// project and promote sections
func ProjectFromConfig(cfg *config.Config) priority.Project {
	return priority.Project{
		Dir:       cfg.Project.Dir,
		VendorDir: cfg.Project.VendorDir,
		Packages:  cfg.Promote.Packages,
		Files:     cfg.Promote.Files,
		Root:      cfg.Promote.Root,
	}
}

// Run promotes the always-load entries of every target manifest of p.
// Targets are processed in order; a failing target does not stop the others.
// The returned error joins one *domain.TargetError per failed target.
func (o *Orchestrator) Run(ctx context.Context, p priority.Project) (*domain.ProjectResult, error) {
	startTime := time.Now()
	log := o.logger.WithProject(p.Dir)
	result := &domain.ProjectResult{Dir: p.Dir}

	promotions, composerDir, err := o.resolve(p)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(startTime)
		return result, err
	}
	result.Promotions = promotions

	log.Debug().
		Strs("fragments", promotions).
		Msg("Resolved promotion fragments")
	if len(promotions) == 0 {
		log.Warn().Msg("Nothing to promote, manifests are left as generated")
	}

	targets, err := ResolveTargets(composerDir, o.config.Targets)
	if err != nil {
		result.Err = err
		result.Duration = time.Since(startTime)
		return result, err
	}

	var errs []error
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		tr := o.processTarget(ctx, log.WithTarget(filepath.Base(t.Path)), t, promotions)
		result.Targets = append(result.Targets, tr)
		if tr.Err != nil {
			errs = append(errs, domain.NewTargetError(p.Dir, t.Path, tr.Err))
		}
	}

	result.Err = errors.Join(errs...)
	result.Duration = time.Since(startTime)

	log.Debug().
		Dur("duration", result.Duration).
		Bool("changed", result.Changed()).
		Msg("Project processed")

	return result, result.Err
}

func (o *Orchestrator) resolve(p priority.Project) (autoload.PromotionSet, string, error) {
	proj, err := composer.LoadProject(p.Dir, p.VendorDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load project %s: %w", p.Dir, err)
	}

	req, err := proj.WithExtra(p.Request())
	if err != nil {
		return nil, "", err
	}

	promotions, err := proj.Fragments(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve promotions for %s: %w", p.Dir, err)
	}

	return promotions, proj.ComposerDir(), nil
}

// processTarget never writes a file whose block cannot be located
func (o *Orchestrator) processTarget(
	ctx context.Context,
	log *utils.Logger,
	t Target,
	promotions autoload.PromotionSet,
) domain.TargetResult {
	tr := domain.TargetResult{Path: t.Path, Format: t.Format.Name}

	if !o.store.Exists(t.Path) {
		if t.Optional {
			log.Debug().Msg("Optional manifest not found, skipping")
			tr.Status = domain.StatusSkipped
			return tr
		}
		tr.Status = domain.StatusFailed
		tr.Err = fmt.Errorf("%w: %s", domain.ErrTargetMissing, t.Path)
		return tr
	}

	data, err := o.store.Read(ctx, t.Path)
	if err != nil {
		tr.Status = domain.StatusFailed
		tr.Err = fmt.Errorf("failed to read manifest: %w", err)
		return tr
	}

	outcome, err := autoload.Promote(string(data), t.Format, promotions)
	if err != nil {
		log.Error().Err(err).Msg("Manifest left untouched")
		tr.Status = domain.StatusFailed
		tr.Err = err
		return tr
	}
	tr.Entries = len(outcome.Before)

	if outcome.Block.IsEmpty() {
		log.Info().Msg("Nothing to reorder")
		tr.Status = domain.StatusEmpty
		return tr
	}

	if len(outcome.Moves) == 0 {
		log.Debug().Int("entries", tr.Entries).Msg("Already in promoted order")
		tr.Status = domain.StatusUnchanged
		return tr
	}

	tr.Moves = outcome.Moves
	for _, m := range outcome.Moves {
		log.Debug().
			Str("key", m.Key).
			Str("value", m.Value).
			Int("from", m.From).
			Int("to", m.To).
			Msg("Entry moved")
	}

	if o.opts.Check {
		log.Warn().Int("moved", len(outcome.Moves)).Msg("Manifest is not in promoted order")
		tr.Status = domain.StatusDrift
		tr.Err = domain.ErrNotPromoted
		return tr
	}

	if o.opts.DryRun {
		log.Info().Int("moved", len(outcome.Moves)).Msg("Dry run, manifest not written")
		tr.Status = domain.StatusPromoted
		return tr
	}

	if err := o.store.Write(ctx, t.Path, []byte(outcome.Text)); err != nil {
		tr.Status = domain.StatusFailed
		tr.Err = fmt.Errorf("%w: %w", domain.ErrWriteFailed, err)
		return tr
	}

	log.Info().
		Int("moved", len(outcome.Moves)).
		Int("entries", tr.Entries).
		Msg("Promoted always-load entries")

	tr.Status = domain.StatusPromoted
	return tr
}

// RunBatch runs every project of the batch with bounded concurrency.
// Unless continue_on_error is set, the first failure cancels the projects
// not yet started. Check mode always visits every project.
func (o *Orchestrator) RunBatch(ctx context.Context, batch *priority.Batch) ([]*domain.ProjectResult, error) {
	startTime := time.Now()
	total := len(batch.Projects)
	stopOnError := !batch.Options.ContinueOnError && !o.opts.Check

	workers := batch.Options.Concurrency
	if workers <= 0 {
		workers = o.config.Concurrency.Workers
	}
	if workers <= 0 {
		workers = config.DefaultWorkers
	}

	o.logger.Info().
		Int("projects", total).
		Int("workers", workers).
		Bool("continue_on_error", batch.Options.ContinueOnError).
		Msg("Starting batch")

	results := make([]*domain.ProjectResult, total)
	errs := make([]error, total)

	tick := func() {}
	if o.progress != nil {
		desc := utils.DescPromoting
		if o.opts.Check {
			desc = utils.DescChecking
		}
		bar := utils.NewProgressBar(total, desc, o.progress)
		tick = func() { _ = bar.Add(1) }
		defer func() { _ = bar.Finish() }()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range batch.Projects {
		g.Go(func() error {
			defer tick()

			if err := gctx.Err(); err != nil {
				results[i] = &domain.ProjectResult{Dir: p.Dir, Err: err}
				errs[i] = err
				return nil
			}

			res, err := o.Run(gctx, p)
			results[i] = res
			if err == nil {
				return nil
			}

			errs[i] = err
			o.logger.Error().
				Err(err).
				Int("project_idx", i).
				Str("project", p.Dir).
				Msg("Project failed")

			if stopOnError {
				return fmt.Errorf("project %s failed: %w", p.Dir, err)
			}
			return nil
		})
	}

	firstErr := g.Wait()

	if ctx.Err() != nil {
		o.logger.Warn().Msg("Batch cancelled")
		return results, ctx.Err()
	}

	failed := 0
	for _, err := range errs {
		if err != nil {
			failed++
		}
	}

	o.logger.Info().
		Dur("total_duration", time.Since(startTime)).
		Int("total", total).
		Int("success", total-failed).
		Int("failed", failed).
		Msg("Batch completed")

	if firstErr != nil {
		o.logger.Warn().Msg("Stopping execution (continue_on_error=false)")
		return results, firstErr
	}

	if failed > 0 {
		return results, fmt.Errorf("batch completed with %d/%d failures: %w", failed, total, errors.Join(errs...))
	}

	return results, nil
}
