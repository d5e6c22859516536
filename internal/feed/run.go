package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/supplyhub/supplyhub/app/repositories"
	"github.com/supplyhub/supplyhub/internal/vendor"
	"github.com/supplyhub/supplyhub/pkg/cache"
	"github.com/supplyhub/supplyhub/pkg/logger"
	"github.com/supplyhub/supplyhub/pkg/metrics"
	"github.com/supplyhub/supplyhub/pkg/storage"
)

// Pass names one stage of a sync run.
type Pass string

const (
	PassCatalog   Pass = "catalog"
	PassInventory Pass = "inventory"
	PassPricing   Pass = "pricing"
)

// PassReport tallies what one pass did.
type PassReport struct {
	Pass    Pass `json:"pass"`
	Rows    int  `json:"rows"`
	Created int  `json:"created"`
	Updated int  `json:"updated"`
	Skipped int  `json:"skipped"`
	Errors  int  `json:"errors"`

	// Missing is set when the pass's input file was not staged and the
	// pass was skipped entirely.
	Missing bool `json:"missing,omitempty"`
}

// RunReport summarizes one full vendor sync.
type RunReport struct {
	Vendor   string        `json:"vendor"`
	Passes   []PassReport  `json:"passes"`
	Duration time.Duration `json:"duration"`
}

// Runner executes full sync runs: stage the vendor's files, then drive the
// catalog, inventory and pricing passes in order over the staged snapshot.
type Runner struct {
	repo    *repositories.CatalogRepository
	staging storage.Disk
	archive storage.Disk
	dial    DialFunc
}

func NewRunner(repo *repositories.CatalogRepository, staging, archive storage.Disk, dial DialFunc) *Runner {
	return &Runner{repo: repo, staging: staging, archive: archive, dial: dial}
}

// Run syncs one vendor end to end. Transport and staging failures abort the
// run before any entity is touched; once passes begin, bad rows are counted
// and skipped but persistence failures outside the catalog pass abort.
func (r *Runner) Run(ctx context.Context, code string) (report *RunReport, err error) {
	profile, err := vendor.Lookup(code)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		result := "success"
		if err != nil {
			result = "failure"
		}
		metrics.FeedRunDuration.WithLabelValues(profile.Code, result).
			Observe(time.Since(start).Seconds())
	}()

	logger.WithCtx(ctx).Info("sync run started", slog.String("vendor", profile.Code))

	if err := r.stage(ctx, profile); err != nil {
		return nil, err
	}

	report = &RunReport{Vendor: profile.Code}
	normalizer := NewNormalizer(profile)
	reconciler := NewReconciler(r.repo, profile)

	passes := []struct {
		pass  Pass
		file  vendor.FeedFile
		apply func(context.Context, Row) (Outcome, bool, error)
	}{
		{PassCatalog, profile.CatalogFile, func(ctx context.Context, row Row) (Outcome, bool, error) {
			rec, err := normalizer.Catalog(row)
			if err != nil {
				return OutcomeSkipped, false, err
			}
			if rec == nil {
				return OutcomeSkipped, false, nil
			}
			// Catalog rows are independent; a failed row is logged and
			// counted, never fatal to the run.
			out, err := reconciler.ApplyCatalog(ctx, rec)
			return out, false, err
		}},
		{PassInventory, profile.InventoryFile, func(ctx context.Context, row Row) (Outcome, bool, error) {
			rec, err := normalizer.Inventory(row)
			if err != nil {
				return OutcomeSkipped, false, err
			}
			out, err := reconciler.ApplyInventory(ctx, rec)
			return out, err != nil, err
		}},
		{PassPricing, profile.PricingFile, func(ctx context.Context, row Row) (Outcome, bool, error) {
			rec, err := normalizer.Pricing(row)
			if err != nil {
				return OutcomeSkipped, false, err
			}
			out, err := reconciler.ApplyPricing(ctx, rec)
			return out, err != nil, err
		}},
	}

	for _, p := range passes {
		pr, err := r.runPass(ctx, profile, p.pass, p.file, p.apply)
		if err != nil {
			return nil, err
		}
		report.Passes = append(report.Passes, pr)
	}

	report.Duration = time.Since(start)
	metrics.FeedLastSuccess.WithLabelValues(profile.Code).SetToCurrentTime()

	// The read API caches product and category responses; a completed run
	// makes them stale.
	if err := cache.Flush("products"); err != nil {
		logger.WithCtx(ctx).Warn("cache invalidation failed", slog.Any("error", err))
	}
	if err := cache.Flush("categories"); err != nil {
		logger.WithCtx(ctx).Warn("cache invalidation failed", slog.Any("error", err))
	}

	logger.WithCtx(ctx).Info("sync run finished",
		slog.String("vendor", profile.Code),
		slog.Duration("duration", report.Duration))
	return report, nil
}

func (r *Runner) stage(ctx context.Context, profile vendor.Profile) error {
	transport, err := r.dial(ctx, profile)
	if err != nil {
		return err
	}
	defer transport.Close()

	fetcher := NewFetcher(r.staging, r.archive)
	return fetcher.Stage(ctx, transport, profile)
}

// runPass streams one staged file through normalize+reconcile. The apply
// callback reports (outcome, fatal, err): non-fatal errors are logged and
// tallied, fatal ones abort the run.
func (r *Runner) runPass(
	ctx context.Context,
	profile vendor.Profile,
	pass Pass,
	file vendor.FeedFile,
	apply func(context.Context, Row) (Outcome, bool, error),
) (PassReport, error) {
	pr := PassReport{Pass: pass}

	reader, err := OpenFile(r.staging, StagedPath(profile.Code, file.Name), file.Delimiter)
	if errors.Is(err, ErrFileNotStaged) {
		logger.WithCtx(ctx).Warn("pass skipped, file not staged",
			slog.String("vendor", profile.Code),
			slog.String("pass", string(pass)),
			slog.String("file", file.Name))
		pr.Missing = true
		return pr, nil
	}
	if err != nil {
		return pr, err
	}
	defer reader.Close()

	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A malformed line; the reader can continue past it.
			pr.Errors++
			metrics.FeedRowsTotal.WithLabelValues(profile.Code, string(pass), "error").Inc()
			logger.WithCtx(ctx).Warn("unreadable feed row",
				slog.String("vendor", profile.Code),
				slog.String("pass", string(pass)),
				slog.Any("error", err))
			continue
		}
		pr.Rows++

		outcome, fatal, err := apply(ctx, row)
		if err != nil {
			if fatal {
				return pr, fmt.Errorf("feed: %s pass line %d: %w", pass, row.Line, err)
			}
			pr.Errors++
			metrics.FeedRowsTotal.WithLabelValues(profile.Code, string(pass), "error").Inc()
			logger.WithCtx(ctx).Warn("feed row failed",
				slog.String("vendor", profile.Code),
				slog.String("pass", string(pass)),
				slog.Int("line", row.Line),
				slog.Any("error", err))
			continue
		}

		switch outcome {
		case OutcomeCreated:
			pr.Created++
		case OutcomeUpdated:
			pr.Updated++
		default:
			pr.Skipped++
		}
		metrics.FeedRowsTotal.WithLabelValues(profile.Code, string(pass), outcome.String()).Inc()
	}

	logger.WithCtx(ctx).Info("pass finished",
		slog.String("vendor", profile.Code),
		slog.String("pass", string(pass)),
		slog.Int("rows", pr.Rows),
		slog.Int("created", pr.Created),
		slog.Int("updated", pr.Updated),
		slog.Int("skipped", pr.Skipped),
		slog.Int("errors", pr.Errors))
	return pr, nil
}
