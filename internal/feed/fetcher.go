package feed

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/supplyhub/supplyhub/internal/vendor"
	"github.com/supplyhub/supplyhub/pkg/logger"
	"github.com/supplyhub/supplyhub/pkg/storage"
)

// Fetcher downloads a vendor's feed files into a per-vendor staging directory
// on the local disk, optionally mirroring each raw file to the archive disk.
type Fetcher struct {
	staging storage.Disk
	archive storage.Disk // nil when no archive disk is configured
}

func NewFetcher(staging, archive storage.Disk) *Fetcher {
	return &Fetcher{staging: staging, archive: archive}
}

// StagingDir returns the staging directory for a vendor code.
func StagingDir(code string) string {
	return path.Join("staging", code)
}

// StagedPath returns the local staging path of a vendor file.
func StagedPath(code, filename string) string {
	return path.Join(StagingDir(code), filename)
}

// Stage wipes the vendor's staging directory and downloads every distinct
// file the profile names. A download failure aborts the run: reconciling
// against a partial snapshot would mix two feed generations.
func (f *Fetcher) Stage(ctx context.Context, t Transport, p vendor.Profile) error {
	dir := StagingDir(p.Code)
	if err := f.staging.DeleteDirectory(dir); err != nil {
		return fmt.Errorf("feed: reset staging %s: %w", dir, err)
	}
	if err := f.staging.MakeDirectory(dir); err != nil {
		return fmt.Errorf("feed: create staging %s: %w", dir, err)
	}

	for _, name := range distinctFiles(p) {
		if err := f.download(ctx, t, p, name); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, t Transport, p vendor.Profile, name string) error {
	remote := name
	if p.RemoteDir != "" {
		remote = path.Join(p.RemoteDir, name)
	}

	logger.WithCtx(ctx).Info("downloading feed file",
		slog.String("vendor", p.Code), slog.String("remote", remote))

	body, err := t.Fetch(remote)
	if err != nil {
		return err
	}
	defer body.Close()

	local := StagedPath(p.Code, name)
	if err := f.staging.PutStream(local, body); err != nil {
		return fmt.Errorf("feed: stage %s: %w", local, err)
	}

	if f.archive != nil {
		f.archiveFile(ctx, p.Code, name, local)
	}
	return nil
}

// archiveFile mirrors a staged file to the archive disk under a dated prefix.
// Archive failures are logged, not fatal; the archive is a convenience copy.
func (f *Fetcher) archiveFile(ctx context.Context, code, name, local string) {
	src, err := f.staging.GetStream(local)
	if err != nil {
		logger.WithCtx(ctx).Warn("archive read failed", slog.String("path", local), slog.Any("error", err))
		return
	}
	defer src.Close()

	dst := path.Join("archive", code, time.Now().UTC().Format("2006-01-02"), name)
	if err := f.archive.PutStream(dst, src); err != nil {
		logger.WithCtx(ctx).Warn("archive write failed", slog.String("path", dst), slog.Any("error", err))
	}
}

// distinctFiles returns the profile's file names with duplicates removed,
// preserving catalog/inventory/pricing order. Vendors that publish one
// combined file are downloaded once.
func distinctFiles(p vendor.Profile) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range []vendor.FeedFile{p.CatalogFile, p.InventoryFile, p.PricingFile} {
		if f.Name == "" || seen[f.Name] {
			continue
		}
		seen[f.Name] = true
		out = append(out, f.Name)
	}
	return out
}
