// internal/app/run.go
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PakBeast/PakBeast/internal/build"
	"github.com/PakBeast/PakBeast/internal/ctxlog"
	"github.com/PakBeast/PakBeast/internal/diff"
	"github.com/PakBeast/PakBeast/internal/pak"
	"github.com/PakBeast/PakBeast/internal/project"
	"github.com/PakBeast/PakBeast/internal/search"
)

// OpenArchive reads an archive from disk and parses its directory.
func (a *App) OpenArchive(ctx context.Context, path string) (*pak.Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive %s: %w", path, err)
	}
	arc, err := pak.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	a.logger.Debug("Archive opened.", "path", path, "entries", arc.Len())
	return arc, nil
}

// Extract writes entries of the archive at archivePath into destDir,
// recreating the entry paths below it. An empty names slice selects every
// entry. It returns the number of files written.
func (a *App) Extract(ctx context.Context, archivePath string, names []string, destDir string) (int, error) {
	arc, err := a.OpenArchive(ctx, archivePath)
	if err != nil {
		return 0, err
	}

	entries := arc.Entries()
	if len(names) > 0 {
		entries = entries[:0:0]
		for _, name := range names {
			e, ok := arc.Entry(name)
			if !ok {
				return 0, fmt.Errorf("entry %s: %w", name, pak.ErrEntryNotFound)
			}
			entries = append(entries, e)
		}
	}

	written := 0
	for _, e := range entries {
		dest := filepath.Join(destDir, filepath.FromSlash(e.Name()))
		if rel, err := filepath.Rel(destDir, dest); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return written, fmt.Errorf("entry %s escapes the destination directory", e.Name())
		}
		if strings.HasSuffix(e.Name(), "/") {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return written, fmt.Errorf("failed to create directory for %s: %w", e.Name(), err)
			}
			continue
		}
		payload, err := e.Payload()
		if err != nil {
			return written, fmt.Errorf("failed to decode entry %s: %w", e.Name(), err)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(dest, payload, 0o644); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", e.Name(), err)
		}
		written++
		a.logger.Debug("Entry extracted.", "entry", e.Name(), "dest", dest)
	}

	a.logger.Info("Extraction finished.", "archive", archivePath, "files", written)
	return written, nil
}

// Search scans the archive at archivePath for entities matching every
// keyword. A nil extensions slice searches the default script formats.
func (a *App) Search(ctx context.Context, archivePath string, keywords, extensions []string) (*search.Result, error) {
	arc, err := a.OpenArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}

	q := search.Query{Keywords: keywords, Extensions: extensions}
	sctx := ctxlog.With(a.withLogger(ctx), "archive", archivePath)
	result, err := search.Archive(sctx, arc, q, a.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	a.logger.Info("Search finished.", "archive", archivePath, "hits", len(result.Hits), "skipped", len(result.Skipped))
	return result, nil
}

// Diff compares the archives at oldPath and newPath entry by entry.
func (a *App) Diff(ctx context.Context, oldPath, newPath string) (*diff.Report, error) {
	oldArc, err := a.OpenArchive(ctx, oldPath)
	if err != nil {
		return nil, err
	}
	newArc, err := a.OpenArchive(ctx, newPath)
	if err != nil {
		return nil, err
	}

	report, err := diff.Archives(a.withLogger(ctx), oldArc, newArc, diff.Options{Workers: a.cfg.Workers})
	if err != nil {
		return nil, fmt.Errorf("diff failed: %w", err)
	}
	a.logger.Info("Diff finished.", "old", oldPath, "new", newPath, "changed", len(report.Files), "unchanged", report.Unchanged)
	return report, nil
}

// Build applies the project at projectPath to the archive at archivePath and
// writes the rebuilt archive to outPath. It returns the number of enabled
// edits that were applied.
func (a *App) Build(ctx context.Context, archivePath, projectPath, outPath string) (int, error) {
	arc, err := a.OpenArchive(ctx, archivePath)
	if err != nil {
		return 0, err
	}
	proj, err := project.Load(a.withLogger(ctx), projectPath)
	if err != nil {
		return 0, err
	}

	enabled := 0
	for _, e := range proj.Edits {
		if e.Enabled {
			enabled++
		}
	}
	a.logger.Info("Starting build.", "archive", archivePath, "project", projectPath, "edits", enabled)

	bctx := ctxlog.With(a.withLogger(ctx), "archive", archivePath)
	out, err := build.Run(bctx, arc, proj.Edits, build.Options{Workers: a.cfg.Workers})
	if err != nil {
		return 0, fmt.Errorf("build failed: %w", err)
	}
	data, err := out.Pack()
	if err != nil {
		return 0, fmt.Errorf("failed to pack rebuilt archive: %w", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write rebuilt archive %s: %w", outPath, err)
	}

	a.logger.Info("Build finished.", "out", outPath, "edits", enabled)
	return enabled, nil
}
