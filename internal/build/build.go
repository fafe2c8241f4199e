// internal/build/build.go

// Package build turns an archive plus an edit log into a new archive.
// The run is all-or-nothing: every edit must apply cleanly before any
// change is committed, and the input archive is never mutated.
package build

import (
	"context"
	"fmt"
	"runtime"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/ctxlog"
	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/pak"
	"github.com/PakBeast/PakBeast/internal/script"
	"github.com/PakBeast/PakBeast/internal/worker"
)

// Error reports the first failure of a build run, carrying the entry
// and, when one is involved, the entity address that sank it.
type Error struct {
	File    string
	Address address.Address
	Err     error
}

func (e *Error) Error() string {
	if e.Address.IsZero() {
		return fmt.Sprintf("building %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("building %s: %s: %v", e.File, e.Address, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Options tunes a build run.
type Options struct {
	Workers int // defaults to GOMAXPROCS
}

// Run applies the enabled edits to a copy of the archive and returns
// it. Files are processed on the worker pool: parse, apply the file's
// edits in recorded order, re-render. An unknown target entry, a
// non-text payload, or any failing edit aborts the whole run with a
// *Error; on success every entry without edits passes through raw.
func Run(ctx context.Context, arc *pak.Archive, edits []edit.Edit, opts Options) (*pak.Archive, error) {
	logger := ctxlog.FromContext(ctx)
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	grouped, files := edit.ByFile(edits)
	logger.Debug("Building archive.", "files", len(files), "workers", workers)

	pool := worker.NewPool(workers, func(ctx context.Context, name string) ([]byte, error) {
		entry, ok := arc.Entry(name)
		if !ok {
			return nil, &Error{File: name, Err: pak.ErrEntryNotFound}
		}
		payload, err := entry.Payload()
		if err != nil {
			return nil, &Error{File: name, Err: err}
		}
		sf, err := script.Parse(name, payload)
		if err != nil {
			return nil, &Error{File: name, Err: err}
		}
		for _, e := range grouped[name] {
			if err := edit.Apply(sf, e); err != nil {
				return nil, &Error{File: name, Address: e.Address, Err: err}
			}
		}
		return sf.Render(), nil
	})

	results, err := pool.Execute(ctx, files)
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
	}

	out := arc.Clone()
	for _, r := range results {
		if err := out.SetPayload(r.Input, r.Value); err != nil {
			return nil, &Error{File: r.Input, Err: err}
		}
	}
	logger.Debug("Build finished.", "rebuilt", len(results))
	return out, nil
}
