// internal/testutil/harness.go

// Package testutil holds shared fixtures for package-level tests:
// in-memory archive building, context wiring, and a thread-safe buffer
// for captured log output.
package testutil

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PakBeast/PakBeast/internal/ctxlog"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// ArchiveEntry describes one entry of an in-memory fixture archive.
type ArchiveEntry struct {
	Name   string
	Data   string
	Stored bool // write uncompressed instead of deflated
}

// BuildArchive assembles a fixture container in memory, entries in the
// given order.
func BuildArchive(t *testing.T, entries []ArchiveEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		method := uint16(zip.Deflate)
		if e.Stored {
			method = zip.Store
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e.Name, Method: method})
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// Context returns a background context carrying a discard logger, for
// exercising code that pulls its logger through ctxlog.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// ContextWithCapture returns a context whose logger writes debug-level
// text output into the returned buffer.
func ContextWithCapture() (context.Context, *SafeBuffer) {
	buf := &SafeBuffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return ctxlog.WithLogger(context.Background(), slog.New(handler)), buf
}
