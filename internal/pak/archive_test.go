// internal/pak/archive_test.go
package pak

import (
	"archive/zip"
	"bytes"
	"hash/crc32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PakBeast/PakBeast/internal/testutil"
)

func fixtureEntries() []testutil.ArchiveEntry {
	return []testutil.ArchiveEntry{
		{Name: "data/scripts/ai.scr", Data: "Param(health, 100);\n"},
		{Name: "data/scripts/inventory.scr", Data: "Item(\"Sniper\") {\n\tDamage = 75\n}\n"},
		{Name: "textures/icon.dds", Data: "\x00\x01\x02\x03binary", Stored: true},
	}
}

func TestOpen_UnmodifiedPackReturnsOriginalBytes(t *testing.T) {
	t.Parallel()

	src := testutil.BuildArchive(t, fixtureEntries())
	arc, err := Open(src)
	require.NoError(t, err)

	require.Equal(t, 3, arc.Len())
	assert.Equal(t, []string{
		"data/scripts/ai.scr",
		"data/scripts/inventory.scr",
		"textures/icon.dds",
	}, arc.Names())
	assert.False(t, arc.Modified())

	out, err := arc.Pack()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(src, out), "unmodified archive must round-trip bit for bit")
}

func TestOpen_FormatErrors(t *testing.T) {
	t.Parallel()

	valid := testutil.BuildArchive(t, fixtureEntries())

	corruptHeader := bytes.Clone(valid)
	copy(corruptHeader, []byte{0, 0, 0, 0}) // kill the first local header signature

	testCases := []struct {
		name string
		data []byte
	}{
		{name: "empty input", data: nil},
		{name: "not a container", data: []byte("Param(health, 100);\n")},
		{name: "truncated index", data: valid[:len(valid)-7]},
		{name: "corrupt entry header", data: corruptHeader},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Open(tc.data)
			var formatErr *FormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestOpen_DuplicateEntryNames(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for range 2 {
		w, err := zw.Create("data/twice.scr")
		require.NoError(t, err)
		_, err = w.Write([]byte("speed = 1\n"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	_, err := Open(buf.Bytes())
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Error(), "data/twice.scr")
}

func TestSetPayload_RebuildKeepsUntouchedEntriesVerbatim(t *testing.T) {
	t.Parallel()

	src := testutil.BuildArchive(t, fixtureEntries())

	origReader, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	require.NoError(t, err)
	origHeaders := map[string]zip.FileHeader{}
	for _, f := range origReader.File {
		origHeaders[f.Name] = f.FileHeader
	}

	arc, err := Open(src)
	require.NoError(t, err)
	require.NoError(t, arc.SetPayload("data/scripts/ai.scr", []byte("Param(health, 250);\n")))
	assert.True(t, arc.Modified())

	out, err := arc.Pack()
	require.NoError(t, err)
	assert.False(t, bytes.Equal(src, out))

	repacked, err := Open(out)
	require.NoError(t, err)
	require.Equal(t, arc.Names(), repacked.Names(), "entry order must survive a rebuild")

	got, err := mustEntry(t, repacked, "data/scripts/ai.scr").Payload()
	require.NoError(t, err)
	assert.Equal(t, "Param(health, 250);\n", string(got))

	// Untouched entries are copied raw, so their compressed size and
	// checksum match the original container exactly.
	for _, name := range []string{"data/scripts/inventory.scr", "textures/icon.dds"} {
		e := mustEntry(t, repacked, name)
		orig := origHeaders[name]
		assert.Equal(t, orig.CRC32, crcOf(t, repacked, name), "%s checksum", name)
		assert.Equal(t, orig.CompressedSize64, e.CompressedSize(), "%s compressed size", name)
		assert.Equal(t, orig.Method, e.Method(), "%s method", name)
	}
}

func TestSetPayload_UnknownEntry(t *testing.T) {
	t.Parallel()

	arc, err := Open(testutil.BuildArchive(t, fixtureEntries()))
	require.NoError(t, err)

	err = arc.SetPayload("data/missing.scr", []byte("x"))
	require.ErrorIs(t, err, ErrEntryNotFound)
	assert.Contains(t, err.Error(), "data/missing.scr")
}

func TestSetPayload_PreservesCompressionMethod(t *testing.T) {
	t.Parallel()

	arc, err := Open(testutil.BuildArchive(t, fixtureEntries()))
	require.NoError(t, err)
	require.NoError(t, arc.SetPayload("textures/icon.dds", []byte("\x04\x05replaced")))

	out, err := arc.Pack()
	require.NoError(t, err)
	repacked, err := Open(out)
	require.NoError(t, err)

	e := mustEntry(t, repacked, "textures/icon.dds")
	assert.Equal(t, uint16(zip.Store), e.Method(), "a stored entry stays stored after replacement")
	got, err := e.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte("\x04\x05replaced"), got)
}

func TestClone_IsolatesPayloadChanges(t *testing.T) {
	t.Parallel()

	src := testutil.BuildArchive(t, fixtureEntries())
	arc, err := Open(src)
	require.NoError(t, err)

	clone := arc.Clone()
	require.NoError(t, clone.SetPayload("data/scripts/ai.scr", []byte("Param(health, 1);\n")))

	assert.False(t, arc.Modified(), "clone edits must not leak into the original")
	orig, err := arc.Pack()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(src, orig))

	edited, err := clone.Pack()
	require.NoError(t, err)
	assert.False(t, bytes.Equal(src, edited))
}

func TestPack_PreservesArchiveComment(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	require.NoError(t, zw.SetComment("built by tooling v3"))
	w, err := zw.Create("data/scripts/ai.scr")
	require.NoError(t, err)
	_, err = w.Write([]byte("speed = 5\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	arc, err := Open(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "built by tooling v3", arc.Comment())

	require.NoError(t, arc.SetPayload("data/scripts/ai.scr", []byte("speed = 6\n")))
	out, err := arc.Pack()
	require.NoError(t, err)

	repacked, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, "built by tooling v3", repacked.Comment())
}

func TestPayload_ChecksumMismatchSurfacesLazily(t *testing.T) {
	t.Parallel()

	src := testutil.BuildArchive(t, []testutil.ArchiveEntry{
		{Name: "data/raw.bin", Data: "0123456789abcdef", Stored: true},
	})

	zr, err := zip.NewReader(bytes.NewReader(src), int64(len(src)))
	require.NoError(t, err)
	offset, err := zr.File[0].DataOffset()
	require.NoError(t, err)

	// Flip a payload byte. The raw read at Open cannot notice; the
	// checksum failure must surface on first decode instead.
	corrupt := bytes.Clone(src)
	corrupt[offset] ^= 0xFF

	arc, err := Open(corrupt)
	require.NoError(t, err)

	_, err = mustEntry(t, arc, "data/raw.bin").Payload()
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestEntry_SizeAccessors(t *testing.T) {
	t.Parallel()

	arc, err := Open(testutil.BuildArchive(t, fixtureEntries()))
	require.NoError(t, err)

	e := mustEntry(t, arc, "data/scripts/ai.scr")
	assert.Equal(t, uint64(len("Param(health, 100);\n")), e.Size())
	assert.False(t, e.Modified())

	require.NoError(t, arc.SetPayload("data/scripts/ai.scr", []byte("x")))
	assert.True(t, e.Modified())
	assert.Equal(t, uint64(1), e.Size())
}

func mustEntry(t *testing.T, arc *Archive, name string) *Entry {
	t.Helper()
	e, ok := arc.Entry(name)
	require.True(t, ok, "entry %q", name)
	return e
}

func crcOf(t *testing.T, arc *Archive, name string) uint32 {
	t.Helper()
	data, err := mustEntry(t, arc, name).Payload()
	require.NoError(t, err)
	return crc32.ChecksumIEEE(data)
}
