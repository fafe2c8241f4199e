// internal/diff/archive_test.go
package diff

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PakBeast/PakBeast/internal/edit"
	"github.com/PakBeast/PakBeast/internal/pak"
	"github.com/PakBeast/PakBeast/internal/script"
	"github.com/PakBeast/PakBeast/internal/testutil"
)

func openArchive(t *testing.T, entries []testutil.ArchiveEntry) *pak.Archive {
	t.Helper()
	arc, err := pak.Open(testutil.BuildArchive(t, entries))
	require.NoError(t, err)
	return arc
}

func TestArchives_ClassifiesEveryPair(t *testing.T) {
	t.Parallel()

	a := openArchive(t, []testutil.ArchiveEntry{
		{Name: "same.scr", Data: "speed = 1\n"},
		{Name: "gone.bin", Data: "\x00\x01old"},
		{Name: "icon.dds", Data: "\x00\x01"},
		{Name: "weapons.scr", Data: "Param(damage, 10);\n"},
	})
	b := openArchive(t, []testutil.ArchiveEntry{
		{Name: "same.scr", Data: "speed = 1\n"},
		{Name: "new.txt", Data: "hello\n"},
		{Name: "icon.dds", Data: "\x00\x02"},
		{Name: "weapons.scr", Data: "Param(damage, 25);\n"},
	})

	report, err := Archives(testutil.Context(), a, b, Options{Workers: 4})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Unchanged)
	require.Len(t, report.Files, 4)

	byPath := map[string]FileDiff{}
	var paths []string
	for _, f := range report.Files {
		byPath[f.Path] = f
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"gone.bin", "icon.dds", "new.txt", "weapons.scr"}, paths,
		"report is ordered by entry name")

	assert.Equal(t, FileRemoved, byPath["gone.bin"].Kind)
	assert.Equal(t, FileBinaryModified, byPath["icon.dds"].Kind)
	assert.Equal(t, FileAdded, byPath["new.txt"].Kind)

	weapons := byPath["weapons.scr"]
	assert.Equal(t, FileTextModified, weapons.Kind)
	require.Len(t, weapons.Records, 1)
	assert.Equal(t, Modified, weapons.Records[0].Kind)
	assert.Equal(t, "weapons.scr:damage", weapons.Records[0].Address.String())
}

func TestArchives_Cancelled(t *testing.T) {
	t.Parallel()

	a := openArchive(t, []testutil.ArchiveEntry{{Name: "a.scr", Data: "x = 1\n"}})
	b := openArchive(t, []testutil.ArchiveEntry{{Name: "a.scr", Data: "x = 2\n"}})

	ctx, cancel := context.WithCancel(testutil.Context())
	cancel()
	_, err := Archives(ctx, a, b, Options{Workers: 2})
	require.ErrorIs(t, err, context.Canceled)
}

func TestReport_Edits(t *testing.T) {
	t.Parallel()

	a := openArchive(t, []testutil.ArchiveEntry{
		{Name: "weapons.scr", Data: "Param(damage, 10);\nspeed = 4\n"},
	})
	b := openArchive(t, []testutil.ArchiveEntry{
		{Name: "weapons.scr", Data: "Param(damage, 25);\nextra = 1\n"},
	})

	report, err := Archives(testutil.Context(), a, b, Options{})
	require.NoError(t, err)

	edits := report.Edits()
	require.Len(t, edits, 2, "added entities have no edit form")

	assert.Equal(t, edit.OpSet, edits[0].Op)
	assert.Equal(t, "weapons.scr:damage", edits[0].Address.String())
	assert.Equal(t, []script.Literal{script.NewNumberRaw("25")}, edits[0].Values)

	assert.Equal(t, edit.OpDelete, edits[1].Op)
	assert.Equal(t, "weapons.scr:speed", edits[1].Address.String())
}

func TestRecord_JSONShape(t *testing.T) {
	t.Parallel()

	a := parse(t, "weapons.scr", "Param(damage, 10);\n")
	b := parse(t, "weapons.scr", "Param(damage, 25);\n")
	records := Files("weapons.scr", a, b)
	require.Len(t, records, 1)

	data, err := json.Marshal(records[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"file": "weapons.scr",
		"kind": "modified",
		"entity": "param",
		"address": "weapons.scr:damage",
		"old": ["10"],
		"new": ["25"],
		"line": 1
	}`, string(data))
}
