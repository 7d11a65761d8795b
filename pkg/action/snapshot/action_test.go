package snapshot

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cmmoran/haxedts/internal/parser"
	"github.com/cmmoran/haxedts/pkg/manifest"
)

const dumpV1 = `<haxe>
	<class path="pkg.Foo" params="">
		<x public="1"><c path="Int"/></x>
	</class>
</haxe>`

const dumpV2 = `<haxe>
	<class path="pkg.Foo" params="">
		<x public="1"><c path="Int"/></x>
		<y public="1"><c path="String"/></y>
	</class>
</haxe>`

func options(t *testing.T, dir, dump string) *parser.Options {
	t.Helper()
	in := filepath.Join(dir, "dump.xml")
	require.NoError(t, os.WriteFile(in, []byte(dump), 0o644))
	return &parser.Options{
		Input:   in,
		Output:  filepath.Join(dir, "pkg.d.ts"),
		Include: []string{"pkg"},
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "haxedts.manifest.yaml")

	_, err := DiffCurrentWithPrevious(manifestPath)
	require.Error(t, err)

	first, err := Generate(options(t, dir, dumpV1), manifestPath, "pkg", "v1.0.0")
	require.NoError(t, err)
	require.FileExists(t, first)

	second, err := Generate(options(t, dir, dumpV2), manifestPath, "pkg", "v1.1.0")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "v1.1.0", m.CurrentVersion)
	require.Equal(t, "v1.0.0", m.PreviousVersion)
	require.Len(t, m.Snapshots, 2)
	require.Equal(t, 1, m.Snapshots[0].Classes)
	require.True(t, fixed.Equal(m.Snapshots[1].CreatedAt))

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.True(t, strings.Contains(diff, "public y: string;"), diff)
}

func TestSnapshotDiffSharedVersion(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "haxedts.manifest.yaml")

	_, err := Generate(options(t, dir, dumpV1), manifestPath, "base", "v1.0.0")
	require.NoError(t, err)
	_, err = Generate(options(t, dir, dumpV2), manifestPath, "extended", "v1.0.0")
	require.NoError(t, err)

	m, err := List(manifestPath)
	require.NoError(t, err)
	require.Equal(t, "extended", m.CurrentName)
	require.Equal(t, "base", m.PreviousName)

	diff, err := DiffCurrentWithPrevious(manifestPath)
	require.NoError(t, err)
	require.Contains(t, diff, "public y: string;")
}

func TestSnapshotRejectsBadVersion(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "m.yaml")
	_, err := Generate(options(t, dir, dumpV1), manifestPath, "pkg", "latest")
	require.Error(t, err)
	require.NoFileExists(t, filepath.Join(dir, "pkg.d.ts"))

	m, err := manifest.Load(manifestPath)
	require.NoError(t, err)
	require.Empty(t, m.Snapshots)
}
