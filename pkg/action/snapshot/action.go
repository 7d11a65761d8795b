package snapshot

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/cmmoran/haxedts/internal/parser"
	"github.com/cmmoran/haxedts/pkg/action/translate"
	"github.com/cmmoran/haxedts/pkg/manifest"
)

// now is replaced in tests.
var now = time.Now

// Generate translates the current dump, keeps a copy of the declarations next
// to the manifest and records it as a snapshot.
func Generate(opts *parser.Options, manifestPath, snapshotName, snapshotVersion string) (string, error) {
	if err := manifest.ValidateVersion(snapshotVersion); err != nil {
		return "", err
	}
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	res, err := translate.Generate(opts)
	if err != nil {
		return "", err
	}

	snapDir := filepath.Join(filepath.Dir(manifestPath), "snapshots")
	if err := os.MkdirAll(snapDir, 0o755); err != nil {
		return "", errors.Wrap(err, "create snapshot directory")
	}
	snapFile := filepath.Join(snapDir, snapshotName+"-"+snapshotVersion+".d.ts")
	if err := os.WriteFile(snapFile, []byte(res.Text), 0o644); err != nil {
		return "", errors.Wrap(err, "write snapshot")
	}

	err = m.AddSnapshot(manifest.Snapshot{
		Name:      snapshotName,
		Version:   snapshotVersion,
		File:      snapFile,
		Input:     opts.Input,
		Classes:   res.Classes,
		CreatedAt: now().UTC(),
	})
	if err != nil {
		return "", err
	}

	if err := m.Save(manifestPath); err != nil {
		return "", err
	}

	return snapFile, nil
}

// List returns all snapshots recorded in the manifest.
func List(manifestPath string) (*manifest.Manifest, error) {
	return manifest.Load(manifestPath)
}

// DiffCurrentWithPrevious loads the manifest, locates the current and previous
// snapshot files, and returns a textual diff of their contents.
func DiffCurrentWithPrevious(manifestPath string) (string, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return "", err
	}

	if m.CurrentVersion == "" || m.PreviousVersion == "" {
		return "", errors.New("no current/previous snapshots recorded")
	}

	currentPath := m.SnapshotFile(m.CurrentName, m.CurrentVersion)
	previousPath := m.SnapshotFile(m.PreviousName, m.PreviousVersion)

	if currentPath == "" || previousPath == "" {
		return "", errors.New("snapshot files not found in manifest")
	}

	current, err := os.ReadFile(currentPath)
	if err != nil {
		return "", errors.Wrap(err, "read current snapshot")
	}

	previous, err := os.ReadFile(previousPath)
	if err != nil {
		return "", errors.Wrap(err, "read previous snapshot")
	}

	return cmp.Diff(string(previous), string(current)), nil
}
