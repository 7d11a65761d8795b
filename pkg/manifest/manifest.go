package manifest

import (
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Snapshot represents one generated declaration file recorded in the manifest.
type Snapshot struct {
	Name      string    `yaml:"name" json:"name"`
	Version   string    `yaml:"version" json:"version"`
	File      string    `yaml:"file" json:"file"`
	Input     string    `yaml:"input,omitempty" json:"input,omitempty"`
	Classes   int       `yaml:"classes" json:"classes"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// Manifest tracks the history of generated declaration snapshots.
type Manifest struct {
	CurrentName     string     `yaml:"current_name,omitempty" json:"current_name,omitempty"`
	CurrentVersion  string     `yaml:"current_version" json:"current_version"`
	PreviousName    string     `yaml:"previous_name,omitempty" json:"previous_name,omitempty"`
	PreviousVersion string     `yaml:"previous_version" json:"previous_version"`
	Snapshots       []Snapshot `yaml:"snapshots" json:"snapshots"`
}

// ValidateVersion reports whether v is a semantic version such as v1.2.3.
func ValidateVersion(v string) error {
	if !semver.IsValid(v) {
		return errors.WithHint(errors.Newf("invalid snapshot version %q", v), "use a semantic version such as v1.2.3")
	}
	return nil
}

// Load reads a manifest from the provided path. If the file does not exist,
// an empty manifest is returned.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read manifest")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "unmarshal manifest")
	}

	return &m, nil
}

// Save writes the manifest to the provided path, creating parent directories as needed.
func (m *Manifest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create manifest directory")
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal manifest")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "write manifest")
	}

	return nil
}

// AddSnapshot records a snapshot, updating the current and previous pointers
// and de-duplicating existing entries that share the same name and version.
// Re-recording the current snapshot does not move the previous pointer.
func (m *Manifest) AddSnapshot(s Snapshot) error {
	if err := ValidateVersion(s.Version); err != nil {
		return err
	}
	if m.CurrentVersion != "" {
		if semver.Compare(s.Version, m.CurrentVersion) < 0 {
			return errors.Newf("snapshot version %s is older than current %s", s.Version, m.CurrentVersion)
		}
		if m.CurrentName != s.Name || m.CurrentVersion != s.Version {
			m.PreviousName, m.PreviousVersion = m.CurrentName, m.CurrentVersion
		}
	}
	m.CurrentName, m.CurrentVersion = s.Name, s.Version

	for i := range m.Snapshots {
		if m.Snapshots[i].Name == s.Name && m.Snapshots[i].Version == s.Version {
			m.Snapshots[i] = s
			return nil
		}
	}

	m.Snapshots = append(m.Snapshots, s)
	return nil
}

// IsCurrent reports whether s is the snapshot the current pointer refers to.
func (m *Manifest) IsCurrent(s Snapshot) bool {
	return s.Version == m.CurrentVersion && (m.CurrentName == "" || s.Name == m.CurrentName)
}

// SnapshotFile returns the path recorded for the named snapshot version, if
// present. An empty name matches any snapshot of that version, which is how
// manifests written without name pointers are read.
func (m *Manifest) SnapshotFile(name, version string) string {
	for _, s := range m.Snapshots {
		if s.Version == version && (name == "" || s.Name == name) {
			return s.File
		}
	}
	return ""
}
