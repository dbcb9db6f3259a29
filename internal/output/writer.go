// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/overlay-extract/pkg/types"
)

const (
	level1File   = "level1.yaml"
	manifestFile = "manifest.yaml"
)

var (
	// ErrNoOutputDir is returned when the output directory does not exist.
	// Creating it is the caller's job.
	ErrNoOutputDir = errors.New("output directory does not exist")

	// ErrMissingArtifact is returned when a stage needs an intermediate
	// artifact that an earlier stage did not write.
	ErrMissingArtifact = errors.New("missing intermediate artifact")
)

// Level1 is the intermediate artifact written after interface selection.
type Level1 struct {
	Document string              `yaml:"document"`
	Spec     string              `yaml:"spec"`
	Entries  []types.Level1Entry `yaml:"entries"`
}

// ArtifactInfo describes one written category.
type ArtifactInfo struct {
	Category  types.Category `yaml:"category"`
	File      string         `yaml:"file"`
	Unmatched string         `yaml:"unmatched"`
	Items     int            `yaml:"items"`
	Misses    int            `yaml:"misses"`
}

// Manifest records what a run wrote and how to feed it back to a device.
type Manifest struct {
	RunID       string          `yaml:"run_id"`
	Created     time.Time       `yaml:"created"`
	Document    string          `yaml:"document"`
	Spec        string          `yaml:"spec"`
	MatchMode   types.MatchMode `yaml:"match_mode"`
	Entries     int             `yaml:"entries"`
	Artifacts   []ArtifactInfo  `yaml:"artifacts"`
	ApplyOrder  []string        `yaml:"apply_order"`
	RemoveOrder []string        `yaml:"remove_order"`
}

// CheckDir returns ErrNoOutputDir unless dir is an existing directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNoOutputDir, dir)
		}
		return fmt.Errorf("checking output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoOutputDir, dir)
	}
	return nil
}

// WriteLevel1 writes the selection result to dir/level1.yaml.
func WriteLevel1(dir string, l Level1) error {
	if err := CheckDir(dir); err != nil {
		return err
	}
	return writeYAML(filepath.Join(dir, level1File), l)
}

// ReadLevel1 reads dir/level1.yaml. A missing file is ErrMissingArtifact.
func ReadLevel1(dir string) (Level1, error) {
	path := filepath.Join(dir, level1File)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Level1{}, fmt.Errorf("%w: %s (run select first)", ErrMissingArtifact, path)
		}
		return Level1{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var l Level1
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Level1{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return l, nil
}

// Write writes the seven category artifacts, one unmatched file per
// category and manifest.yaml into dir, and returns the manifest. m
// supplies the run fields; Artifacts and the orders are filled in here.
func Write(dir string, o Overlay, m Manifest) (Manifest, error) {
	if err := CheckDir(dir); err != nil {
		return Manifest{}, err
	}

	m.Artifacts = nil
	for _, c := range types.Categories {
		misses := o.Diagnostics[c]
		if err := writeLines(filepath.Join(dir, c.FileName()), o.Body[c]); err != nil {
			return Manifest{}, err
		}
		unmatched := make([]string, len(misses))
		for i, miss := range misses {
			unmatched[i] = miss.String()
		}
		if err := writeLines(filepath.Join(dir, c.UnmatchedFileName()), unmatched); err != nil {
			return Manifest{}, err
		}
		m.Artifacts = append(m.Artifacts, ArtifactInfo{
			Category:  c,
			File:      c.FileName(),
			Unmatched: c.UnmatchedFileName(),
			Items:     o.Items[c],
			Misses:    len(misses),
		})
	}
	m.ApplyOrder = fileNames(types.ApplyOrder())
	m.RemoveOrder = fileNames(types.RemoveOrder())

	if err := writeYAML(filepath.Join(dir, manifestFile), m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// ReadManifest reads dir/manifest.yaml.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
		}
		return Manifest{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

func fileNames(cs []types.Category) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.FileName()
	}
	return out
}

func writeLines(path string, lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
