// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/overlay-extract/internal/config"
	"github.com/pdiddy/overlay-extract/internal/output"
	"github.com/pdiddy/overlay-extract/internal/selector"
	"github.com/pdiddy/overlay-extract/internal/stanza"
	"github.com/pdiddy/overlay-extract/internal/testfixture"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

func readArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestRun(t *testing.T) {
	created := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	now = func() time.Time { return created }
	t.Cleanup(func() { now = time.Now })

	doc := testfixture.WriteConfig(t)
	out := t.TempDir()
	var progress bytes.Buffer

	rep, err := Run(context.Background(), doc, "Bundle-Ether7", config.Defaults(), out, &progress)
	require.NoError(t, err)

	assert.NotEmpty(t, rep.RunID)
	assert.Len(t, rep.Entries, 3)
	assert.Equal(t, 1, rep.Policy.Found())
	assert.Equal(t, 2, rep.Route.Found())

	assert.Equal(t,
		"policy-map VRF-CUST-A-01-IN\n class class-default\n  police rate 100 mbps\n  !\n !\n end-policy-map\n!\n",
		readArtifact(t, out, "policy-map.txt"))
	assert.Equal(t,
		"route-policy CUST-A-IN\n  pass\nend-policy\n!\nroute-policy CUST-B-IN\n  drop\nend-policy\n!\n",
		readArtifact(t, out, "route-policy.txt"))
	assert.Contains(t, readArtifact(t, out, "interface.txt"), "interface Bundle-Ether7.100 vrf VRF-CUST-A-01\n")
	assert.NotContains(t, readArtifact(t, out, "interface.txt"), "Bundle-Ether7.300")
	assert.NotContains(t, readArtifact(t, out, "vrf.txt"), "VRF-CUST-C-01")
	assert.Contains(t, readArtifact(t, out, "policy-map.unmatched.txt"), "interface=Bundle-Ether7.200")

	m, err := output.ReadManifest(out)
	require.NoError(t, err)
	assert.Equal(t, rep.RunID, m.RunID)
	assert.True(t, m.Created.Equal(created))
	assert.Equal(t, "Bundle-Ether7", m.Spec)
	assert.Equal(t, 3, m.Entries)
	assert.Len(t, m.Artifacts, len(types.Categories))
	assert.Equal(t, "policy-map.txt", m.ApplyOrder[0])
	assert.Equal(t, "policy-map.txt", m.RemoveOrder[len(m.RemoveOrder)-1])

	l1, err := output.ReadLevel1(out)
	require.NoError(t, err)
	assert.Equal(t, rep.Entries, l1.Entries)

	assert.Contains(t, progress.String(), "selected 3 interface(s) for Bundle-Ether7")
	assert.Contains(t, progress.String(), "wrote 7 artifact(s)")
}

func TestRunValidatesSpecBeforeReading(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.cfg")
	_, err := Run(context.Background(), missing, "Bundle-Ether7.", config.Defaults(), t.TempDir(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, selector.ErrInvalidSpec))
}

func TestRunErrors(t *testing.T) {
	doc := testfixture.WriteConfig(t)
	tests := []struct {
		name    string
		doc     string
		outDir  string
		wantErr error
	}{
		{"missing output dir", doc, filepath.Join(t.TempDir(), "nope"), output.ErrNoOutputDir},
		{"unreadable document", filepath.Join(t.TempDir(), "missing.cfg"), t.TempDir(), stanza.ErrUnreadable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.doc, "Bundle-Ether7", config.Defaults(), tt.outDir, &bytes.Buffer{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), err.Error())
		})
	}
}

func TestRunStructuralAnomaly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.cfg")
	require.NoError(t, os.WriteFile(path, []byte("interface Bundle-Ether7.100 vrf\n"), 0o644))

	_, err := Run(context.Background(), path, "Bundle-Ether7", config.Defaults(), t.TempDir(), &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, selector.ErrStructural))
}

func TestRunFromLevel1(t *testing.T) {
	doc := testfixture.WriteConfig(t)
	out := t.TempDir()
	cfg := config.Defaults()

	sel, err := SelectLevel1(context.Background(), doc, "Bundle-Ether7.100", cfg, out)
	require.NoError(t, err)

	_, err = output.ReadManifest(out)
	assert.True(t, errors.Is(err, output.ErrMissingArtifact), "select writes no manifest")

	rep, err := RunFromLevel1(context.Background(), out, "", cfg, out, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, sel.Entries, rep.Entries)
	assert.Equal(t, 1, rep.Policy.Found())
	assert.Equal(t, 1, rep.Route.Found())
	assert.Equal(t, "Bundle-Ether7.100", rep.Manifest.Spec)
}

func TestRunFromLevel1Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := RunFromLevel1(context.Background(), dir, "", config.Defaults(), dir, &bytes.Buffer{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, output.ErrMissingArtifact))
}

func TestRunParallelMatchesSequential(t *testing.T) {
	doc := testfixture.WriteConfig(t)

	seq := config.Defaults()
	par := config.Defaults()
	par.Pipeline.Workers = 8

	a, err := Run(context.Background(), doc, "Bundle-Ether7", seq, t.TempDir(), &bytes.Buffer{})
	require.NoError(t, err)
	b, err := Run(context.Background(), doc, "Bundle-Ether7", par, t.TempDir(), &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, a.Overlay.Body, b.Overlay.Body)
	assert.Equal(t, a.Overlay.Diagnostics, b.Overlay.Diagnostics)
}

func TestExtractNilSelection(t *testing.T) {
	_, err := Extract(context.Background(), nil, config.Defaults(), t.TempDir(), &bytes.Buffer{})
	assert.True(t, errors.Is(err, output.ErrMissingArtifact))
}
