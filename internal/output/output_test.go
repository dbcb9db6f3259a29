// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/overlay-extract/internal/extract"
	"github.com/pdiddy/overlay-extract/internal/testfixture"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func sampleOverlay(t *testing.T) Overlay {
	t.Helper()
	ctx := context.Background()
	doc := testfixture.Doc()
	entries := []types.Level1Entry{
		{Interface: "Bundle-Ether7.100", Attribute: "VRF-CUST-A-01"},
		{Interface: "Bundle-Ether7.200", Attribute: "VRF-CUST-B-02"},
	}
	stanzas, err := extract.ExtractStanzas(ctx, doc, entries, extract.Options{}, io.Discard)
	require.NoError(t, err)
	route, policy, err := extract.ExtractObjects(ctx, doc,
		[]string{"route-policy CUST-A-IN", "route-policy CUST-B-IN"},
		[]string{"policy-map VRF-CUST-A-01-IN", "policy-map GONE"},
		io.Discard)
	require.NoError(t, err)

	resolveDiag := types.Diagnostics{}
	resolveDiag.Add(types.Miss{Category: types.CategoryPolicyMap, Interface: "Bundle-Ether7.200", Attribute: "VRF-CUST-B-02", Reason: "no policy-map"})
	return Assemble(stanzas, route, policy, resolveDiag, extract.DefaultSeparator)
}

func TestAssemble(t *testing.T) {
	o := sampleOverlay(t)

	assert.Equal(t, 2, o.Items[types.CategoryRoutePolicy])
	assert.Equal(t, 1, o.Items[types.CategoryPolicyMap])
	assert.Equal(t, 5, o.Items[types.CategoryVRF])
	assert.Equal(t, []string{
		"route-policy CUST-A-IN", "  pass", "end-policy", "!",
		"route-policy CUST-B-IN", "  drop", "end-policy", "!",
	}, o.Body[types.CategoryRoutePolicy])

	pm := o.Diagnostics[types.CategoryPolicyMap]
	require.Len(t, pm, 2)
	assert.Equal(t, "no policy-map", pm[0].Reason)
	assert.Equal(t, "policy-map GONE", pm[1].Name)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	o := sampleOverlay(t)

	m, err := Write(dir, o, Manifest{RunID: "run-1", Created: time.Unix(0, 0).UTC(), Spec: "Bundle-Ether7", Entries: 2})
	require.NoError(t, err)
	require.Len(t, m.Artifacts, len(types.Categories))

	for _, c := range types.Categories {
		assert.FileExists(t, filepath.Join(dir, c.FileName()))
		assert.FileExists(t, filepath.Join(dir, c.UnmatchedFileName()))
	}

	assert.Equal(t, "route-policy CUST-A-IN\n  pass\nend-policy\n!\nroute-policy CUST-B-IN\n  drop\nend-policy\n!\n",
		readFile(t, filepath.Join(dir, "route-policy.txt")))
	assert.Contains(t, readFile(t, filepath.Join(dir, "vrf.txt")), "vrf VRF-CUST-A-01\n")
	assert.Contains(t, readFile(t, filepath.Join(dir, "bgp.unmatched.txt")), "interface=Bundle-Ether7.200 vrf=VRF-CUST-B-02")
	assert.Empty(t, readFile(t, filepath.Join(dir, "vrf.unmatched.txt")))

	got, err := ReadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, []string{
		"policy-map.txt", "route-policy.txt", "vrf.txt", "interface.txt", "hsrp.txt", "static.txt", "bgp.txt",
	}, got.ApplyOrder)
	assert.Equal(t, []string{
		"bgp.txt", "static.txt", "hsrp.txt", "interface.txt", "vrf.txt", "route-policy.txt", "policy-map.txt",
	}, got.RemoveOrder)
}

func TestWriteRequiresExistingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := Write(missing, Overlay{}, Manifest{})
	assert.True(t, errors.Is(err, ErrNoOutputDir))

	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "writer must not create the directory")
}

func TestLevel1RoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Level1{
		Document: "cfg.txt",
		Spec:     "Bundle-Ether7",
		Entries: []types.Level1Entry{
			{Interface: "Bundle-Ether7.100", Attribute: "VRF-CUST-A-01"},
			{Interface: "Bundle-Ether7.300", Attribute: types.NoAttribute},
		},
	}
	require.NoError(t, WriteLevel1(dir, want))

	got, err := ReadLevel1(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadLevel1Missing(t *testing.T) {
	_, err := ReadLevel1(t.TempDir())
	assert.True(t, errors.Is(err, ErrMissingArtifact))
}
