// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stanza

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type block struct{ kw, term string }

func (b block) Keyword() string    { return b.kw }
func (b block) Terminator() string { return b.term }

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader("vrf A\r\ninterface X vrf A\r\n\nend\n"))
	require.NoError(t, err)

	assert.Equal(t, 4, doc.Len())
	assert.Equal(t, "vrf A", doc.Line(0))
	assert.Equal(t, "", doc.Line(2))
	assert.Equal(t, []string{"vrf A", "interface X vrf A", "", "end"}, doc.Lines())
}

func TestLinesReturnsCopy(t *testing.T) {
	doc := FromLines([]string{"a", "b"})
	lines := doc.Lines()
	lines[0] = "mutated"
	assert.Equal(t, "a", doc.Line(0))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.txt")
	require.NoError(t, os.WriteFile(path, []byte("hostname PE1\n"), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source())
	assert.Equal(t, 1, doc.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}

func TestIsStart(t *testing.T) {
	tests := []struct {
		line string
		kind Kind
		want bool
	}{
		{"vrf A", Word("vrf"), true},
		{"vrfx A", Word("vrf"), false},
		{" vrf A", Word("vrf"), false},
		{"router bgp 65000 vrf A", Word("router bgp"), true},
		{"router static vrf A", Word("router bgp"), false},
		{"router", Word("router bgp"), false},
		{"", Word("vrf"), false},
		{"policy-map X", block{"policy-map", "end-policy-map"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStart(tt.line, tt.kind))
		})
	}
}

func TestIsEnd(t *testing.T) {
	pm := block{"policy-map", "end-policy-map"}
	rp := block{"route-policy", "end-policy"}

	assert.True(t, IsEnd(" end-policy-map", pm))
	assert.True(t, IsEnd("end-policy", rp))
	assert.True(t, IsEnd("end-policy  ", rp))
	assert.False(t, IsEnd(" end-policy-map", rp))
	assert.False(t, IsEnd("!", pm))
}

func TestExtract(t *testing.T) {
	doc := FromLines([]string{
		"route-policy A",
		"  pass",
		"end-policy",
		"!",
		"route-policy B",
		"  drop",
		"end-policy",
		"route-policy C",
		"  pass",
	})
	rp := block{"route-policy", "end-policy"}

	tests := []struct {
		name  string
		start string
		want  []string
	}{
		{"first block", "route-policy A", []string{"route-policy A", "  pass", "end-policy"}},
		{"second block", "route-policy B", []string{"route-policy B", "  drop", "end-policy"}},
		{"no terminator", "route-policy C", nil},
		{"no start", "route-policy D", nil},
		{"prefix is not a match", "route-policy", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(doc, Equals(tt.start), EndsWith(rp))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter(t *testing.T) {
	doc := FromLines([]string{"vrf A", "interface X", "vrf B"})
	got := doc.Filter(StartsWith(Word("vrf")))
	assert.Equal(t, []string{"vrf A", "vrf B"}, got)
}

func TestFields(t *testing.T) {
	f := Split("interface  Bundle-Ether7.100 vrf\tCUST")
	require.Len(t, f, 4)

	v, ok := f.At(2)
	assert.True(t, ok)
	assert.Equal(t, "Bundle-Ether7.100", v)

	_, ok = f.At(5)
	assert.False(t, ok)
	_, ok = f.At(0)
	assert.False(t, ok)

	assert.Equal(t, 3, f.Index("vrf", 1))
	assert.Equal(t, 0, f.Index("vrf", 4))
	assert.Equal(t, 4, f.Index("CUST", 0))
	assert.Equal(t, 0, f.Index("cust", 1))
}
