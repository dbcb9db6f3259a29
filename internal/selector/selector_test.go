// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/overlay-extract/internal/testfixture"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		in      string
		want    types.InterfaceSpec
		wantErr bool
	}{
		{in: "Bundle-Ether7.100", want: types.InterfaceSpec{Bundle: "Bundle-Ether7", Sub: "100"}},
		{in: "Bundle-Ether12345.54321", want: types.InterfaceSpec{Bundle: "Bundle-Ether12345", Sub: "54321"}},
		{in: "Bundle-Ether7", want: types.InterfaceSpec{Bundle: "Bundle-Ether7", Family: true}},
		{in: "Bundle-Ether123456", wantErr: true},
		{in: "Bundle-Ether7.123456", wantErr: true},
		{in: "Bundle-Ether7.", wantErr: true},
		{in: "bundle-ether7", wantErr: true},
		{in: "GigabitEthernet0/0/0/1", wantErr: true},
		{in: " Bundle-Ether7", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSpec(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSpec))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func mustSpec(t *testing.T, s string) types.InterfaceSpec {
	t.Helper()
	spec, err := ParseSpec(s)
	require.NoError(t, err)
	return spec
}

func TestSelectExact(t *testing.T) {
	got, err := Select(testfixture.Doc(), mustSpec(t, "Bundle-Ether7.100"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.Level1Entry{
		{Interface: "Bundle-Ether7.100", Attribute: "VRF-CUST-A-01"},
	}, got)
}

func TestSelectFamily(t *testing.T) {
	got, err := Select(testfixture.Doc(), mustSpec(t, "Bundle-Ether7"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []types.Level1Entry{
		{Interface: "Bundle-Ether7.100", Attribute: "VRF-CUST-A-01"},
		{Interface: "Bundle-Ether7.200", Attribute: "VRF-CUST-B-02"},
		{Interface: "Bundle-Ether7.1000", Attribute: "VRF-CUST-D-01"},
	}, got)
}

func TestSelectFamilyIsSupersetOfExact(t *testing.T) {
	doc := testfixture.Doc()
	family, err := Select(doc, mustSpec(t, "Bundle-Ether7"), Options{})
	require.NoError(t, err)

	for _, sub := range []string{"Bundle-Ether7.100", "Bundle-Ether7.200", "Bundle-Ether7.300", "Bundle-Ether7.1000"} {
		exact, err := Select(doc, mustSpec(t, sub), Options{})
		require.NoError(t, err)
		for _, e := range exact {
			assert.Contains(t, family, e)
		}
	}
}

func TestSelectIncludeGlobal(t *testing.T) {
	got, err := Select(testfixture.Doc(), mustSpec(t, "Bundle-Ether7"), Options{IncludeGlobal: true})
	require.NoError(t, err)
	assert.Equal(t, []types.Level1Entry{
		{Interface: "Bundle-Ether7", Attribute: types.NoAttribute},
		{Interface: "Bundle-Ether7.100", Attribute: "VRF-CUST-A-01"},
		{Interface: "Bundle-Ether7.200", Attribute: "VRF-CUST-B-02"},
		{Interface: "Bundle-Ether7.300", Attribute: types.NoAttribute},
		{Interface: "Bundle-Ether7.1000", Attribute: "VRF-CUST-D-01"},
	}, got)
	assert.True(t, got[0].Excluded())
	assert.False(t, got[1].Excluded())
}

func TestSelectKeepsDuplicates(t *testing.T) {
	doc := testfixture.FromText(`interface Bundle-Ether9.10 vrf A
interface Bundle-Ether9.10 vrf A
`)
	got, err := Select(doc, mustSpec(t, "Bundle-Ether9.10"), Options{})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSelectNoMatch(t *testing.T) {
	got, err := Select(testfixture.Doc(), mustSpec(t, "Bundle-Ether99"), Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectIgnoresIndentedAndPrefixLines(t *testing.T) {
	doc := testfixture.FromText(`  interface Bundle-Ether9.10 vrf A
interface Bundle-Ether90.10 vrf B
interface Bundle-Ether9.100 vrf C
`)
	got, err := Select(doc, mustSpec(t, "Bundle-Ether9.10"), Options{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectStructuralAnomaly(t *testing.T) {
	doc := testfixture.FromText("interface Bundle-Ether9.10 vrf\n")
	_, err := Select(doc, mustSpec(t, "Bundle-Ether9.10"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStructural))
	assert.Contains(t, err.Error(), "line 1")
}

func TestSelectPositionalField(t *testing.T) {
	// vrf is not the third field; the fourth field is taken as-is.
	doc := testfixture.FromText("interface Bundle-Ether9.10 description x vrf A\n")
	got, err := Select(doc, mustSpec(t, "Bundle-Ether9.10"), Options{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].Attribute)
}
