// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import "strings"

// DefaultSuffixLength is the width of the primary/secondary variant suffix
// on VRF names, e.g. the "-01" of VRF-CUST-A-01.
const DefaultSuffixLength = 3

// DefaultRoutePolicyPrefix is the VRF naming prefix that route-policy
// names do not carry.
const DefaultRoutePolicyPrefix = "VRF-"

// RoutePolicyBase drops the variant suffix of n characters from a VRF
// name so paired -01/-02 VRFs map to the same route-policy stem. Names no
// longer than n are returned unchanged; an empty stem would match every
// route-policy.
func RoutePolicyBase(vrf string, n int) string {
	if n <= 0 || len(vrf) <= n {
		return vrf
	}
	return vrf[:len(vrf)-n]
}

// StripKnownPrefix removes prefix from base when present. It covers
// the mismatch between the VRF naming convention and the route-policy
// naming convention. A base equal to prefix is returned unchanged.
func StripKnownPrefix(base, prefix string) string {
	if prefix == "" || base == prefix {
		return base
	}
	return strings.TrimPrefix(base, prefix)
}
