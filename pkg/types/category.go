// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category names one output artifact.
type Category string

const (
	CategoryPolicyMap   Category = "policy-map"
	CategoryRoutePolicy Category = "route-policy"
	CategoryVRF         Category = "vrf"
	CategoryInterface   Category = "interface"
	CategoryHSRP        Category = "hsrp"
	CategoryStatic      Category = "static"
	CategoryBGP         Category = "bgp"
)

// Categories lists every category in apply order.
var Categories = []Category{
	CategoryPolicyMap,
	CategoryRoutePolicy,
	CategoryVRF,
	CategoryInterface,
	CategoryHSRP,
	CategoryStatic,
	CategoryBGP,
}

// ApplyOrder returns the order in which artifacts are fed back into a
// device. Referenced objects come before the stanzas that use them.
func ApplyOrder() []Category {
	out := make([]Category, len(Categories))
	copy(out, Categories)
	return out
}

// RemoveOrder returns ApplyOrder reversed.
func RemoveOrder() []Category {
	out := make([]Category, len(Categories))
	for i, c := range Categories {
		out[len(Categories)-1-i] = c
	}
	return out
}

// FileName returns the artifact file name for the category.
func (c Category) FileName() string {
	return string(c) + ".txt"
}

// UnmatchedFileName returns the diagnostics file name for the category.
func (c Category) UnmatchedFileName() string {
	return string(c) + ".unmatched.txt"
}
