// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data model shared by the extraction stages.
package types

import (
	"fmt"
	"strings"
)

// NoAttribute marks a Level1Entry whose interface does not belong to a VRF.
// Entries carrying it are listed in the level-1 artifact but excluded from
// resolution and extraction.
const NoAttribute = "NOVRF"

// InterfaceSpec selects the bundle interfaces to extract. Family specs
// match the bundle and every sub-interface; exact specs match one
// sub-interface.
type InterfaceSpec struct {
	// Bundle is the parent interface token, e.g. "Bundle-Ether7".
	Bundle string `json:"bundle" yaml:"bundle"`

	// Sub is the sub-interface identifier, empty for family specs.
	Sub string `json:"sub,omitempty" yaml:"sub,omitempty"`

	// Family is true when every sub-interface of Bundle is selected.
	Family bool `json:"family" yaml:"family"`
}

// String returns the spec in the form it was given on the command line.
func (s InterfaceSpec) String() string {
	if s.Family {
		return s.Bundle
	}
	return s.Bundle + "." + s.Sub
}

// Matches reports whether an interface token is selected by the spec.
func (s InterfaceSpec) Matches(token string) bool {
	if !s.Family {
		return token == s.String()
	}
	return token == s.Bundle || strings.HasPrefix(token, s.Bundle+".")
}

// Level1Entry pairs a selected interface with the VRF it declares.
type Level1Entry struct {
	Interface string `json:"interface" yaml:"interface"`
	Attribute string `json:"attribute" yaml:"attribute"`
}

// Excluded reports whether the entry carries the NoAttribute sentinel.
func (e Level1Entry) Excluded() bool {
	return e.Attribute == NoAttribute
}

// InterfaceKey is the interface token followed by one padding space. It
// keeps Bundle-Ether7.100 from matching Bundle-Ether7.1000.
func (e Level1Entry) InterfaceKey() string {
	return e.Interface + " "
}

func (e Level1Entry) String() string {
	return fmt.Sprintf("%s %s", e.Interface, e.Attribute)
}

// ObjectKind identifies the separately declared objects an interface
// references by naming convention.
type ObjectKind string

const (
	PolicyObject      ObjectKind = "policy-map"
	RoutePolicyObject ObjectKind = "route-policy"
)

// Keyword returns the declaration keyword that opens the object's block.
func (k ObjectKind) Keyword() string {
	return string(k)
}

// Terminator returns the line that closes the object's block.
func (k ObjectKind) Terminator() string {
	switch k {
	case PolicyObject:
		return "end-policy-map"
	case RoutePolicyObject:
		return "end-policy"
	default:
		return ""
	}
}

// Category returns the output category for the object kind.
func (k ObjectKind) Category() Category {
	if k == PolicyObject {
		return CategoryPolicyMap
	}
	return CategoryRoutePolicy
}

// StanzaKind identifies the single-line stanza kinds pulled per entry.
type StanzaKind string

const (
	StanzaVRF          StanzaKind = "vrf"
	StanzaInterface    StanzaKind = "interface"
	StanzaRouterBGP    StanzaKind = "router bgp"
	StanzaRouterStatic StanzaKind = "router static"
	StanzaRouterHSRP   StanzaKind = "router hsrp"
)

// StanzaKinds lists the simple kinds in extraction order.
var StanzaKinds = []StanzaKind{
	StanzaVRF,
	StanzaInterface,
	StanzaRouterBGP,
	StanzaRouterStatic,
	StanzaRouterHSRP,
}

// Keyword returns the leading keyword(s) of lines belonging to the kind.
func (k StanzaKind) Keyword() string {
	return string(k)
}

// Category returns the output category for the stanza kind.
func (k StanzaKind) Category() Category {
	switch k {
	case StanzaVRF:
		return CategoryVRF
	case StanzaInterface:
		return CategoryInterface
	case StanzaRouterBGP:
		return CategoryBGP
	case StanzaRouterStatic:
		return CategoryStatic
	case StanzaRouterHSRP:
		return CategoryHSRP
	default:
		return ""
	}
}

// ResolvedReference records the outcome of resolving one object kind for
// one entry. Name is nil when nothing matched.
type ResolvedReference struct {
	Entry Level1Entry `json:"entry" yaml:"entry"`
	Kind  ObjectKind  `json:"kind" yaml:"kind"`
	Name  *string     `json:"name,omitempty" yaml:"name,omitempty"`
}

// ExtractedStanza holds the lines of one simple kind found for one entry.
// Lines is empty when nothing matched.
type ExtractedStanza struct {
	Entry Level1Entry `json:"entry" yaml:"entry"`
	Kind  StanzaKind  `json:"kind" yaml:"kind"`
	Lines []string    `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// Found reports whether any line matched.
func (s ExtractedStanza) Found() bool {
	return len(s.Lines) > 0
}

// ExtractedBlock holds a delimited object block. Lines is nil when the
// declaration or its terminator was not found.
type ExtractedBlock struct {
	Name  string     `json:"name" yaml:"name"`
	Kind  ObjectKind `json:"kind" yaml:"kind"`
	Lines []string   `json:"lines,omitempty" yaml:"lines,omitempty"`
}

// Found reports whether the block was extracted.
func (b ExtractedBlock) Found() bool {
	return b.Lines != nil
}

// Miss is an advisory record for an entry or name that matched nothing.
type Miss struct {
	Category  Category `json:"category" yaml:"category"`
	Interface string   `json:"interface,omitempty" yaml:"interface,omitempty"`
	Attribute string   `json:"attribute,omitempty" yaml:"attribute,omitempty"`
	Name      string   `json:"name,omitempty" yaml:"name,omitempty"`
	Reason    string   `json:"reason" yaml:"reason"`
}

func (m Miss) String() string {
	var b strings.Builder
	b.WriteString(string(m.Category))
	if m.Interface != "" {
		fmt.Fprintf(&b, " interface=%s", m.Interface)
	}
	if m.Attribute != "" {
		fmt.Fprintf(&b, " vrf=%s", m.Attribute)
	}
	if m.Name != "" {
		fmt.Fprintf(&b, " name=%q", m.Name)
	}
	fmt.Fprintf(&b, ": %s", m.Reason)
	return b.String()
}

// Diagnostics collects misses per category in append order.
type Diagnostics map[Category][]Miss

// Add appends a miss under its category.
func (d Diagnostics) Add(m Miss) {
	d[m.Category] = append(d[m.Category], m)
}

// Merge appends every miss of other, category by category.
func (d Diagnostics) Merge(other Diagnostics) {
	for _, c := range Categories {
		for _, m := range other[c] {
			d.Add(m)
		}
	}
}

// Count returns the total number of misses.
func (d Diagnostics) Count() int {
	n := 0
	for _, ms := range d {
		n += len(ms)
	}
	return n
}
