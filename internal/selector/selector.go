// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selector validates the target interface specification and picks
// the interface/VRF pairs it selects from a configuration document.
package selector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/overlay-extract/internal/stanza"
	"github.com/pdiddy/overlay-extract/pkg/types"
)

var (
	// ErrInvalidSpec is returned when the interface specification matches
	// neither accepted pattern.
	ErrInvalidSpec = errors.New("invalid interface specification")

	// ErrStructural is returned when a selected declaration line does not
	// have the expected field layout.
	ErrStructural = errors.New("unexpected declaration layout")
)

var (
	exactPattern  = regexp.MustCompile(`^Bundle-Ether[0-9]{1,5}\.[0-9]{1,5}$`)
	familyPattern = regexp.MustCompile(`^Bundle-Ether[0-9]{1,5}$`)
)

// Field positions on an "interface <name> vrf <vrf>" line, counted from 1.
const (
	fieldInterface = 2
	fieldVRF       = 4
	minFields      = fieldVRF
)

const (
	interfaceKeyword = "interface"
	vrfKeyword       = "vrf"
)

// ParseSpec validates s and returns the InterfaceSpec it denotes.
func ParseSpec(s string) (types.InterfaceSpec, error) {
	switch {
	case exactPattern.MatchString(s):
		bundle, sub, _ := strings.Cut(s, ".")
		return types.InterfaceSpec{Bundle: bundle, Sub: sub}, nil
	case familyPattern.MatchString(s):
		return types.InterfaceSpec{Bundle: s, Family: true}, nil
	default:
		return types.InterfaceSpec{}, fmt.Errorf("%w %q: want Bundle-EtherN or Bundle-EtherN.M", ErrInvalidSpec, s)
	}
}

// Options tunes selection.
type Options struct {
	// IncludeGlobal emits interfaces matching the spec that never declare
	// a VRF, once each at first appearance, with types.NoAttribute.
	IncludeGlobal bool
}

// Select returns the interface/VRF pairs declared by interfaces matching
// spec, in document order. Duplicates are kept. No match is not an error.
//
// A line is selected when its first field is "interface", its second
// field matches spec and a later field is "vrf". The VRF name is taken
// from field 4; a selected line with fewer fields returns ErrStructural.
// A line whose "vrf" is not field 3 still yields field 4.
func Select(doc *stanza.Document, spec types.InterfaceSpec, opts Options) ([]types.Level1Entry, error) {
	withVRF := make(map[string]bool)
	if opts.IncludeGlobal {
		for i := 0; i < doc.Len(); i++ {
			if name, ok := interfaceOf(doc.Line(i), spec); ok && declaresVRF(stanza.Split(doc.Line(i))) {
				withVRF[name] = true
			}
		}
	}

	var entries []types.Level1Entry
	emitted := make(map[string]bool)

	for i := 0; i < doc.Len(); i++ {
		line := doc.Line(i)
		name, ok := interfaceOf(line, spec)
		if !ok {
			continue
		}

		f := stanza.Split(line)
		if !declaresVRF(f) {
			if opts.IncludeGlobal && !withVRF[name] && !emitted[name] {
				emitted[name] = true
				entries = append(entries, types.Level1Entry{Interface: name, Attribute: types.NoAttribute})
			}
			continue
		}

		vrf, ok := f.At(fieldVRF)
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %q has %d fields, want at least %d",
				ErrStructural, i+1, line, len(f), minFields)
		}
		entries = append(entries, types.Level1Entry{Interface: name, Attribute: vrf})
	}

	return entries, nil
}

// interfaceOf returns the interface token of line when line is an
// interface declaration selected by spec.
func interfaceOf(line string, spec types.InterfaceSpec) (string, bool) {
	if !stanza.IsStart(line, stanza.Word(interfaceKeyword)) {
		return "", false
	}
	name, ok := stanza.Split(line).At(fieldInterface)
	if !ok || !spec.Matches(name) {
		return "", false
	}
	return name, true
}

func declaresVRF(f stanza.Fields) bool {
	return f.Index(vrfKeyword, fieldInterface+1) > 0
}
