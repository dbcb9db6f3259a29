// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"

	"github.com/pdiddy/overlay-extract/internal/config"
	"github.com/pdiddy/overlay-extract/internal/output"
	"github.com/pdiddy/overlay-extract/internal/selector"
	"github.com/pdiddy/overlay-extract/internal/stanza"
)

// Exit codes, one per fatal error class.
const (
	exitFailure         = 1
	exitUnreadable      = 2
	exitInvalidInput    = 3
	exitMissingArtifact = 4
	exitStructural      = 5
	exitNoOutputDir     = 6
)

var exitCodes = []struct {
	err  error
	code int
}{
	{stanza.ErrUnreadable, exitUnreadable},
	{selector.ErrInvalidSpec, exitInvalidInput},
	{config.ErrInvalidConfig, exitInvalidInput},
	{output.ErrMissingArtifact, exitMissingArtifact},
	{selector.ErrStructural, exitStructural},
	{output.ErrNoOutputDir, exitNoOutputDir},
}

// exitCode returns the process exit code for err.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return exitFailure
}
