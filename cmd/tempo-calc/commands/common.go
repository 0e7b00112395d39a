// Package commands implements the tempo-calc subcommands.
package commands

import (
	"github.com/tempo-kit/tempo-go/pkg/log"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitEvaluation   = 2
)

// newLogger returns a debug logger when verbose is set, otherwise a
// no-op logger so library calls stay silent.
func newLogger(verbose bool) log.Logger {
	if verbose {
		return log.NewZerologAdapter()
	}
	return log.NewNoopLogger()
}
