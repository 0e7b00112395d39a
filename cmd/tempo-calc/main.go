// tempo-calc is a CLI tool for exponentiation and duration arithmetic.
package main

import (
	"fmt"
	"os"

	"github.com/tempo-kit/tempo-go/cmd/tempo-calc/commands"
	"github.com/tempo-kit/tempo-go/cmd/tempo-calc/interactive"
	"github.com/tempo-kit/tempo-go/pkg/version"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitEvaluation   = 2
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(exitCommandError)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var exitCode int
	switch cmd {
	case "pow":
		exitCode = commands.RunPow(args, os.Stdout, os.Stderr)
	case "span":
		exitCode = commands.RunSpan(args, os.Stdout, os.Stderr)
	case "run":
		exitCode = commands.RunScenario(args, os.Stdout, os.Stderr)
	case "repl":
		exitCode = interactive.Run(args, os.Stdout, os.Stderr)
	case "help", "-h", "--help":
		printUsage()
		exitCode = exitSuccess
	case "version", "-v", "--version":
		fmt.Println("tempo-calc version " + version.Current)
		exitCode = exitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		exitCode = exitCommandError
	}

	os.Exit(exitCode)
}

func printUsage() {
	fmt.Println(`tempo-calc - exponentiation and duration arithmetic tool

Usage:
  tempo-calc <command> [options] [args...]

Commands:
  pow        Raise an integer to a power (wrapping or checked)
  span       Evaluate a duration expression
  run        Execute a YAML scenario file of operations
  repl       Start an interactive session

Options:
  -h, --help     Show this help message
  -v, --version  Show version information

Examples:
  tempo-calc pow 7 8 -type uint32 -checked
  tempo-calc span 1d2h30m + 45s x 2
  tempo-calc run scenario.yaml
  tempo-calc repl

For command-specific help, run:
  tempo-calc <command> --help`)
}
