package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tempo-kit/tempo-go/pkg/duration"
	"github.com/tempo-kit/tempo-go/pkg/log"
)

// Scenario is a YAML file of operations executed in order.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is a single scenario operation. The fields used depend on Op:
//
//	pow:   type, base, exp, checked
//	span:  expr
//	cmp:   left, right
//	parse: text
type Step struct {
	Op      string `yaml:"op"`
	Type    string `yaml:"type"`
	Base    any    `yaml:"base"`
	Exp     uint   `yaml:"exp"`
	Checked bool   `yaml:"checked"`
	Expr    string `yaml:"expr"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Text    string `yaml:"text"`
}

// ScenarioOptions configures the run command.
type ScenarioOptions struct {
	Verbose bool
	File    string
}

// RunScenario runs the run command.
func RunScenario(args []string, stdout, stderr io.Writer) int {
	opts, err := parseScenarioArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printScenarioUsage(stderr)
		return exitCommandError
	}

	logger := newLogger(opts.Verbose)

	data, err := os.ReadFile(opts.File)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		fmt.Fprintf(stderr, "Error: invalid scenario file: %v\n", err)
		return exitCommandError
	}

	if scenario.Name != "" {
		fmt.Fprintf(stdout, "# %s\n", scenario.Name)
	}
	logger.Debug("loaded scenario",
		log.String("file", opts.File),
		log.Int("steps", len(scenario.Steps)),
	)

	failed := false
	for i, step := range scenario.Steps {
		result, err := execStep(step)
		if err != nil {
			fmt.Fprintf(stderr, "step %d (%s): %v\n", i+1, step.Op, err)
			failed = true
			continue
		}
		fmt.Fprintf(stdout, "step %d (%s): %s\n", i+1, step.Op, result)
	}

	if failed {
		return exitEvaluation
	}
	return exitSuccess
}

func execStep(step Step) (string, error) {
	switch step.Op {
	case "pow":
		typeName := step.Type
		if typeName == "" {
			typeName = "int64"
		}
		return EvalPow(typeName, fmt.Sprint(step.Base), step.Exp, step.Checked)
	case "span":
		if step.Expr == "" {
			return "", fmt.Errorf("missing expr")
		}
		d, err := EvalSpanExpr(strings.Fields(step.Expr))
		if err != nil {
			return "", err
		}
		return d.String(), nil
	case "cmp":
		left, err := EvalSpanExpr(strings.Fields(step.Left))
		if err != nil {
			return "", fmt.Errorf("left side: %w", err)
		}
		right, err := EvalSpanExpr(strings.Fields(step.Right))
		if err != nil {
			return "", fmt.Errorf("right side: %w", err)
		}
		switch left.Cmp(right) {
		case -1:
			return fmt.Sprintf("%s < %s", left, right), nil
		case 1:
			return fmt.Sprintf("%s > %s", left, right), nil
		default:
			return fmt.Sprintf("%s == %s", left, right), nil
		}
	case "parse":
		d, err := duration.Parse(step.Text)
		if err != nil {
			return "", fmt.Errorf("parse %q: %w", step.Text, err)
		}
		return d.String(), nil
	case "":
		return "", fmt.Errorf("missing op")
	default:
		return "", fmt.Errorf("unknown op %q", step.Op)
	}
}

func parseScenarioArgs(args []string) (ScenarioOptions, error) {
	var opts ScenarioOptions

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&opts.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&opts.Verbose, "v", false, "Enable debug logging (shorthand)")
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	rest := fs.Args()
	if len(rest) != 1 {
		return opts, fmt.Errorf("expected a scenario file")
	}
	opts.File = rest[0]
	return opts, nil
}

func printScenarioUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempo-calc run [options] <scenario.yaml>

The scenario file lists operations executed in order:

  name: example
  steps:
    - op: pow
      type: uint32
      base: 7
      exp: 8
      checked: true
    - op: span
      expr: 1d2h + 30m
    - op: cmp
      left: 1h
      right: 3600s
    - op: parse
      text: "1.500000000"

Options:
  -v  Enable debug logging`)
}
