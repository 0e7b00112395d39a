package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tempo-kit/tempo-go/pkg/duration"
	"github.com/tempo-kit/tempo-go/pkg/log"
	"github.com/tempo-kit/tempo-go/pkg/numeric"
)

// spanUnits maps literal suffixes to their length in nanoseconds.
// Ordered longest suffix first so "ms" wins over "m" and "s".
var spanUnits = []struct {
	suffix string
	nanos  int64
}{
	{"ns", 1},
	{"µs", 1_000},
	{"us", 1_000},
	{"ms", 1_000_000},
	{"s", 1_000_000_000},
	{"m", 60 * 1_000_000_000},
	{"h", 3_600 * 1_000_000_000},
	{"d", 86_400 * 1_000_000_000},
	{"w", 604_800 * 1_000_000_000},
}

// ParseSpan parses a duration literal like "1d2h30m", "1500ms" or
// "-2.5s". A leading minus applies to the whole literal. Integer
// components are exact; fractional components are rounded to the
// nearest nanosecond.
func ParseSpan(s string) (duration.Duration, error) {
	input := s
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}
	if s == "" {
		return duration.Zero, fmt.Errorf("empty duration literal")
	}

	total := duration.Zero
	for len(s) > 0 {
		numEnd := 0
		for numEnd < len(s) && (s[numEnd] >= '0' && s[numEnd] <= '9' || s[numEnd] == '.') {
			numEnd++
		}
		if numEnd == 0 {
			return duration.Zero, fmt.Errorf("invalid duration literal %q: expected number at %q", input, s)
		}
		number := s[:numEnd]
		s = s[numEnd:]

		unitNanos := int64(0)
		for _, u := range spanUnits {
			if strings.HasPrefix(s, u.suffix) {
				unitNanos = u.nanos
				s = s[len(u.suffix):]
				break
			}
		}
		if unitNanos == 0 {
			return duration.Zero, fmt.Errorf("invalid duration literal %q: missing unit after %q", input, number)
		}

		component, err := spanComponent(number, unitNanos)
		if err != nil {
			return duration.Zero, fmt.Errorf("invalid duration literal %q: %w", input, err)
		}

		next, ok := total.CheckedAdd(component)
		if !ok {
			return duration.Zero, fmt.Errorf("duration literal %q overflows", input)
		}
		total = next
	}

	if negative {
		total = total.Neg()
	}
	return total, nil
}

func spanComponent(number string, unitNanos int64) (duration.Duration, error) {
	if !strings.Contains(number, ".") {
		n, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			return duration.Zero, err
		}
		if unitNanos >= 1_000_000_000 {
			secs, ok := numeric.CheckedMul(n, unitNanos/1_000_000_000)
			if !ok {
				return duration.Zero, fmt.Errorf("component %s overflows", number)
			}
			return duration.Seconds(secs), nil
		}
		total, ok := numeric.CheckedMul(n, unitNanos)
		if !ok {
			return duration.Zero, fmt.Errorf("component %s overflows", number)
		}
		return duration.Nanoseconds(total), nil
	}

	f, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return duration.Zero, err
	}
	d, ok := duration.CheckedSecondsFloat(f * float64(unitNanos) / 1e9)
	if !ok {
		return duration.Zero, fmt.Errorf("component %s overflows", number)
	}
	return d, nil
}

// EvalSpanExpr evaluates a left-to-right duration expression: a literal
// followed by operator/operand pairs. Operators are "+" and "-" with a
// literal operand, and "x" and "/" with an int32 operand.
func EvalSpanExpr(tokens []string) (duration.Duration, error) {
	if len(tokens) == 0 {
		return duration.Zero, fmt.Errorf("empty expression")
	}

	acc, err := ParseSpan(tokens[0])
	if err != nil {
		return duration.Zero, err
	}

	i := 1
	for i < len(tokens) {
		if i+1 >= len(tokens) {
			return duration.Zero, fmt.Errorf("operator %q is missing its operand", tokens[i])
		}
		op, operand := tokens[i], tokens[i+1]
		i += 2

		switch op {
		case "+", "-":
			rhs, err := ParseSpan(operand)
			if err != nil {
				return duration.Zero, err
			}
			var ok bool
			if op == "+" {
				acc, ok = acc.CheckedAdd(rhs)
			} else {
				acc, ok = acc.CheckedSub(rhs)
			}
			if !ok {
				return duration.Zero, fmt.Errorf("overflow evaluating %q %s %q", acc, op, operand)
			}
		case "x", "*":
			factor, err := strconv.ParseInt(operand, 10, 32)
			if err != nil {
				return duration.Zero, fmt.Errorf("invalid factor %q: %w", operand, err)
			}
			next, ok := acc.CheckedMul(int32(factor))
			if !ok {
				return duration.Zero, fmt.Errorf("overflow evaluating %q x %s", acc, operand)
			}
			acc = next
		case "/":
			divisor, err := strconv.ParseInt(operand, 10, 32)
			if err != nil {
				return duration.Zero, fmt.Errorf("invalid divisor %q: %w", operand, err)
			}
			next, ok := acc.CheckedDiv(int32(divisor))
			if !ok {
				return duration.Zero, fmt.Errorf("cannot divide %q by %s", acc, operand)
			}
			acc = next
		default:
			return duration.Zero, fmt.Errorf("unknown operator %q", op)
		}
	}

	return acc, nil
}

// SpanOptions configures the span command.
type SpanOptions struct {
	Verbose bool
	Tokens  []string
}

// RunSpan runs the span command.
func RunSpan(args []string, stdout, stderr io.Writer) int {
	opts, err := parseSpanArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printSpanUsage(stderr)
		return exitCommandError
	}

	logger := newLogger(opts.Verbose)
	logger.Debug("evaluating span expression", log.String("expr", strings.Join(opts.Tokens, " ")))

	// "cmp" splits the expression into two sides that are compared
	// instead of combined.
	for i, tok := range opts.Tokens {
		if tok != "cmp" {
			continue
		}
		left, err := EvalSpanExpr(opts.Tokens[:i])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitEvaluation
		}
		right, err := EvalSpanExpr(opts.Tokens[i+1:])
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitEvaluation
		}
		switch left.Cmp(right) {
		case -1:
			fmt.Fprintf(stdout, "%s < %s\n", left, right)
		case 0:
			fmt.Fprintf(stdout, "%s == %s\n", left, right)
		case 1:
			fmt.Fprintf(stdout, "%s > %s\n", left, right)
		}
		return exitSuccess
	}

	result, err := EvalSpanExpr(opts.Tokens)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvaluation
	}

	printSpan(stdout, result)
	return exitSuccess
}

func printSpan(w io.Writer, d duration.Duration) {
	text, _ := d.MarshalText()
	fmt.Fprintln(w, d)
	fmt.Fprintf(w, "  seconds: %s\n", text)
	fmt.Fprintf(w, "  millis:  %s\n", d.WholeMilliseconds())
	fmt.Fprintf(w, "  nanos:   %s\n", d.WholeNanoseconds())
}

// parseSpanArgs scans leading flags by hand: a negative literal such as
// "-2.5s" must not be mistaken for a flag.
func parseSpanArgs(args []string) (SpanOptions, error) {
	var opts SpanOptions

	rest := args
	for len(rest) > 0 {
		switch rest[0] {
		case "-v", "-verbose", "--verbose":
			opts.Verbose = true
			rest = rest[1:]
			continue
		case "--":
			rest = rest[1:]
		}
		break
	}

	opts.Tokens = rest
	if len(opts.Tokens) == 0 {
		return opts, fmt.Errorf("expected a duration expression")
	}
	return opts, nil
}

func printSpanUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempo-calc span [options] <expr>...

An expression is a duration literal (1d2h30m, 1500ms, -2.5s) optionally
followed by operator/operand pairs:
  + <literal>   add
  - <literal>   subtract
  x <int>       multiply
  / <int>       divide
  cmp <expr>    compare the two sides

Options:
  -v  Enable debug logging

Examples:
  tempo-calc span 1d2h30m + 45s
  tempo-calc span 1h / 3 cmp 20m`)
}
