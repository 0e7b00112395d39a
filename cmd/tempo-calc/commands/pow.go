package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tempo-kit/tempo-go/pkg/log"
	"github.com/tempo-kit/tempo-go/pkg/numeric"
)

// PowOptions configures the pow command.
type PowOptions struct {
	Type    string
	Checked bool
	Verbose bool
	Base    string
	Exp     uint
}

// RunPow runs the pow command.
func RunPow(args []string, stdout, stderr io.Writer) int {
	opts, err := parsePowArgs(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		printPowUsage(stderr)
		return exitCommandError
	}

	logger := newLogger(opts.Verbose)
	logger.Debug("evaluating power",
		log.String("type", opts.Type),
		log.String("base", opts.Base),
		log.Uint("exp", opts.Exp),
		log.Bool("checked", opts.Checked),
	)

	result, err := EvalPow(opts.Type, opts.Base, opts.Exp, opts.Checked)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitEvaluation
	}

	fmt.Fprintln(stdout, result)
	return exitSuccess
}

// EvalPow evaluates base^exp in the named numeric type. With checked set
// the evaluation reports overflow instead of wrapping.
func EvalPow(typeName, base string, exp uint, checked bool) (string, error) {
	switch typeName {
	case "int8":
		return powSigned[int8](base, 8, exp, checked)
	case "int16":
		return powSigned[int16](base, 16, exp, checked)
	case "int32":
		return powSigned[int32](base, 32, exp, checked)
	case "int64", "int":
		return powSigned[int64](base, 64, exp, checked)
	case "uint8":
		return powUnsigned[uint8](base, 8, exp, checked)
	case "uint16":
		return powUnsigned[uint16](base, 16, exp, checked)
	case "uint32":
		return powUnsigned[uint32](base, 32, exp, checked)
	case "uint64", "uint":
		return powUnsigned[uint64](base, 64, exp, checked)
	case "float32":
		if checked {
			return "", fmt.Errorf("checked mode supports integer types only")
		}
		v, err := strconv.ParseFloat(base, 32)
		if err != nil {
			return "", fmt.Errorf("invalid base %q: %w", base, err)
		}
		return strconv.FormatFloat(float64(numeric.Pow(float32(v), exp)), 'g', -1, 32), nil
	case "float64":
		if checked {
			return "", fmt.Errorf("checked mode supports integer types only")
		}
		v, err := strconv.ParseFloat(base, 64)
		if err != nil {
			return "", fmt.Errorf("invalid base %q: %w", base, err)
		}
		return strconv.FormatFloat(numeric.Pow(v, exp), 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("unknown type %q", typeName)
	}
}

func powSigned[T numeric.Signed](base string, bits int, exp uint, checked bool) (string, error) {
	v, err := strconv.ParseInt(base, 10, bits)
	if err != nil {
		return "", fmt.Errorf("invalid %d-bit base %q: %w", bits, base, err)
	}
	if checked {
		result, ok := numeric.CheckedPow(T(v), exp)
		if !ok {
			return "", fmt.Errorf("overflow: %s^%d does not fit in int%d", base, exp, bits)
		}
		return strconv.FormatInt(int64(result), 10), nil
	}
	return strconv.FormatInt(int64(numeric.Pow(T(v), exp)), 10), nil
}

func powUnsigned[T numeric.Unsigned](base string, bits int, exp uint, checked bool) (string, error) {
	v, err := strconv.ParseUint(base, 10, bits)
	if err != nil {
		return "", fmt.Errorf("invalid %d-bit base %q: %w", bits, base, err)
	}
	if checked {
		result, ok := numeric.CheckedPow(T(v), exp)
		if !ok {
			return "", fmt.Errorf("overflow: %s^%d does not fit in uint%d", base, exp, bits)
		}
		return strconv.FormatUint(uint64(result), 10), nil
	}
	return strconv.FormatUint(uint64(numeric.Pow(T(v), exp)), 10), nil
}

// parsePowArgs scans flags by hand so they may appear before or after
// the positional arguments, and so a negative base like "-3" is never
// mistaken for a flag. The base itself is validated later by EvalPow:
// whether it parses depends on the -type it is evaluated in.
func parsePowArgs(args []string) (PowOptions, error) {
	opts := PowOptions{Type: "int64"}

	var rest []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-type" || arg == "--type":
			if i+1 >= len(args) {
				return opts, fmt.Errorf("flag -type needs a value")
			}
			i++
			opts.Type = args[i]
		case strings.HasPrefix(arg, "-type="):
			opts.Type = strings.TrimPrefix(arg, "-type=")
		case strings.HasPrefix(arg, "--type="):
			opts.Type = strings.TrimPrefix(arg, "--type=")
		case arg == "-checked" || arg == "--checked":
			opts.Checked = true
		case arg == "-v" || arg == "-verbose" || arg == "--verbose":
			opts.Verbose = true
		default:
			rest = append(rest, arg)
		}
	}

	if len(rest) != 2 {
		return opts, fmt.Errorf("expected <base> and <exp> arguments")
	}
	opts.Base = rest[0]

	exp, err := strconv.ParseUint(rest[1], 10, 64)
	if err != nil {
		return opts, fmt.Errorf("invalid exponent %q: %w", rest[1], err)
	}
	opts.Exp = uint(exp)

	return opts, nil
}

func printPowUsage(w io.Writer) {
	fmt.Fprintln(w, `
Usage: tempo-calc pow <base> <exp> [options]

Options may appear before or after the arguments:
  -type TYPE  Numeric type: int8..int64, uint8..uint64, float32, float64
              (default int64)
  -checked    Report overflow instead of wrapping
  -v          Enable debug logging

Examples:
  tempo-calc pow 2 10
  tempo-calc pow 7 8 -type uint32 -checked`)
}
