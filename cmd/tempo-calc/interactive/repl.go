// Package interactive provides the interactive session for tempo-calc.
package interactive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tempo-kit/tempo-go/cmd/tempo-calc/commands"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

// Session handles an interactive tempo-calc session.
type Session struct {
	rl      *readline.Instance
	verbose bool
}

// New creates a new interactive session handler.
func New(verbose bool) (*Session, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tempo> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".tempo-calc_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	return &Session{rl: rl, verbose: verbose}, nil
}

// Run starts the repl command.
func Run(args []string, stdout, stderr io.Writer) int {
	verbose := false
	for _, arg := range args {
		switch arg {
		case "-v", "-verbose", "--verbose":
			verbose = true
		default:
			fmt.Fprintf(stderr, "Unknown argument: %s\n", arg)
			return exitCommandError
		}
	}

	s, err := New(verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	s.Loop()
	return exitSuccess
}

// Loop reads and dispatches commands until the session ends.
func (s *Session) Loop() {
	defer s.rl.Close()

	s.printHelp()

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]
		if s.verbose {
			args = append([]string{"-v"}, args...)
		}

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "pow", "p":
			commands.RunPow(args, s.rl.Stdout(), s.rl.Stderr())

		case "span", "s":
			commands.RunSpan(args, s.rl.Stdout(), s.rl.Stderr())

		case "run":
			commands.RunScenario(args, s.rl.Stdout(), s.rl.Stderr())

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Session) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
tempo-calc commands:
  pow [options] <base> <exp>  - Raise an integer to a power
  span [options] <expr>...    - Evaluate a duration expression
  run <scenario.yaml>         - Execute a scenario file
  help                        - Show this help
  quit                        - Exit the session

Examples:
  pow -type uint32 -checked 7 8
  span 1d2h30m + 45s x 2
  span 1h / 3 cmp 20m`)
}
