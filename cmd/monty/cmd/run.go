package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mwildehahn/monty/internal/logging"
	"github.com/mwildehahn/monty/pkg/monty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Monty script file or inline expression",
	Long: `Execute a Monty script from a file or inline expression, returning
the value of its final expression.

Examples:
  # Run a script file
  monty run script.py

  # Evaluate an inline expression
  monty run -e "1 + 2"

  # Apply resource limits from a config file
  monty run --config limits.yaml script.py`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (resource limits, script name)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string
	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	cfg := monty.DefaultConfig()
	if configPath != "" {
		loaded, err := monty.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if cfg.ScriptName == "<monty>" {
		cfg.ScriptName = filename
	}

	m, err := monty.New(source, nil, cfg.ScriptName)
	if err != nil {
		return err
	}

	opts := monty.RunOptions{
		Limits: cfg.Limits(),
		OS:     realOSAccess(),
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s]\n", filename)
		opts.Log = logging.New(os.Stderr, logrus.DebugLevel)
	}

	result, err := m.Run(nil, opts)
	if err != nil {
		if scriptErr, ok := err.(*monty.ScriptError); ok {
			fmt.Fprintf(os.Stderr, "Traceback:\n%s\n", scriptErr.Exc.String())
			return fmt.Errorf("execution failed")
		}
		return err
	}
	if result != nil {
		fmt.Println(result)
	}
	return nil
}

// realOSAccess wires the CLI's own process clock and standard streams
// into the OSAccess capability the evaluator never touches directly
// (§5 "Determinism", §6 "OSAccess capability") — the host boundary is
// exactly this command, not the interpreter.
func realOSAccess() *monty.OSAccess {
	return &monty.OSAccess{
		ClockLocal: func() (int, int, int, int, int, int, int, int64) {
			now := time.Now()
			_, offset := now.Zone()
			return now.Year(), int(now.Month()), now.Day(),
				now.Hour(), now.Minute(), now.Second(), now.Nanosecond() / 1000,
				int64(offset)
		},
		StdoutWrite: func(p []byte) { os.Stdout.Write(p) },
		StderrWrite: func(p []byte) { os.Stderr.Write(p) },
	}
}
