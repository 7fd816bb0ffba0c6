package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/njchilds90/domsanitizer"
	"github.com/njchilds90/domsanitizer/internal/config"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	metricsOut string

	cfg       config.Config
	logger    zerolog.Logger
	registry  *prometheus.Registry
	sanitizer *domsanitizer.Sanitizer
}

// newRootCommand builds the domsanitize command tree.
func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "domsanitize",
		Short: "Sanitize untrusted text, HTML and JSON before it reaches a page",
		Long: `domsanitize runs untrusted content through the same policy the browser
extension uses before rendering server replies or importing settings.

Input is read from the file argument, or from stdin when no file (or "-")
is given. Sanitized output goes to stdout; diagnostics go to stderr.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return a.writeMetrics()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file path (optional, uses env vars by default)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (json, console) (default: json)")
	flags.StringVar(&a.metricsOut, "metrics-out", "", "write removal counters to this Prometheus textfile")

	root.AddCommand(
		newHTMLCmd(a),
		newTextCmd(a),
		newJSONCmd(a),
		newStripCmd(a),
		newURLCmd(a),
		newPolicyCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	a.cfg = cfg
	a.logger = config.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	a.registry = prometheus.NewRegistry()
	a.sanitizer = domsanitizer.New(
		domsanitizer.WithLogger(a.logger),
		domsanitizer.WithMetrics(domsanitizer.NewMetrics(a.registry)),
		domsanitizer.WithMaxTextLength(cfg.Sanitizer.MaxTextLength),
	)
	return nil
}

func (a *app) writeMetrics() error {
	if a.metricsOut == "" || a.registry == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(a.metricsOut, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Debug().Str("path", a.metricsOut).Msg("metrics written")
	return nil
}

// readInput returns the contents of args[0], or stdin when it is absent or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
