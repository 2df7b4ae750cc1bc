package cmd

import (
	"fmt"
	"os"
	"strings"

	"globcat/pkg/concat"
	"globcat/pkg/config"
	"globcat/pkg/logging"
	"globcat/pkg/report"
	"globcat/pkg/version"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flags struct {
	output      string
	interactive bool
	describe    bool
	exclude     []string
	color       string
	configFile  string
	logFile     string
	debug       bool
}

func init() {
	f := RootCmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "output file (default \""+concat.DefaultOutput+"\")")
	f.BoolVarP(&flags.interactive, "interactive", "i", false, "prompt for a pattern and confirm each file")
	f.BoolVarP(&flags.describe, "describe", "d", false, "add a size description line before each file")
	f.StringArrayVarP(&flags.exclude, "exclude", "e", nil, "name glob to leave out (repeatable)")
	f.StringVar(&flags.color, "color", "", "colorize messages: auto, always or never")
	f.StringVar(&flags.configFile, "config", "", "user config file (default $XDG_CONFIG_HOME/globcat/config.yaml)")
	f.StringVar(&flags.logFile, "log-file", "", "write diagnostic logs to this file")
	f.BoolVar(&flags.debug, "debug", false, "enable debug diagnostics")
}

// runCombine resolves configuration and flags into RunOptions and runs the
// concatenation.
func runCombine(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ignored, err := config.LoadIgnoreFile(config.IgnoreFileName)
	if err != nil {
		return err
	}
	cfg.Exclude = append(cfg.Exclude, ignored...)
	applyFlags(cmd, cfg)

	mode, err := report.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	sink := report.NewConsole(report.Config{
		Color: mode.Enabled(os.Stdout),
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	})

	logger, err := logging.Setup(logging.Options{
		Debug:      cfg.Debug,
		File:       cfg.LogFile,
		AppName:    "globcat",
		AppVersion: version.Version,
	})
	if err != nil {
		sink.Warn(fmt.Sprintf("diagnostic logging disabled: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	patterns, output := splitArgs(args, cfg.Output, cmd.Flags().Changed("output"))
	opts := concat.RunOptions{
		Patterns:    patterns,
		Output:      output,
		Interactive: cfg.Interactive,
		Describe:    cfg.Describe,
		Exclude:     cfg.Exclude,
	}

	runner := &concat.Runner{
		Prompter: report.NewPrompter(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout()),
		Sink:     sink,
		Logger:   logger,
	}
	if _, err := runner.Run(cmd.Context(), opts); err != nil {
		logger.Error("globcat run failed", zap.Error(err))
		sink.Error(err.Error())
		return &reportedError{err: err}
	}
	return nil
}

// loadConfig reads the user and project files; --config replaces the user file.
func loadConfig() (*config.Config, error) {
	if flags.configFile != "" {
		return config.Load(flags.configFile, config.ProjectFileName)
	}
	return config.LoadDefault()
}

// applyFlags overrides file settings with flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("interactive") {
		cfg.Interactive = flags.interactive
	}
	if changed("describe") {
		cfg.Describe = flags.describe
	}
	if changed("exclude") {
		cfg.Exclude = append(cfg.Exclude, flags.exclude...)
	}
	if changed("color") {
		cfg.Color = flags.color
	}
	if changed("log-file") {
		cfg.LogFile = flags.logFile
	}
	if changed("debug") {
		cfg.Debug = flags.debug
	}
}

// splitArgs separates patterns from the trailing output argument. An explicit
// --output wins; otherwise the last of two or more arguments is the output,
// unless it contains a glob character, in which case every argument is a
// pattern.
func splitArgs(args []string, output string, outputFlagSet bool) ([]string, string) {
	if outputFlagSet || len(args) < 2 || strings.ContainsAny(args[len(args)-1], "*?") {
		return args, output
	}
	return args[:len(args)-1], args[len(args)-1]
}
