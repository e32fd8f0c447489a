package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/codeintel/internal/config"
	"github.com/dshills/codeintel/internal/document"
	"github.com/dshills/codeintel/internal/intel"
	"github.com/dshills/codeintel/internal/log"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// app holds the state shared by all commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	langName   string
	format     string

	// mu guards cfg, engine and out while watch reloads in the background.
	mu       sync.Mutex
	cfg      config.Config
	logger   *log.Logger
	closeLog func() error
	engine   *intel.Engine
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "codeintel",
		Short: "Code intelligence for source files",
		Long: `codeintel detects fold regions, matches brackets, computes indentation and
highlights source text using per-language rule sets.

Files are read from the path given as the last argument, or from standard
input when the path is "-" or omitted. The language is resolved from the
file name unless --lang is given.`,
		Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.setup() },
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default: "+config.DefaultPath()+")")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVarP(&a.langName, "lang", "l", "", "language ID, alias or extension")
	flags.StringVarP(&a.format, "format", "f", formatText, "output format (text, json, yaml)")

	root.AddCommand(
		a.languagesCmd(),
		a.themesCmd(),
		a.exportLanguageCmd(),
		a.foldsCmd(),
		a.matchCmd(),
		a.indentCmd(),
		a.reindentCmd(),
		a.highlightCmd(),
		a.configCmd(),
		a.watchCmd(),
	)
	return root
}

// setup loads the configuration and builds the engine.
func (a *app) setup() error {
	switch a.format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("invalid format %q (must be text, json, or yaml)", a.format)
	}
	if a.logLevel != "" && !log.ValidLevel(a.logLevel) {
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", a.logLevel)
	}

	cfg, err := config.Load(a.resolvedConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	a.cfg = cfg

	logger, closeLog, err := cfg.Logger()
	if err != nil {
		return err
	}
	a.logger, a.closeLog = logger, closeLog

	a.engine, err = intel.NewFromConfig(cfg, intel.WithLogger(logger))
	if err != nil {
		return err
	}
	return nil
}

func (a *app) resolvedConfigPath() string {
	if a.configPath != "" {
		return config.ExpandPath(a.configPath)
	}
	return config.DefaultPath()
}

// close releases the engine and the log output.
func (a *app) close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.engine != nil {
		a.engine.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// open reads the input named by args into a document.
func (a *app) open(args []string) (*document.Document, error) {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	opts := []document.Option{document.WithLanguage(a.langName)}
	if path != "-" {
		return document.Open(a.engine, path, opts...)
	}
	data, err := io.ReadAll(a.in)
	if err != nil {
		return nil, fmt.Errorf("reading standard input: %w", err)
	}
	return document.New(a.engine, "", string(data), opts...), nil
}

// print writes v in the selected format. Text output is produced by text.
func (a *app) print(v any, text func(w io.Writer) error) error {
	switch a.format {
	case formatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(a.out)
	}
}

// errNoStdinPath is returned when a command needs a file but reads stdin.
var errNoStdinPath = errors.New("a file path is required")

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
