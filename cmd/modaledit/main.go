// Package main is the entry point for the modaledit demo editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/modaledit/internal/command"
	"github.com/dshills/modaledit/internal/config"
	"github.com/dshills/modaledit/internal/host"
	"github.com/dshills/modaledit/internal/log"
	"github.com/dshills/modaledit/internal/plugin"
	"github.com/dshills/modaledit/internal/session"
	"github.com/dshills/modaledit/internal/trace"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	mode        string
	logLevel    string
	traceKeys   bool
	writeConfig bool
	files       []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.writeConfig {
		if err := config.WriteDefault(opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Printf("Wrote default configuration to %s\n", opts.configPath)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	// Command-line flags override the config file.
	if opts.mode != "" {
		m, ok := command.ModeFromName(opts.mode)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", opts.mode)
			return 1
		}
		cfg.Mode = m
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.traceKeys {
		cfg.TraceEnabled = true
	}
	if len(opts.files) > 0 {
		data, err := os.ReadFile(opts.files[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		cfg.Text = string(data)
	}

	// The terminal owns stdout; logs go to a file when tracing, otherwise
	// they are dropped.
	logger := log.Null
	if cfg.TraceEnabled {
		f, err := os.OpenFile("modaledit.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		logger = log.New(log.Config{
			Level:  log.ParseLevel(cfg.LogLevel),
			Output: f,
			Prefix: "modaledit",
		})
	}
	log.SetDefault(logger)

	var tracer trace.Recorder = trace.Nop{}
	if cfg.TraceEnabled {
		tracer = trace.NewLogRecorder(logger)
	}

	var hooks session.HookRunner
	if len(cfg.HookScripts) > 0 {
		runner := plugin.NewRunner(logger)
		defer runner.Close()
		for _, script := range cfg.HookScripts {
			if err := runner.LoadFile(script); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return 1
			}
		}
		hooks = runner
	}

	sess := session.New(session.Config{
		Mode:   cfg.Mode,
		Text:   cfg.Text,
		Tracer: tracer,
		Hooks:  hooks,
		Logger: logger,
	})

	term, err := host.New(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init terminal: %v\n", err)
		return 1
	}
	defer term.Shutdown()

	if err := term.Run(sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "modaledit.json", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "modaledit.json", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.mode, "mode", "", "Initial mode (vim-normal, vim-insert, vim-visual, emacs)")
	flag.StringVar(&opts.mode, "m", "", "Initial mode (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.traceKeys, "trace", false, "Trace key handling to modaledit.log")
	flag.BoolVar(&opts.writeConfig, "write-config", false, "Write a default config file and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Modaledit - modal text editing demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: modaledit [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Ctrl+Q quits.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  modaledit                   Open with empty buffer\n")
		fmt.Fprintf(os.Stderr, "  modaledit file.txt          Open a file\n")
		fmt.Fprintf(os.Stderr, "  modaledit -m emacs          Start in Emacs mode\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Modaledit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.files = flag.Args()
	return opts
}
