package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"mnemo/config"
	"mnemo/dispatch"
	"mnemo/doctor"
	"mnemo/log"
	"mnemo/shutdown"
)

var version = "dev"

type options struct {
	configPath string
	version    bool
	doctor     bool
	inject     bool
	gui        bool
	test       bool
	global     bool
	crash      bool
}

// loadConfig reads file/env config and overlays command-line flags.
func loadConfig(args []string) (config.Config, options, error) {
	var opts options

	// --config has to be known before the file is read
	pre := flag.NewFlagSet("mnemo", flag.ContinueOnError)
	pre.ParseErrorsWhitelist.UnknownFlags = true
	pre.Usage = func() {}
	pre.StringVar(&opts.configPath, "config", "", "Directory containing mnemo.yaml")
	_ = pre.Parse(args)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, opts, err
	}

	fs := flag.NewFlagSet("mnemo", flag.ContinueOnError)
	cfg.AddFlags(fs)
	fs.StringVar(&opts.configPath, "config", opts.configPath, "Directory containing mnemo.yaml")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")
	fs.BoolVar(&opts.doctor, "doctor", false, "Run system diagnostics and exit")
	fs.BoolVar(&opts.inject, "inject", false, "With --doctor, inject a synthetic shortcut without asking")
	fs.BoolVar(&opts.gui, "gui", false, "Run the desktop window instead of the terminal UI (needs -tags gui)")
	fs.BoolVar(&opts.test, "test", false, "Test mode (headless, stdin-driven key script)")
	fs.BoolVar(&opts.global, "global", false, "Read keys from the OS (evdev or global hotkeys) instead of the terminal")
	fs.BoolVar(&opts.crash, "crash", false, "Trigger synthetic panic for testing crash logging")
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, opts, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, opts, nil
}

func initCrashLog(dir string) {
	crashPath := filepath.Join(dir, "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}

func setupLogging(cfg config.Config) {
	logPath, err := log.ResolveDir(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return
	}
	initCrashLog(logPath)

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
		return
	}
	log.SetDebug(cfg.Debug)
	log.SessionStart(cfg.Policy, revealKey(cfg))
}

// revealKey is the key that shows hints under cfg's policy.
func revealKey(cfg config.Config) string {
	if cfg.Policy == string(dispatch.PolicyToggle) {
		return cfg.ToggleKey
	}
	return cfg.Activator
}

func run() {
	cfg, opts, err := loadConfig(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.version {
		fmt.Printf("mnemo %s\n", version)
		os.Exit(0)
	}

	if opts.doctor {
		os.Exit(doctor.Run(doctor.Options{Activator: cfg.Activator, Inject: opts.inject}))
	}

	setupLogging(cfg)
	defer log.Close()

	if opts.crash {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if opts.test {
		code := runTestMode(cfg, os.Stdin, os.Stdout)
		log.Close()
		os.Exit(code)
	}

	if opts.gui {
		if err := runGUI(cfg); err != nil {
			log.Errorf("GUI error: %v", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: stdin is not a terminal (use --test for scripted input)")
		os.Exit(1)
	}

	ctx, stop := shutdown.Context(context.Background())
	defer stop()

	if err := runTUI(ctx, cfg, opts.global); err != nil {
		log.Errorf("TUI error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
