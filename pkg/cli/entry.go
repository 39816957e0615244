package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/funvibe/tntc/internal/config"
	"github.com/funvibe/tntc/internal/diagnostics"
	"github.com/funvibe/tntc/internal/prettyprinter"
	"github.com/funvibe/tntc/pkg/tnt"
)

const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// stdinPath names the input when the source comes from stdin.
const stdinPath = "<stdin>"

const usage = `Usage: tntc <command> [flags] [file]

Commands:
  parse     parse and resolve a file, print the outcome as JSON
  print     parse a file and print it back in canonical form
  version   print the version
  help      show this message

Without a file, the source is read from stdin.
`

// Env is what a command sees of the process.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv is the environment of the running process.
func DefaultEnv() Env {
	return Env{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes one command line and returns the exit code.
func Run(args []string, env Env) (code int) {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r)
			}
			fmt.Fprintf(env.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(env.Stderr, "This is a bug. Please report it.")
			code = exitFail
		}
	}()

	if len(args) == 0 {
		fmt.Fprint(env.Stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "parse":
		return handleParse(args[1:], env)
	case "print":
		return handlePrint(args[1:], env)
	case "version", "-v", "-version", "--version":
		fmt.Fprintln(env.Stdout, "tntc "+config.Version)
		return exitOK
	case "help", "-help", "--help", "-h":
		fmt.Fprint(env.Stdout, usage)
		return exitOK
	}
	fmt.Fprintf(env.Stderr, "unknown command %q\n\n%s", args[0], usage)
	return exitUsage
}

// commonFlags are accepted by every command that reads a source file.
type commonFlags struct {
	configPath string
	color      string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "project file to use instead of the nearest "+config.ProjectFileName)
	fs.StringVar(&c.color, "color", "", "color diagnostics: auto, always or never")
	fs.StringVar(&c.logLevel, "log-level", "", "log level on stderr (panic .. trace)")
}

// session is the configured state of one command.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	color  bool
	source string
	path   string
}

func newSession(c *commonFlags, fs *pflag.FlagSet, env Env) (*session, error) {
	source, path, err := readInput(fs.Args(), env.Stdin)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(c.configPath, path)
	if err != nil {
		return nil, err
	}
	if fs.Changed("color") {
		switch c.color {
		case config.ColorAuto, config.ColorAlways, config.ColorNever:
			cfg.Color = c.color
		default:
			return nil, fmt.Errorf("--color: %q is not one of auto, always, never", c.color)
		}
	}
	level := cfg.Level()
	if fs.Changed("log-level") {
		if level, err = logrus.ParseLevel(c.logLevel); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}
	}

	s := &session{cfg: cfg, source: source, path: path}
	s.color = useColor(cfg.Color, env.Stderr)
	s.log = newLogger(env.Stderr, level, s.color)
	if cfg.Path() != "" {
		s.log.WithField("config", cfg.Path()).Debug("project file loaded")
	}
	return s, nil
}

func handleParse(args []string, env Env) int {
	fs := pflag.NewFlagSet("parse", pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	common.register(fs)
	sourceMapOut := fs.String("source-map", "", "write the source map to this file")
	noCompact := fs.Bool("no-compact", false, "write the full source map")
	table := fs.Bool("table", false, "include the resolution table in the output")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s, err := newSession(&common, fs, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitFail
	}

	var opts []tnt.Option
	opts = append(opts, tnt.WithLogger(s.log))
	if *noCompact || !s.cfg.CompactSourceMap() {
		opts = append(opts, tnt.WithoutCompaction())
	}
	if *table {
		opts = append(opts, tnt.WithTable())
	}
	outcome := tnt.Parse(s.source, s.path, opts...)

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitFail
	}
	fmt.Fprintln(env.Stdout, string(data))

	if !outcome.OK() {
		fmt.Fprint(env.Stderr, diagnostics.FormatAll(outcome.Errors, s.source, s.color))
		return exitFail
	}

	smPath := *sourceMapOut
	if smPath == "" && s.path != stdinPath {
		smPath = s.cfg.SourceMapPath(s.path)
	}
	if smPath != "" {
		if err := writeJSON(smPath, outcome.SourceMap); err != nil {
			fmt.Fprintln(env.Stderr, err)
			return exitFail
		}
		s.log.WithFields(logrus.Fields{
			"path":    smPath,
			"entries": outcome.SourceMap.Len(),
		}).Info("source map written")
	}
	return exitOK
}

func handlePrint(args []string, env Env) int {
	fs := pflag.NewFlagSet("print", pflag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	s, err := newSession(&common, fs, env)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitFail
	}

	r, errs := tnt.ParsePhase1(s.source, s.path)
	if len(errs) > 0 {
		fmt.Fprint(env.Stderr, diagnostics.FormatAll(errs, s.source, s.color))
		return exitFail
	}
	fmt.Fprint(env.Stdout, prettyprinter.Print(r.Module))
	return exitOK
}

// readInput reads the file named by args, or stdin when there is none.
func readInput(args []string, stdin io.Reader) (string, string, error) {
	if len(args) > 1 {
		return "", "", fmt.Errorf("expected one file, got %d", len(args))
	}
	if len(args) == 0 || args[0] == "-" {
		input, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(input), stdinPath, nil
	}
	path := args[0]
	if !config.HasSourceExt(path) {
		return "", "", fmt.Errorf("%s: expected one of %s", path, strings.Join(config.SourceFileExtensions, ", "))
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading input: %w", err)
	}
	return string(input), path, nil
}

// loadConfig reads the explicit project file, or the nearest one above the
// source file. No project file means defaults.
func loadConfig(explicit, sourcePath string) (*config.Config, error) {
	if explicit != "" {
		return config.LoadConfig(explicit)
	}
	dir := "."
	if sourcePath != stdinPath {
		dir = filepath.Dir(sourcePath)
	}
	found, err := config.FindConfig(dir)
	if err != nil {
		return nil, err
	}
	if found == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(found)
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newLogger(w io.Writer, level logrus.Level, color bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		ForceColors:      color,
		DisableColors:    !color,
		DisableTimestamp: true,
	})
	return l
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
