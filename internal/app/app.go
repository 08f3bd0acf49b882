package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/bcnbhd/config"
	"github.com/katalvlaran/bcnbhd/internal/logging"
	nb "github.com/katalvlaran/bcnbhd/neighborhood"
	"github.com/katalvlaran/bcnbhd/progress"
)

// Version is the release string printed by "bcnbhd version".
const Version = "0.3.0"

const (
	exitOK      = 0
	exitUsage   = 2
	exitRuntime = 3

	metricsNamespace = "bcnbhd"
)

type command struct {
	args    string
	summary string
	run     func(r *runner, args []string) error
}

var commands = map[string]command{
	"count":    {"[flags] <reads.fq>", "count barcode sequences in a FASTQ file", runCount},
	"collapse": {"[flags] <counts.txt>", "group barcodes into one-edit neighborhoods", runCollapse},
	"umi":      {"[flags] <barcodes.fq>", "tabulate UMIs per barcode from umi= header tags", runUMI},
	"group":    {"[flags] <barcodes.fq> <reads.fq>", "bin paired reads by barcode neighborhood", runGroup},
	"tabulate": {"[flags] <counts.txt>...", "write a barcode-by-sample count matrix", runTabulate},
}

// usageError marks failures caused by the command line itself.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

// IsBrokenPipe reports whether err comes from writing to a closed pipe,
// as when output is piped into head.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Run executes argv (without the program name) and returns the exit code.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// RunContext is Run with a context checked between processing phases.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if len(argv) == 0 {
		return finish(printUsage(stdout), stderr)
	}

	name, args := argv[0], argv[1:]
	switch name {
	case "-h", "-help", "--help", "help":
		return finish(printUsage(stdout), stderr)
	case "-version", "--version", "version":
		_, err := fmt.Fprintf(stdout, "bcnbhd version %s\n", Version)
		return finish(err, stderr)
	}

	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "bcnbhd: unknown command %q\n", name)
		_ = printUsage(stderr)
		return exitUsage
	}

	r := &runner{ctx: ctx, name: name, cmd: cmd, stdout: stdout, stderr: stderr}
	err := cmd.run(r, args)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if cerr := r.close(); err == nil {
		err = cerr
	}
	return finish(err, stderr)
}

func finish(err error, stderr io.Writer) int {
	var uerr usageError
	switch {
	case err == nil, IsBrokenPipe(err):
		return exitOK
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "bcnbhd: %v\n", err)
		return exitUsage
	default:
		fmt.Fprintf(stderr, "bcnbhd: %v\n", err)
		return exitRuntime
	}
}

func printUsage(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "bcnbhd %s: barcode error-neighborhood clustering\n\nUsage:\n  bcnbhd <command> [flags] <inputs>\n\nCommands:\n", Version)
	names := make([]string, 0, len(commands))
	for n := range commands {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(bw, "  %-9s %s\n", n, commands[n].summary)
	}
	fmt.Fprintf(bw, "\nRun \"bcnbhd <command> -h\" for command flags.\n")
	return bw.Flush()
}

// runner carries the state of one subcommand invocation.
type runner struct {
	ctx    context.Context
	name   string
	cmd    command
	stdout io.Writer
	stderr io.Writer

	cfg      config.Config
	log      *zap.Logger
	reg      *prometheus.Registry
	progress *progress.Logger
	opts     []nb.Option
}

// flagSet returns a FlagSet with the shared flags bound to r.cfg, whose
// defaults come from --config when given.
func (r *runner) flagSet(args []string) (*flag.FlagSet, error) {
	r.cfg = config.Default()
	if path := configPath(args); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, usageError{err}
		}
		r.cfg = cfg
	}

	fs := flag.NewFlagSet("bcnbhd "+r.name, flag.ContinueOnError)
	fs.SetOutput(r.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: bcnbhd %s %s\n\n%s.\n\nFlags:\n", r.name, r.cmd.args, r.cmd.summary)
		fs.PrintDefaults()
	}

	fs.String("config", "", "YAML settings file; flags override it")
	fs.StringVar(&r.cfg.LogLevel, "log-level", r.cfg.LogLevel, "log level: debug, info, warn, error")
	fs.BoolVar(&r.cfg.Quiet, "quiet", r.cfg.Quiet, "disable logging")
	fs.StringVar(&r.cfg.Metrics, "metrics", r.cfg.Metrics, "write Prometheus metrics to this file at exit")
	fs.StringVar(&r.cfg.Traversal, "traversal", r.cfg.Traversal, "neighborhood search order: dfs or bfs")
	fs.BoolVar(&r.cfg.Header, "header", r.cfg.Header, "write column headers")
	fs.IntVar(&r.cfg.ProgressEvery, "progress-every", r.cfg.ProgressEvery, "log progress every N clustered sequences (0 = summary only)")
	return fs, nil
}

// parse parses args and prepares logging, metrics and clustering options.
// It returns the positional arguments.
func (r *runner) parse(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, usageError{err}
	}
	rest := fs.Args()
	if len(rest) < minArgs || (maxArgs >= 0 && len(rest) > maxArgs) {
		fs.Usage()
		return nil, usagef("%s: expected %s", r.name, r.cmd.args)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, usageError{err}
	}

	if r.cfg.Quiet {
		r.log = logging.Quiet()
	} else {
		log, err := logging.New(r.cfg.LogLevel, r.stderr)
		if err != nil {
			return nil, usageError{err}
		}
		r.log = log.With(zap.String("command", r.name))
	}

	tr, err := nb.ParseTraversal(r.cfg.Traversal)
	if err != nil {
		return nil, usageError{err}
	}
	r.progress, err = progress.NewLogger(r.log, r.cfg.ProgressEvery)
	if err != nil {
		return nil, usageError{err}
	}
	observers := []nb.Observer{r.progress}
	if r.cfg.Metrics != "" {
		r.reg = prometheus.NewRegistry()
		m, err := progress.NewMetrics(r.reg, metricsNamespace)
		if err != nil {
			return nil, err
		}
		observers = append(observers, m)
	}
	r.opts = []nb.Option{nb.WithTraversal(tr), nb.WithObserver(progress.Multi(observers...))}
	return rest, nil
}

// phase logs the start of a processing step and reports cancellation.
func (r *runner) phase(name string, fields ...zap.Field) error {
	if err := r.ctx.Err(); err != nil {
		return err
	}
	r.log.Info(name, fields...)
	return nil
}

func (r *runner) close() error {
	if r.log != nil {
		_ = r.log.Sync()
	}
	if r.reg == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.cfg.Metrics, r.reg); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	return nil
}

// configPath finds the value of -config / --config in args.
func configPath(args []string) string {
	for i, a := range args {
		if a == "--" {
			break
		}
		name, value, hasValue := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if !strings.HasPrefix(a, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
