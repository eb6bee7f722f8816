package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/bfir/api"
	"github.com/sarchlab/bfir/config"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/verify"
)

// printSink writes each compiled program to out and diagnostics to errOut.
type printSink struct {
	out    io.Writer
	errOut io.Writer
	emit   string
	lint   bool
}

func (s printSink) Accept(result api.Result) {
	if result.Err != nil {
		fmt.Fprintln(s.errOut, result.Err)
		return
	}

	switch s.emit {
	case "bf":
		fmt.Fprintln(s.out, ir.Source(result.Code))
	default:
		s.writeListing(result)
	}

	if !s.lint {
		return
	}

	for _, issue := range verify.RunLint(result.Code) {
		fmt.Fprintf(s.errOut, "%s: [%s] #%d: %s\n",
			result.Name, issue.Type, issue.Index, issue.Message)
	}
}

func (s printSink) writeListing(result api.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle("%s", result.Name)
	t.AppendHeader(table.Row{"#", "Instruction", "Lexeme"})
	for i, inst := range result.Code {
		t.AppendRow(table.Row{i, inst.String(), string(inst.Kind.Lexeme())})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d -> %d", result.Raw, len(result.Code)), ""})
	t.Render()
}

func main() {
	start := time.Now()
	atexit.Register(func() {
		api.Trace("Exit", "Elapsed", time.Since(start).String())
	})

	atexit.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run compiles the file named by -in and returns the process exit status:
// 0 on success, 1 if the source or report fails, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bfc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	inPath := fs.String("in", "", "input source file path")
	configPath := fs.String("config", "", "YAML options file")
	optimize := fs.Bool("O", true, "merge runs of identical instructions")
	reportPath := fs.String("report", "", "write a verification report to this file")
	trace := fs.Bool("trace", false, "log compile events to stderr")
	emit := fs.String("emit", "ir", "output format: ir (listing) or bf (canonical source)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *inPath == "" {
		fmt.Fprintln(stderr, "nothing to do: provide -in <file>")
		fs.Usage()
		return 2
	}

	if *emit != "ir" && *emit != "bf" {
		fmt.Fprintf(stderr, "unknown -emit format %q\n", *emit)
		return 2
	}

	opts := config.Default()
	if *configPath != "" {
		var err error
		opts, err = config.LoadFromYAML(*configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "O":
			opts.Optimize = *optimize
		case "report":
			opts.Report = *reportPath
		case "trace":
			opts.Trace = *trace
		}
	})

	setupLogging(stderr, opts.Trace)

	source, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read input file %q: %v\n", *inPath, err)
		return 1
	}

	driver := opts.DriverBuilder().
		WithSink(printSink{out: stdout, errOut: stderr, emit: *emit, lint: opts.Lint}).
		Build("bfc")

	result, compileErr := driver.Compile(context.Background(),
		api.Source{Name: *inPath, Text: string(source)})

	if opts.Report != "" {
		if err := writeReport(opts.Report, *inPath, len(source), result); err != nil {
			fmt.Fprintf(stderr, "failed to write report %q: %v\n", opts.Report, err)
			return 1
		}
	}

	if compileErr != nil {
		return 1
	}

	return 0
}

// writeReport saves a verification report for a result the driver already
// compiled.
func writeReport(path, name string, sourceBytes int, result api.Result) error {
	report := &verify.VerificationReport{
		Name:        name,
		SourceBytes: sourceBytes,
		CompileErr:  result.Err,
	}
	if result.Err == nil {
		report = verify.GenerateReportFromCode(name, sourceBytes, result.RawCode)
	}

	return report.SaveReportToFile(path)
}

func setupLogging(w io.Writer, trace bool) {
	level := slog.LevelWarn
	if trace {
		level = api.LevelTrace
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w,
		&slog.HandlerOptions{Level: level})))
}
