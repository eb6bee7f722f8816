package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/bfir/compiler"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/optimizer"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Name            string
	SourceBytes     int
	CompileErr      error
	Raw             []ir.Instruction
	Optimized       []ir.Instruction
	RawIssues       []Issue
	OptimizedIssues []Issue
}

// GenerateReport compiles src, optimizes the result and lints both stages.
func GenerateReport(name, src string) *VerificationReport {
	report := &VerificationReport{
		Name:        name,
		SourceBytes: len(src),
	}

	code, err := compiler.Compile(src)
	if err != nil {
		report.CompileErr = err
		return report
	}

	return GenerateReportFromCode(name, len(src), code)
}

// GenerateReportFromCode builds a report from IR that is already compiled.
// raw is not modified.
func GenerateReportFromCode(
	name string,
	sourceBytes int,
	raw []ir.Instruction,
) *VerificationReport {
	report := &VerificationReport{
		Name:        name,
		SourceBytes: sourceBytes,
		Raw:         raw,
		Optimized:   optimizer.Optimized(raw),
	}
	report.RawIssues = RunLint(report.Raw)
	report.OptimizedIssues = RunLint(report.Optimized)

	return report
}

// CompileOK reports whether the source compiled.
func (r *VerificationReport) CompileOK() bool {
	return r.CompileErr == nil
}

// StructIssues returns the STRUCT issues of the optimized IR.
func (r *VerificationReport) StructIssues() []Issue {
	var issues []Issue
	for _, issue := range r.OptimizedIssues {
		if issue.Type == IssueStruct {
			issues = append(issues, issue)
		}
	}

	return issues
}

// Ratio is the optimized instruction count divided by the raw count.
func (r *VerificationReport) Ratio() float64 {
	if len(r.Raw) == 0 {
		return 1
	}

	return float64(len(r.Optimized)) / float64(len(r.Raw))
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "BFIR VERIFICATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "\nSource: %d bytes\n", r.SourceBytes)

	// STAGE 1: COMPILE
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: COMPILE")
	fmt.Fprintln(w, separator)

	if !r.CompileOK() {
		fmt.Fprintf(w, "⚠ Compile error: %v\n", r.CompileErr)
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "✓ Compiled to %d instructions\n", len(r.Raw))

	// STAGE 2: OPTIMIZE
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: OPTIMIZE")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "✓ Optimized to %d instructions (%.1f%% of raw)\n",
		len(r.Optimized), r.Ratio()*100)
	fmt.Fprintln(w, r.histogram().Render())

	// STAGE 3: LINT
	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 3: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Raw IR: %d issues\n", len(r.RawIssues))

	if len(r.OptimizedIssues) == 0 {
		fmt.Fprintln(w, "✓ No lint issues found in optimized IR!")
	} else {
		fmt.Fprintf(w, "⚠ Found %d lint issues in optimized IR:\n\n", len(r.OptimizedIssues))
		fmt.Fprintln(w, issueTable(r.OptimizedIssues).Render())
	}

	fmt.Fprintln(w)
}

func (r *VerificationReport) histogram() table.Writer {
	raw := ir.Count(r.Raw)
	opt := ir.Count(r.Optimized)

	t := table.NewWriter()
	t.SetTitle("Instructions by kind")
	t.AppendHeader(table.Row{"Kind", "Raw", "Optimized"})
	for _, k := range ir.Kinds() {
		t.AppendRow(table.Row{k.String(), raw[k], opt[k]})
	}
	t.AppendFooter(table.Row{"Total", len(r.Raw), len(r.Optimized)})

	return t
}

func issueTable(issues []Issue) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Type", "Index", "Message"})
	for _, issue := range issues {
		t.AppendRow(table.Row{issue.Type, issue.Index, issue.Message})
	}

	return t
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
