// Package verify provides static checks and reports for bfir programs.
//
// It has three parts:
//
// 1. Lint (lint.go): structural and redundancy checks over an IR sequence
//   - STRUCT checks: unbalanced loop markers, value counts wider than a byte
//   - REDUNDANT checks: runs the optimizer would merge, zero-count no-ops
//
// 2. Report (report.go): compiles a source, optimizes it, lints both the raw
//    and the optimized IR and renders the result as text.
//
// 3. Conformance cases (conformance.go): YAML files pairing a source with its
//    expected IR or compile error.
//
// # Usage Example
//
//	code, err := compiler.Compile(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, issue := range verify.RunLint(code) {
//	    log.Printf("[%s] #%d: %s", issue.Type, issue.Index, issue.Message)
//	}
//
//	report := verify.GenerateReport("hello.bf", src)
//	report.WriteReport(os.Stdout)
//
// Compiler output never has STRUCT issues. Optimized compiler output only has
// REDUNDANT issues for runs that wrapped around to a zero count.
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct    IssueType = "STRUCT"    // Structural error (unbalanced markers, bad count)
	IssueRedundant IssueType = "REDUNDANT" // Instruction the optimizer would remove or merge
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT or REDUNDANT
	Index   int                    // Instruction index or -1
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}
