package verify

import (
	"fmt"

	"github.com/sarchlab/bfir/ir"
)

// RunLint performs static lint checks on an IR sequence.
// It validates structure (STRUCT) and reports instructions a peephole pass
// would rewrite (REDUNDANT). Returns a list of issues found, or empty list if
// no issues.
func RunLint(code []ir.Instruction) []Issue {
	var issues []Issue

	issues = append(issues, checkBalance(code)...)
	issues = append(issues, checkCounts(code)...)
	issues = append(issues, checkRuns(code)...)

	return issues
}

// checkBalance pairs loop markers the same way ir.MatchBrackets does, but
// keeps going after the first problem so that every stray marker is listed.
func checkBalance(code []ir.Instruction) []Issue {
	var issues []Issue
	var open []int

	for idx, inst := range code {
		switch inst.Kind {
		case ir.JumpIfZero:
			open = append(open, idx)
		case ir.JumpIfNonZero:
			if len(open) == 0 {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					Index:   idx,
					Message: fmt.Sprintf("JumpIfNonZero at %d has no matching JumpIfZero", idx),
					Details: map[string]interface{}{"kind": inst.Kind.String()},
				})
				continue
			}
			open = open[:len(open)-1]
		}
	}

	for _, idx := range open {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Index:   idx,
			Message: fmt.Sprintf("JumpIfZero at %d is never closed", idx),
			Details: map[string]interface{}{"kind": ir.JumpIfZero.String()},
		})
	}

	return issues
}

func checkCounts(code []ir.Instruction) []Issue {
	var issues []Issue

	for idx, inst := range code {
		switch {
		case !inst.Kind.IsCounted():
			if inst.Count != 0 {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					Index:   idx,
					Message: fmt.Sprintf("%s at %d carries count %d", inst.Kind, idx, inst.Count),
					Details: map[string]interface{}{"count": inst.Count},
				})
			}
		case inst.Kind.Width() == 8 && inst.Count > 0xFF:
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Index:   idx,
				Message: fmt.Sprintf("%s at %d exceeds a byte", inst, idx),
				Details: map[string]interface{}{"count": inst.Count, "width": inst.Kind.Width()},
			})
		case inst.Count == 0:
			issues = append(issues, Issue{
				Type:    IssueRedundant,
				Index:   idx,
				Message: fmt.Sprintf("%s at %d has no effect", inst, idx),
				Details: map[string]interface{}{"kind": inst.Kind.String()},
			})
		}
	}

	return issues
}

// checkRuns reports each run of two or more adjacent counted instructions of
// the same kind once, at the start of the run.
func checkRuns(code []ir.Instruction) []Issue {
	var issues []Issue

	for start := 0; start < len(code); {
		kind := code[start].Kind
		end := start + 1
		for end < len(code) && code[end].Kind == kind {
			end++
		}

		if kind.IsCounted() && end-start > 1 {
			issues = append(issues, Issue{
				Type:  IssueRedundant,
				Index: start,
				Message: fmt.Sprintf("%d adjacent %s instructions at %d can be merged",
					end-start, kind, start),
				Details: map[string]interface{}{
					"kind":   kind.String(),
					"length": end - start,
				},
			})
		}

		start = end
	}

	return issues
}
