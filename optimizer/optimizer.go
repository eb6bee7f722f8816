// Package optimizer implements a peephole pass over IR that merges runs of
// identical counted instructions.
package optimizer

import "github.com/sarchlab/bfir/ir"

// mergeRule describes a counted kind and the width its count wraps at.
type mergeRule struct {
	kind ir.Kind
	mask uint32
}

var mergeRules = []mergeRule{
	{kind: ir.PointerForward, mask: widthMask(32)},
	{kind: ir.PointerBackward, mask: widthMask(32)},
	{kind: ir.ValueIncrement, mask: widthMask(8)},
	{kind: ir.ValueDecrement, mask: widthMask(8)},
}

func widthMask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}

	return uint32(1)<<width - 1
}

func ruleFor(k ir.Kind) (mergeRule, bool) {
	for _, r := range mergeRules {
		if r.kind == k {
			return r, true
		}
	}

	return mergeRule{}, false
}

// Optimize rewrites code in place, replacing every run of same-kind counted
// instructions with one instruction carrying the wrapped sum of the run.
// Uncounted instructions are kept as they are and end any run. The slice is
// shrunk to the new length and its spare capacity released.
func Optimize(code *[]ir.Instruction) {
	insts := *code
	read, write := 0, 0

	for read < len(insts) {
		rule, ok := ruleFor(insts[read].Kind)
		if !ok {
			insts[write] = insts[read]
			write++
			read++

			continue
		}

		var total uint32
		for read < len(insts) && insts[read].Kind == rule.kind {
			total = (total + insts[read].Count) & rule.mask
			read++
		}

		insts[write] = ir.Instruction{Kind: rule.kind, Count: total}
		write++
	}

	shrunk := make([]ir.Instruction, write)
	copy(shrunk, insts[:write])
	*code = shrunk
}

// Optimized returns an optimized copy of code and leaves code untouched.
func Optimized(code []ir.Instruction) []ir.Instruction {
	out := make([]ir.Instruction, len(code))
	copy(out, code)
	Optimize(&out)

	return out
}
