// Package compiler translates Brainfuck source text into IR.
//
// Every character outside the eight operators is a comment. Newlines advance
// the line counter and every character, comments included, advances the
// column counter, so reported positions refer to the raw text.
package compiler

import "github.com/sarchlab/bfir/ir"

// openMarker records where a pending '[' was seen.
type openMarker struct {
	line int
	col  int
}

// Compile scans src once and returns its IR. It stops at the first ']'
// without a pending '[', and reports the innermost unclosed '[' once the
// input is exhausted. On error the returned code is nil.
func Compile(src string) ([]ir.Instruction, error) {
	var (
		code    []ir.Instruction
		pending []openMarker
	)

	line, col := 1, 0

	for _, ch := range src {
		col++

		switch ch {
		case '\n':
			line++
			col = 0
		case '+':
			code = append(code, ir.ValueAdd(1))
		case '-':
			code = append(code, ir.ValueSub(1))
		case '>':
			code = append(code, ir.PtrForward(1))
		case '<':
			code = append(code, ir.PtrBackward(1))
		case '.':
			code = append(code, ir.Output)
		case ',':
			code = append(code, ir.Input)
		case '[':
			pending = append(pending, openMarker{line: line, col: col})
			code = append(code, ir.Jz)
		case ']':
			if len(pending) == 0 {
				return nil, &CompileError{
					Line: line,
					Col:  col,
					Kind: UnexpectedRightOperator,
				}
			}

			pending = pending[:len(pending)-1]
			code = append(code, ir.Jnz)
		}
	}

	if len(pending) > 0 {
		last := pending[len(pending)-1]
		return nil, &CompileError{
			Line: last.line,
			Col:  last.col,
			Kind: UnclosedLeftOperator,
		}
	}

	return code, nil
}
