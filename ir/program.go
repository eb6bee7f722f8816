package ir

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnbalanced is returned when loop markers in a sequence do not pair up.
var ErrUnbalanced = errors.New("unbalanced loop markers")

// MatchBrackets pairs every JumpIfZero with its JumpIfNonZero. The returned
// map holds both directions, open index to close index and back.
func MatchBrackets(code []Instruction) (map[int]int, error) {
	matches := make(map[int]int)
	var open []int

	for idx, inst := range code {
		switch inst.Kind {
		case JumpIfZero:
			open = append(open, idx)
		case JumpIfNonZero:
			if len(open) == 0 {
				return nil, fmt.Errorf("%w: JumpIfNonZero at %d has no opening marker",
					ErrUnbalanced, idx)
			}

			start := open[len(open)-1]
			open = open[:len(open)-1]
			matches[start] = idx
			matches[idx] = start
		}
	}

	if len(open) > 0 {
		return nil, fmt.Errorf("%w: JumpIfZero at %d is never closed",
			ErrUnbalanced, open[len(open)-1])
	}

	return matches, nil
}

// Count returns how many instructions of each kind appear in code.
func Count(code []Instruction) map[Kind]int {
	counts := make(map[Kind]int)
	for _, inst := range code {
		counts[inst.Kind]++
	}

	return counts
}

// Format writes one instruction per line, prefixed with its index.
func Format(w io.Writer, code []Instruction) error {
	width := len(fmt.Sprint(len(code)))
	for idx, inst := range code {
		if _, err := fmt.Fprintf(w, "%*d  %s\n", width, idx, inst); err != nil {
			return err
		}
	}

	return nil
}

// Source renders code back to source text. Counted instructions expand to
// Count copies of their lexeme, so compiling the result yields a program with
// the same behaviour.
func Source(code []Instruction) string {
	var sb strings.Builder

	for _, inst := range code {
		lexeme := string(inst.Kind.Lexeme())
		if !inst.Kind.IsCounted() {
			sb.WriteString(lexeme)
			continue
		}

		sb.WriteString(strings.Repeat(lexeme, int(inst.Count)))
	}

	return sb.String()
}
