package compiler

import "fmt"

// CompileErrorKind classifies a structural error in the source.
type CompileErrorKind int

const (
	// UnclosedLeftOperator is reported when a '[' is never closed.
	UnclosedLeftOperator CompileErrorKind = iota
	// UnexpectedRightOperator is reported when a ']' has no pending '['.
	UnexpectedRightOperator
)

func (k CompileErrorKind) String() string {
	switch k {
	case UnclosedLeftOperator:
		return "Unclosed left bracket"
	case UnexpectedRightOperator:
		return "Unexpected right bracket"
	default:
		return fmt.Sprintf("CompileErrorKind(%d)", int(k))
	}
}

// CompileError reports a structural error at a 1-based source position.
type CompileError struct {
	Line int
	Col  int
	Kind CompileErrorKind
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s at line %d:%d", e.Kind, e.Line, e.Col)
}
