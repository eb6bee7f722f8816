package verify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/bfir/compiler"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/optimizer"
)

// CaseSuite represents a complete YAML conformance file
type CaseSuite struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

// Case is a single source with its expected compile result.
type Case struct {
	Name     string      `yaml:"name"`
	Source   string      `yaml:"source"`
	Repeat   int         `yaml:"repeat,omitempty"`   // source is repeated this many times
	Optimize bool        `yaml:"optimize,omitempty"` // run the optimizer before comparing
	Expect   Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a case. Either Code or
// Error is set.
type Expectation struct {
	Code  []string `yaml:"code,omitempty"`  // instructions in Instruction.String form
	Error string   `yaml:"error,omitempty"` // CompileErrorKind.String
	Line  int      `yaml:"line,omitempty"`
	Col   int      `yaml:"col,omitempty"`
}

// LoadCasesFromYAML parses a conformance file.
func LoadCasesFromYAML(path string) (*CaseSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite CaseSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &suite, nil
}

// Text returns the source the case compiles.
func (c *Case) Text() string {
	if c.Repeat > 1 {
		return strings.Repeat(c.Source, c.Repeat)
	}

	return c.Source
}

// Check compiles the case and compares the outcome with the expectation.
func (c *Case) Check() error {
	code, err := compiler.Compile(c.Text())

	if c.Expect.Error != "" {
		return c.checkError(err)
	}

	if err != nil {
		return fmt.Errorf("%s: unexpected compile error: %w", c.Name, err)
	}

	if c.Optimize {
		optimizer.Optimize(&code)
	}

	got := render(code)
	if len(got) != len(c.Expect.Code) {
		return fmt.Errorf("%s: expected %d instructions, got %d: %v",
			c.Name, len(c.Expect.Code), len(got), got)
	}

	for i := range got {
		if got[i] != c.Expect.Code[i] {
			return fmt.Errorf("%s: instruction %d: expected %s, got %s",
				c.Name, i, c.Expect.Code[i], got[i])
		}
	}

	return nil
}

func (c *Case) checkError(err error) error {
	var cerr *compiler.CompileError
	if !errors.As(err, &cerr) {
		return fmt.Errorf("%s: expected %q, got %v", c.Name, c.Expect.Error, err)
	}

	if cerr.Kind.String() != c.Expect.Error {
		return fmt.Errorf("%s: expected %q, got %q", c.Name, c.Expect.Error, cerr.Kind)
	}

	if c.Expect.Line != 0 && cerr.Line != c.Expect.Line {
		return fmt.Errorf("%s: expected line %d, got %d", c.Name, c.Expect.Line, cerr.Line)
	}

	if c.Expect.Col != 0 && cerr.Col != c.Expect.Col {
		return fmt.Errorf("%s: expected col %d, got %d", c.Name, c.Expect.Col, cerr.Col)
	}

	return nil
}

func render(code []ir.Instruction) []string {
	out := make([]string, len(code))
	for i, inst := range code {
		out[i] = inst.String()
	}

	return out
}
