// Package api defines the driver API that compiles sources to bfir programs.
package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/bfir/compiler"
	"github.com/sarchlab/bfir/ir"
	"github.com/sarchlab/bfir/optimizer"
)

// Source is a named program text.
type Source struct {
	Name string
	Text string
}

// Result is the outcome of compiling one Source.
type Result struct {
	Name    string
	Code    []ir.Instruction
	RawCode []ir.Instruction // compiler output before optimization
	Raw     int              // instruction count before optimization
	Err     error
}

// Sink receives every result the driver produces.
type Sink interface {
	Accept(result Result)
}

// Driver provides the interface to compile programs.
type Driver interface {
	// Compile compiles a single source and, if enabled, optimizes it. The
	// result is delivered to the sink whether or not compilation succeeded.
	Compile(ctx context.Context, src Source) (Result, error)

	// CompileAll compiles the sources concurrently. Results are returned and
	// delivered to the sink in input order. Compile errors are kept in
	// Result.Err; the returned error is only set if ctx is done before all
	// sources are compiled.
	CompileAll(ctx context.Context, srcs []Source) ([]Result, error)
}

type driverImpl struct {
	name     string
	optimize bool
	workers  int
	sink     Sink
}

func (d *driverImpl) Compile(ctx context.Context, src Source) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{Name: src.Name, Err: err}, err
	}

	result := d.compileOne(src)
	d.deliver(result)

	return result, result.Err
}

func (d *driverImpl) CompileAll(
	ctx context.Context,
	srcs []Source,
) ([]Result, error) {
	results := make([]Result, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = d.compileOne(src)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, result := range results {
		d.deliver(result)
	}

	Trace("Driver",
		"Behavior", "CompileAll",
		"Driver", d.name,
		"Sources", len(srcs),
	)

	return results, nil
}

func (d *driverImpl) compileOne(src Source) Result {
	result := Result{Name: src.Name}

	code, err := compiler.Compile(src.Text)
	if err != nil {
		result.Err = fmt.Errorf("compile %s: %w", src.Name, err)
		Trace("Compile",
			"Behavior", "Failed",
			"Driver", d.name,
			"Source", src.Name,
			"Error", err.Error(),
		)

		return result
	}

	result.RawCode = code
	result.Raw = len(code)
	result.Code = code
	if d.optimize {
		result.Code = optimizer.Optimized(code)
	}

	Trace("Compile",
		"Behavior", "Done",
		"Driver", d.name,
		"Source", src.Name,
		"Instructions", result.Raw,
		"Optimized", len(result.Code),
	)

	return result
}

func (d *driverImpl) deliver(result Result) {
	if d.sink != nil {
		d.sink.Accept(result)
	}
}
