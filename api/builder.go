package api

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	optimize bool
	workers  int
	sink     Sink
}

// MakeDriverBuilder returns a builder with optimization enabled and a single
// worker.
func MakeDriverBuilder() DriverBuilder {
	return DriverBuilder{
		optimize: true,
		workers:  1,
	}
}

// WithOptimize sets whether compiled programs are optimized.
func (b DriverBuilder) WithOptimize(optimize bool) DriverBuilder {
	b.optimize = optimize
	return b
}

// WithWorkers sets how many sources CompileAll compiles at the same time.
func (b DriverBuilder) WithWorkers(workers int) DriverBuilder {
	if workers < 1 {
		panic("Need at least 1 worker")
	}
	b.workers = workers
	return b
}

// WithSink sets the sink that receives every result.
func (b DriverBuilder) WithSink(sink Sink) DriverBuilder {
	b.sink = sink
	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	workers := b.workers
	if workers < 1 {
		workers = 1
	}

	return &driverImpl{
		name:     name,
		optimize: b.optimize,
		workers:  workers,
		sink:     b.sink,
	}
}
