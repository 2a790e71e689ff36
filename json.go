// Package vexjson is a high-throughput JSON decoder. Scanning of
// whitespace, string boundaries, structural characters and number tokens is
// accelerated by multi-lane word kernels chosen once per process from the
// detected CPU capability, with a byte-at-a-time scalar path as the
// correctness baseline. The parser itself is a recursive-descent walk that
// consumes scan results incrementally, keeps exact line/column positions
// for diagnostics and enforces a fixed nesting bound.
package vexjson

import (
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/vexjson/vexjson/internal/kernel"
)

// Parse decodes a single JSON document from a contiguous byte buffer. The
// returned Value owns all of its memory; data may be reused or freed as
// soon as Parse returns. Errors are always *ParseError values carrying the
// exact line and column of the offending byte.
func Parse(data []byte) (Value, error) {
	p := parserPool.Get().(*parser)
	defer p.release()
	p.reset(data)

	v, perr := p.parse()
	if perr != nil {
		return Value{}, perr
	}
	return v, nil
}

// Valid reports whether data is a single well-formed JSON document.
func Valid(data []byte) bool {
	_, err := Parse(data)
	return err == nil
}

// BatchResult is the outcome of one element of a batch parse.
type BatchResult struct {
	Value Value
	Err   error
}

// ParseBatch parses each input independently, preserving input order. No
// state is shared across elements: a failure in one never affects another.
func ParseBatch(inputs [][]byte) []BatchResult {
	results := make([]BatchResult, len(inputs))
	for i, in := range inputs {
		v, err := Parse(in)
		results[i] = BatchResult{Value: v, Err: err}
	}
	return results
}

// ParseBatchParallel is ParseBatch over a bounded worker pool. Each element
// is still one independent single-threaded parse; results keep input order.
// workers < 1 means one worker per available CPU.
func ParseBatchParallel(inputs [][]byte, workers int) []BatchResult {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]BatchResult, len(inputs))
	wp := pool.New().WithMaxGoroutines(workers)
	for i, in := range inputs {
		i, in := i, in
		wp.Go(func() {
			v, err := Parse(in)
			results[i] = BatchResult{Value: v, Err: err}
		})
	}
	wp.Wait()
	return results
}

// KernelInfo describes the scanning tier active for this process.
type KernelInfo struct {
	Tier      string
	Label     string
	LaneWidth int
}

// CapabilityInfo reports which kernel tier Parse uses on this machine.
// Introspection only; it has no effect on parsing behavior.
func CapabilityInfo() KernelInfo {
	c := kernel.Detect()
	return KernelInfo{
		Tier:      c.String(),
		Label:     c.Label(),
		LaneWidth: c.LaneWidth(),
	}
}
