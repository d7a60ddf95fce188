//go:build gpu

package core

// NullGPUEngine is the shape of a device engine, compiled only under
// -tags gpu. It ships no device kernel (no OpenCL bridge exists in this
// repository for it to wrap, see DESIGN.md), and nothing registers it
// with a Registry.
type NullGPUEngine struct{}

func (NullGPUEngine) Name() string  { return "gpu-null" }
func (NullGPUEngine) Priority() int { return 200 }

func (NullGPUEngine) OptimalBatchSize(n int) int { return optimalBatchSize("gpu", n) }

func (NullGPUEngine) BackendHandle() any { return nil }
