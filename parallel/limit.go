package parallel

import "runtime"

import "github.com/klauspost/cpuid/v2"

var defaultLimit int

func init() {
	// prefer the logical core count reported by the CPU itself
	defaultLimit = cpuid.CPU.LogicalCores
	if defaultLimit <= 0 {
		defaultLimit = runtime.NumCPU()
	}
	if defaultLimit <= 0 {
		defaultLimit = 1
	}
}

// Limit returns the default number of concurrent goroutines.
func Limit() int {
	return defaultLimit
}
