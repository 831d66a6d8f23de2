// Package device probes the host for CPU features and CUDA devices
package device

import "fmt"
import "strings"

import "github.com/klauspost/cpuid/v2"

// CUDADevice describes one CUDA capable device.
type CUDADevice struct {
	Index  int
	Name   string
	Memory int64
	Major  int
	Minor  int
}

// Info is the result of probing the host.
type Info struct {
	CPU           string
	PhysicalCores int
	LogicalCores  int
	AVX2          bool
	AVX512        bool
	CUDA          []CUDADevice
}

// Probe inspects the CPU and, when built with the cuda tag, the CUDA devices.
func Probe() Info {
	var i Info
	i.CPU = cpuid.CPU.BrandName
	i.PhysicalCores = cpuid.CPU.PhysicalCores
	i.LogicalCores = cpuid.CPU.LogicalCores
	i.AVX2 = cpuid.CPU.Supports(cpuid.AVX2)
	i.AVX512 = cpuid.CPU.Supports(cpuid.AVX512F, cpuid.AVX512DQ)
	i.CUDA = cudaDevices()
	return i
}

// Accelerated reports whether a GPU is present.
func (i Info) Accelerated() bool {
	return len(i.CUDA) > 0
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cpu %q (%d physical, %d logical cores", i.CPU, i.PhysicalCores, i.LogicalCores)
	if i.AVX2 {
		b.WriteString(", avx2")
	}
	if i.AVX512 {
		b.WriteString(", avx512")
	}
	b.WriteString(")")
	for _, d := range i.CUDA {
		fmt.Fprintf(&b, "; cuda %d %q sm_%d%d %d bytes", d.Index, d.Name, d.Major, d.Minor, d.Memory)
	}
	return b.String()
}
