//go:build cuda

package device

import "gorgonia.org/cu"

func cudaDevices() (o []CUDADevice) {
	devices, err := cu.NumDevices()
	if err != nil {
		return nil
	}
	for d := 0; d < devices; d++ {
		var dev = CUDADevice{Index: d}
		dev.Name, _ = cu.Device(d).Name()
		dev.Memory, _ = cu.Device(d).TotalMem()
		dev.Major, _ = cu.Device(d).Attribute(cu.ComputeCapabilityMajor)
		dev.Minor, _ = cu.Device(d).Attribute(cu.ComputeCapabilityMinor)
		o = append(o, dev)
	}
	return o
}
