//go:build !cuda

package device

func cudaDevices() []CUDADevice {
	return nil
}
