//go:build !linux && !windows

package cpu

// Pin always fails with ErrUnsupported on this platform; the thread keeps
// running wherever the scheduler puts it.
func Pin(cpuID int) error {
	if cpuID < 0 {
		return ErrInvalidCPU
	}
	return ErrUnsupported
}

// Allowed always fails with ErrUnsupported on this platform.
func Allowed() ([]int, error) {
	return nil, ErrUnsupported
}
