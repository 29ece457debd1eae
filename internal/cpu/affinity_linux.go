//go:build linux

package cpu

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// cpuSetSize is the number of cpus a unix.CPUSet can hold.
const cpuSetSize = int(unsafe.Sizeof(unix.CPUSet{})) * 8

// Pin pins the current OS thread to logical CPU cpuID.
// Must be called after runtime.LockOSThread().
func Pin(cpuID int) error {
	if cpuID < 0 || cpuID >= cpuSetSize {
		return fmt.Errorf("%w: %d", ErrInvalidCPU, cpuID)
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(cpuID)

	// pid 0 = calling thread
	if err := unix.SchedSetaffinity(0, &mask); err != nil {
		return fmt.Errorf("cpu: sched_setaffinity to cpu %d: %w", cpuID, err)
	}
	return nil
}

// Allowed lists the logical CPUs the calling thread may run on, in
// ascending order. Inside a restricted cpuset this is a subset of
// [0, NumCPU()).
func Allowed() ([]int, error) {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil, fmt.Errorf("cpu: sched_getaffinity: %w", err)
	}

	cpus := make([]int, 0, mask.Count())
	for i := 0; i < cpuSetSize && len(cpus) < cap(cpus); i++ {
		if mask.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}
