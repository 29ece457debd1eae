//go:build windows

package cpu

import (
	"fmt"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32               = windows.NewLazySystemDLL("kernel32.dll")
	setThreadAffinityMask  = kernel32.NewProc("SetThreadAffinityMask")
	getProcessAffinityMask = kernel32.NewProc("GetProcessAffinityMask")
)

// Pin pins the current OS thread to logical CPU cpuID within the current
// processor group. Must be called after runtime.LockOSThread().
func Pin(cpuID int) error {
	if cpuID < 0 || cpuID >= bits.UintSize {
		return fmt.Errorf("%w: %d", ErrInvalidCPU, cpuID)
	}

	// Bit N = CPU N
	mask := uintptr(1) << uint(cpuID)

	prevMask, _, err := setThreadAffinityMask.Call(uintptr(windows.CurrentThread()), mask)
	if prevMask == 0 {
		return fmt.Errorf("cpu: SetThreadAffinityMask to cpu %d: %w", cpuID, err)
	}
	return nil
}

// Allowed lists the logical CPUs of the current processor group the process
// may run on, in ascending order.
func Allowed() ([]int, error) {
	var processMask, systemMask uintptr
	ok, _, err := getProcessAffinityMask.Call(
		uintptr(windows.CurrentProcess()),
		uintptr(unsafe.Pointer(&processMask)),
		uintptr(unsafe.Pointer(&systemMask)),
	)
	if ok == 0 {
		return nil, fmt.Errorf("cpu: GetProcessAffinityMask: %w", err)
	}

	cpus := make([]int, 0, bits.OnesCount(uint(processMask)))
	for i := range bits.UintSize {
		if processMask&(uintptr(1)<<uint(i)) != 0 {
			cpus = append(cpus, i)
		}
	}
	return cpus, nil
}
