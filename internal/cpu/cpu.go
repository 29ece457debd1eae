// Package cpu pins the calling OS thread to a logical CPU.
//
// Pin only affects the current OS thread, so a goroutine must call
// runtime.LockOSThread before pinning and stay locked for as long as the
// affinity should hold. Platforms without an affinity API return
// ErrUnsupported; callers treat every Pin error as non-fatal.
package cpu

import (
	"errors"
	"runtime"
)

var (
	// ErrUnsupported is returned by Pin on platforms without thread affinity.
	ErrUnsupported = errors.New("cpu: thread pinning is not supported on " + runtime.GOOS)

	// ErrInvalidCPU is returned by Pin for a CPU index it cannot represent.
	ErrInvalidCPU = errors.New("cpu: invalid cpu index")
)

// NumCPU returns the number of logical CPUs usable by the process.
func NumCPU() int {
	return runtime.NumCPU()
}
