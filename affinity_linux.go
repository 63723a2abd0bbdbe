//go:build linux

package actiontrack

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// SetCPUAffinity pins the program to the given CPU core numbers, eg:
// []int{4,5,6,7} for the fast cores of an RK3588
func SetCPUAffinity(cores []int) error {

	if len(cores) == 0 {
		return fmt.Errorf("failed to set CPU affinity: no cores given")
	}

	var set unix.CPUSet
	set.Zero()

	for _, core := range cores {
		set.Set(core)
	}

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("failed to set CPU affinity: %w", err)
	}

	return nil
}

// GetCPUAffinity returns the CPU core numbers the program may run on
func GetCPUAffinity() ([]int, error) {

	var set unix.CPUSet

	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil, fmt.Errorf("failed to get CPU affinity: %w", err)
	}

	var cores []int

	for core := 0; core < len(set)*64; core++ {
		if set.IsSet(core) {
			cores = append(cores, core)
		}
	}

	return cores, nil
}
