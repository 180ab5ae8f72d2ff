package assemble

import (
	"errors"
	"fmt"
)

// Assembly errors.
var (
	// ErrKernelContract reports a kernel that panicked or claimed to write more than its block.
	ErrKernelContract = errors.New("kernel contract violated")
	// ErrShapeMismatch reports a destination tensor that cannot hold the requested region.
	ErrShapeMismatch = errors.New("destination tensor shape mismatch")
)

// ContractError describes one kernel call that violated the contract.
type ContractError struct {
	Kind     string
	Shells   []int32
	Written  int // Elements the kernel reported
	Capacity int // Elements of the block
	Panic    any // Recovered panic value, nil for a bad write count
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%v: %s shells %v: kernel panicked: %v", ErrKernelContract, e.Kind, e.Shells, e.Panic)
	}
	return fmt.Sprintf("%v: %s shells %v: wrote %d elements into a block of %d", ErrKernelContract, e.Kind, e.Shells, e.Written, e.Capacity)
}

// Unwrap returns ErrKernelContract.
func (e *ContractError) Unwrap() error {
	return ErrKernelContract
}
