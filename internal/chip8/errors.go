package chip8

import (
	"errors"

	pkgerrors "github.com/pkg/errors"
)

// Sentinel errors for opcode-execution failures. Callers compare with
// errors.Is; wrapped instances (via pkg/errors, see below) still match.
var (
	// ErrProgramTerminated signals the sentinel opcode was fetched. This
	// is the normal, successful end of a program, not a failure.
	ErrProgramTerminated = errors.New("chip8: program terminated")

	// ErrAddressOutOfBounds is raised by any opcode that would load a
	// 16-bit container with more than 12 significant bits.
	ErrAddressOutOfBounds = errors.New("chip8: address out of bounds")

	// ErrStackOverflow is raised by CALL when the push would reach the
	// stack canary address.
	ErrStackOverflow = errors.New("chip8: stack overflow")

	// ErrStackUnderflow is raised by RET when the stack is already empty.
	ErrStackUnderflow = errors.New("chip8: stack underflow")

	// ErrInvalidOpcode is raised when no dispatch entry matches the
	// fetched instruction word.
	ErrInvalidOpcode = errors.New("chip8: invalid opcode")
)

// CycleResult carries the outcome of a single executed cycle. Status 0
// accompanies a successful cycle, or the sentinel opcode terminating the
// program (then returned with ErrProgramTerminated); any other value
// accompanies an opcode-execution error.
type CycleResult struct {
	Status  int
	Message string
}

// addressError wraps ErrAddressOutOfBounds with the offending value.
func addressError(addr uint16) error {
	return pkgerrors.Wrapf(ErrAddressOutOfBounds, "address %#05x exceeds 12-bit address space", addr)
}

// invalidOpcodeError wraps ErrInvalidOpcode with the offending word.
func invalidOpcodeError(opcode uint16) error {
	return pkgerrors.Wrapf(ErrInvalidOpcode, "opcode %#06x", opcode)
}
