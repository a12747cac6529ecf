// Package asm implements the two-pass CHIP-8 assembler: directive
// parsing, label resolution with forward-reference support, and mnemonic
// encoding into the VM's big-endian opcode image. A Loader wires an
// Assembler's output into a chip8.VM, installing routine bindings for
// timer-expiry handlers along the way.
package asm

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// DirectiveError reports a malformed or unrecognised directive line.
type DirectiveError struct {
	Line string
	Msg  string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("assembler directive error at %q: %s", e.Line, e.Msg)
}

// InstructionError reports a malformed instruction line: an unknown
// mnemonic, a bad register operand, an out-of-range address, or a label
// that is referenced but never defined anywhere in the source.
type InstructionError struct {
	LineNo int
	Line   string
	Msg    string
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("assembler instruction error at line %d (%q): %s", e.LineNo, e.Line, e.Msg)
}

// IoError wraps an underlying I/O failure (reading a source file, most
// commonly) with assembler context.
type IoError struct {
	cause error
}

func (e *IoError) Error() string {
	return pkgerrors.Wrap(e.cause, "assembler I/O error").Error()
}

func (e *IoError) Unwrap() error {
	return e.cause
}

func wrapIoError(err error) error {
	if err == nil {
		return nil
	}
	return &IoError{cause: err}
}
