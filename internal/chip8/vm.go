// Package chip8 implements the CHIP-8 virtual machine: memory-mapped
// registers and stack, a 64x32 XOR-composited framebuffer, opcode
// dispatch, and ownership of the two 60Hz timer devices. It has no
// knowledge of rendering, audio, or key capture; those are the
// responsibility of an external collaborator driving this package.
package chip8

import (
	"math/rand"
	"sync"

	"github.com/hamilton-vm/chip8vm/internal/timer"
)

// VM is the CHIP-8 processor: memory, memory-mapped register file and
// stack, framebuffer, and the two timer devices it owns across cycles.
type VM struct {
	cfg Config

	memory [memSize]byte
	i      uint16
	pc     uint16
	sp     uint8

	gfx [32][gfxRowBytes]byte

	routines []RoutineBinding

	timerMu    sync.Mutex
	delayTimer *timer.Timer
	soundTimer *timer.Timer

	rng *rand.Rand
}

// New builds a VM with the classic CHIP-8 memory map, or the overrides
// given by opts.
func New(opts ...Option) *VM {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &VM{
		cfg: cfg,
		pc:  cfg.ProgramInit,
		rng: rand.New(rand.NewSource(1)),
	}
}

// LoadImage writes a pre-assembled opcode image into memory at addr. The
// loader package is the usual caller; exposed directly so tests and the
// ambient CLI's "run a raw image" path don't need an Assembler in hand.
func (vm *VM) LoadImage(addr uint16, image []byte) {
	copy(vm.memory[addr:], image)
}

// Config returns the configuration the VM was constructed with.
func (vm *VM) Config() Config {
	return vm.cfg
}

// PC returns the current program counter.
func (vm *VM) PC() uint16 {
	return vm.pc
}

// SP returns the current stack pointer (an index, not an address).
func (vm *VM) SP() uint8 {
	return vm.sp
}

// I returns the current value of the address register.
func (vm *VM) I() uint16 {
	return vm.i
}

// Memory returns a read-only view of the full 4KiB memory image. Intended
// for tests and debugging; opcode handlers use the unexported array
// directly.
func (vm *VM) Memory() [memSize]byte {
	return vm.memory
}
