package asm

import "github.com/hamilton-vm/chip8vm/internal/chip8"

// Loader assembles source text and wires the result into a chip8.VM: the
// main image is loaded at the VM's configured program-init address, and
// each subroutine block is loaded at its own address and installed as a
// routine binding.
type Loader struct {
	DefaultRoutineBase uint16
}

// Load assembles source and installs it into vm.
func (l Loader) Load(vm *chip8.VM, source string) error {
	prog, err := Assemble(source, vm.Config().ProgramInit, l.DefaultRoutineBase)
	if err != nil {
		return err
	}

	vm.LoadImage(vm.Config().ProgramInit, prog.Main)
	for _, r := range prog.Routines {
		vm.LoadImage(r.Addr, r.Code)
		vm.InstallRoutine(chip8.RoutineBinding{Addr: r.Addr, Purpose: r.Purpose})
	}
	return nil
}
