package chip8

import "github.com/davecgh/go-spew/spew"

// registerSnapshot is a plain value the debugger (or a failing test) can
// dump without reaching into unexported VM fields.
type registerSnapshot struct {
	PC, I      uint16
	SP         uint8
	V          [numRegs]byte
	DelayCount byte
	SoundCount byte
}

// Debug returns a human-readable dump of the processor state, the way
// the reference module's debug() helper prints its registers, but
// structured so it can be reused outside a Printf call site.
func (vm *VM) Debug() string {
	snap := registerSnapshot{PC: vm.pc, I: vm.i, SP: vm.sp}
	for i := range snap.V {
		snap.V[i] = vm.GetRegister(byte(i))
	}

	vm.timerMu.Lock()
	if vm.delayTimer != nil {
		snap.DelayCount = vm.delayTimer.Count()
	}
	if vm.soundTimer != nil {
		snap.SoundCount = vm.soundTimer.Count()
	}
	vm.timerMu.Unlock()

	return spew.Sdump(snap)
}
