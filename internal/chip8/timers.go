package chip8

import "github.com/hamilton-vm/chip8vm/internal/timer"

// loadDelayTimer preempts any running delay device and launches a fresh
// one bound to the first installed Delay routine, or the default
// handler address if none was installed.
func (vm *VM) loadDelayTimer(count byte) {
	vm.timerMu.Lock()
	defer vm.timerMu.Unlock()

	if vm.delayTimer != nil {
		vm.delayTimer.Kill()
	}
	vm.delayTimer = timer.Launch(count, vm.handlerFor(Delay))
}

// loadSoundTimer preempts any running sound device and launches a fresh
// one bound to the first installed Sound routine, or the default
// handler address if none was installed.
func (vm *VM) loadSoundTimer(count byte) {
	vm.timerMu.Lock()
	defer vm.timerMu.Unlock()

	if vm.soundTimer != nil {
		vm.soundTimer.Kill()
	}
	vm.soundTimer = timer.Launch(count, vm.handlerFor(Sound))
}

// pollTimers runs at the end of every successfully executed cycle: delay
// is checked first, then sound. At most one timer-triggered CALL happens
// per cycle; if delay fires, a simultaneously expired sound timer is left
// pending for the next cycle.
func (vm *VM) pollTimers() error {
	delayFired, err := vm.pollDelay()
	if err != nil {
		return err
	}
	return vm.pollSound(delayFired)
}

func (vm *VM) pollDelay() (bool, error) {
	vm.timerMu.Lock()
	t := vm.delayTimer
	vm.timerMu.Unlock()
	if t == nil || !t.Expired() {
		return false, nil
	}

	vm.timerMu.Lock()
	vm.delayTimer = nil
	vm.timerMu.Unlock()

	if err := vm.call(t.Handler()); err != nil {
		return true, err
	}
	return true, nil
}

func (vm *VM) pollSound(suppressed bool) error {
	vm.timerMu.Lock()
	t := vm.soundTimer
	vm.timerMu.Unlock()
	if t == nil || !t.Expired() {
		return nil
	}
	if suppressed {
		return nil
	}

	vm.timerMu.Lock()
	vm.soundTimer = nil
	vm.timerMu.Unlock()

	return vm.call(t.Handler())
}
