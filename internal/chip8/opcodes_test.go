package chip8

import "testing"

func TestALUAddCarry(t *testing.T) {
	vm := New()
	vm.SetRegister(1, 250)
	vm.SetRegister(2, 10)
	vm.LoadImage(vm.cfg.ProgramInit, program(0x8124)) // ADD V1, V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := vm.GetRegister(1); got != 4 { // (250+10) mod 256
		t.Errorf("V1 = %d, want 4", got)
	}
	if !vm.flagSet(flagCarry) {
		t.Error("expected carry flag set")
	}
}

func TestALUSubNoBorrow(t *testing.T) {
	vm := New()
	vm.SetRegister(1, 10)
	vm.SetRegister(2, 3)
	vm.LoadImage(vm.cfg.ProgramInit, program(0x8125)) // SUB V1, V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := vm.GetRegister(1); got != 7 {
		t.Errorf("V1 = %d, want 7", got)
	}
	if !vm.flagSet(flagNotBorrow) {
		t.Error("expected not-borrow flag set when Vx > Vy")
	}
}

func TestALUShiftRightUsesVyAsShiftAmount(t *testing.T) {
	vm := New()
	vm.SetRegister(1, 0x03) // 0b011, LSB set
	vm.SetRegister(2, 1)    // shift amount
	vm.LoadImage(vm.cfg.ProgramInit, program(0x8126)) // SHR V1, V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := vm.GetRegister(1); got != 0x01 {
		t.Errorf("V1 = %#x, want 0x01", got)
	}
	if !vm.flagSet(flagShiftLSB) {
		t.Error("expected shift-LSB flag set from Vx's original LSB")
	}
}

func TestALUShiftRightByArbitraryAmount(t *testing.T) {
	vm := New()
	vm.SetRegister(1, 0x80)
	vm.SetRegister(2, 4) // shift amount, not fixed to 1
	vm.LoadImage(vm.cfg.ProgramInit, program(0x8126)) // SHR V1, V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := vm.GetRegister(1); got != 0x08 {
		t.Errorf("V1 = %#x, want 0x08", got)
	}
}

func TestALUShiftLeft(t *testing.T) {
	vm := New()
	vm.SetRegister(1, 0x81) // MSB set
	vm.SetRegister(2, 1)    // shift amount
	vm.LoadImage(vm.cfg.ProgramInit, program(0x812E)) // SHL V1, V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := vm.GetRegister(1); got != 0x02 { // 0x81 << 1 = 0x102, truncated to 0x02
		t.Errorf("V1 = %#x, want 0x02", got)
	}
	if !vm.flagSet(flagShiftMSB) {
		t.Error("expected shift-MSB flag set from Vx's original MSB")
	}
}

func TestRNDAdvancesPC(t *testing.T) {
	vm := New()
	vm.LoadImage(vm.cfg.ProgramInit, program(0xC1FF)) // RND V1, 0xFF
	before := vm.PC()

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if vm.PC() != before+2 {
		t.Errorf("PC = %#x, want %#x (RND must advance PC)", vm.PC(), before+2)
	}
}

func TestLDIWritesConsecutiveAddresses(t *testing.T) {
	vm := New()
	vm.SetRegister(0, 0x11)
	vm.SetRegister(1, 0x22)
	vm.SetRegister(2, 0x33)
	vm.i = 0x300
	vm.LoadImage(vm.cfg.ProgramInit, program(0xF255)) // LD [I], V2

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	mem := vm.Memory()
	if mem[0x300] != 0x11 || mem[0x301] != 0x22 || mem[0x302] != 0x33 {
		t.Errorf("memory[0x300:0x303] = %02x %02x %02x, want 11 22 33", mem[0x300], mem[0x301], mem[0x302])
	}
}

func TestCallThroughStepReachesProgramRegionAddress(t *testing.T) {
	vm := New()
	vm.LoadImage(vm.cfg.ProgramInit, program(0x2600)) // CALL 0x600

	if _, err := vm.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if vm.PC() != 0x600 {
		t.Errorf("PC = %#x, want 0x600", vm.PC())
	}
	if vm.SP() != 1 {
		t.Errorf("SP = %d, want 1", vm.SP())
	}
}

func TestJPV0OutOfBounds(t *testing.T) {
	vm := New()
	vm.SetRegister(0, 0xFF)
	vm.LoadImage(vm.cfg.ProgramInit, program(0xBFFF)) // JP V0, 0xFFF

	_, err := vm.Step()
	if err == nil {
		t.Fatal("expected address-out-of-bounds error")
	}
}

func TestInvalidOpcode(t *testing.T) {
	vm := New()
	vm.LoadImage(vm.cfg.ProgramInit, program(0xE000)) // Ex9E/ExA1 family: out of scope

	_, err := vm.Step()
	if err == nil {
		t.Fatal("expected invalid-opcode error")
	}
}
