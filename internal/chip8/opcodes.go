package chip8

// opspec is the decoded form of a fetched instruction word, computed
// once per cycle and handed to whichever handler the dispatch tables
// below select.
type opspec struct {
	opcode   uint16
	nibble   byte   // low 4 bits
	addr     uint16 // low 12 bits
	constant byte   // low 8 bits
	x        byte   // bits 11..8
	y        byte   // bits 7..4
}

func decode(opcode uint16) opspec {
	return opspec{
		opcode:   opcode,
		nibble:   byte(opcode & 0x000F),
		addr:     opcode & 0x0FFF,
		constant: byte(opcode & 0x00FF),
		x:        byte((opcode & 0x0F00) >> 8),
		y:        byte((opcode & 0x00F0) >> 4),
	}
}

// handler executes one decoded instruction against vm, returning an
// opcode-execution error or nil. Handlers own their own pc advancement;
// there is no implicit post-increment applied by the dispatcher.
type handler func(vm *VM, s opspec) error

// opTable dispatches on the top nibble. Families that need a second
// level of dispatch (0x0_, 0x8_, 0xF_) route through the second-level
// dispatchers below (a switch on the low byte for 0x0_ and 0xF_, the
// opTable8 sub-table for 0x8_) instead of allocating a per-cycle
// interface value.
var opTable = [16]handler{
	0x0: dispatch0,
	0x1: opJP,
	0x2: opCALL,
	0x3: opSE,
	0x4: opSNE,
	0x5: opSEReg,
	0x6: opLDConst,
	0x7: opADDConst,
	0x8: dispatch8,
	0x9: opSNEReg,
	0xA: opLDI,
	0xB: opJPV0,
	0xC: opRND,
	0xD: opDRW,
	0xE: nil, // Ex9E/ExA1 keypad opcodes are out of scope
	0xF: dispatchF,
}

func dispatch0(vm *VM, s opspec) error {
	switch s.constant {
	case 0xE0:
		return opCLS(vm, s)
	case 0xEE:
		return opRET(vm, s)
	default:
		return invalidOpcodeError(s.opcode)
	}
}

var opTable8 = [16]handler{
	0x0: opLDReg,
	0x1: opOR,
	0x2: opAND,
	0x3: opXOR,
	0x4: opADDReg,
	0x5: opSUB,
	0x6: opSHR,
	0x7: opSUBN,
	0xE: opSHL,
}

func dispatch8(vm *VM, s opspec) error {
	h := opTable8[s.nibble]
	if h == nil {
		return invalidOpcodeError(s.opcode)
	}
	return h(vm, s)
}

func dispatchF(vm *VM, s opspec) error {
	switch s.constant {
	case 0x15:
		return opLDDT(vm, s)
	case 0x18:
		return opLDST(vm, s)
	case 0x55:
		return opLDIVx(vm, s)
	default:
		return invalidOpcodeError(s.opcode)
	}
}

// Step fetches, decodes and executes exactly one instruction, then polls
// the timer slots as described in the timer subsystem design. It returns
// ErrProgramTerminated, alongside a CycleResult with Status 0, when the
// sentinel opcode is fetched; that is the normal, successful end of a
// program.
func (vm *VM) Step() (CycleResult, error) {
	opcode := uint16(vm.memory[vm.pc])<<8 | uint16(vm.memory[vm.pc+1])
	if opcode == vm.cfg.EopOptCode {
		return CycleResult{Status: 0, Message: "program terminated"}, ErrProgramTerminated
	}

	s := decode(opcode)
	h := opTable[opcode>>12]
	if h == nil {
		return CycleResult{Status: 1, Message: "invalid opcode"}, invalidOpcodeError(opcode)
	}
	if err := h(vm, s); err != nil {
		return CycleResult{Status: 1, Message: err.Error()}, err
	}

	if err := vm.pollTimers(); err != nil {
		return CycleResult{Status: 1, Message: err.Error()}, err
	}
	return CycleResult{Status: 0}, nil
}

func opCLS(vm *VM, s opspec) error {
	vm.clearDisplay()
	vm.pc += 2
	return nil
}

func opRET(vm *VM, s opspec) error {
	if err := vm.ret(); err != nil {
		return err
	}
	vm.pc += 2
	return nil
}

func opJP(vm *VM, s opspec) error {
	if addressOutOfBounds(s.addr) {
		return addressError(s.addr)
	}
	vm.pc = s.addr
	return nil
}

func opCALL(vm *VM, s opspec) error {
	if addressOutOfBounds(s.addr) {
		return addressError(s.addr)
	}
	return vm.call(s.addr)
}

func opSE(vm *VM, s opspec) error {
	if vm.GetRegister(s.x) == s.constant {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
	return nil
}

func opSNE(vm *VM, s opspec) error {
	if vm.GetRegister(s.x) != s.constant {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
	return nil
}

func opSEReg(vm *VM, s opspec) error {
	if vm.GetRegister(s.x) == vm.GetRegister(s.y) {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
	return nil
}

func opSNEReg(vm *VM, s opspec) error {
	if vm.GetRegister(s.x) != vm.GetRegister(s.y) {
		vm.pc += 4
	} else {
		vm.pc += 2
	}
	return nil
}

func opLDConst(vm *VM, s opspec) error {
	vm.SetRegister(s.x, s.constant)
	vm.pc += 2
	return nil
}

func opADDConst(vm *VM, s opspec) error {
	vm.SetRegister(s.x, vm.GetRegister(s.x)+s.constant)
	vm.pc += 2
	return nil
}

func opLDReg(vm *VM, s opspec) error {
	vm.SetRegister(s.x, vm.GetRegister(s.y))
	vm.pc += 2
	return nil
}

func opOR(vm *VM, s opspec) error {
	vm.SetRegister(s.x, vm.GetRegister(s.x)|vm.GetRegister(s.y))
	vm.pc += 2
	return nil
}

func opAND(vm *VM, s opspec) error {
	vm.SetRegister(s.x, vm.GetRegister(s.x)&vm.GetRegister(s.y))
	vm.pc += 2
	return nil
}

func opXOR(vm *VM, s opspec) error {
	vm.SetRegister(s.x, vm.GetRegister(s.x)^vm.GetRegister(s.y))
	vm.pc += 2
	return nil
}

func opADDReg(vm *VM, s opspec) error {
	vx, vy := vm.GetRegister(s.x), vm.GetRegister(s.y)
	sum := uint16(vx) + uint16(vy)
	vm.setFlag(flagCarry, sum > 0xFF)
	vm.SetRegister(s.x, byte(sum))
	vm.pc += 2
	return nil
}

func opSUB(vm *VM, s opspec) error {
	vx, vy := vm.GetRegister(s.x), vm.GetRegister(s.y)
	vm.setFlag(flagNotBorrow, vx > vy)
	vm.SetRegister(s.x, vx-vy)
	vm.pc += 2
	return nil
}

func opSHR(vm *VM, s opspec) error {
	vx := vm.GetRegister(s.x)
	vy := vm.GetRegister(s.y)
	vm.setFlag(flagShiftLSB, vx&0x01 != 0)
	vm.SetRegister(s.x, vx>>vy)
	vm.pc += 2
	return nil
}

func opSUBN(vm *VM, s opspec) error {
	vx, vy := vm.GetRegister(s.x), vm.GetRegister(s.y)
	vm.setFlag(flagNotBorrow, vy > vx)
	vm.SetRegister(s.x, vy-vx)
	vm.pc += 2
	return nil
}

func opSHL(vm *VM, s opspec) error {
	vx := vm.GetRegister(s.x)
	vy := vm.GetRegister(s.y)
	vm.setFlag(flagShiftMSB, vx&0x80 != 0)
	vm.SetRegister(s.x, vx<<vy)
	vm.pc += 2
	return nil
}

func opLDI(vm *VM, s opspec) error {
	if addressOutOfBounds(s.addr) {
		return addressError(s.addr)
	}
	vm.i = s.addr
	vm.pc += 2
	return nil
}

func opJPV0(vm *VM, s opspec) error {
	target := s.addr + uint16(vm.GetRegister(0))
	if addressOutOfBounds(target) {
		return addressError(target)
	}
	vm.pc = target
	return nil
}

func opRND(vm *VM, s opspec) error {
	b := byte(vm.rng.Intn(256))
	vm.SetRegister(s.x, b&s.constant)
	vm.pc += 2
	return nil
}

func opDRW(vm *VM, s opspec) error {
	vm.drawSprite(vm.GetRegister(s.x), vm.GetRegister(s.y), s.nibble)
	vm.pc += 2
	return nil
}

func opLDDT(vm *VM, s opspec) error {
	vm.loadDelayTimer(vm.GetRegister(s.x))
	vm.pc += 2
	return nil
}

func opLDST(vm *VM, s opspec) error {
	vm.loadSoundTimer(vm.GetRegister(s.x))
	vm.pc += 2
	return nil
}

func opLDIVx(vm *VM, s opspec) error {
	for r := byte(0); r <= s.x; r++ {
		vm.memory[vm.i+uint16(r)] = vm.GetRegister(r)
	}
	vm.pc += 2
	return nil
}

// addressOutOfBounds reports whether addr needs more than 12 bits.
func addressOutOfBounds(addr uint16) bool {
	return addr&0xF000 != 0
}
