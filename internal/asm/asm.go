package asm

import (
	"sync"

	"github.com/hamilton-vm/chip8vm/internal/chip8"
)

// RoutineImage is an assembled subroutine block, ready to be installed as
// a timer-expiry handler or loaded as plain, directly-invoked code.
type RoutineImage struct {
	Addr    uint16
	Purpose chip8.Purpose
	Code    []byte
}

// Program is the result of assembling a complete source text: the main
// program's byte image plus zero or more directive-led subroutine images.
type Program struct {
	Main     []byte
	Routines []RoutineImage
}

// Assemble runs the two-pass assembler over source. programBase is where
// the main program's image is assumed to start; defaultRoutineBase is
// used for any subroutine block that omits `!place_at`.
//
// The first pass strips label definitions out of every block (main and
// subroutines alike) and records their resolved addresses in a table
// scoped to this call. The second pass encodes every block's instructions
// into opcodes, resolving label operands against that table; main and
// each subroutine block encode concurrently, since none can reference an
// address inside another block's not-yet-assigned relative offsets.
func Assemble(source string, programBase uint16, defaultRoutineBase uint16) (*Program, error) {
	text := hexToDec(source)

	mainCode, blocks, err := splitDirectiveBlocks(text)
	if err != nil {
		return nil, err
	}

	lt := newLabelTable()

	mainLines := blockLines(mainCode, programBase, lt)

	type pendingBlock struct {
		addr    uint16
		purpose chip8.Purpose
		lines   []string
	}
	pending := make([]pendingBlock, len(blocks))
	for i, b := range blocks {
		addr := b.addr
		if !b.hasAddr {
			addr = defaultRoutineBase
		}
		pending[i] = pendingBlock{
			addr:    addr,
			purpose: b.purpose,
			lines:   blockLines(b.code, addr, lt),
		}
	}

	lt.closeFirstPass()

	var (
		wg      sync.WaitGroup
		errMu   sync.Mutex
		firstErr error
	)
	recordErr := func(err error) {
		if err == nil {
			return
		}
		errMu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		errMu.Unlock()
	}

	prog := &Program{Routines: make([]RoutineImage, len(pending))}

	wg.Add(1)
	go func() {
		defer wg.Done()
		bytes, err := encodeLines(mainLines, lt)
		if err != nil {
			recordErr(err)
			return
		}
		prog.Main = bytes
	}()

	for i, b := range pending {
		i, b := i, b
		wg.Add(1)
		go func() {
			defer wg.Done()
			bytes, err := encodeLines(b.lines, lt)
			if err != nil {
				recordErr(err)
				return
			}
			prog.Routines[i] = RoutineImage{Addr: b.addr, Purpose: b.purpose, Code: bytes}
		}()
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return prog, nil
}

func encodeLines(lines []string, lt *labelTable) ([]byte, error) {
	out := make([]byte, 0, 2*len(lines))
	for i, line := range lines {
		opcode, err := encodeInstruction(i, line, lt)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(opcode>>8), byte(opcode))
	}
	return out, nil
}
