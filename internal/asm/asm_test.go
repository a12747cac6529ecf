package asm

import (
	"bytes"
	"testing"

	"github.com/hamilton-vm/chip8vm/internal/chip8"
)

func TestAssembleScenarioSixDelaySubroutine(t *testing.T) {
	src := "!is_subroutine_for=delay\n!place_at=2048\nLD V1, V2\nLD VA, VE\n\nLD I, 516"

	prog, err := Assemble(src, 0x200, 0x600)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	wantMain := []byte{0xA2, 0x04}
	if !bytes.Equal(prog.Main, wantMain) {
		t.Fatalf("main = % X, want % X", prog.Main, wantMain)
	}

	if len(prog.Routines) != 1 {
		t.Fatalf("len(Routines) = %d, want 1", len(prog.Routines))
	}
	r := prog.Routines[0]
	if r.Addr != 2048 {
		t.Fatalf("routine addr = %d, want 2048", r.Addr)
	}
	if r.Purpose != chip8.Delay {
		t.Fatalf("routine purpose = %v, want Delay", r.Purpose)
	}
	wantCode := []byte{0x81, 0x20, 0x8A, 0xE0}
	if !bytes.Equal(r.Code, wantCode) {
		t.Fatalf("routine code = % X, want % X", r.Code, wantCode)
	}
}

func TestAssembleResolvesForwardLabel(t *testing.T) {
	src := "JP start\nCLS\nstart: LD V0, 1"

	prog, err := Assemble(src, 0x200, 0x600)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	want := []byte{
		0x12, 0x04, // JP 0x204 (start, the third line, 0x200 + 2*2)
		0x00, 0xE0, // CLS
		0x60, 0x01, // LD V0, 1
	}
	if !bytes.Equal(prog.Main, want) {
		t.Fatalf("main = % X, want % X", prog.Main, want)
	}
}

func TestAssembleUndefinedLabelErrors(t *testing.T) {
	_, err := Assemble("JP nowhere", 0x200, 0x600)
	if err == nil {
		t.Fatal("expected an error for a label that's never defined")
	}
}

func TestAssembleHexLiteralsInDirectivesAndOperands(t *testing.T) {
	src := "!place_at=0x800\n!is_subroutine_for=sound\nLD V0, 0xFF\n\nLD V1, 0x0A"

	prog, err := Assemble(src, 0x200, 0x600)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(prog.Routines) != 1 || prog.Routines[0].Addr != 2048 {
		t.Fatalf("routine placement not resolved from hex literal: %+v", prog.Routines)
	}
	if !bytes.Equal(prog.Routines[0].Code, []byte{0x60, 0xFF}) {
		t.Fatalf("routine code = % X", prog.Routines[0].Code)
	}
	if !bytes.Equal(prog.Main, []byte{0x61, 0x0A}) {
		t.Fatalf("main = % X", prog.Main)
	}
}

func TestAssembleMalformedDirectiveErrors(t *testing.T) {
	_, err := Assemble("!place_at=100\nLD V1, 1", 0x200, 0x600)
	if err == nil {
		t.Fatal("expected an error for a directive block missing its blank-line terminator")
	}
}
