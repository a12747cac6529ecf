package cmd

import (
	"fmt"
	"os"

	"github.com/hamilton-vm/chip8vm/internal/asm"
	"github.com/hamilton-vm/chip8vm/internal/chip8"
	"github.com/spf13/cobra"
)

var disassemble bool
var outputPath string

// asmCmd assembles a source file into a raw opcode image, or, with -d,
// disassembles a raw opcode image back into mnemonic lines.
var asmCmd = &cobra.Command{
	Use:   "asm `path/to/source`",
	Short: "assemble a CHIP-8 source file, or disassemble a ROM with -d",
	Args:  cobra.ExactArgs(1),
	Run:   runAsm,
}

func init() {
	asmCmd.Flags().BoolVarP(&disassemble, "disassemble", "d", false, "treat the input as a raw ROM and print its mnemonics")
	asmCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the assembled image here instead of stdout")
}

func runAsm(cmd *cobra.Command, args []string) {
	path := args[0]

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	if disassemble {
		if err := disassembleROM(source); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		return
	}

	prog, err := asm.Assemble(string(source), chip8.DefaultProgramInit, chip8.DefaultRTIAddr)
	if err != nil {
		fmt.Printf("assembly failed: %v\n", err)
		os.Exit(1)
	}

	if outputPath == "" {
		fmt.Printf("% X\n", prog.Main)
		for _, r := range prog.Routines {
			fmt.Printf("routine @%d (%s): % X\n", r.Addr, r.Purpose, r.Code)
		}
		return
	}

	if err := os.WriteFile(outputPath, prog.Main, 0o644); err != nil {
		fmt.Printf("error writing %s: %v\n", outputPath, err)
		os.Exit(1)
	}
}

func disassembleROM(image []byte) error {
	for i := 0; i+1 < len(image); i += 2 {
		opcode := uint16(image[i])<<8 | uint16(image[i+1])
		text, err := asm.Disassemble(opcode)
		if err != nil {
			return fmt.Errorf("at offset %d: %w", i, err)
		}
		fmt.Println(text)
	}
	return nil
}
