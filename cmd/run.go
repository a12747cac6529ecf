package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hamilton-vm/chip8vm/internal/asm"
	"github.com/hamilton-vm/chip8vm/internal/chip8"
	"github.com/spf13/cobra"
)

const cycleRate = 500 // instructions per second, headless default

var maxCycles int

// runCmd runs a ROM or source file headlessly: no rendering, no input
// capture, no audio. It prints the final framebuffer as ASCII art and
// exits 0 if the program reached its end-of-program sentinel, 1 if it
// hit an execution error or the cycle cap first.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom-or-source`",
	Short: "run a CHIP-8 program headlessly and print its final framebuffer",
	Args:  cobra.ExactArgs(1),
	Run:   runHeadless,
}

func init() {
	runCmd.Flags().IntVar(&maxCycles, "max-cycles", 200000, "stop after this many cycles even if the program never terminates")
}

func runHeadless(cmd *cobra.Command, args []string) {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	vm := chip8.New()

	if strings.HasSuffix(path, ".asm") {
		loader := asm.Loader{DefaultRoutineBase: vm.Config().RTIDefaultAddr}
		if err := loader.Load(vm, string(data)); err != nil {
			fmt.Printf("assembly failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		vm.LoadImage(vm.Config().ProgramInit, data)
	}

	ticker := time.NewTicker(time.Second / cycleRate)
	defer ticker.Stop()

	for cycles := 0; cycles < maxCycles; cycles++ {
		<-ticker.C
		_, err := vm.Step()
		if err == nil {
			continue
		}
		if errors.Is(err, chip8.ErrProgramTerminated) {
			printFramebuffer(vm)
			return
		}
		fmt.Printf("execution error: %v\n", err)
		printFramebuffer(vm)
		os.Exit(1)
	}

	fmt.Println("stopped: reached max-cycles without the program terminating")
	printFramebuffer(vm)
	os.Exit(1)
}

func printFramebuffer(vm *chip8.VM) {
	gfx := vm.Graphics()
	for _, row := range gfx {
		var line strings.Builder
		for _, b := range row {
			for bit := 7; bit >= 0; bit-- {
				if b&(1<<uint(bit)) != 0 {
					line.WriteByte('#')
				} else {
					line.WriteByte('.')
				}
			}
		}
		fmt.Println(line.String())
	}
}
