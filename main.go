package main

import "github.com/hamilton-vm/chip8vm/cmd"

func main() {
	cmd.Execute()
}
