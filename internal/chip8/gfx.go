package chip8

// clearDisplay zeroes the framebuffer.
func (vm *VM) clearDisplay() {
	vm.gfx = [32][gfxRowBytes]byte{}
}

// Graphics returns a copy of the 32x8 byte framebuffer: row r, byte b,
// bit 7-k is pixel (8*b+k, r). Read-only from the caller's perspective;
// the renderer this module hands off to never mutates it directly.
func (vm *VM) Graphics() [32][gfxRowBytes]byte {
	return vm.gfx
}

// drawSprite XORs an n-byte sprite read from memory[I:I+n] into the
// framebuffer at (vx, vy), wrapping rows modulo 32 and columns modulo 64.
// It sets the collision flag when a set pixel is cleared, and always
// raises the draw-ready flag.
func (vm *VM) drawSprite(vx, vy byte, n byte) {
	collided := false
	col := int(vy) % 64

	for row := 0; row < int(n); row++ {
		spriteByte := vm.memory[vm.i+uint16(row)]
		targetRow := (int(vx) + row) % 32
		vm.xorRow(targetRow, spriteByte, col, &collided)
	}

	vm.setFlag(flagCollision, collided)
	vm.setFlag(flagDrawReady, true)
}

// xorRow XORs an 8-pixel sprite byte into gfx row targetRow starting at
// bit column startCol, wrapping horizontally modulo 64. *collided is set
// true if any pixel transitions from set to clear.
func (vm *VM) xorRow(targetRow int, spriteByte byte, startCol int, collided *bool) {
	for bit := 0; bit < 8; bit++ {
		if spriteByte&(0x80>>uint(bit)) == 0 {
			continue
		}
		px := (startCol + bit) % 64
		byteIdx := px / 8
		bitIdx := 7 - (px % 8)
		mask := byte(1) << uint(bitIdx)

		wasSet := vm.gfx[targetRow][byteIdx]&mask != 0
		vm.gfx[targetRow][byteIdx] ^= mask
		if wasSet {
			*collided = true
		}
	}
}
