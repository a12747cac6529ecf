package asm

import (
	"regexp"
	"strconv"
)

var hexLiteral = regexp.MustCompile(`0x[0-9a-fA-F]+`)

// hexToDec rewrites every 0x-prefixed hexadecimal literal in text to its
// decimal representation, the way the assembler's preprocessor does
// before any directive or instruction parsing runs. It is idempotent on
// text that contains no 0x literals.
func hexToDec(text string) string {
	return hexLiteral.ReplaceAllStringFunc(text, func(lit string) string {
		v, err := strconv.ParseUint(lit[2:], 16, 64)
		if err != nil {
			return lit // unreachable given the regexp, kept defensive
		}
		return strconv.FormatUint(v, 10)
	})
}
