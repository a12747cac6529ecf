package asm

import (
	"strconv"
	"strings"

	"github.com/hamilton-vm/chip8vm/internal/chip8"
)

// routineBlock is a directive-led subroutine block extracted from the
// source text: its placement address (if `!place_at` was given), its
// timer purpose (if `!is_subroutine_for` was given), and its code.
type routineBlock struct {
	addr    uint16
	hasAddr bool
	purpose chip8.Purpose
	code    string
}

// splitDirectiveBlocks repeatedly extracts directive-led blocks (a run of
// `!directive=value` lines followed by code, terminated by a blank line)
// out of text, the way the source language's loader peels subroutine
// blocks off the front of whatever text precedes them. What's left after
// every block has been peeled off is the main program.
func splitDirectiveBlocks(text string) (main string, blocks []routineBlock, err error) {
	var mainBuilder strings.Builder
	remaining := text

	for {
		bang := strings.IndexByte(remaining, '!')
		if bang == -1 {
			mainBuilder.WriteString(remaining)
			break
		}
		mainBuilder.WriteString(remaining[:bang])

		blank := strings.Index(remaining, "\n\n")
		if blank == -1 || blank < bang {
			return "", nil, &DirectiveError{Line: remaining[bang:], Msg: "directive block is missing its terminating blank line"}
		}

		chunk := remaining[bang:blank]
		remaining = remaining[blank+2:]

		block, err := parseDirectiveChunk(chunk)
		if err != nil {
			return "", nil, err
		}
		blocks = append(blocks, block)
	}

	return mainBuilder.String(), blocks, nil
}

// parseDirectiveChunk parses the leading run of `!`-prefixed lines in
// chunk as directives, then treats the remaining lines as the block's code.
func parseDirectiveChunk(chunk string) (routineBlock, error) {
	lines := strings.Split(chunk, "\n")

	var block routineBlock
	i := 0
	for i < len(lines) && strings.HasPrefix(lines[i], "!") {
		if err := applyDirective(lines[i], &block); err != nil {
			return routineBlock{}, err
		}
		i++
	}
	block.code = strings.Join(lines[i:], "\n")
	return block, nil
}

func applyDirective(line string, block *routineBlock) error {
	key, value, found := strings.Cut(line, "=")
	if !found {
		return &DirectiveError{Line: line, Msg: "directive is missing '='"}
	}

	switch key {
	case "!place_at":
		addr, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return &DirectiveError{Line: line, Msg: "!place_at value is not a valid decimal address"}
		}
		block.addr = uint16(addr)
		block.hasAddr = true
	case "!is_subroutine_for":
		switch value {
		case "delay":
			block.purpose = chip8.Delay
		case "sound":
			block.purpose = chip8.Sound
		default:
			return &DirectiveError{Line: line, Msg: "!is_subroutine_for must be 'delay' or 'sound'"}
		}
	default:
		return &DirectiveError{Line: line, Msg: "unrecognised directive"}
	}
	return nil
}
