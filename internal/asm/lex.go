package asm

import "strings"

// splitLabelPrefix reports whether line begins with a label definition
// ("name: <instruction>"): a contiguous run of non-space, non-newline
// characters terminated by a colon. It returns the label name and the
// remaining instruction text with the label and colon removed.
func splitLabelPrefix(line string) (name, rest string, ok bool) {
	idx := strings.IndexByte(line, ':')
	if idx <= 0 {
		return "", "", false
	}
	candidate := line[:idx]
	if strings.ContainsAny(candidate, " \t") {
		return "", "", false
	}
	return candidate, strings.TrimSpace(line[idx+1:]), true
}

// tokenize splits an instruction line into its mnemonic and operands,
// tokenising on spaces and commas per the assembler grammar.
func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == ','
	})
	return fields
}

// blockLines splits code into non-blank lines, stripping any leading
// label definition from each and recording it in lt at base+2*lineIndex.
// Blank lines are dropped outright; they carry no instruction and would
// otherwise throw off the 2-bytes-per-line address arithmetic.
func blockLines(code string, base uint16, lt *labelTable) []string {
	rawLines := strings.Split(code, "\n")
	lines := make([]string, 0, len(rawLines))

	idx := 0
	for _, raw := range rawLines {
		line := strings.TrimRight(raw, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if name, rest, ok := splitLabelPrefix(line); ok {
			lt.define(name, base+2*uint16(idx))
			line = rest
		}
		lines = append(lines, line)
		idx++
	}
	return lines
}
