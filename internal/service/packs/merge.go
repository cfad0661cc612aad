package packs

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// BlockStart opens the managed block.
	BlockStart = "# BEGIN PIXI PACKS"
	// BlockEnd closes the managed block.
	BlockEnd = "# END PIXI PACKS"
	// KeyName is the pyocd option holding pack paths.
	KeyName = "pack"

	keyLine    = KeyName + ":\n"
	itemPrefix = "  - "
)

// Mode selects where a new block goes when the document has none.
type Mode int

const (
	// ModeKeyAware places the block under an existing pack: key.
	ModeKeyAware Mode = iota
	// ModeSimple appends a self-contained block to the end of the document.
	ModeSimple
)

// String returns the flag spelling of m.
func (m Mode) String() string {
	switch m {
	case ModeKeyAware:
		return "key-aware"
	case ModeSimple:
		return "simple"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses the flag spelling of a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "key-aware":
		return ModeKeyAware, nil
	case "simple":
		return ModeSimple, nil
	default:
		return 0, fmt.Errorf("%w: %q (must be simple or key-aware)", errUnknownMode, s)
	}
}

// Merge places packs into the managed block of existing and reports whether
// the result differs from existing. An empty pack list leaves the document
// alone. existing is never modified.
func Merge(existing, packs []string, mode Mode) ([]string, bool) {
	if len(packs) == 0 {
		return existing, false
	}

	var merged []string

	start, end, found := findBlock(existing)

	switch {
	case found:
		// Keep a pack: line inside the block unless the block continues a
		// pack: key above it, so a document first written in simple mode
		// stays valid YAML.
		withKey := mode == ModeSimple || !underKey(existing, start)

		merged = make([]string, 0, len(existing)+len(packs)+3)
		merged = append(merged, existing[:start]...)
		merged = append(merged, buildBlock(packs, withKey)...)
		merged = append(merged, existing[end+1:]...)
	case mode == ModeSimple:
		merged = insertAt(existing, len(existing), buildBlock(packs, true))
	default:
		key := findKey(existing)
		if key < 0 {
			block := append([]string{keyLine}, buildBlock(packs, false)...)
			merged = insertAt(existing, len(existing), block)

			break
		}

		merged = insertAt(existing, continuationEnd(existing, key), buildBlock(packs, false))
	}

	return merged, !slices.Equal(existing, merged)
}

// findBlock returns the first start marker and the first end marker after it.
func findBlock(lines []string) (int, int, bool) {
	start := slices.IndexFunc(lines, func(line string) bool {
		return strings.TrimSpace(line) == BlockStart
	})
	if start < 0 {
		return -1, -1, false
	}

	for i := start + 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == BlockEnd {
			return start, i, true
		}
	}

	return -1, -1, false
}

// findKey returns the first line holding the pack: key.
func findKey(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), KeyName+":") {
			return i
		}
	}

	return -1
}

// underKey reports whether the line at start continues the list of a
// top-level pack: key, skipping blank and indented lines above it.
func underKey(lines []string, start int) bool {
	for i := start - 1; i >= 0; i-- {
		line := lines[i]
		if strings.TrimSpace(line) == "" || line[0] == ' ' || line[0] == '\t' {
			continue
		}

		return strings.HasPrefix(line, KeyName+":")
	}

	return false
}

// continuationEnd returns the index of the first line after key that is
// neither blank nor indented, or len(lines).
// Blank lines count as part of the list.
func continuationEnd(lines []string, key int) int {
	i := key + 1
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] != ' ' && line[0] != '\t' {
			break
		}
	}

	return i
}

// buildBlock renders the managed block.
func buildBlock(packs []string, withKey bool) []string {
	block := make([]string, 0, len(packs)+3)
	block = append(block, BlockStart+"\n")

	if withKey {
		block = append(block, keyLine)
	}

	for _, pack := range packs {
		block = append(block, itemPrefix+pack+"\n")
	}

	return append(block, BlockEnd+"\n")
}

// insertAt returns a copy of lines with block inserted before index at.
// The line before the insertion point gets a newline if it lacks one.
func insertAt(lines []string, at int, block []string) []string {
	merged := make([]string, 0, len(lines)+len(block))
	merged = append(merged, lines[:at]...)

	if at > 0 && !strings.HasSuffix(merged[at-1], "\n") {
		merged[at-1] += "\n"
	}

	merged = append(merged, block...)

	return append(merged, lines[at:]...)
}

// SplitLines splits content into lines that keep their "\n".
// The last line has none when content does not end with a newline.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}
