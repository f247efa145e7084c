// Package query parses the one-line-per-query grammar the CLI wrapper
// reads from its input file: "access <p>" | "rank <0|1> <p>" |
// "select <0|1> <i>". Ported from original_source/main.cpp's
// getCommand, which uses the same regular expression.
package query

import (
	"regexp"
	"strconv"
)

// Kind identifies which of the three core operations a Command invokes.
type Kind byte

const (
	// KindAccess is "access <p>".
	KindAccess Kind = 'a'
	// KindRank is "rank <0|1> <p>".
	KindRank Kind = 'r'
	// KindSelect is "select <0|1> <i>".
	KindSelect Kind = 's'
)

// Command is a single parsed query line.
type Command struct {
	Kind     Kind
	BitValue uint8  // only meaningful for KindRank/KindSelect
	Position uint64 // the bit index (access/rank) or 1-based rank (select)
}

// pattern mirrors main.cpp's getCommand regex exactly: the command word,
// a first numeric argument, and an optional second numeric argument, with
// an optional trailing \r tolerated for Windows-authored input files.
var pattern = regexp.MustCompile(`^(access|rank|select) (\d+)(?: (\d+))?\r?$`)

// defaultCommand is the sentinel substituted for a malformed query line:
// access 0. The core engine never sees the malformed line itself (spec §7).
var defaultCommand = Command{Kind: KindAccess}

// Parse parses one query line. A line that does not match the grammar
// returns the sentinel default command (access 0), exactly as
// main.cpp::getCommand does, rather than an error — malformed input is
// the CLI's problem to paper over, not the core engine's.
func Parse(line string) Command {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return defaultCommand
	}

	switch m[1] {
	case "access":
		p, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			return defaultCommand
		}
		return Command{Kind: KindAccess, Position: p}
	default:
		bv, err := strconv.ParseUint(m[2], 10, 8)
		if err != nil || (bv != 0 && bv != 1) {
			return defaultCommand
		}
		if m[3] == "" {
			return defaultCommand
		}
		pos, err := strconv.ParseUint(m[3], 10, 64)
		if err != nil {
			return defaultCommand
		}
		kind := KindRank
		if m[1] == "select" {
			kind = KindSelect
		}
		return Command{Kind: kind, BitValue: uint8(bv), Position: pos}
	}
}
