// Package bitvector provides a succinct static bit-sequence index.
//
// It wraps an immutable sequence of bits and answers access, rank and
// select in effectively constant time, adding only a small fraction of
// overhead bits on top of the raw payload. Such structures are building
// blocks for compressed tries, wavelet trees, FM-indexes and succinct
// trees.
//
// A BitVector has two phases: first its payload is filled (via New or
// NewFromReader), then BuildHelpers is called exactly once to compute the
// hierarchical descriptor table and select caches. Only Access is valid
// before BuildHelpers; Rank, Select and Size require it.
//
// Ported from a C++ reference implementation (see the repository's
// original_source) that organises the payload into a four-level hierarchy
// of word (64 bit) / block (512 bit) / superblock (4096 bit) / L0 span
// (2^31 superblocks), with a packed 128-bit-per-superblock descriptor and
// two select acceleration caches.
package bitvector

import (
	"bufio"
	"io"
	"math/bits"
	"strings"
)

// BitVector is a Rank/Select/Access structure over an immutable bit
// sequence. The zero value is not usable; construct with New or
// NewFromReader.
type BitVector struct {
	words []uint64 // payload, low-bit-first within each word
	num   uint64   // N, total bit length

	built       bool
	descriptors []uint64 // pairs (M1, M2) per superblock
	selectOne   []uint32 // selectCache_1: superblock numbers
	selectZero  []uint32 // selectCache_0: superblock numbers

	l0SingleBlockData uint64
	oneCount          uint64
	zeroCount         uint64
	lastOnePos        uint64
	lastZeroPos       uint64
}

// New builds the raw payload of a BitVector from a string of '0'/'1'
// glyphs. Any other byte, notably a trailing '\r', is skipped. Call
// BuildHelpers before using Rank or Select.
func New(s string) *BitVector {
	bv, _ := NewFromReader(strings.NewReader(s))
	return bv
}

// NewFromReader builds the raw payload of a BitVector by streaming '0'/'1'
// glyphs from r. Any other byte is skipped. Call BuildHelpers before using
// Rank or Select.
func NewFromReader(r io.Reader) (*BitVector, error) {
	br := bufio.NewReader(r)
	bv := &BitVector{words: make([]uint64, 0, 64)}

	var current uint64
	var inner uint8
	var outer int

	grow := func() {
		if outer >= len(bv.words) {
			bv.words = append(bv.words, 0)
		}
	}
	grow()

	for {
		c, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if c != '0' && c != '1' {
			continue
		}
		current |= uint64(c-'0') << inner
		inner++
		bv.num++
		if inner >= wordBits {
			inner = 0
			bv.words[outer] = current
			current = 0
			outer++
			grow()
		}
	}
	bv.words[outer] = current
	bv.words = bv.words[:outer+1]
	return bv, nil
}

// Len returns N, the number of bits in the sequence.
func (b *BitVector) Len() uint64 {
	return b.num
}

// OneCount returns the total number of one bits. Valid only after
// BuildHelpers.
func (b *BitVector) OneCount() uint64 {
	return b.oneCount
}

// ZeroCount returns the total number of zero bits. Valid only after
// BuildHelpers.
func (b *BitVector) ZeroCount() uint64 {
	return b.zeroCount
}

// Access returns the bit at position p: one load, one shift, one mask. No
// bounds check; the caller guarantees p < Len().
func (b *BitVector) Access(p uint64) uint8 {
	return uint8((b.words[p/wordBits] >> (p % wordBits)) & 1)
}

// popcount is the hardware popcount primitive the rank and select engines
// combine with precomputed prefix counts. math/bits compiles to a single
// POPCNT instruction on amd64/arm64; no third-party bit-twiddling library
// in the retrieval pack improves on the standard library here.
func popcount(word uint64) int {
	return bits.OnesCount64(word)
}
