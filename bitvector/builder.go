package bitvector

import "math/bits"

// BuildHelpers runs the single linear pass over the payload that computes
// totals, fills the superblock descriptor table, emits both select caches,
// records the L0 split point, and caches the last-one/last-zero positions.
// It must be called exactly once, after the payload is filled and before
// any Rank or Select call.
//
// Ported from bitvector.cpp::buildHelpers: per word it accumulates ones
// via popcount, commits a packed (M1, M2) descriptor pair every 8 blocks
// (every 4096 bits), and appends to a select cache every 8192th
// occurrence of a 1 or 0. When the superblock count reaches
// superblocksPerL0 it snapshots oneCount into l0SingleBlockData and resets
// the cross-superblock running total, starting the second L0 span.
func (b *BitVector) BuildHelpers() error {
	if b.built {
		return ErrAlreadyBuilt
	}

	if b.num == 0 {
		b.built = true
		return nil
	}
	lastWordIdx := b.lastWordIndex()
	validBitsLastWord := b.validBitsInLastWord()
	// NewFromReader may over-allocate one trailing all-zero word past
	// lastWordIdx (see lastWordIndex's doc comment); never iterate into it.
	numWords := lastWordIdx + 1

	b.descriptors = make([]uint64, 0, ((numWords/blocksPerSuper)+1)*2)

	var (
		wordInBlock    uint8  // words committed to the current block, 0..7
		blockInSuper   uint8  // blocks committed to the current superblock, 0..7
		superblockOnes uint64 // ones in the current (in-progress) superblock
		l0Ones         uint64 // ones since the start of the current L0 span
		committed      uint64 // number of fully committed superblocks so far
		metadata1      uint64
		metadata2      uint64
		nextOneCache   uint64 = selectCacheStride
		nextZeroCache  uint64 = selectCacheStride
	)

	for idx := uint64(0); idx < numWords; idx++ {
		word := b.words[idx]
		ones := uint64(popcount(word))
		isLast := idx == lastWordIdx
		validBits := uint64(wordBits)
		if isLast {
			validBits = validBitsLastWord
		}

		superblockOnes += ones
		l0Ones += ones
		b.oneCount += ones
		b.zeroCount += validBits - ones

		if ones > 0 {
			b.lastOnePos = idx*wordBits + uint64(63-bits.LeadingZeros64(word))
		}
		inverted := ^word
		if validBits < wordBits {
			inverted &= (uint64(1) << validBits) - 1
		}
		if inverted != 0 {
			b.lastZeroPos = idx*wordBits + uint64(63-bits.LeadingZeros64(inverted))
		}

		if b.oneCount >= nextOneCache {
			b.selectOne = append(b.selectOne, uint32(committed))
			nextOneCache += selectCacheStride
		}
		if b.zeroCount >= nextZeroCache {
			b.selectZero = append(b.selectZero, uint32(committed))
			nextZeroCache += selectCacheStride
		}

		wordInBlock++
		if wordInBlock == wordsPerBlock || isLast {
			wordInBlock = 0
			if blockInSuper == blocksPerSuper-1 {
				b.descriptors = append(b.descriptors, metadata1, metadata2)
				committed++
				if committed == superblocksPerL0 {
					b.l0SingleBlockData = b.oneCount
					l0Ones = 0
				}
				metadata1 = l0Ones << 20
				metadata2 = 0
				superblockOnes = 0
				blockInSuper = 0
			} else {
				switch blockInSuper {
				case 0:
					metadata1 |= (superblockOnes & blockFieldMask) << 8
				case 1:
					metadata1 |= (superblockOnes >> 4) & 0xFF
					metadata2 |= (superblockOnes & 0xF) << 60
				default:
					metadata2 |= (superblockOnes & blockFieldMask) << ((uint64(blockInSuper) - 2) * blockFieldBits)
				}
				blockInSuper++
			}
		}
	}

	// Flush the in-progress descriptor so the table covers every position
	// up to and including N, matching buildHelpers' final unconditional
	// push. When N ends on a superblock boundary this pair describes the
	// empty superblock starting at N, which rank1(N) reads.
	b.descriptors = append(b.descriptors, metadata1, metadata2)

	b.built = true
	return nil
}
