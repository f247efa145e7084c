package bitvector

// Granularities of the hierarchical counter layout. A word is one uint64 of
// payload; a block is 8 words; a superblock is 8 blocks. See
// bitvector.cpp::BLOCK_SIZE / EVERY_OTHER_1_POS / L0BLOCK_SIZE in the
// original source for the numbers these mirror.
const (
	wordBits       = 64
	wordsPerBlock  = 8
	blockBits      = wordsPerBlock * wordBits // 512
	blocksPerSuper = 8
	superBits      = blocksPerSuper * blockBits // 4096

	// selectCacheStride is how often (in occurrences) a superblock number is
	// appended to a select cache: every 8192nd one, every 8192nd zero.
	selectCacheStride = 8192

	// blockFieldBits is the width of each packed per-block prefix field.
	blockFieldBits = 12
	blockFieldMask = (uint64(1) << blockFieldBits) - 1
)

// l0BlockSize is the bit-position threshold past which rank/select must add
// the second L0 span's running total. Mirrors L0BLOCK_SIZE (0xFFFFFFFFFFF,
// 2^44-1) in the original source exactly; positions beyond it belong to the
// second L0 span.
var l0BlockSize uint64 = 0xFFFFFFFFFFF

// superblocksPerL0 is the superblock count at which the builder rolls over
// into the second L0 span, snapshotting oneCount into l0SingleBlockData.
// Mirrors SUPERBLOCKS_PER_L0 (0x7FFFFFFF, 2^31-1) in the original source.
// It is a var, not a const, so tests can shrink both thresholds together to
// exercise the L0 rollover path without allocating terabits of payload —
// spec.md §8 calls this substitution out explicitly as acceptable.
var superblocksPerL0 uint64 = 0x7FFFFFFF
