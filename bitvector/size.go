package bitvector

// scalarOverheadBits accounts for the same five scalar fields the original
// tracks — l0SingleBlockData, oneCount, zeroCount, lastOnePos, lastZeroPos —
// each a uint64. Mirrors bitvector.cpp::size's literal 320-bit figure
// exactly (spec.md §4.5); it does not include num.
const scalarOverheadBits = 5 * 64

// Size reports the total storage footprint in bits: fixed scalar overhead
// plus the capacity of the payload, the descriptor table, and both select
// caches. It is constant after BuildHelpers and independent of query
// workload.
func (b *BitVector) Size() uint64 {
	size := uint64(scalarOverheadBits)
	size += uint64(cap(b.words)) * wordBits
	size += uint64(cap(b.descriptors)) * wordBits
	size += uint64(cap(b.selectOne)) * 32
	size += uint64(cap(b.selectZero)) * 32
	return size
}
