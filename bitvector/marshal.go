package bitvector

import "github.com/ugorji/go/codec"

// MarshalBinary encodes the BitVector's full state — payload, descriptor
// table, both select caches and all scalar totals — into a portable
// binary form. Valid at any point (raw or indexed); UnmarshalBinary
// restores exactly the state that was marshalled, including the built
// flag, so a persisted indexed vector does not need BuildHelpers called
// again. Grounded on the teacher's own Marshal/UnmarshalBinary pair
// (rsdic.go), generalised to this structure's field set.
func (b *BitVector) MarshalBinary() (out []byte, err error) {
	var bh codec.MsgpackHandle
	enc := codec.NewEncoderBytes(&out, &bh)

	fields := []interface{}{
		b.words,
		b.num,
		b.built,
		b.descriptors,
		b.selectOne,
		b.selectZero,
		b.l0SingleBlockData,
		b.oneCount,
		b.zeroCount,
		b.lastOnePos,
		b.lastZeroPos,
	}
	for _, f := range fields {
		if err = enc.Encode(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnmarshalBinary decodes a BitVector from the form produced by
// MarshalBinary.
func (b *BitVector) UnmarshalBinary(in []byte) error {
	var bh codec.MsgpackHandle
	dec := codec.NewDecoderBytes(in, &bh)

	decoders := []func() error{
		func() error { return dec.Decode(&b.words) },
		func() error { return dec.Decode(&b.num) },
		func() error { return dec.Decode(&b.built) },
		func() error { return dec.Decode(&b.descriptors) },
		func() error { return dec.Decode(&b.selectOne) },
		func() error { return dec.Decode(&b.selectZero) },
		func() error { return dec.Decode(&b.l0SingleBlockData) },
		func() error { return dec.Decode(&b.oneCount) },
		func() error { return dec.Decode(&b.zeroCount) },
		func() error { return dec.Decode(&b.lastOnePos) },
		func() error { return dec.Decode(&b.lastZeroPos) },
	}
	for _, d := range decoders {
		if err := d(); err != nil {
			return err
		}
	}
	return nil
}
