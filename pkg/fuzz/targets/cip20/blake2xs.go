package cip20

import "github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"

// blake2XsSelector identifies the Blake2Xs variant within a CIP-20 payload.
const blake2XsSelector = 0x11

const blake2XsPayloadMinLen = 4 + 4 + 4 + 2 + 2 + 8 + 8 + 2

// Blake2XsArgs is the Intermediate for the Blake2Xs CIP-20 variant (selector
// 0x11): a BLAKE2s tree-mode parameter block plus the two-phase XOF fields
// (xof_digest_length, desired).
type Blake2XsArgs struct {
	HashLength      byte
	Fanout          byte
	Depth           byte
	LeafLength      uint32
	NodeOffset      uint32
	XofDigestLength uint16
	NodeDepth       byte
	InnerLength     byte
	Salt            [8]byte
	Personalization [8]byte
	Key             []byte
	Desired         uint16
	Preimage        []byte
}

func genBlake2XsArgs(m *mutator.Mutator) Blake2XsArgs {
	args := Blake2XsArgs{
		HashLength:      byte(m.IntRange(1, 33)),
		Fanout:          m.Uint8(),
		Depth:           m.Uint8(),
		LeafLength:      m.Uint32(),
		NodeOffset:      m.Uint32(),
		XofDigestLength: m.Uint16(),
		NodeDepth:       m.Uint8(),
		InnerLength:     byte(m.IntRange(1, 33)),
		Key:             m.TruncatedKey(),
		Desired:         uint16(m.IntRange(1, 256)),
		Preimage:        m.Bytes(),
	}
	m.FixedBytes(args.Salt[:])
	m.FixedBytes(args.Personalization[:])
	return args
}

func (a Blake2XsArgs) serialize() []byte {
	buf := make([]byte, 0, blake2XsPayloadMinLen+len(a.Key)+len(a.Preimage))
	buf = append(buf, a.HashLength, byte(len(a.Key)), a.Fanout, a.Depth)
	buf = append(buf, le32(a.LeafLength)...)
	buf = append(buf, le32(a.NodeOffset)...)
	buf = append(buf, byte(a.XofDigestLength), byte(a.XofDigestLength>>8))
	buf = append(buf, a.NodeDepth, a.InnerLength)
	buf = append(buf, a.Salt[:]...)
	buf = append(buf, a.Personalization[:]...)
	buf = append(buf, a.Key...)
	// desired is serialized big-endian while every sibling field here is
	// little-endian; preserved as-written, see SPEC_FULL.md Open Question 2.
	buf = append(buf, byte(a.Desired>>8), byte(a.Desired))
	buf = append(buf, a.Preimage...)
	return buf
}

func decodeBlake2XsArgs(payload []byte) (Blake2XsArgs, error) {
	if len(payload) < blake2XsPayloadMinLen {
		return Blake2XsArgs{}, errTooShort("blake2Xs", blake2XsPayloadMinLen, len(payload))
	}
	var a Blake2XsArgs
	a.HashLength = payload[0]
	keyLength := int(payload[1])
	a.Fanout = payload[2]
	a.Depth = payload[3]
	off := 4
	a.LeafLength = readLE32(payload[off:])
	off += 4
	a.NodeOffset = readLE32(payload[off:])
	off += 4
	a.XofDigestLength = uint16(payload[off]) | uint16(payload[off+1])<<8
	off += 2
	a.NodeDepth = payload[off]
	a.InnerLength = payload[off+1]
	off += 2
	copy(a.Salt[:], payload[off:off+8])
	off += 8
	copy(a.Personalization[:], payload[off:off+8])
	off += 8

	if len(payload) < off+keyLength+2 {
		return Blake2XsArgs{}, errTooShort("blake2Xs key+desired", off+keyLength+2, len(payload))
	}
	a.Key = append([]byte(nil), payload[off:off+keyLength]...)
	off += keyLength
	a.Desired = uint16(payload[off])<<8 | uint16(payload[off+1])
	off += 2
	a.Preimage = append([]byte(nil), payload[off:]...)
	return a, nil
}

// compositeNodeOffset builds the 48-bit node_offset used for every
// compression in the Blake2Xs control: the 32-bit node_offset in the low 32
// bits, the little-endian bytes of xofDigestLength packed into bits 32-47.
func compositeNodeOffset(nodeOffset32 uint32, xofDigestLength uint16) uint64 {
	lo := byte(xofDigestLength)
	hi := byte(xofDigestLength >> 8)
	return uint64(nodeOffset32) | uint64(lo)<<32 | uint64(hi)<<40
}

// run computes the Blake2Xs two-phase XOF control output: a root hash h0,
// then N = ceil(D/32) child digests over h0, concatenated WITHOUT truncating
// to D. This un-truncated output is preserved as-written; see SPEC_FULL.md
// Open Question 1.
func (a Blake2XsArgs) run() []byte {
	rootParams := blake2sParams{
		digestLength:    a.HashLength,
		keyLength:       byte(len(a.Key)),
		fanout:          a.Fanout,
		depth:           a.Depth,
		leafLength:      a.LeafLength,
		nodeOffset:      compositeNodeOffset(a.NodeOffset, a.XofDigestLength),
		nodeDepth:       a.NodeDepth,
		innerLength:     a.InnerLength,
		salt:            a.Salt,
		personalization: a.Personalization,
	}
	h0 := blake2s(rootParams, a.Key, a.Preimage)

	desired := a.XofDigestLength
	if a.Desired < desired {
		desired = a.Desired
	}
	numHashes := int((uint32(desired) + 31) / 32)

	var result []byte
	for i := 0; i < numHashes; i++ {
		childParams := blake2sParams{
			digestLength:    32,
			keyLength:       0,
			fanout:          0,
			depth:           0,
			leafLength:      0,
			nodeOffset:      compositeNodeOffset(uint32(i), a.XofDigestLength),
			nodeDepth:       0,
			innerLength:     32,
			salt:            a.Salt,
			personalization: a.Personalization,
		}
		digest := blake2s(childParams, nil, h0)
		result = append(result, digest...)
	}
	return result
}
