package cip20

import (
	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
)

// blake2sSelector identifies the Blake2s variant within a CIP-20 payload.
const blake2sSelector = 0x10

// blake2sPayloadMinLen is the shortest a well-formed Blake2s payload can be:
// 4 fixed bytes + 4(leaf_length) + 6(node_offset) + 2(node_depth,inner_length)
// + 8(salt) + 8(personalization), with zero-length key and preimage.
const blake2sPayloadMinLen = 4 + 4 + 6 + 2 + 8 + 8

// Blake2sArgs is the Intermediate for the Blake2s CIP-20 variant (selector
// 0x10): the full tree-mode parameter block plus the preimage to hash.
type Blake2sArgs struct {
	HashLength      byte
	Fanout          byte
	Depth           byte
	LeafLength      uint32
	NodeOffset      uint64 // 48-bit value
	NodeDepth       byte
	InnerLength     byte
	Salt            [8]byte
	Personalization [8]byte
	Key             []byte
	Preimage        []byte
}

func genBlake2sArgs(m *mutator.Mutator) Blake2sArgs {
	args := Blake2sArgs{
		HashLength:  byte(m.IntRange(1, 33)),
		Fanout:      m.Uint8(),
		Depth:       m.Uint8(),
		LeafLength:  m.Uint32(),
		NodeOffset:  m.Uint48(),
		NodeDepth:   m.Uint8(),
		InnerLength: byte(m.IntRange(1, 33)),
		Key:         m.TruncatedKey(),
		Preimage:    m.Bytes(),
	}
	m.FixedBytes(args.Salt[:])
	m.FixedBytes(args.Personalization[:])
	return args
}

// serialize writes the Blake2s payload (everything after the selector byte).
func (a Blake2sArgs) serialize() []byte {
	buf := make([]byte, 0, blake2sPayloadMinLen+len(a.Key)+len(a.Preimage))
	buf = append(buf, a.HashLength, byte(len(a.Key)), a.Fanout, a.Depth)
	buf = append(buf, le32(a.LeafLength)...)
	buf = append(buf, le48(a.NodeOffset)...)
	buf = append(buf, a.NodeDepth, a.InnerLength)
	buf = append(buf, a.Salt[:]...)
	buf = append(buf, a.Personalization[:]...)
	buf = append(buf, a.Key...)
	buf = append(buf, a.Preimage...)
	return buf
}

// decodeBlake2sArgs parses a Blake2s payload (selector already stripped).
func decodeBlake2sArgs(payload []byte) (Blake2sArgs, error) {
	if len(payload) < blake2sPayloadMinLen {
		return Blake2sArgs{}, errTooShort("blake2s", blake2sPayloadMinLen, len(payload))
	}
	var a Blake2sArgs
	a.HashLength = payload[0]
	keyLength := int(payload[1])
	a.Fanout = payload[2]
	a.Depth = payload[3]
	off := 4
	a.LeafLength = readLE32(payload[off:])
	off += 4
	a.NodeOffset = readLE48(payload[off:])
	off += 6
	a.NodeDepth = payload[off]
	a.InnerLength = payload[off+1]
	off += 2
	copy(a.Salt[:], payload[off:off+8])
	off += 8
	copy(a.Personalization[:], payload[off:off+8])
	off += 8

	if len(payload) < off+keyLength {
		return Blake2sArgs{}, errTooShort("blake2s key", off+keyLength, len(payload))
	}
	a.Key = append([]byte(nil), payload[off:off+keyLength]...)
	off += keyLength
	a.Preimage = append([]byte(nil), payload[off:]...)
	return a, nil
}

// run computes the Blake2s control output: the full tree-mode parameter
// block over the preimage, exactly as the experimental precompile should.
func (a Blake2sArgs) run() []byte {
	params := blake2sParams{
		digestLength:    a.HashLength,
		keyLength:       byte(len(a.Key)),
		fanout:          a.Fanout,
		depth:           a.Depth,
		leafLength:      a.LeafLength,
		nodeOffset:      a.NodeOffset,
		nodeDepth:       a.NodeDepth,
		innerLength:     a.InnerLength,
		salt:            a.Salt,
		personalization: a.Personalization,
	}
	return blake2s(params, a.Key, a.Preimage)
}

func le32(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func readLE32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// le48 writes the low 48 bits of v, little-endian.
func le48(v uint64) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24), byte(v >> 32), byte(v >> 40)}
}

func readLE48(b []byte) uint64 {
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 |
		uint64(b[3])<<24 | uint64(b[4])<<32 | uint64(b[5])<<40
}
