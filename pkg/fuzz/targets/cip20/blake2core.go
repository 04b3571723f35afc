package cip20

// A from-scratch RFC 7693 BLAKE2s compression function, parameterized with
// the full tree-mode parameter block (fanout, depth, leaf_length,
// node_offset, node_depth, inner_length) the test vectors in this package
// require. golang.org/x/crypto/blake2s's public Config type exposes only
// Size/Key/Salt/Person — no tree parameters — so there is no third-party
// implementation in reach that can serve this; see DESIGN.md.

const blockSize = 64 // bb: bytes per compression block

var blake2sIV = [8]uint32{
	0x6A09E667, 0xBB67AE85, 0x3C6EF372, 0xA54FF53A,
	0x510E527F, 0x9B05688C, 0x1F83D9AB, 0x5BE0CD19,
}

var blake2sSigma = [10][16]byte{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

func rotr32(x uint32, n uint) uint32 {
	return (x >> n) | (x << (32 - n))
}

// blake2sParams is the 32-byte BLAKE2s parameter block, field-for-field the
// same tree-mode layout the Blake2s/Blake2Xs wire payloads already carry.
type blake2sParams struct {
	digestLength    byte
	keyLength       byte
	fanout          byte
	depth           byte
	leafLength      uint32
	nodeOffset      uint64 // low 48 bits significant
	nodeDepth       byte
	innerLength     byte
	salt            [8]byte
	personalization [8]byte
}

// initialState returns h[0..7] = IV XOR parameter-block-as-8-LE-words.
func (p blake2sParams) initialState() [8]uint32 {
	var words [8]uint32
	words[0] = uint32(p.digestLength) | uint32(p.keyLength)<<8 | uint32(p.fanout)<<16 | uint32(p.depth)<<24
	words[1] = p.leafLength
	words[2] = uint32(p.nodeOffset) // low 32 bits of the 48-bit offset
	words[3] = uint32(p.nodeOffset>>32) | uint32(p.nodeDepth)<<16 | uint32(p.innerLength)<<24
	words[4] = leUint32(p.salt[0:4])
	words[5] = leUint32(p.salt[4:8])
	words[6] = leUint32(p.personalization[0:4])
	words[7] = leUint32(p.personalization[4:8])

	var h [8]uint32
	for i := range h {
		h[i] = blake2sIV[i] ^ words[i]
	}
	return h
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// compress runs one F-function compression of block (exactly 64 bytes) into
// h, with byte counter t (bytes hashed so far, including this block) and
// final set on the last block of the message.
func compress(h *[8]uint32, block []byte, t uint64, final bool) {
	var m [16]uint32
	for i := 0; i < 16; i++ {
		m[i] = leUint32(block[i*4 : i*4+4])
	}

	v := [16]uint32{
		h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7],
		blake2sIV[0], blake2sIV[1], blake2sIV[2], blake2sIV[3],
		blake2sIV[4], blake2sIV[5], blake2sIV[6], blake2sIV[7],
	}
	v[12] ^= uint32(t)
	v[13] ^= uint32(t >> 32)
	if final {
		v[14] = ^v[14]
	}

	g := func(a, b, c, d int, x, y uint32) {
		v[a] = v[a] + v[b] + x
		v[d] = rotr32(v[d]^v[a], 16)
		v[c] = v[c] + v[d]
		v[b] = rotr32(v[b]^v[c], 12)
		v[a] = v[a] + v[b] + y
		v[d] = rotr32(v[d]^v[a], 8)
		v[c] = v[c] + v[d]
		v[b] = rotr32(v[b]^v[c], 7)
	}

	for round := 0; round < 10; round++ {
		s := blake2sSigma[round]
		g(0, 4, 8, 12, m[s[0]], m[s[1]])
		g(1, 5, 9, 13, m[s[2]], m[s[3]])
		g(2, 6, 10, 14, m[s[4]], m[s[5]])
		g(3, 7, 11, 15, m[s[6]], m[s[7]])
		g(0, 5, 10, 15, m[s[8]], m[s[9]])
		g(1, 6, 11, 12, m[s[10]], m[s[11]])
		g(2, 7, 8, 13, m[s[12]], m[s[13]])
		g(3, 4, 9, 14, m[s[14]], m[s[15]])
	}

	for i := 0; i < 8; i++ {
		h[i] ^= v[i] ^ v[i+8]
	}
}

// blake2s computes BLAKE2s(key || preimage) under the given tree-mode
// parameter block, returning digestLength bytes.
func blake2s(params blake2sParams, key, preimage []byte) []byte {
	h := params.initialState()

	var t uint64

	// Assemble the full message stream: key block (padded to blockSize) if
	// keyed, followed by the preimage, then process in blockSize chunks with
	// the final chunk (possibly zero-length) flagged.
	var stream []byte
	if len(key) > 0 {
		kb := make([]byte, blockSize)
		copy(kb, key)
		stream = append(stream, kb...)
	}
	stream = append(stream, preimage...)

	if len(stream) == 0 {
		var block [blockSize]byte
		compress(&h, block[:], 0, true)
	} else {
		for offset := 0; offset < len(stream); offset += blockSize {
			end := offset + blockSize
			isFinal := end >= len(stream)
			if end > len(stream) {
				end = len(stream)
			}
			var block [blockSize]byte
			copy(block[:], stream[offset:end])
			t += uint64(end - offset)
			compress(&h, block[:], t, isFinal)
		}
	}

	out := make([]byte, 32)
	for i := 0; i < 8; i++ {
		out[i*4] = byte(h[i])
		out[i*4+1] = byte(h[i] >> 8)
		out[i*4+2] = byte(h[i] >> 16)
		out[i*4+3] = byte(h[i] >> 24)
	}
	if int(params.digestLength) < 32 {
		return out[:params.digestLength]
	}
	return out
}
