// Package cip20 implements the CIP-20 multiplexed hashing precompile target
// (address 0xf3): a selector byte followed by a selector-specific payload,
// covering SHA3-256, SHA3-512, Keccak-512, and the Blake2s/Blake2Xs
// tree-mode variants.
package cip20

import (
	"fmt"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
	"golang.org/x/crypto/sha3"
)

// Address is the precompile address this target dispatches to.
const Address = 0xf3

const (
	sha3_256Selector  = 0x00
	sha3_512Selector  = 0x01
	keccak512Selector = 0x02
)

// VariantCount is the number of valid generated variants. The reference
// implementation's CIP20Modes enum only wires four (it never reaches
// Blake2Xs from its own generator, leaving Blake2XsGenOpts dead code); per
// spec.md's explicit five-row selector table, Blake2Xs is completed here as
// a full fifth variant.
const VariantCount = 5

// Intermediate is the CIP-20 test case: a variant tag plus its payload.
// Exactly one of Preimage/Blake2s/Blake2Xs/Invalid is populated, matching
// which Selector was chosen.
type Intermediate struct {
	Selector byte
	Preimage []byte // sha3-256 / sha3-512 / keccak-512
	Blake2s  *Blake2sArgs
	Blake2Xs *Blake2XsArgs
	Invalid  []byte // invalid input written verbatim: wholly random bytes, or a selector-prefixed too-short Blake2s payload
}

// Serialize writes the selector byte (if any) and the selector-specific
// payload. The "wholly random" invalid variant carries no selector prefix —
// it is raw bytes start to finish, "no selector guarantee" per spec.md.
func (i Intermediate) Serialize() []byte {
	switch {
	case i.Invalid != nil:
		return append([]byte(nil), i.Invalid...)
	case i.Blake2s != nil:
		return append([]byte{blake2sSelector}, i.Blake2s.serialize()...)
	case i.Blake2Xs != nil:
		return append([]byte{blake2XsSelector}, i.Blake2Xs.serialize()...)
	default:
		return append([]byte{i.Selector}, i.Preimage...)
	}
}

// Precompile is the CIP-20 target.
type Precompile struct{}

// New constructs a CIP-20 Precompile.
func New() *Precompile { return &Precompile{} }

func (p *Precompile) Name() string { return "cip20" }

// Generate draws a uniform selector in [0, VariantCount) and the matching
// payload.
func (p *Precompile) Generate(m *mutator.Mutator) Intermediate {
	switch m.IntRange(0, VariantCount) {
	case 0:
		return Intermediate{Selector: sha3_256Selector, Preimage: m.Bytes()}
	case 1:
		return Intermediate{Selector: sha3_512Selector, Preimage: m.Bytes()}
	case 2:
		return Intermediate{Selector: keccak512Selector, Preimage: m.Bytes()}
	case 3:
		args := genBlake2sArgs(m)
		return Intermediate{Blake2s: &args}
	default:
		args := genBlake2XsArgs(m)
		return Intermediate{Blake2Xs: &args}
	}
}

// GenerateSerialized draws and serializes a valid Intermediate in one step.
func (p *Precompile) GenerateSerialized(m *mutator.Mutator) []byte {
	return p.Generate(m).Serialize()
}

// GenerateInvalid draws one of two pathological variants: wholly random
// bytes, or a Blake2s-selector payload too short to hold the full parameter
// block.
func (p *Precompile) GenerateInvalid(m *mutator.Mutator) Intermediate {
	if m.IntRange(0, 2) == 0 {
		return Intermediate{Invalid: m.Bytes()}
	}
	// A payload shorter than blake2sPayloadMinLen, still prefixed with the
	// Blake2s selector so it looks plausible at a glance.
	short := m.BytesN(blake2sPayloadMinLen - 1)
	return Intermediate{Blake2s: nil, Invalid: append([]byte{blake2sSelector}, short...)}
}

// GenerateInvalidSerialized draws and serializes an invalid Intermediate.
func (p *Precompile) GenerateInvalidSerialized(m *mutator.Mutator) []byte {
	return p.GenerateInvalid(m).Serialize()
}

func (p *Precompile) RunExperimental(ctx *target.ThreadContext, serialized []byte) []target.CommunicationResult {
	// The reference implementation only ever routes CIP-20 through the
	// variant binary (it has no reference-side CIP-20 support); compare
	// against the in-process control instead of a second child process.
	return []target.CommunicationResult{target.RunOne(ctx.Variant, Address, serialized)}
}

// RunControl decodes the selector byte and computes the matching reference
// hash over the payload.
func (p *Precompile) RunControl(serialized []byte) ([]byte, error) {
	if len(serialized) < 1 {
		return nil, fmt.Errorf("cip20: empty input")
	}
	selector := serialized[0]
	payload := serialized[1:]

	switch selector {
	case sha3_256Selector:
		sum := sha3.Sum256(payload)
		return sum[:], nil
	case sha3_512Selector:
		sum := sha3.Sum512(payload)
		return sum[:], nil
	case keccak512Selector:
		h := sha3.NewLegacyKeccak512()
		h.Write(payload) //nolint:errcheck
		return h.Sum(nil), nil
	case blake2sSelector:
		args, err := decodeBlake2sArgs(payload)
		if err != nil {
			return nil, err
		}
		return args.run(), nil
	case blake2XsSelector:
		args, err := decodeBlake2XsArgs(payload)
		if err != nil {
			return nil, err
		}
		return args.run(), nil
	default:
		return nil, fmt.Errorf("cip20: unknown selector 0x%02x", selector)
	}
}

func errTooShort(what string, want, got int) error {
	return fmt.Errorf("cip20: %s payload too short: need at least %d bytes, got %d", what, want, got)
}

var (
	_ target.ControlTarget = (*Precompile)(nil)
	_ target.InvalidTarget = (*Precompile)(nil)
)
