// Package sha256 implements the SHA-256 precompile target (address 0x02).
// The cryptographic primitive itself is out of scope per the project's
// black-box-library-primitive carve-out; the control simply calls into the
// standard library's crypto/sha256.
package sha256

import (
	"crypto/sha256"

	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
)

// Address is the precompile address this target dispatches to.
const Address = 0x02

// Precompile is the SHA-256 target.
type Precompile struct{}

// New constructs a SHA-256 Precompile.
func New() *Precompile { return &Precompile{} }

func (p *Precompile) Name() string { return "sha256" }

// GenerateSerialized draws an arbitrary-length byte vector.
func (p *Precompile) GenerateSerialized(m *mutator.Mutator) []byte {
	return m.Bytes()
}

func (p *Precompile) RunExperimental(ctx *target.ThreadContext, serialized []byte) []target.CommunicationResult {
	return target.RunBoth(ctx, Address, serialized)
}

// RunControl hashes serialized with SHA-256.
func (p *Precompile) RunControl(serialized []byte) ([]byte, error) {
	sum := sha256.Sum256(serialized)
	return sum[:], nil
}

var _ target.ControlTarget = (*Precompile)(nil)
