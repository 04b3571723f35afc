// Package identity implements the identity precompile target (address
// 0x04): the Intermediate is a plain byte vector and the control is the
// identity function.
package identity

import (
	"github.com/jihwankim/pcfuzz/pkg/fuzz/mutator"
	"github.com/jihwankim/pcfuzz/pkg/fuzz/target"
)

// Address is the precompile address this target dispatches to.
const Address = 0x04

// Precompile is the identity target. It carries no per-thread state; state
// lives in the ThreadContext the driver hands to RunExperimental.
type Precompile struct{}

// New constructs an identity Precompile.
func New() *Precompile { return &Precompile{} }

func (p *Precompile) Name() string { return "identity" }

// GenerateSerialized draws an arbitrary-length byte vector. Serialization is
// the identity function — the Intermediate already is the wire form.
func (p *Precompile) GenerateSerialized(m *mutator.Mutator) []byte {
	return m.Bytes()
}

func (p *Precompile) RunExperimental(ctx *target.ThreadContext, serialized []byte) []target.CommunicationResult {
	return target.RunBoth(ctx, Address, serialized)
}

// RunControl returns the input unchanged — identity's control computation.
func (p *Precompile) RunControl(serialized []byte) ([]byte, error) {
	out := make([]byte, len(serialized))
	copy(out, serialized)
	return out, nil
}

var _ target.ControlTarget = (*Precompile)(nil)
