package verifier

import (
	"context"
	"math/big"
	"testing"

	"github.com/olympichek/gpuowl/engine"
	"github.com/olympichek/gpuowl/hashchain"
	"github.com/olympichek/gpuowl/proof"
	"github.com/olympichek/gpuowl/residue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildByHand constructs a valid one-level proof directly from the PRP
// residue sequence, independent of the builder package, so verifier
// tests don't depend on builder compiling correctly.
func buildByHand(t *testing.T, e uint32) (*proof.File, []uint64) {
	t.Helper()
	eng := engine.NewMathBigEngine(e)

	x := residue.Three(e)
	span0 := (e + 1) / 2
	x = eng.ExpExp2(x, span0)
	m0 := x // residue at iteration span0

	final := eng.ExpExp2(m0, e-span0)

	chain := hashchain.New(final)
	h0 := chain.Absorb(m0)
	_ = h0

	return &proof.File{
		E:       e,
		B:       final,
		Middles: []*residue.Residue{m0},
	}, []uint64{h0}
}

func TestVerifyAcceptsHonestProof(t *testing.T) {
	e := uint32(127)
	f, hashes := buildByHand(t, e)
	eng := engine.NewMathBigEngine(e)

	result, err := Verify(context.Background(), f, eng, hashes)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.True(t, result.IsPrime)
}

func TestVerifyRejectsTamperedMiddle(t *testing.T) {
	e := uint32(127)
	f, hashes := buildByHand(t, e)
	eng := engine.NewMathBigEngine(e)

	tampered := new(big.Int).Xor(f.Middles[0].Int(), big.NewInt(1))
	f.Middles[0] = residue.New(e, tampered)

	result, err := Verify(context.Background(), f, eng, hashes)
	assert.Error(t, err)
	assert.False(t, result.Valid)
}

func TestVerifyRejectsEmptyProof(t *testing.T) {
	eng := engine.NewMathBigEngine(127)
	f := &proof.File{E: 127, B: residue.Nine(127)}
	_, err := Verify(context.Background(), f, eng, nil)
	assert.Error(t, err)
}

func TestVerifyCancelledContext(t *testing.T) {
	e := uint32(127)
	f, hashes := buildByHand(t, e)
	eng := engine.NewMathBigEngine(e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Verify(ctx, f, eng, hashes)
	assert.Error(t, err)
}
