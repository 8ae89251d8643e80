package engine

import (
	"math/big"
	"testing"

	"github.com/olympichek/gpuowl/residue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpExp2MatchesRepeatedSquaring(t *testing.T) {
	eng := NewMathBigEngine(127)
	x := residue.Three(127)

	got := eng.ExpExp2(x, 5)

	want := new(big.Int).Set(x.Int())
	for i := 0; i < 5; i++ {
		want.Mul(want, want).Mod(want, residue.Modulus(127))
	}
	assert.Equal(t, want, got.Int())
}

func TestExpExp2ZeroStepsIsIdentity(t *testing.T) {
	eng := NewMathBigEngine(127)
	x := residue.Three(127)
	got := eng.ExpExp2(x, 0)
	assert.True(t, x.Equal(got))
}

func TestPRPResidueOfKnownMersennePrime(t *testing.T) {
	// M127 = 2^127-1 is prime, so 3^(2^127) mod M127 == 9.
	eng := NewMathBigEngine(127)
	got := eng.ExpExp2(residue.Three(127), 127)
	assert.True(t, residue.Nine(127).Equal(got))
}

func TestExpMulMatchesDirectComputation(t *testing.T) {
	e := uint32(31) // M31 is prime, small enough to brute force directly
	eng := NewMathBigEngine(e)
	x := residue.New(e, big.NewInt(5))
	y := residue.New(e, big.NewInt(7))

	got := eng.ExpMul(x, 13, y, false)

	want := new(big.Int).Exp(x.Int(), big.NewInt(13), residue.Modulus(e))
	want.Mul(want, y.Int())
	want.Mod(want, residue.Modulus(e))
	assert.Equal(t, want, got.Int())
}

func TestExpMulSquareY(t *testing.T) {
	e := uint32(31)
	eng := NewMathBigEngine(e)
	x := residue.New(e, big.NewInt(5))
	y := residue.New(e, big.NewInt(7))

	got := eng.ExpMul(x, 3, y, true)

	want := new(big.Int).Exp(x.Int(), big.NewInt(3), residue.Modulus(e))
	y2 := new(big.Int).Mul(y.Int(), y.Int())
	want.Mul(want, y2)
	want.Mod(want, residue.Modulus(e))
	assert.Equal(t, want, got.Int())
}

func TestExpMulAcceptsBufferOperands(t *testing.T) {
	e := uint32(31)
	eng := NewMathBigEngine(e)
	bufs := eng.MakeBufferVector(2)
	eng.WriteIn(bufs[0], residue.New(e, big.NewInt(5)))
	eng.WriteIn(bufs[1], residue.New(e, big.NewInt(7)))

	got := eng.ExpMul(bufs[0], 13, bufs[1], false)

	want := new(big.Int).Exp(big.NewInt(5), big.NewInt(13), residue.Modulus(e))
	want.Mul(want, big.NewInt(7))
	want.Mod(want, residue.Modulus(e))
	assert.Equal(t, want, got.Int())
}

func TestReadAndCompressRejectsZeroBuffer(t *testing.T) {
	eng := NewMathBigEngine(31)
	bufs := eng.MakeBufferVector(1)
	_, err := eng.ReadAndCompress(bufs[0])
	assert.Error(t, err)
}

func TestReadAndCompressRoundTrip(t *testing.T) {
	eng := NewMathBigEngine(31)
	bufs := eng.MakeBufferVector(1)
	r := residue.New(31, big.NewInt(12345))
	eng.WriteIn(bufs[0], r)

	got, err := eng.ReadAndCompress(bufs[0])
	require.NoError(t, err)
	assert.True(t, r.Equal(got))
}
