package engine

import (
	"math/big"

	"github.com/olympichek/gpuowl/errs"
	"github.com/olympichek/gpuowl/residue"
)

// MathBigEngine is a pure math/big BigIntEngine. It is not accelerated by
// any FFT/NTT transform; it exists as the deterministic reference backend
// ProofBuilder and ProofVerifier are tested against, and as a usable (if
// slow for large E) engine in its own right, the way the example corpus's
// safeprime_stub backend stands in for a cgo-backed implementation.
type MathBigEngine struct {
	e uint32
	m *fastMod
}

// NewMathBigEngine returns a MathBigEngine reducing modulo 2^e-1.
func NewMathBigEngine(e uint32) *MathBigEngine {
	var p big.Int
	p.Lsh(big.NewInt(1), uint(e))
	p.Sub(&p, big.NewInt(1))
	return &MathBigEngine{e: e, m: newFastMod(&p)}
}

func (eng *MathBigEngine) MakeBufferVector(n int) []*Buffer {
	bufs := make([]*Buffer, n)
	for i := range bufs {
		bufs[i] = &Buffer{r: residue.New(eng.e, big.NewInt(0))}
	}
	return bufs
}

func (eng *MathBigEngine) WriteIn(buf *Buffer, r *residue.Residue) {
	buf.r = r
}

// ReadAndCompress returns buf's residue. A zero residue is treated as an
// uninitialized buffer (the engine never legitimately produces the
// all-zero residue for a nonzero exponentiation base) and reported as
// ErrEngineFailure, mirroring how a stalled accelerator read is surfaced.
func (eng *MathBigEngine) ReadAndCompress(buf *Buffer) (*residue.Residue, error) {
	if buf == nil || buf.r == nil || buf.r.IsZero() {
		return nil, errs.ErrEngineFailure
	}
	return buf.r, nil
}

func (eng *MathBigEngine) valueInt(v Value) *big.Int {
	switch t := v.(type) {
	case *residue.Residue:
		return t.Int()
	case *Buffer:
		return t.r.Int()
	default:
		panic("engine: Value must be *residue.Residue or *Buffer")
	}
}

// ExpMul computes X^h * Y mod 2^E-1, or X^h * Y^2 if squareY.
func (eng *MathBigEngine) ExpMul(x Value, h uint64, y Value, squareY bool) *residue.Residue {
	xi := eng.valueInt(x)
	yi := eng.valueInt(y)

	var acc big.Int
	acc.SetInt64(1)
	base := new(big.Int).Set(xi)
	for hh := h; hh > 0; hh >>= 1 {
		if hh&1 != 0 {
			acc.Mul(&acc, base)
			eng.m.mod(&acc, &acc)
		}
		base.Mul(base, base)
		eng.m.mod(base, base)
	}

	if squareY {
		var y2 big.Int
		y2.Mul(yi, yi)
		eng.m.mod(&y2, &y2)
		acc.Mul(&acc, &y2)
	} else {
		acc.Mul(&acc, yi)
	}
	eng.m.mod(&acc, &acc)

	return residue.New(eng.e, &acc)
}

// ExpExp2 computes X^(2^n) mod 2^E-1 by n successive squarings.
func (eng *MathBigEngine) ExpExp2(x *residue.Residue, n uint32) *residue.Residue {
	v := new(big.Int).Set(x.Int())
	for i := uint32(0); i < n; i++ {
		v.Mul(v, v)
		eng.m.mod(v, v)
	}
	return residue.New(eng.e, v)
}
