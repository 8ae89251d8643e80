// Package engine defines the BigIntEngine boundary the proof core
// consumes from the (out-of-scope) FFT/NTT squaring accelerator, and
// provides a pure math/big reference implementation usable as the
// deterministic test stub anticipated by the design notes, and as a
// genuine (if unaccelerated) engine for small-to-moderate exponents.
//
// Exactly one polymorphic seam exists in the proof core, realized here
// the way the example corpus realizes its safeprime.Generate /
// safeprime_stub.Generate swap: a narrow interface with a real backend
// and a reference backend, selected by the caller rather than by build
// tags (no cgo boundary is involved here, so there is nothing for a
// build tag to select between).
package engine

import "github.com/olympichek/gpuowl/residue"

// Buffer is an opaque handle to a residue held in the engine's working
// set, the Go realization of the accelerator's device-side buffers.
type Buffer struct {
	r *residue.Residue
}

// Value is either a *residue.Residue or a *Buffer, matching the "X:
// Residue|Buffer" parameter kind the engine contract allows.
type Value interface{}

// BigIntEngine is the abstract boundary consumed by ProofBuilder and
// ProofVerifier. All operations are modulo 2^E-1 for the engine's fixed E.
type BigIntEngine interface {
	// MakeBufferVector allocates n working buffers.
	MakeBufferVector(n int) []*Buffer

	// WriteIn uploads r into buf.
	WriteIn(buf *Buffer, r *residue.Residue)

	// ReadAndCompress downloads buf's residue. An engine that cannot
	// produce a result (transient accelerator failure) returns
	// errs.ErrEngineFailure.
	ReadAndCompress(buf *Buffer) (*residue.Residue, error)

	// ExpMul computes X^h * Y, or X^h * Y^2 if squareY, mod 2^E-1.
	ExpMul(x Value, h uint64, y Value, squareY bool) *residue.Residue

	// ExpExp2 computes X^(2^n) mod 2^E-1 via n-fold squaring.
	ExpExp2(x *residue.Residue, n uint32) *residue.Residue
}
