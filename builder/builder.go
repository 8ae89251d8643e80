// Package builder implements ProofBuilder: the algorithm that folds the
// cached checkpoint residues of a ProofSet into a Proof via the
// Pietrzak-style batched proof-of-exponentiation, binding each fold step
// to the Fiat-Shamir hash chain.
//
// Ported from the original's ProofSet::computeProof, which drives the
// fold with a binary-counter-style buffer merge: residues are loaded in
// an order that lets each newly-loaded leaf immediately absorb into any
// run of already-complete sibling buffers, the way a carry ripples
// through a binary adder. That traversal order is preserved verbatim
// here; only the buffer/engine types are Go's.
package builder

import (
	"context"

	"github.com/olympichek/gpuowl/engine"
	"github.com/olympichek/gpuowl/errs"
	"github.com/olympichek/gpuowl/hashchain"
	"github.com/olympichek/gpuowl/proof"
	"github.com/olympichek/gpuowl/proofset"
	"github.com/olympichek/gpuowl/residue"
	"github.com/sirupsen/logrus"
)

// Logger is overridden by the top-level gpuowl package's SetLogger.
var Logger = logrus.StandardLogger()

// ProofBuilder folds a ProofSet's cached residues into a Proof.
type ProofBuilder struct {
	ps  *proofset.ProofSet
	eng engine.BigIntEngine
}

// New returns a ProofBuilder reading from ps and squaring/multiplying on eng.
func New(ps *proofset.ProofSet, eng engine.BigIntEngine) *ProofBuilder {
	return &ProofBuilder{ps: ps, eng: eng}
}

// Build runs the fold to completion, or returns ctx.Err() if ctx is
// cancelled between proof levels. It returns the Proof together with the
// Fiat-Shamir challenge h[] produced along the way, which callers may
// pass to verifier.Verify as the expected-hash cross-check.
func (b *ProofBuilder) Build(ctx context.Context) (*proof.File, []uint64, error) {
	e := b.ps.E
	power := b.ps.Power
	points := proofset.Points(e, power)

	bResidue, err := b.ps.Load(e)
	if err != nil {
		return nil, nil, errs.Wrap(err, "loading terminal residue B")
	}

	chain := hashchain.New(bResidue)

	bufs := b.eng.MakeBufferVector(int(power))
	middles := make([]*residue.Residue, 0, power)
	hashes := make([]uint64, 0, power)

	for p := uint32(0); p < power; p++ {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		bufIt := 0
		s := uint32(1) << (power - p - 1)
		for i := uint32(0); i < (uint32(1) << p); i++ {
			k := points[s*(i*2+1)-1]
			w, err := b.ps.Load(k)
			if err != nil {
				return nil, nil, errs.Wrap(err, "loading proof leaf residue")
			}
			b.eng.WriteIn(bufs[bufIt], w)
			bufIt++

			for kk := uint32(0); i&(uint32(1)<<kk) != 0; kk++ {
				bufIt--
				h := hashes[p-1-kk]
				merged := b.eng.ExpMul(bufs[bufIt-1], h, bufs[bufIt], false)
				b.eng.WriteIn(bufs[bufIt-1], merged)
			}
		}

		m, err := b.eng.ReadAndCompress(bufs[0])
		if err != nil {
			return nil, nil, errs.Wrap(err, "reading compressed proof middle")
		}
		middles = append(middles, m)
		h := chain.Absorb(m)
		hashes = append(hashes, h)
		Logger.WithFields(logrus.Fields{"E": e, "level": p, "h": h}).Debug("proof: built level")
	}

	return &proof.File{
		E:            e,
		KnownFactors: b.ps.KnownFactors,
		B:            bResidue,
		Middles:      middles,
	}, hashes, nil
}
