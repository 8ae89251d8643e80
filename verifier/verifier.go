// Package verifier implements ProofVerifier: replays a Proof's
// Fiat-Shamir hash chain and fold steps, then checks the terminal
// identity A == B that certifies the underlying PRP residue.
//
// Ported from the original's Proof::verify.
package verifier

import (
	"context"

	"github.com/olympichek/gpuowl/engine"
	"github.com/olympichek/gpuowl/errs"
	"github.com/olympichek/gpuowl/hashchain"
	"github.com/olympichek/gpuowl/proof"
	"github.com/olympichek/gpuowl/residue"
	"github.com/sirupsen/logrus"
)

// Logger is overridden by the top-level gpuowl package's SetLogger.
var Logger = logrus.StandardLogger()

// Result reports the outcome of a successful verification: whether the
// identity held, and whether the underlying number is a probable prime
// (B == 9) or proven composite (B != 9).
type Result struct {
	Valid   bool
	IsPrime bool
	Hashes  []uint64
}

// Verify replays f's fold using eng and checks A == B at the end.
//
// If expectedHashes is non-empty, each replayed challenge h[i] is
// cross-checked against expectedHashes[i] (for i < len(expectedHashes))
// before it is used, the way the original's optional hashes parameter
// lets a builder assert its own output matches an independent replay.
// A cancelled ctx aborts the loop and returns ctx.Err(); no verdict is
// produced.
func Verify(ctx context.Context, f *proof.File, eng engine.BigIntEngine, expectedHashes []uint64) (Result, error) {
	power := f.Power()
	if power == 0 {
		return Result{}, errs.Wrap(errs.ErrMalformedHeader, "proof has no middles")
	}

	isPrime := f.B.Equal(residue.Nine(f.E))

	a := residue.Three(f.E)
	bRes := f.B

	chain := hashchain.New(bRes)
	hashes := make([]uint64, 0, power)

	span := f.E
	for i, m := range f.Middles {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		default:
		}

		h := chain.Absorb(m)
		hashes = append(hashes, h)

		if i < len(expectedHashes) && h != expectedHashes[i] {
			Logger.WithFields(logrus.Fields{"level": i, "want": expectedHashes[i], "got": h}).
				Warn("proof: hash chain mismatch")
			return Result{Valid: false, IsPrime: isPrime, Hashes: hashes}, errs.ErrVerificationFailed
		}

		doSquareB := span%2 != 0
		bRes = eng.ExpMul(m, h, bRes, doSquareB)
		a = eng.ExpMul(a, h, m, false)

		span = (span + 1) / 2
	}

	a = eng.ExpExp2(a, span)

	ok := a.Equal(bRes)
	if ok {
		verdict := "composite"
		if isPrime {
			verdict = "probable prime"
		}
		Logger.WithFields(logrus.Fields{"E": f.E}).Infof("proof: %d proved %s", f.E, verdict)
	} else {
		Logger.WithFields(logrus.Fields{"E": f.E}).Warn("proof: invalid, terminal identity does not hold")
	}

	if !ok {
		return Result{Valid: false, IsPrime: isPrime, Hashes: hashes}, errs.ErrVerificationFailed
	}
	return Result{Valid: true, IsPrime: isPrime, Hashes: hashes}, nil
}
