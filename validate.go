package gpuowl

import (
	"math/big"

	"github.com/olympichek/gpuowl/errs"
)

// ValidateExponent reports whether e is plausible as a PRP test exponent: an
// odd prime. This check is deliberately not part of ProofSet.New's fast
// path (oddness alone is checked there, matching the original's assert(E &
// 1)) because a Miller-Rabin-backed primality test is too costly to pay on
// every resume of a months-long PRP run; callers that want the stronger
// guarantee before starting a run should call this explicitly.
func ValidateExponent(e uint32) error {
	if e&1 == 0 {
		return errs.ErrBadExponent
	}
	if !new(big.Int).SetUint64(uint64(e)).ProbablyPrime(20) {
		return errs.ErrBadExponent
	}
	return nil
}
