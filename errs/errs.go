// Package errs defines the error taxonomy shared by every proof-core
// package: a small set of sentinel errors callers can branch on with
// errors.Is, each carrying a stack trace courtesy of go-errors/errors the
// way the credential-issuance errors in the example corpus do.
package errs

import "github.com/go-errors/errors"

var (
	// ErrBadPower: proof power P outside [1, 12].
	ErrBadPower = errors.New("proof power out of range [1,12]")

	// ErrBadExponent: E is not usable as a PRP exponent (not odd, or
	// fails the optional primality gate in ValidateExponent).
	ErrBadExponent = errors.New("exponent is not an odd prime")

	// ErrMalformedHeader: the .proof header does not parse per the
	// normative grammar.
	ErrMalformedHeader = errors.New("proof header malformed")

	// ErrMalformedResidue: a residue's byte length is wrong, or its
	// value is not reduced modulo 2^E-1.
	ErrMalformedResidue = errors.New("residue malformed")

	// ErrMissingResidue: a required cache file is absent or unreadable.
	ErrMissingResidue = errors.New("residue missing from cache")

	// ErrCorruptResidue: a cache file's CRC-32 does not match its payload.
	ErrCorruptResidue = errors.New("residue checksum mismatch")

	// ErrEngineFailure: the BigIntEngine returned an empty/unavailable
	// result, signalling a transient accelerator failure.
	ErrEngineFailure = errors.New("engine returned an empty result")

	// ErrVerificationFailed: the verifier's terminal identity A == B did
	// not hold. This is a soundness event, not a parse error.
	ErrVerificationFailed = errors.New("proof verification failed")

	// ErrIOFailure wraps filesystem errors encountered by the cache or
	// proof file layers that are not better described by one of the
	// kinds above.
	ErrIOFailure = errors.New("i/o failure in proof core")
)

// Wrap attaches msg and a stack trace to err, mirroring the WrapPrefix
// idiom used throughout the example corpus (e.g. "Failed to serialize
// public key"). Callers that need to branch on error kind should check
// the unwrapped cause against the sentinels above before calling Wrap.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.WrapPrefix(err, msg, 0)
}
