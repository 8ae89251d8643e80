// Package hashchain implements the deterministic Fiat-Shamir transcript
// that binds a proof together: a running SHA3-256 digest seeded by the
// terminal residue B, absorbing one middle residue per proof level and
// yielding a 64-bit public-coin challenge each time.
//
// This is the same "hash the transcript so far, take the low bits as the
// next challenge" idiom as the example corpus's Fiat-Shamir commitment
// helpers, adapted from SHA-256-over-ASN.1-encoded-big-ints to
// SHA3-256-over-little-endian-residue-bytes per the wire format this
// system's proofs must produce.
package hashchain

import (
	"encoding/binary"

	"github.com/olympichek/gpuowl/residue"
	"golang.org/x/crypto/sha3"
)

// Chain derives h[0..P) from (E, B, M[0..P)) by repeated SHA3-256 absorption.
// The zero value is not usable; construct with New.
type Chain struct {
	digest [32]byte
}

// New seeds a chain from the terminal residue B: d_0 = SHA3-256(bytes(B)).
func New(b *residue.Residue) *Chain {
	h := sha3.New256()
	h.Write(b.Encode())
	c := &Chain{}
	copy(c.digest[:], h.Sum(nil))
	return c
}

// Absorb extends the chain with middle residue m: d_{i+1} =
// SHA3-256(d_i || bytes(m)), and returns h[i], the low 64 bits of d_{i+1}
// read little-endian. Builder and verifier must call Absorb in the same
// order the middles were appended to the proof.
func (c *Chain) Absorb(m *residue.Residue) uint64 {
	h := sha3.New256()
	h.Write(c.digest[:])
	h.Write(m.Encode())
	sum := h.Sum(nil)
	copy(c.digest[:], sum)
	return binary.LittleEndian.Uint64(sum[:8])
}
