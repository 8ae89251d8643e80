// Package residue implements the fixed-width canonical encoding of
// elements of Z/(2^E-1) used throughout the proof core: the .proof file
// payload, the hash chain's transcript bytes, and the word-aligned,
// CRC-32-checked cache files all round-trip through this type.
package residue

import (
	"encoding/binary"
	"hash/crc32"
	"io"
	"math/big"

	"github.com/olympichek/gpuowl/errs"
)

// Residue is a canonical, non-negative element of Z/(2^E-1): a value
// strictly less than 2^E-1, represented internally by a math/big.Int.
type Residue struct {
	e uint32
	v *big.Int
}

// Nb returns the canonical byte width ceil(E/8) of a residue for exponent E.
func Nb(e uint32) int { return int((e-1)/8) + 1 }

// wordsCanonical returns the on-disk word width ceil(E/32) (no guard word)
// of a residue's little-endian 32-bit-word encoding for exponent E.
func wordsCanonical(e uint32) int { return int((e-1)/32) + 1 }

// Nw returns the in-memory word width ceil(E/32)+1 of a residue, including
// the guard word the squaring engine uses for carry propagation. Nw is
// never used for on-disk sizing; see wordsCanonical for that.
func Nw(e uint32) int { return wordsCanonical(e) + 1 }

// Modulus returns 2^e - 1.
func Modulus(e uint32) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(e))
	return m.Sub(m, big.NewInt(1))
}

// New reduces v modulo 2^e-1 and returns the canonical residue.
func New(e uint32, v *big.Int) *Residue {
	r := new(big.Int).Mod(v, Modulus(e))
	return &Residue{e: e, v: r}
}

// E returns the exponent this residue is reduced modulo 2^E-1.
func (r *Residue) E() uint32 { return r.e }

// Int returns the underlying value as a *big.Int. The caller must not
// mutate the result.
func (r *Residue) Int() *big.Int { return r.v }

// IsZero reports whether the residue's canonical value is exactly zero.
func (r *Residue) IsZero() bool { return r.v.Sign() == 0 }

// Three returns the PRP seed residue 3 mod 2^e-1.
func Three(e uint32) *Residue { return New(e, big.NewInt(3)) }

// Nine returns the PRP-success residue 9 mod 2^e-1.
func Nine(e uint32) *Residue { return New(e, big.NewInt(9)) }

// Encode returns the Nb(E)-byte little-endian, zero-padded canonical
// encoding of r.
func (r *Residue) Encode() []byte {
	nb := Nb(r.e)
	buf := make([]byte, nb)
	b := r.v.Bytes() // big-endian, minimal length
	for i := 0; i < len(b); i++ {
		buf[i] = b[len(b)-1-i]
	}
	return buf
}

// Decode parses an Nb(E)-byte little-endian encoding into a canonical
// residue. It fails with errs.ErrMalformedResidue if the length is wrong
// or the decoded value is not strictly less than 2^E-1.
func Decode(e uint32, buf []byte) (*Residue, error) {
	if len(buf) != Nb(e) {
		return nil, errs.ErrMalformedResidue
	}
	be := make([]byte, len(buf))
	for i, b := range buf {
		be[len(buf)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if v.Sign() < 0 || v.Cmp(Modulus(e)) >= 0 {
		return nil, errs.ErrMalformedResidue
	}
	return &Residue{e: e, v: v}, nil
}

// Equal reports whether r and other encode to the same canonical bytes.
func (r *Residue) Equal(other *Residue) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.e != other.e {
		return false
	}
	a, b := r.Encode(), other.Encode()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ChecksumlessWrite writes r's Nb(E)-byte canonical encoding with no
// checksum, the .proof file's residue payload format (as opposed to the
// word-aligned, CRC-32-checked residue cache format; see ChecksumWrite).
func (r *Residue) ChecksumlessWrite(w io.Writer) error {
	_, err := w.Write(r.Encode())
	return err
}

// ChecksumlessRead reads a residue previously written with
// ChecksumlessWrite.
func ChecksumlessRead(e uint32, r io.Reader) (*Residue, error) {
	buf := make([]byte, Nb(e))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return Decode(e, buf)
}

// ChecksumWrite writes r's word-aligned canonical payload (wordsCanonical(E)
// little-endian 32-bit words) followed by a 4-byte little-endian CRC-32
// (IEEE polynomial) of that payload. This is the on-disk format of the
// residue cache files described by the proof point store.
func (r *Residue) ChecksumWrite(w io.Writer) error {
	nw := wordsCanonical(r.e)
	payload := make([]byte, nw*4)
	b := r.v.Bytes()
	for i := 0; i < len(b); i++ {
		payload[i] = b[len(b)-1-i]
	}
	if _, err := w.Write(payload); err != nil {
		return err
	}
	var crcBuf [4]byte
	binary.LittleEndian.PutUint32(crcBuf[:], crc32.ChecksumIEEE(payload))
	_, err := w.Write(crcBuf[:])
	return err
}

// ChecksumRead reads a residue previously written with ChecksumWrite,
// validating its CRC-32. It returns errs.ErrCorruptResidue on mismatch.
func ChecksumRead(e uint32, r io.Reader) (*Residue, error) {
	nw := wordsCanonical(e)
	payload := make([]byte, nw*4)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, err
	}
	var crcBuf [4]byte
	if _, err := io.ReadFull(r, crcBuf[:]); err != nil {
		return nil, err
	}
	want := binary.LittleEndian.Uint32(crcBuf[:])
	if got := crc32.ChecksumIEEE(payload); got != want {
		return nil, errs.ErrCorruptResidue
	}
	be := make([]byte, len(payload))
	for i, b := range payload {
		be[len(payload)-1-i] = b
	}
	v := new(big.Int).SetBytes(be)
	if v.Cmp(Modulus(e)) >= 0 {
		return nil, errs.ErrMalformedResidue
	}
	return &Residue{e: e, v: v}, nil
}

// ChecksumSize returns the total on-disk size in bytes of a cache file for
// exponent e: the word-aligned payload plus the 4-byte CRC.
func ChecksumSize(e uint32) int64 {
	return int64(wordsCanonical(e)+1) * 4
}
