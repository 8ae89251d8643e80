package residue

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, e := range []uint32{11, 127, 521, 86243} {
		t.Run("", func(t *testing.T) {
			r := New(e, big.NewInt(123456789))
			enc := r.Encode()
			assert.Equal(t, Nb(e), len(enc))
			back, err := Decode(e, enc)
			require.NoError(t, err)
			assert.True(t, r.Equal(back))
		})
	}
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode(127, []byte{1, 2, 3})
	assert.Error(t, err)
}

func TestDecodeRejectsUnreducedValue(t *testing.T) {
	// 2^11 - 1 is the modulus itself: not a valid canonical residue.
	e := uint32(11)
	mod := Modulus(e)
	buf := make([]byte, Nb(e))
	b := mod.Bytes()
	for i := 0; i < len(b); i++ {
		buf[i] = b[len(b)-1-i]
	}
	_, err := Decode(e, buf)
	assert.Error(t, err)
}

func TestResidueEqualToModulusMinusOneIsValid(t *testing.T) {
	e := uint32(127)
	mod := Modulus(e)
	v := new(big.Int).Sub(mod, big.NewInt(1)) // 2^E - 2
	r := New(e, v)
	enc := r.Encode()
	back, err := Decode(e, enc)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestChecksumRoundTrip(t *testing.T) {
	e := uint32(521)
	r := New(e, big.NewInt(987654321))
	var buf bytes.Buffer
	require.NoError(t, r.ChecksumWrite(&buf))
	assert.EqualValues(t, ChecksumSize(e), buf.Len())
	back, err := ChecksumRead(e, &buf)
	require.NoError(t, err)
	assert.True(t, r.Equal(back))
}

func TestChecksumDetectsCorruption(t *testing.T) {
	e := uint32(127)
	r := Three(e)
	var buf bytes.Buffer
	require.NoError(t, r.ChecksumWrite(&buf))
	corrupted := buf.Bytes()
	corrupted[0] ^= 0xFF
	_, err := ChecksumRead(e, bytes.NewReader(corrupted))
	assert.Error(t, err)
}

func TestThreeAndNine(t *testing.T) {
	e := uint32(127)
	assert.Equal(t, big.NewInt(3), Three(e).Int())
	assert.Equal(t, big.NewInt(9), Nine(e).Int())
}
