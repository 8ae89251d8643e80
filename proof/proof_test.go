package proof

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/olympichek/gpuowl/residue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := uint32(127)
	f := &File{
		E:       e,
		B:       residue.Nine(e),
		Middles: []*residue.Residue{residue.New(e, big.NewInt(42))},
	}
	path := filepath.Join(dir, "127-1.proof")
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, f.E, got.E)
	assert.Equal(t, f.KnownFactors, got.KnownFactors)
	assert.True(t, f.B.Equal(got.B))
	require.Len(t, got.Middles, 1)
	assert.True(t, f.Middles[0].Equal(got.Middles[0]))
}

func TestSaveLoadRoundTripWithCofactors(t *testing.T) {
	dir := t.TempDir()
	e := uint32(18178631)
	factors := []string{"36357263", "145429049", "8411216206439"}
	f := &File{
		E:            e,
		KnownFactors: factors,
		B:            residue.New(e, big.NewInt(9)),
		Middles: []*residue.Residue{
			residue.New(e, big.NewInt(1)), residue.New(e, big.NewInt(2)),
			residue.New(e, big.NewInt(3)), residue.New(e, big.NewInt(4)),
			residue.New(e, big.NewInt(5)), residue.New(e, big.NewInt(6)),
			residue.New(e, big.NewInt(7)), residue.New(e, big.NewInt(8)),
		},
	}
	path := f.FileName(dir)
	require.NoError(t, f.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, factors, got.KnownFactors)
	assert.Equal(t, 8, got.Power())
}

func TestLoadRejectsBadHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.proof")
	require.NoError(t, os.WriteFile(path, []byte("NOT A PROOF\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsPowerOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.proof")
	require.NoError(t, os.WriteFile(path, []byte("PRP PROOF\nVERSION=2\nHASHSIZE=64\nPOWER=13\nNUMBER=M127\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
