package proof

import (
	"crypto/md5"
	"encoding/hex"
	"io"
	"os"

	"github.com/multiformats/go-multihash"
	"github.com/olympichek/gpuowl/errs"
)

// Info summarizes a .proof file's header fields plus its whole-file
// digest, mirroring the original's ProofInfo/proof::getInfo.
type Info struct {
	Power        int
	E            uint32
	KnownFactors []string
	MD5          string
	Multihash    string
}

// FileHash returns the hex-encoded MD5 digest of the entire file at path,
// streamed in 64 KiB chunks the way the original's proof::fileHash does.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errs.Wrap(err, "opening proof file for hashing")
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, 64*1024)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errs.Wrap(err, "reading proof file for hashing")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// GetInfo parses path's header and computes its whole-file digest,
// reporting both the plain hex MD5 the original tool prints and a
// self-describing multihash wrapping the same digest bytes, for callers
// that want to compare digests across hash kinds without a side channel.
func GetInfo(path string) (Info, error) {
	md5hex, err := FileHash(path)
	if err != nil {
		return Info{}, err
	}

	f, err := Load(path)
	if err != nil {
		return Info{}, err
	}

	raw, decErr := hex.DecodeString(md5hex)
	if decErr != nil {
		return Info{}, errs.Wrap(decErr, "decoding md5 digest")
	}
	mh, mhErr := multihash.Encode(raw, multihash.MD5)
	if mhErr != nil {
		return Info{}, errs.Wrap(mhErr, "encoding multihash")
	}

	return Info{
		Power:        f.Power(),
		E:            f.E,
		KnownFactors: f.KnownFactors,
		MD5:          md5hex,
		Multihash:    multihash.Multihash(mh).B58String(),
	}, nil
}
