// Package proof implements the .proof binary artifact: the versioned
// ASCII header and the canonical residue payload that follows it, plus
// the whole-file MD5 digest used for integrity reporting.
//
// Grounded on the original's Proof::save/Proof::load header scanf/printf
// pair, reworked into Go's text/template-free idiom: build the header
// with fmt.Sprintf, parse it with a small hand-rolled line scanner since
// the grammar is fixed and tiny enough that pulling in a parser
// generator would be overkill.
package proof

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/olympichek/gpuowl/errs"
	"github.com/olympichek/gpuowl/residue"
)

const (
	headerMagic   = "PRP PROOF"
	headerVersion = "2"
	headerHash    = "64"
)

// File is the parsed form of a .proof artifact.
type File struct {
	E            uint32
	KnownFactors []string
	B            *residue.Residue
	Middles      []*residue.Residue
}

// Power returns the proof's power, i.e. len(Middles).
func (f *File) Power() int { return len(f.Middles) }

// FileName returns the conventional "<E>-<power>.proof" name for f within dir.
func (f *File) FileName(dir string) string {
	return filepath.Join(dir, fmt.Sprintf("%d-%d.proof", f.E, f.Power()))
}

// Save atomically writes f's header and residue payload to path.
func (f *File) Save(path string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return errs.Wrap(err, "creating temp proof file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	number := MersenneToString(f.E, f.KnownFactors)
	header := fmt.Sprintf("%s\nVERSION=%s\nHASHSIZE=%s\nPOWER=%d\nNUMBER=%s\n",
		headerMagic, headerVersion, headerHash, f.Power(), number)

	if _, err := tmp.WriteString(header); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "writing proof header")
	}
	if err := f.B.ChecksumlessWrite(tmp); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "writing B residue")
	}
	for i, m := range f.Middles {
		if err := m.ChecksumlessWrite(tmp); err != nil {
			_ = tmp.Close()
			return errs.Wrap(err, fmt.Sprintf("writing middle residue %d", i))
		}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "fsync proof file")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "closing temp proof file")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errs.Wrap(err, "renaming proof file into place")
	}
	return nil
}

// Load parses a .proof file from path.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(err, "opening proof file")
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)

	if err := expectLine(br, headerMagic); err != nil {
		return nil, err
	}
	if err := expectLine(br, "VERSION="+headerVersion); err != nil {
		return nil, err
	}
	if err := expectLine(br, "HASHSIZE="+headerHash); err != nil {
		return nil, err
	}

	powerLine, err := readLine(br)
	if err != nil {
		return nil, errs.Wrap(errs.ErrMalformedHeader, "reading POWER line")
	}
	powerStr := strings.TrimPrefix(powerLine, "POWER=")
	if powerStr == powerLine {
		return nil, errs.Wrap(errs.ErrMalformedHeader, "missing POWER=")
	}
	power, convErr := strconv.ParseUint(powerStr, 10, 32)
	if convErr != nil || power < 1 || power > 12 {
		return nil, errs.Wrap(errs.ErrBadPower, "POWER="+powerStr)
	}

	numberLine, err := readLine(br)
	if err != nil {
		return nil, errs.Wrap(errs.ErrMalformedHeader, "reading NUMBER line")
	}
	numberStr := strings.TrimPrefix(numberLine, "NUMBER=")
	if numberStr == numberLine {
		return nil, errs.Wrap(errs.ErrMalformedHeader, "missing NUMBER=")
	}
	e, knownFactors, err := MersenneFromString(numberStr)
	if err != nil {
		return nil, err
	}

	b, err := residue.ChecksumlessRead(e, br)
	if err != nil {
		return nil, errs.Wrap(err, "reading B residue")
	}

	middles := make([]*residue.Residue, power)
	for i := range middles {
		m, err := residue.ChecksumlessRead(e, br)
		if err != nil {
			return nil, errs.Wrap(err, fmt.Sprintf("reading middle residue %d", i))
		}
		middles[i] = m
	}

	return &File{E: e, KnownFactors: knownFactors, B: b, Middles: middles}, nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\n"), nil
}

func expectLine(br *bufio.Reader, want string) error {
	got, err := readLine(br)
	if err != nil || got != want {
		return errs.Wrap(errs.ErrMalformedHeader, fmt.Sprintf("expected %q, got %q", want, got))
	}
	return nil
}
