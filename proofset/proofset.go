// Package proofset implements the ResidueCache (a.k.a. ProofSet): the
// content-addressed store of checkpoint residues at the exact iteration
// indices a proof of a given power needs, plus the navigation helper
// (Next) that drives the PRP loop.
//
// Directory layout and atomic-write discipline are grounded on the
// example corpus's pattern of writing to a temp path and renaming into
// place for durable, crash-safe state.
package proofset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/olympichek/gpuowl/errs"
	"github.com/olympichek/gpuowl/residue"
	"github.com/sirupsen/logrus"
)

// Logger is overridden by the top-level gpuowl package's SetLogger.
var Logger = logrus.StandardLogger()

// ProofSet is a per-exponent, per-instance residue cache.
type ProofSet struct {
	E            uint32
	Power        uint32
	Instance     uint32
	KnownFactors []string

	dir    string
	points []uint32

	// cacheIdx is the cursor a monotonically-increasing sequence of Next
	// calls can reuse in O(1); a non-monotonic query falls back to a
	// binary search.
	cacheIdx int
}

func proofDir(baseDir string, e, instance uint32) string {
	worker := "worker-" + strconv.FormatUint(uint64(instance), 10)
	return filepath.Join(baseDir, worker, strconv.FormatUint(uint64(e), 10), "proof")
}

// New validates power and creates (if missing) the cache directory for
// (baseDir, E, instance), then derives the proof point set.
func New(baseDir string, e, power, instance uint32, knownFactors []string) (*ProofSet, error) {
	if power < 1 || power > 12 {
		return nil, errs.ErrBadPower
	}
	if e&1 == 0 {
		return nil, errs.ErrBadExponent
	}

	dir := proofDir(baseDir, e, instance)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(err, "creating proof cache directory")
	}

	return &ProofSet{
		E:            e,
		Power:        power,
		Instance:     instance,
		KnownFactors: knownFactors,
		dir:          dir,
		points:       Points(e, power),
	}, nil
}

func (ps *ProofSet) path(k uint32) string {
	return filepath.Join(ps.dir, strconv.FormatUint(uint64(k), 10))
}

// Next returns the smallest proof point strictly greater than k, or
// math.MaxUint32 if k is at or beyond the last point. Monotonically
// increasing callers amortize to O(1); a rewind triggers one binary search.
func (ps *ProofSet) Next(k uint32) uint32 {
	n := len(ps.points)
	stale := ps.cacheIdx >= n ||
		ps.points[ps.cacheIdx] <= k ||
		(ps.cacheIdx > 0 && ps.points[ps.cacheIdx-1] > k)
	if stale {
		ps.cacheIdx = sort.Search(n, func(i int) bool { return ps.points[i] > k })
	}
	if ps.cacheIdx >= n {
		return ^uint32(0)
	}
	return ps.points[ps.cacheIdx]
}

// Save persists the residue r at iteration k atomically: write to a temp
// file in the cache directory, fsync, then rename into place. k must be
// one of the proof points.
func (ps *ProofSet) Save(k uint32, r *residue.Residue) error {
	if k == 0 || k > ps.E || !IsInPoints(ps.E, ps.Power, k) {
		return errs.Wrap(errs.ErrMalformedResidue, fmt.Sprintf("k=%d is not a proof point", k))
	}

	tmp, err := os.CreateTemp(ps.dir, strconv.FormatUint(uint64(k), 10)+".tmp-*")
	if err != nil {
		return errs.Wrap(err, "creating temp cache file")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if err := r.ChecksumWrite(tmp); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "writing residue payload")
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errs.Wrap(err, "fsync cache file")
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrap(err, "closing temp cache file")
	}
	if err := os.Rename(tmpPath, ps.path(k)); err != nil {
		return errs.Wrap(err, "renaming cache file into place")
	}
	Logger.WithFields(logrus.Fields{"E": ps.E, "k": k}).Debug("proof: cached residue")
	return nil
}

// Load returns the residue previously saved at iteration k.
func (ps *ProofSet) Load(k uint32) (*residue.Residue, error) {
	f, err := os.Open(ps.path(k))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.ErrMissingResidue
		}
		return nil, errs.Wrap(err, "opening cache file")
	}
	defer f.Close()

	r, err := residue.ChecksumRead(ps.E, f)
	if err != nil {
		if err == errs.ErrCorruptResidue || err == errs.ErrMalformedResidue {
			return nil, err
		}
		return nil, errs.ErrMissingResidue
	}
	return r, nil
}

// FileExists reports whether the cache file at iteration k exists and has
// the expected byte-exact size.
func (ps *ProofSet) FileExists(k uint32) bool {
	info, err := os.Stat(ps.path(k))
	if err != nil {
		return false
	}
	return info.Size() == residue.ChecksumSize(ps.E)
}

// IsValidTo reports whether the cache holds a consistent, gap-free chain
// of proof-point residues up to the largest point <= limit.
func (ps *ProofSet) IsValidTo(limit uint32) bool {
	idx := sort.Search(len(ps.points), func(i int) bool { return ps.points[i] > limit })
	if idx == 0 {
		return true
	}
	idx--

	if _, err := ps.Load(ps.points[idx]); err != nil {
		return false
	}
	for idx > 0 {
		idx--
		if !ps.FileExists(ps.points[idx]) {
			return false
		}
	}
	return true
}

// EffectivePower returns the largest p <= power for which the cache at
// (baseDir, E, instance) is consistent through currentK, or 0 if even
// power 1 cannot be satisfied. Used on resume to salvage a partial cache
// after a requested power could not be honored.
func EffectivePower(baseDir string, e, power, instance uint32, knownFactors []string, currentK uint32) uint32 {
	for p := power; p > 0; p-- {
		ps, err := New(baseDir, e, p, instance, knownFactors)
		if err != nil {
			continue
		}
		if ps.IsValidTo(currentK) {
			return p
		}
	}
	return 0
}
