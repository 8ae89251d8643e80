package proofset

import (
	"math"
	"sort"
)

// Points derives the sorted set of 2^power iteration indices at which
// residues must be cached to build a proof of the given power, per the
// span-halving construction: span0 = ceil((E+1)/2), and at each level the
// point set doubles by adding span to every existing point, with
// span_{l+1} = ceil(span_l/2). The placeholder 0 is replaced by E and
// the result is sorted ascending.
func Points(e uint32, power uint32) []uint32 {
	points := []uint32{0}
	span := (e + 1) / 2
	for p := uint32(0); p < power; p++ {
		end := len(points)
		for i := 0; i < end; i++ {
			points = append(points, points[i]+span)
		}
		span = (span + 1) / 2
	}
	points[0] = e
	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}

// IsInPoints reports whether k is one of the 2^power proof points for
// exponent e, by walking the same span-halving sequence Points uses
// rather than materializing the full point set.
func IsInPoints(e uint32, power uint32, k uint32) bool {
	if k == e {
		return true
	}
	start := uint32(0)
	span := (e + 1) / 2
	for p := uint32(0); p < power; p++ {
		if k > start+span {
			start += span
		} else if k == start+span {
			return true
		}
		span = (span + 1) / 2
	}
	return false
}

// BestPower recommends a proof power assuming no disk-space constraint:
// power increments by one for every fourfold increase in the exponent,
// clamped to a minimum of 2.
func BestPower(e uint32) int {
	power := 10 + int(math.Floor(math.Log2(float64(e)/60e6)/2))
	if power < 2 {
		power = 2
	}
	return power
}

// DiskUsageGB estimates the disk space, in gibibytes, required to cache
// the 2^power residues needed to build a proof of the given power for
// exponent e, plus 5% overhead.
func DiskUsageGB(e uint32, power uint32) float64 {
	if power == 0 {
		return 0
	}
	return math.Ldexp(float64(e), -33+int(power)) * 1.05
}
