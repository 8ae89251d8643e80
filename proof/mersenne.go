package proof

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/olympichek/gpuowl/errs"
)

// MersenneToString renders the NUMBER= field of a .proof header:
// "M<E>" or "M<E>/<factor>[/<factor>...]" when cofactors are known.
func MersenneToString(e uint32, knownFactors []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "M%d", e)
	for _, f := range knownFactors {
		b.WriteByte('/')
		b.WriteString(f)
	}
	return b.String()
}

// MersenneFromString parses a NUMBER= field into its exponent and known
// cofactors, validating that every factor is a decimal integer greater than 1.
func MersenneFromString(number string) (e uint32, knownFactors []string, err error) {
	if len(number) == 0 || number[0] != 'M' {
		return 0, nil, errs.Wrap(errs.ErrMalformedHeader, "Mersenne number must start with M")
	}
	parts := strings.Split(number[1:], "/")
	if len(parts) == 0 || parts[0] == "" {
		return 0, nil, errs.Wrap(errs.ErrMalformedHeader, "missing exponent")
	}

	exp, convErr := strconv.ParseUint(parts[0], 10, 32)
	if convErr != nil {
		return 0, nil, errs.Wrap(errs.ErrMalformedHeader, "invalid exponent: "+parts[0])
	}

	for _, f := range parts[1:] {
		if f == "" {
			continue
		}
		v, ok := new(big.Int).SetString(f, 10)
		if !ok || v.Cmp(big.NewInt(1)) <= 0 {
			return 0, nil, errs.Wrap(errs.ErrMalformedHeader, "invalid factor: "+f)
		}
		knownFactors = append(knownFactors, f)
	}
	return uint32(exp), knownFactors, nil
}
