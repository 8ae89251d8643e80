package gpuowl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateExponentAcceptsKnownPrimes(t *testing.T) {
	for _, e := range []uint32{11, 127, 521, 86243} {
		assert.NoError(t, ValidateExponent(e))
	}
}

func TestValidateExponentRejectsEven(t *testing.T) {
	assert.Error(t, ValidateExponent(128))
}

func TestValidateExponentRejectsOddComposite(t *testing.T) {
	assert.Error(t, ValidateExponent(9))
}
