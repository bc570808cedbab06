package delivery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeASCII(t *testing.T) {
	assert.Equal(t, "", EncodeASCII(""))
	assert.Equal(t, "65", EncodeASCII("A"))
	assert.Equal(t, "66 83 65 95 48 49 48", EncodeASCII("BSA_010"))
}

func TestDecodeASCII(t *testing.T) {
	decoded, err := DecodeASCII("66 83 65 95 48 49 48")
	assert.NoError(t, err)
	assert.Equal(t, "BSA_010", decoded)

	decoded, err = DecodeASCII("  ")
	assert.NoError(t, err)
	assert.Equal(t, "", decoded)

	_, err = DecodeASCII("66 83 banana")
	assert.ErrorIs(t, err, ErrBadASCIIBlock)
}

func TestASCIIRoundTrip(t *testing.T) {
	original := "BSA_010_v002_2026-08-28"
	decoded, err := DecodeASCII(EncodeASCII(original))
	assert.NoError(t, err)
	assert.Equal(t, original, decoded)
}
