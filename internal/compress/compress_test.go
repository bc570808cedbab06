package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromName(t *testing.T) {
	assert.IsType(t, GZip{}, FromName("gzip"))
	assert.IsType(t, Lz4{}, FromName("lz4"))
	assert.IsType(t, Brotli{}, FromName("brotli"))
	assert.IsType(t, Nop{}, FromName("unknown"))
}

func TestRoundTrip(t *testing.T) {
	payload := []byte(`{"name":"pine_tree_01","category":"environments"}`)

	for _, name := range []string{"nop", "gzip", "lz4", "brotli"} {
		t.Run(name, func(t *testing.T) {
			codec := FromName(name)

			encoded, err := codec.Encode(payload)
			assert.NoError(t, err)

			decoded, err := codec.Decode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, payload, decoded)
		})
	}
}
