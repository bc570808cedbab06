package delivery

import (
	"strings"

	"github.com/blacksmith/atlas/internal/compress"
)

const slateSeparator = "\n\n"

// BuildArchive joins rendered slates into a single delivery document
// and compresses it with the configured codec. Trailing newlines are
// dropped so the separator stays unambiguous.
func BuildArchive(slates []string, codec compress.Compress) ([]byte, error) {
	trimmed := make([]string, 0, len(slates))
	for _, slate := range slates {
		trimmed = append(trimmed, strings.TrimRight(slate, "\n"))
	}

	return codec.Encode([]byte(strings.Join(trimmed, slateSeparator)))
}

// OpenArchive reverses BuildArchive.
func OpenArchive(data []byte, codec compress.Compress) ([]string, error) {
	raw, err := codec.Decode(data)
	if err != nil {
		return nil, err
	}

	return strings.Split(string(raw), slateSeparator), nil
}
