package delivery

import (
	"errors"
	"strconv"
	"strings"
)

var ErrBadASCIIBlock = errors.New("ascii block contains a non numeric code point")

// EncodeASCII maps every character to its decimal code point, space
// joined. The slate format embeds its machine readable block this way.
func EncodeASCII(s string) string {
	if s == "" {
		return ""
	}

	parts := make([]string, 0, len(s))
	for _, r := range s {
		parts = append(parts, strconv.Itoa(int(r)))
	}

	return strings.Join(parts, " ")
}

// DecodeASCII reverses EncodeASCII.
func DecodeASCII(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var sb strings.Builder
	for _, part := range strings.Fields(s) {
		code, err := strconv.Atoi(part)
		if err != nil {
			return "", ErrBadASCIIBlock
		}
		sb.WriteRune(rune(code))
	}

	return sb.String(), nil
}
