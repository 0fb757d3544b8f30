package session

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// DefaultIDLength is the number of characters in a generated identifier.
const DefaultIDLength = 32

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// NewID returns a random identifier of the given length drawn from [A-Za-z0-9].
// Non-positive lengths fall back to DefaultIDLength.
func NewID(length int) (string, error) {
	if length <= 0 {
		length = DefaultIDLength
	}

	// 248 is the largest multiple of 62 below 256; rejecting bytes above it keeps the draw uniform.
	const limit = 256 - 256%len(alphabet)

	var sb strings.Builder
	sb.Grow(length)

	buf := make([]byte, length*2)
	for sb.Len() < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("%w: %w", ErrIDGeneration, err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			sb.WriteByte(alphabet[int(b)%len(alphabet)])
			if sb.Len() == length {
				break
			}
		}
	}

	return sb.String(), nil
}

// ValidID reports whether id is non-empty and only uses the identifier alphabet.
func ValidID(id string) bool {
	if id == "" {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			return false
		}
	}
	return true
}
