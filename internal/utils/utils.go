package utils

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
	"strings"

	"github.com/scythe504/outsider-backend/internal"
)

// =============================================================================
// ROOM CODES & NAMES
// =============================================================================

// RoomCodeChars excludes characters that are easy to confuse (0/O, 1/I).
const RoomCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRoomCode creates a random room code
func GenerateRoomCode() string {
	code := make([]byte, internal.RoomCodeLength)
	for i := range code {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(RoomCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = RoomCodeChars[rand.Intn(len(RoomCodeChars))]
			continue
		}
		code[i] = RoomCodeChars[n.Int64()]
	}
	return string(code)
}

// NormalizeRoomCode trims and upper-cases a client supplied code.
func NormalizeRoomCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidRoomCode accepts any already-normalized code of the right length made of A-Z and 0-9.
func ValidRoomCode(code string) bool {
	if len(code) != internal.RoomCodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		c := code[i]
		if (c < 'A' || c > 'Z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}

// TruncateName trims a display name and caps it at limit runes.
func TruncateName(name string, limit int) string {
	name = strings.TrimSpace(name)
	if limit <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) > limit {
		return strings.TrimSpace(string(runes[:limit]))
	}
	return name
}
