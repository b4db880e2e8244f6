package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// RandomHex hex-encodes n random bytes, so the result has 2n characters.
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
