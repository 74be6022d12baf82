// File: internal/platform/crypto/generator.go
package crypto

import (
	"crypto/rand"
	"math/big"
)

// GenerateNumericString creates a cryptographically secure string of n decimal digits.
// Used where an identifier must be safe for file names and URLs.
func GenerateNumericString(n int) (string, error) {
	digits := make([]byte, n)
	for i := range digits {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + d.Int64())
	}
	return string(digits), nil
}
