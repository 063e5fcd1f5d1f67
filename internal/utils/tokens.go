package utils

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

// NewOpaqueToken returns a hex-encoded random token of nBytes entropy.
func NewOpaqueToken(nBytes int) (string, error) {
	if nBytes <= 0 {
		nBytes = 32 // 256 bits by default
	}
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// NumericCode returns a random string of length decimal digits, leading
// zeros included. Used for the 6-digit login OTP.
func NumericCode(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
