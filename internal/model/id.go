package model

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
)

// NewID returns a fresh unique record identifier.
func NewID() string { return uuid.NewString() }

// EightDigitCode returns a random numeric code in [10000000, 99999999],
// used for crop ids without a remote id and for QR reference suffixes.
func EightDigitCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// a UUID still satisfies uniqueness.
		return uuid.NewString()
	}
	return big.NewInt(0).Add(n, big.NewInt(10000000)).String()
}
