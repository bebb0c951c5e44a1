package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// HashFloats hashes the exact IEEE-754 bit patterns of values, so two slices
// hash equal only when they are bit-for-bit identical.
func HashFloats(values ...[]float64) Hash {
	n := 0
	for _, v := range values {
		n += len(v)
	}
	buf := make([]byte, 0, n*8)
	for _, v := range values {
		for _, f := range v {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		}
	}
	return NewHash(buf)
}
