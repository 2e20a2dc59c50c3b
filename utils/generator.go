package utils

import (
	"math/rand"
)

const referenceLength = 8
const letterBytes = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReference generates a human-readable booking reference like "K7QX2M9A".
// The bookings table has a unique constraint on the column; with 36^8
// possible codes a retry on collision is left to the database.
func NewReference() string {
	b := make([]byte, referenceLength)
	for i := range b {
		b[i] = letterBytes[rand.Intn(len(letterBytes))]
	}
	return string(b)
}
