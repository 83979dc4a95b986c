package notifications

import (
	"crypto/rand"
)

// IDLength is the fixed length of generated notification ids.
const IDLength = 9

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// 252 is the largest multiple of 36 that fits in a byte; higher bytes are
// rejected so every symbol is equally likely.
const idRejectAbove = 252

// NewID returns a random base-36 token of IDLength characters.
func NewID() string {
	out := make([]byte, 0, IDLength)
	buf := make([]byte, IDLength*2)

	for len(out) < IDLength {
		_, _ = rand.Read(buf) // never fails since Go 1.24
		for _, b := range buf {
			if b >= idRejectAbove {
				continue
			}
			out = append(out, idAlphabet[int(b)%len(idAlphabet)])
			if len(out) == IDLength {
				break
			}
		}
	}

	return string(out)
}
