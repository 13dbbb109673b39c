package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. Callers prepend their own
// entity prefix ("t-", "g-", ...) where the stored form needs one.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
