package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID. Entropy comes from crypto/rand, so two ids minted
// in the same millisecond still differ; todoIds are therefore never reused.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
