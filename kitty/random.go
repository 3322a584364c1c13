package kitty

import (
	"crypto/rand"
)

// SeedSource supplies the per-call unpredictable seed that feeds DNA
// derivation. The caller submitting an operation does not control the
// seed, which is all the unpredictability minting needs; this is not a
// security grade RNG.
type SeedSource interface {
	Seed() []byte
}

// SystemSeedSource reads a fresh seed from the operating system on every
// call.
type SystemSeedSource struct{}

func (SystemSeedSource) Seed() []byte {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}

// FixedSeedSource always returns the same seed. Substituting it for the
// system source makes every derived DNA value deterministic.
type FixedSeedSource struct {
	Value []byte
}

func (s FixedSeedSource) Seed() []byte {
	return s.Value
}
