package kitty

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// DNA is the immutable 16 byte identity of a kitty. It is fixed at mint
// time; breeding produces a new DNA value and never touches the parents.
type DNA [16]byte

func (d DNA) String() string {
	return hex.EncodeToString(d[:])
}

func DNAFromHex(s string) (DNA, error) {
	var d DNA
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, err
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("dna must be %d bytes, got %d", len(d), len(b))
	}
	copy(d[:], b)
	return d, nil
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// GenderRule decides how a gender is read off a DNA value. Deployments
// disagree on the rule, so it is a composition-time choice rather than a
// property of the DNA itself.
type GenderRule string

const (
	// GenderRuleParity classifies an even first byte as male.
	GenderRuleParity GenderRule = "parity"
	// GenderRuleThreshold classifies a first byte above 4 as female.
	GenderRuleThreshold GenderRule = "threshold"
)

func ParseGenderRule(name string) (GenderRule, error) {
	switch GenderRule(name) {
	case GenderRuleParity, GenderRuleThreshold:
		return GenderRule(name), nil
	}
	return "", fmt.Errorf("unknown gender rule %q", name)
}

// Gender is total and stable: every byte value maps to exactly one gender.
func (r GenderRule) Gender(d DNA) Gender {
	switch r {
	case GenderRuleThreshold:
		if d[0] > 4 {
			return GenderFemale
		}
		return GenderMale
	default:
		if d[0]%2 == 0 {
			return GenderMale
		}
		return GenderFemale
	}
}

// CombineDNA picks each bit from a where the selector bit is 0 and from b
// where it is 1. A selector of 0x00 yields a, 0xFF yields b.
func CombineDNA(a, b, selector byte) byte {
	return (^selector & a) | (selector & b)
}

// Crossover combines two parent DNA values byte by byte under a selector
// mask, producing the child DNA.
func Crossover(a, b, selector DNA) DNA {
	var child DNA
	for i := range child {
		child[i] = CombineDNA(a[i], b[i], selector[i])
	}
	return child
}

// DeriveDNA maps a per-call seed, the acting user and the service call
// sequence to a fresh DNA value through a 128 bit blake2b digest. The same
// inputs always yield the same DNA, which is what makes minting and
// breeding replayable in tests.
func DeriveDNA(seed []byte, actorID int64, nonce uint64) DNA {
	payload := make([]byte, 0, len(seed)+16)
	payload = append(payload, seed...)
	payload = binary.BigEndian.AppendUint64(payload, uint64(actorID))
	payload = binary.BigEndian.AppendUint64(payload, nonce)

	h, err := blake2b.New(16, nil)
	if err != nil {
		// only reachable with an invalid digest size
		panic(err)
	}
	h.Write(payload)

	var d DNA
	copy(d[:], h.Sum(nil))
	return d
}
