package kitty

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombineDNA(t *testing.T) {
	assert.Equal(t, byte(0b11110000), CombineDNA(0b11111111, 0b00000000, 0b00001111))
	assert.Equal(t, byte(0b11100010), CombineDNA(0b10101010, 0b11110000, 0b11001100))

	// a zero selector copies the first parent, a full selector the second
	for b := 0; b < 256; b++ {
		assert.Equal(t, byte(b), CombineDNA(byte(b), byte(255-b), 0x00))
		assert.Equal(t, byte(255-b), CombineDNA(byte(b), byte(255-b), 0xFF))
	}
}

func TestCrossover(t *testing.T) {
	var a, b, zero, full DNA
	for i := range a {
		a[i] = byte(i)
		b[i] = byte(0xF0 + i)
		full[i] = 0xFF
	}
	assert.Equal(t, a, Crossover(a, b, zero))
	assert.Equal(t, b, Crossover(a, b, full))

	mixed := Crossover(a, b, DNA{0xFF})
	assert.Equal(t, b[0], mixed[0])
	assert.Equal(t, a[1:], mixed[1:])
}

func TestGenderParity(t *testing.T) {
	assert.Equal(t, GenderMale, GenderRuleParity.Gender(DNA{}))
	assert.Equal(t, GenderFemale, GenderRuleParity.Gender(DNA{1}))
	assert.Equal(t, GenderMale, GenderRuleParity.Gender(DNA{42}))
	assert.Equal(t, GenderFemale, GenderRuleParity.Gender(DNA{255}))
}

func TestGenderThreshold(t *testing.T) {
	assert.Equal(t, GenderMale, GenderRuleThreshold.Gender(DNA{}))
	assert.Equal(t, GenderMale, GenderRuleThreshold.Gender(DNA{4}))
	assert.Equal(t, GenderFemale, GenderRuleThreshold.Gender(DNA{5}))
	assert.Equal(t, GenderFemale, GenderRuleThreshold.Gender(DNA{255}))
}

func TestParseGenderRule(t *testing.T) {
	rule, err := ParseGenderRule("parity")
	assert.NoError(t, err)
	assert.Equal(t, GenderRuleParity, rule)

	rule, err = ParseGenderRule("threshold")
	assert.NoError(t, err)
	assert.Equal(t, GenderRuleThreshold, rule)

	_, err = ParseGenderRule("coinflip")
	assert.Error(t, err)
}

func TestDeriveDNADeterministic(t *testing.T) {
	seed := []byte("0123456789abcdef0123456789abcdef")

	first := DeriveDNA(seed, 100, 0)
	assert.Equal(t, first, DeriveDNA(seed, 100, 0))

	// any input change yields a different value
	assert.NotEqual(t, first, DeriveDNA(seed, 100, 1))
	assert.NotEqual(t, first, DeriveDNA(seed, 101, 0))
	assert.NotEqual(t, first, DeriveDNA([]byte("other seed material 123456789012"), 100, 0))
}

func TestDNAHexRoundTrip(t *testing.T) {
	d := DeriveDNA([]byte("seed"), 1, 1)
	parsed, err := DNAFromHex(d.String())
	assert.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = DNAFromHex("abcd")
	assert.Error(t, err)
	_, err = DNAFromHex("zz")
	assert.Error(t, err)
}
