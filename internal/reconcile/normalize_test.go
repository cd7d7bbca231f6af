package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsSuffixTokens(t *testing.T) {
	n := NewNormalizer(nil, nil)

	assert.Equal(t, "Andijon", n.Normalize("Andijon tumani"))
	assert.Equal(t, "Andijon", n.Normalize("Andijon shahri"))
	assert.Equal(t, "Buxoro", n.Normalize("Buxoro District"))
	assert.Equal(t, "Buxoro", n.Normalize("Buxoro district"))
	assert.Equal(t, "Toshkent", n.Normalize("Toshkent city"))
}

func TestNormalize_StripsCountryTokens(t *testing.T) {
	n := NewNormalizer(nil, nil)

	assert.Equal(t, "", n.Normalize("Uzbekistan"))
	assert.Equal(t, "", n.Normalize("Республика Узбекистан"))
	assert.Equal(t, "O'zbekiston", n.Normalize("O'zbekiston Respublikasi"))
}

func TestNormalize_CaseSensitiveStripping(t *testing.T) {
	n := NewNormalizer(nil, nil)

	// "viloyati" is not in the fixed list and "TUMANI" does not match the
	// listed casing, so both survive.
	assert.Equal(t, "Samarqand viloyati", n.Normalize("Samarqand viloyati"))
	assert.Equal(t, "Andijon TUMANI", n.Normalize("Andijon TUMANI"))
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	n := NewNormalizer(nil, nil)

	assert.Equal(t, "Farg'ona", n.Normalize("  Farg'ona tumani  "))
	assert.Equal(t, "", n.Normalize("   "))
	assert.Equal(t, "", n.Normalize(""))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil, nil)

	inputs := []string{
		"Andijon tumani",
		"Samarqand viloyati",
		"Республика Узбекистан",
		"  Toshkent shahri ",
		"",
		"plain name",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}

func TestNormalize_CustomTokens(t *testing.T) {
	n := NewNormalizer([]string{" county"}, []string{"USA"})

	assert.Equal(t, "Marin", n.Normalize("Marin county USA"))
	// default tokens are not applied when custom lists are given
	assert.Equal(t, "Andijon tumani", n.Normalize("Andijon tumani"))
}
