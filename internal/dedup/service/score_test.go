package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenSortRatio_WordOrder(t *testing.T) {
	assert.Equal(t, 100, TokenSortRatio("Acme Corp", "Corp Acme"))
	assert.Equal(t, 100, TokenSortRatio("Acme, Corp.", "acme corp"))
	assert.Equal(t, 100, TokenSortRatio("x y", "y x"))
}

func TestTokenSortRatio_Values(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"aaaaaaaa", "aaaaaaaa bb", 84},
		{"aaaaaaaa", "aaaaaaaa bb cc", 73},
		{"aaaaaaaa bb", "aaaaaaaa bb cc", 88},
		{"x", "x y", 50},
		{"acme corp", "beta llc", 35},
		{"", "", 100},
		{"abc", "", 0},
		{"!!!", "", 100},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, TokenSortRatio(c.a, c.b), "%q vs %q", c.a, c.b)
	}
}

func TestTokenSortRatio_Symmetric(t *testing.T) {
	vals := []string{"Acme Corp", "acme corporation", "Beta LLC", "", "Ёлка зелёная", "item 42", "42 item x"}
	for _, a := range vals {
		assert.Equal(t, 100, TokenSortRatio(a, a))
		for _, b := range vals {
			s := TokenSortRatio(a, b)
			assert.Equal(t, s, TokenSortRatio(b, a), "%q vs %q", a, b)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, 100)
		}
	}
}

func TestLCSAndIndel(t *testing.T) {
	assert.Equal(t, 4, lcsLength([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 5, indelDistance([]rune("kitten"), []rune("sitting")))
	assert.Equal(t, 0, indelDistance([]rune("нож"), []rune("нож")))
	assert.Equal(t, 3, indelDistance([]rune(""), []rune("abc")))
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, v := range []string{"  ACME Corp ", "acme corp", "\tMiXeD\n", "", "ÉCOLE"} {
		n := Normalize(v)
		assert.Equal(t, n, Normalize(n))
	}
	assert.Equal(t, "acme corp", Normalize("ACME CORP "))
}
