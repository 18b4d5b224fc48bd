package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"42", "42", true},
		{" -3.5 ", "-3.5", true},
		{"+7", "7", true},
		{"1e3", "1000", true},
		{"1 234,50", "1234.5", true},
		{"1 234", "1234", true},
		{"197,00", "197", true},
		{"", "0", false},
		{"-", "0", false},
		{"abc", "0", false},
		{"v2", "0", false},
		{"12 apples", "0", false},
	}
	for _, c := range cases {
		d, ok := ParseNumber(c.in)
		assert.Equal(t, c.ok, ok, "input %q", c.in)
		if c.ok {
			assert.Equal(t, c.want, d.String(), "input %q", c.in)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("3.14"))
	assert.True(t, IsNumeric("-inf"))
	assert.True(t, IsNumeric("Infinity"))
	assert.False(t, IsNumeric("Acme Corp"))
	assert.False(t, IsNumeric("item-7"))
}
