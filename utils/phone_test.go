package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUKPhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"07700 900000", "+447700900000"},
		{"07700900000", "+447700900000"},
		{"447700900000", "+447700900000"},
		{"+447700900000", "+447700900000"},
		{"(07700) 900-000", "+447700900000"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatUKPhone(c.in), "input %q", c.in)
	}
}

func TestIsValidUKMobile(t *testing.T) {
	assert.True(t, IsValidUKMobile("07700 900000"))
	assert.True(t, IsValidUKMobile("+447700900000"))
	assert.False(t, IsValidUKMobile("0770090000"))    // too short
	assert.False(t, IsValidUKMobile("020 7946 0958")) // landline
	assert.False(t, IsValidUKMobile("07700 9000ab"))
	assert.False(t, IsValidUKMobile(""))
}
