package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "APT-0007", FormatCode(PrefixAppointment, 7))
	assert.Equal(t, "PAY-12345", FormatCode(PrefixPayment, 12345))
}

func TestParseCode(t *testing.T) {
	cases := []struct {
		in string
		id uint
		ok bool
	}{
		{"APT-0007", 7, true},
		{"apt-7", 7, true},
		{" 7 ", 7, true},
		{"APT-9223372036854775807", 9223372036854775807, true},
		{"APT-9223372036854775808", 0, false},
		{"APT-18446744073709551615", 0, false},
		{"0", 0, false},
		{"APT-", 0, false},
		{"PAY-7", 0, false},
		{"-7", 0, false},
	}

	for _, tc := range cases {
		id, ok := ParseCode(PrefixAppointment, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		assert.Equal(t, tc.id, id, tc.in)
	}
}
