package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveAddress(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"international prefix", "+910000000001", "910000000001@c.us"},
		{"plain digits", "910000000001", "910000000001@c.us"},
		{"surrounding whitespace", "  +910000000002 ", "910000000002@c.us"},
		{"only one symbol stripped", "++91", "+91@c.us"},
		{"blank", "   ", ""},
		{"lone symbol", "+", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveAddress(tc.raw, AddressSuffix))
		})
	}
}

func TestDeriveAddressIsPure(t *testing.T) {
	first := DeriveAddress("+910000000001", AddressSuffix)
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, DeriveAddress("+910000000001", AddressSuffix))
	}
}

func TestOutcomeLabels(t *testing.T) {
	assert.Equal(t, "Available on WhatsApp", OutcomeRegistered.Label())
	assert.Equal(t, "Not available on WhatsApp", OutcomeNotRegistered.Label())
	assert.Equal(t, "Error checking status", OutcomeCheckFailed.Label())
	assert.False(t, Outcome("MAYBE").Valid())
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	for _, o := range []Outcome{OutcomeRegistered, OutcomeNotRegistered, OutcomeCheckFailed, OutcomeRegistered} {
		s.Add(o)
	}
	assert.Equal(t, Summary{Total: 4, Registered: 2, NotRegistered: 1, Failed: 1}, s)
}
