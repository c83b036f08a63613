package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// AddressSuffix is the domain the messaging network uses for user accounts.
const AddressSuffix = "@c.us"

// DeriveAddress turns a raw phone number into the network address: one
// leading non-digit symbol such as "+" is dropped and suffix appended.
// A blank number has no address and yields "".
func DeriveAddress(raw, suffix string) string {
	n := strings.TrimSpace(raw)
	if n == "" {
		return ""
	}
	if r, size := utf8.DecodeRuneInString(n); !unicode.IsDigit(r) {
		n = strings.TrimSpace(n[size:])
	}
	if n == "" {
		return ""
	}
	return n + suffix
}
