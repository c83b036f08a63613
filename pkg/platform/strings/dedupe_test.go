package strings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"nil slice", nil, nil},
		{"empty slice", []string{}, []string{}},
		{"trims brokers", []string{" k1:9092", "k2:9092 "}, []string{"k1:9092", "k2:9092"}},
		{"drops repeats in first-seen order", []string{"k2:9092", "k1:9092", "k2:9092"}, []string{"k2:9092", "k1:9092"}},
		{"drops blanks from trailing commas", strings.Split("k1:9092,, ,", ","), []string{"k1:9092"}},
		{"case is significant", []string{"Broker", "broker"}, []string{"Broker", "broker"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}
