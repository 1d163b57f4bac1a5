package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"eggs", "Eggs"},
		{"Eggs", "Eggs"},
		{"whole milk", "Whole milk"},
		{"élan", "Élan"},
		{"1% milk", "1% milk"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, displayName(tt.in))
		})
	}
}
