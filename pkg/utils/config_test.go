package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampSessionExpire(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"default value passes through", 82800, 82800},
		{"above maximum clamps down", 100000, 82800},
		{"below minimum clamps up", 600, 1800},
		{"minimum passes through", 1800, 1800},
		{"mid-range passes through", 3600, 3600},
		{"zero clamps up", 0, 1800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampSessionExpire(tt.in))
		})
	}
}
