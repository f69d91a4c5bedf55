package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		required Role
		expected bool
	}{
		{"admin over staff", Admin, Staff, true},
		{"staff over clerk", Staff, Clerk, true},
		{"clerk for clerk", Clerk, Clerk, true},
		{"clerk for staff", Clerk, Staff, false},
		{"staff for admin", Staff, Admin, false},
		{"unknown role", Role("guest"), Clerk, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.HasPermission(tt.required))
		})
	}
}

func TestParse(t *testing.T) {
	role, ok := Parse("  admin ")
	assert.True(t, ok)
	assert.Equal(t, Admin, role)

	_, ok = Parse("moderator")
	assert.False(t, ok)
}
