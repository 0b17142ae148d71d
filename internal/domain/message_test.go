package domain_test

import (
	"testing"

	"github.com/nfrund/parley/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Role
		wantErr bool
	}{
		{in: "user", want: domain.RoleUser},
		{in: " Assistant ", want: domain.RoleAssistant},
		{in: "SYSTEM", want: domain.RoleSystem},
		{in: "", wantErr: true},
		{in: "robot", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := domain.ParseRole(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrInvalidRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMessage_IsUser(t *testing.T) {
	assert.True(t, domain.Message{Role: domain.RoleUser}.IsUser())
	assert.False(t, domain.Message{Role: domain.RoleAssistant}.IsUser())
	assert.False(t, domain.Message{Role: domain.RoleSystem}.IsUser())
}
