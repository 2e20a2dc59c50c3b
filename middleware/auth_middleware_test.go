package middleware

import (
	"testing"

	"github.com/mkamau589/cowork_hub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoleClosedSet(t *testing.T) {
	for _, valid := range []string{"admin", "staff", "member"} {
		role, err := models.ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, models.Role(valid), role)
	}

	for _, invalid := range []string{"", "Admin", "superuser", "member "} {
		_, err := models.ParseRole(invalid)
		assert.Error(t, err, "role %q should be rejected", invalid)
	}
}

func TestRoleCanManageBookings(t *testing.T) {
	assert.True(t, models.RoleAdmin.CanManageBookings())
	assert.True(t, models.RoleStaff.CanManageBookings())
	assert.False(t, models.RoleMember.CanManageBookings())
}
