package policy

import (
	"testing"

	"github.com/silverstage/silverstage-api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestAllowed(t *testing.T) {
	require.True(t, Allowed(ActionUserManage, models.RoleAdmin))
	require.False(t, Allowed(ActionUserManage, models.RoleVolunteer))

	require.True(t, Allowed(ActionTimeEntryReview, models.RolePayroll))
	require.False(t, Allowed(ActionTimeEntryReview, models.RoleFacilitator))

	require.True(t, Allowed(ActionEventSetStatus, models.RoleHomeAdmin))
	require.False(t, Allowed(ActionEventSetStatus, models.RolePayroll))
}

func TestAllowed_UnknownActionDeniedForEveryone(t *testing.T) {
	for role := range map[models.Role]struct{}{
		models.RoleAdmin:     {},
		models.RoleVolunteer: {},
	} {
		require.False(t, Allowed(Action("does.not.exist"), role))
	}
}
