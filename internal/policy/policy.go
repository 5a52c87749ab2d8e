// Package policy is the single authority on which roles may perform which
// actions. Handlers never embed their own allow-lists; they are gated by
// middleware.RequirePermission, which consults the table here.
package policy

import "github.com/silverstage/silverstage-api/internal/models"

type Action string

const (
	ActionUserManage       Action = "user.manage"
	ActionUserList         Action = "user.list"
	ActionInvitationCreate Action = "invitation.create"
	ActionInvitationCancel Action = "invitation.cancel"
	ActionInvitationList   Action = "invitation.list"
	ActionTimeEntryReview  Action = "time_entry.review"
	ActionTimeEntryListAll Action = "time_entry.list_all"
	ActionEventRequest     Action = "event.request"
	ActionEventSetStatus   Action = "event.set_status"
	ActionEventAssign      Action = "event.assign"
	ActionFacilityManage   Action = "facility.manage"
)

// table maps each privileged action to the roles allowed to perform it.
// Actions absent from the table are denied for everyone.
var table = map[Action][]models.Role{
	ActionUserManage:       {models.RoleAdmin},
	ActionUserList:         {models.RoleAdmin, models.RolePayroll, models.RoleBoard},
	ActionInvitationCreate: {models.RoleAdmin},
	ActionInvitationCancel: {models.RoleAdmin},
	ActionInvitationList:   {models.RoleAdmin},
	ActionTimeEntryReview:  {models.RoleAdmin, models.RolePayroll},
	ActionTimeEntryListAll: {models.RoleAdmin, models.RolePayroll},
	ActionEventRequest:     {models.RoleAdmin, models.RoleFacilitator},
	ActionEventSetStatus:   {models.RoleAdmin, models.RoleHomeAdmin},
	ActionEventAssign:      {models.RoleAdmin},
	ActionFacilityManage:   {models.RoleAdmin, models.RoleHomeAdmin},
}

// Allowed reports whether the role may perform the action.
func Allowed(action Action, role models.Role) bool {
	roles, ok := table[action]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
