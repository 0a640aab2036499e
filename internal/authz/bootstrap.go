package authz

import (
	"github.com/partnerconnector/internal/logger"
)

// Resource and action names used across the admin surface. Approving and
// paying commissions are separate permissions so finance duties can be split.
const (
	ObjectCommission = "commission"
	ObjectDeal       = "deal"
	ObjectPartner    = "partner"

	ActionView    = "view"
	ActionManage  = "manage"
	ActionApprove = "approve"
	ActionPay     = "pay"
)

// Built-in roles seeded on startup.
const (
	RoleSales   = "sales"
	RoleFinance = "finance"
)

// Bootstrap seeds the built-in roles and their default permissions. Existing
// grants are left untouched.
func Bootstrap(svc *Service) error {
	if svc == nil {
		return nil
	}
	grants := []struct {
		role   string
		object string
		action string
	}{
		{RoleSales, ObjectDeal, ActionView},
		{RoleSales, ObjectDeal, ActionManage},
		{RoleSales, ObjectPartner, ActionView},
		{RoleSales, ObjectCommission, ActionView},
		{RoleFinance, ObjectCommission, ActionView},
		{RoleFinance, ObjectCommission, ActionApprove},
		{RoleFinance, ObjectCommission, ActionPay},
		{RoleFinance, ObjectDeal, ActionView},
	}
	for _, grant := range grants {
		if err := svc.GrantRolePolicy(grant.role, grant.object, grant.action); err != nil {
			return err
		}
	}
	logger.Infow("authz_roles_bootstrapped", "roles", []string{RoleSales, RoleFinance})
	return nil
}
