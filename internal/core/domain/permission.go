package domain

// RiskTier ranks how dangerous a permission is. Higher tiers demand extra
// checks before the action is carried out.
type RiskTier string

const (
	TierLow      RiskTier = "LOW"
	TierMedium   RiskTier = "MEDIUM"
	TierHigh     RiskTier = "HIGH"
	TierCritical RiskTier = "CRITICAL"
)

// tierPolicy maps each tier to the checks it requires.
var tierPolicy = map[RiskTier]struct {
	twoFactor bool
	approval  bool
}{
	TierLow:      {},
	TierMedium:   {},
	TierHigh:     {twoFactor: true},
	TierCritical: {twoFactor: true, approval: true},
}

// RequiresTwoFactor reports whether actions at this tier need a second factor.
func (t RiskTier) RequiresTwoFactor() bool { return tierPolicy[t].twoFactor }

// RequiresApproval reports whether actions at this tier need prior approval.
func (t RiskTier) RequiresApproval() bool { return tierPolicy[t].approval }

// Permission is a single capability with its risk classification.
type Permission struct {
	Code string
	Tier RiskTier
}

// rolePermissions is the static capability catalog. Grants are data, not
// scattered string checks; Evaluate is the only way to consult them.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		{Code: "admin.dashboard.view", Tier: TierLow},
		{Code: "sales.dashboard.view", Tier: TierLow},
		{Code: "finance.dashboard.view", Tier: TierLow},
		{Code: "operations.dashboard.view", Tier: TierLow},
		{Code: "users.view", Tier: TierLow},
		{Code: "users.create", Tier: TierMedium},
		{Code: "users.update", Tier: TierMedium},
		{Code: "users.delete", Tier: TierHigh},
		{Code: "permissions.grant", Tier: TierCritical},
	},
	RoleSales: {
		{Code: "sales.dashboard.view", Tier: TierLow},
		{Code: "sales.orders.create", Tier: TierMedium},
	},
	RoleFinance: {
		{Code: "finance.dashboard.view", Tier: TierLow},
		{Code: "finance.invoices.approve", Tier: TierHigh},
	},
	RoleOperations: {
		{Code: "operations.dashboard.view", Tier: TierLow},
		{Code: "operations.tasks.assign", Tier: TierMedium},
	},
}

// Decision is the outcome of a permission check. When Allowed is true the
// tier flags tell the caller which additional verifications apply.
type Decision struct {
	Allowed           bool
	Tier              RiskTier
	RequiresTwoFactor bool
	RequiresApproval  bool
}

// Evaluate answers whether a role holds a capability. Pure function over the
// static catalog.
func Evaluate(role Role, code string) Decision {
	for _, p := range rolePermissions[role] {
		if p.Code == code {
			return Decision{
				Allowed:           true,
				Tier:              p.Tier,
				RequiresTwoFactor: p.Tier.RequiresTwoFactor(),
				RequiresApproval:  p.Tier.RequiresApproval(),
			}
		}
	}
	return Decision{}
}
