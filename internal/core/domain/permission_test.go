package domain

import "testing"

func TestEvaluate_GrantedCapability(t *testing.T) {
	d := Evaluate(RoleSales, "sales.dashboard.view")
	if !d.Allowed {
		t.Fatalf("expected SALES to view its own dashboard")
	}
	if d.Tier != TierLow || d.RequiresTwoFactor || d.RequiresApproval {
		t.Fatalf("unexpected decision for low tier: %+v", d)
	}
}

func TestEvaluate_DeniedAcrossAreas(t *testing.T) {
	if d := Evaluate(RoleSales, "admin.dashboard.view"); d.Allowed {
		t.Fatalf("SALES must not view the admin dashboard")
	}
	if d := Evaluate(RoleFinance, "operations.tasks.assign"); d.Allowed {
		t.Fatalf("FINANCE must not assign operations tasks")
	}
}

func TestEvaluate_TierFlags(t *testing.T) {
	high := Evaluate(RoleAdmin, "users.delete")
	if !high.Allowed || high.Tier != TierHigh {
		t.Fatalf("unexpected decision: %+v", high)
	}
	if !high.RequiresTwoFactor || high.RequiresApproval {
		t.Fatalf("HIGH tier requires 2FA only, got %+v", high)
	}

	critical := Evaluate(RoleAdmin, "permissions.grant")
	if !critical.Allowed || critical.Tier != TierCritical {
		t.Fatalf("unexpected decision: %+v", critical)
	}
	if !critical.RequiresTwoFactor || !critical.RequiresApproval {
		t.Fatalf("CRITICAL tier requires 2FA and approval, got %+v", critical)
	}
}

func TestEvaluate_UnknownRoleOrCode(t *testing.T) {
	if d := Evaluate(Role("GUEST"), "users.view"); d.Allowed {
		t.Fatalf("unknown role must hold no capabilities")
	}
	if d := Evaluate(RoleAdmin, "users.exfiltrate"); d.Allowed {
		t.Fatalf("unknown capability must not be granted")
	}
}
