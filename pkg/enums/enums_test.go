package enums

import "testing"

func TestParsePrincipalKind(t *testing.T) {
	kind, err := ParsePrincipalKind("admin")
	if err != nil || kind != PrincipalKindAdmin {
		t.Fatalf("expected admin kind, got %q (%v)", kind, err)
	}
	if _, err := ParsePrincipalKind("Admin"); err == nil {
		t.Fatal("kinds are case-sensitive")
	}
	if PrincipalKind("user").IsValid() {
		t.Fatal("user is not a principal kind")
	}
}

func TestPaymentStatusValues(t *testing.T) {
	for _, raw := range []string{"pending", "completed", "refunded"} {
		status, err := ParsePaymentStatus(raw)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if status.String() != raw {
			t.Fatalf("round trip mismatch %q", status)
		}
	}
	if PaymentStatus("settled").IsValid() {
		t.Fatal("settled is not a purchase status")
	}
}

func TestAdminRoleAndEventStatus(t *testing.T) {
	if !AdminRoleSuperAdmin.IsValid() {
		t.Fatal("super_admin should be valid")
	}
	if _, err := ParseAdminRole("owner"); err == nil {
		t.Fatal("owner is not an admin role")
	}
	if _, err := ParseEventStatus("scheduled"); err != nil {
		t.Fatalf("scheduled should parse: %v", err)
	}
	if !PaymentMethodUPI.IsValid() {
		t.Fatal("upi should be valid")
	}
}
