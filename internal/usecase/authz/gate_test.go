package authz

import (
	"strings"
	"testing"

	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/user"
)

const minGrade = 41

func approver(grade int) *user.User {
	return &user.User{UserID: strings.Repeat("a", 32), GradeLevel: grade, Roles: "approver"}
}

func TestApprove_GradeGateBeatsRole(t *testing.T) {
	g := NewGate(minGrade)
	s := Subject{Kind: approval.KindEmail, OwnerID: strings.Repeat("b", 32), Status: "pending_support"}

	for _, grade := range []int{0, 1, 40} {
		u := approver(grade)
		u.Roles = "approver,admin" // roles must not rescue an insufficient grade
		if d := g.Can(u, ActionApprove, s); d.Allowed {
			t.Errorf("grade %d: approve allowed, want denied", grade)
		}
	}
	if d := g.Can(approver(minGrade), ActionApprove, s); !d.Allowed {
		t.Errorf("grade %d approver denied: %s", minGrade, d.Reason)
	}
}

func TestApprove_StatusGate(t *testing.T) {
	g := NewGate(minGrade)
	u := approver(54)

	for _, status := range []string{"draft", "pending_admin", "approved", "rejected"} {
		s := Subject{Kind: approval.KindLoan, OwnerID: strings.Repeat("b", 32), Status: status}
		if d := g.Can(u, ActionApprove, s); d.Allowed {
			t.Errorf("approve from %q allowed, want denied", status)
		}
	}
}

func TestReject_AllowedFromBothPendingStages(t *testing.T) {
	g := NewGate(minGrade)
	u := approver(44)

	for _, kind := range []approval.ApprovableKind{approval.KindEmail, approval.KindLoan} {
		for _, status := range []string{"pending_support", "pending_admin"} {
			s := Subject{Kind: kind, OwnerID: strings.Repeat("b", 32), Status: status}
			if d := g.Can(u, ActionReject, s); !d.Allowed {
				t.Errorf("%s: reject from %q denied: %s", kind, status, d.Reason)
			}
		}
		for _, status := range []string{"draft", "processing", "approved", "completed", "rejected"} {
			s := Subject{Kind: kind, OwnerID: strings.Repeat("b", 32), Status: status}
			if d := g.Can(u, ActionReject, s); d.Allowed {
				t.Errorf("%s: reject from %q allowed, want denied", kind, status)
			}
		}
	}
}

func TestCancel_OwnerWhileDraftOrPending(t *testing.T) {
	g := NewGate(minGrade)
	owner := strings.Repeat("b", 32)
	u := &user.User{UserID: owner}

	for _, status := range []string{"draft", "pending_support", "pending_admin"} {
		s := Subject{Kind: approval.KindEmail, OwnerID: owner, Status: status}
		if d := g.Can(u, ActionCancel, s); !d.Allowed {
			t.Errorf("cancel from %q denied: %s", status, d.Reason)
		}
	}
	for _, status := range []string{"processing", "completed", "rejected", "cancelled"} {
		s := Subject{Kind: approval.KindEmail, OwnerID: owner, Status: status}
		if d := g.Can(u, ActionCancel, s); d.Allowed {
			t.Errorf("cancel from %q allowed, want denied", status)
		}
	}
}

func TestUpdateDelete_OwnerAndDraftOnly(t *testing.T) {
	g := NewGate(minGrade)
	owner := strings.Repeat("c", 32)

	u := &user.User{UserID: owner, GradeLevel: 52}
	s := Subject{Kind: approval.KindLoan, OwnerID: owner, Status: "draft"}
	if d := g.Can(u, ActionUpdate, s); !d.Allowed {
		t.Fatalf("owner update of draft denied: %s", d.Reason)
	}

	s.Status = "pending_support"
	if d := g.Can(u, ActionUpdate, s); d.Allowed {
		t.Fatal("update after submission must be denied")
	}

	other := &user.User{UserID: strings.Repeat("d", 32)}
	s.Status = "draft"
	if d := g.Can(other, ActionDelete, s); d.Allowed {
		t.Fatal("non-owner delete must be denied")
	}
}

func TestView_AdminOwnerOrKindRole(t *testing.T) {
	g := NewGate(minGrade)
	owner := strings.Repeat("e", 32)
	s := Subject{Kind: approval.KindEmail, OwnerID: owner, Status: "pending_admin"}

	cases := []struct {
		name string
		u    *user.User
		want bool
	}{
		{"owner", &user.User{UserID: owner}, true},
		{"admin flag", &user.User{UserID: strings.Repeat("f", 32), IsAdmin: true}, true},
		{"it_admin role", &user.User{UserID: strings.Repeat("f", 32), Roles: "it_admin"}, true},
		{"bpm_staff role", &user.User{UserID: strings.Repeat("f", 32), Roles: "bpm_staff"}, false},
		{"stranger", &user.User{UserID: strings.Repeat("f", 32)}, false},
	}
	for _, c := range cases {
		if d := g.Can(c.u, ActionView, s); d.Allowed != c.want {
			t.Errorf("%s: view = %v, want %v (%s)", c.name, d.Allowed, c.want, d.Reason)
		}
	}
}

func TestProcess_ITAdminAndPendingAdminOnly(t *testing.T) {
	g := NewGate(minGrade)
	it := &user.User{UserID: strings.Repeat("a", 32), Roles: "it_admin"}

	s := Subject{Kind: approval.KindEmail, OwnerID: strings.Repeat("b", 32), Status: "pending_admin"}
	if d := g.Can(it, ActionProcess, s); !d.Allowed {
		t.Fatalf("it_admin process denied: %s", d.Reason)
	}
	s.Status = "pending_support"
	if d := g.Can(it, ActionProcess, s); d.Allowed {
		t.Fatal("process before pending_admin must be denied")
	}
	plain := &user.User{UserID: strings.Repeat("a", 32), Roles: "approver", GradeLevel: 54}
	s.Status = "pending_admin"
	if d := g.Can(plain, ActionProcess, s); d.Allowed {
		t.Fatal("approver must not process email applications")
	}
}

func TestIssueAndReturn_RoleAndStatus(t *testing.T) {
	g := NewGate(minGrade)
	bpm := &user.User{UserID: strings.Repeat("a", 32), Roles: "bpm_staff"}

	s := Subject{Kind: approval.KindLoan, OwnerID: strings.Repeat("b", 32), Status: "approved"}
	if d := g.Can(bpm, ActionIssue, s); !d.Allowed {
		t.Fatalf("bpm issue from approved denied: %s", d.Reason)
	}
	s.Status = "partially_issued"
	if d := g.Can(bpm, ActionIssue, s); !d.Allowed {
		t.Fatalf("bpm issue from partially_issued denied: %s", d.Reason)
	}
	s.Status = "pending_support"
	if d := g.Can(bpm, ActionIssue, s); d.Allowed {
		t.Fatal("issue before approval must be denied")
	}
	s.Status = "issued"
	if d := g.Can(bpm, ActionProcessReturn, s); !d.Allowed {
		t.Fatalf("return from issued denied: %s", d.Reason)
	}
	s.Status = "overdue"
	if d := g.Can(bpm, ActionProcessReturn, s); !d.Allowed {
		t.Fatalf("return from overdue denied: %s", d.Reason)
	}
}

func TestEquipmentGate(t *testing.T) {
	g := NewGate(minGrade)
	bpm := &user.User{UserID: strings.Repeat("a", 32), Roles: "bpm_staff"}

	e := &equipment.Equipment{TagID: "MOTAC-001", Status: equipment.StatusAvailable}
	if d := g.CanEquipment(bpm, ActionIssue, e); !d.Allowed {
		t.Fatalf("issue of available equipment denied: %s", d.Reason)
	}
	e.Status = equipment.StatusOnLoan
	if d := g.CanEquipment(bpm, ActionIssue, e); d.Allowed {
		t.Fatal("issue of on_loan equipment must be denied")
	}
	if d := g.CanEquipment(bpm, ActionProcessReturn, e); !d.Allowed {
		t.Fatalf("return of on_loan equipment denied: %s", d.Reason)
	}
	e.Status = equipment.StatusAvailable
	if d := g.CanEquipment(bpm, ActionProcessReturn, e); d.Allowed {
		t.Fatal("return of available equipment must be denied")
	}

	applicant := &user.User{UserID: strings.Repeat("b", 32)}
	if d := g.CanEquipment(applicant, ActionIssue, e); d.Allowed {
		t.Fatal("non-bpm user must not issue equipment")
	}
}

func TestUnauthenticatedDenied(t *testing.T) {
	g := NewGate(minGrade)
	s := Subject{Kind: approval.KindEmail, Status: "draft"}
	if d := g.Can(nil, ActionCreate, s); d.Allowed {
		t.Fatal("nil user must be denied")
	}
	if d := g.Can(&user.User{}, ActionCreate, s); d.Allowed {
		t.Fatal("empty user id must be denied")
	}
	if d := g.Can(&user.User{UserID: strings.Repeat("a", 32)}, ActionCreate, s); !d.Allowed {
		t.Fatalf("authenticated create denied: %s", d.Reason)
	}
}
