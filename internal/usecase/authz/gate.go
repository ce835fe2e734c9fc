package authz

import (
	"fmt"

	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/user"
)

type Action string

const (
	ActionView          Action = "view"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionDelete        Action = "delete"
	ActionCancel        Action = "cancel"
	ActionApprove       Action = "approve"
	ActionReject        Action = "reject"
	ActionProcess       Action = "process"
	// ActionUpdateAssignment lets ICT staff set or fix the final mailbox
	// assignment, including recovering from assignment_missing.
	ActionUpdateAssignment Action = "update_assignment"
	ActionIssue            Action = "issue"
	ActionProcessReturn    Action = "processReturn"
)

// Subject is the minimal view of an application the gate needs.
type Subject struct {
	Kind    approval.ApprovableKind
	OwnerID string
	Status  string
}

// Decision carries a human-readable reason on denial so callers can audit
// without guessing. Denial is a value, never an error.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// DeniedError lets callers carry a denial through an error return without
// losing the reason.
type DeniedError struct{ Reason string }

func (e *DeniedError) Error() string { return e.Reason }

// ErrIfDenied converts a denial into an error for usecase flows.
func (d Decision) ErrIfDenied() error {
	if d.Allowed {
		return nil
	}
	return &DeniedError{Reason: d.Reason}
}

// Gate evaluates every (kind, action) pair against one static rule table
// instead of hand-written boolean expressions per action.
type Gate struct {
	minApproverGrade int
	rules            map[ruleKey]rule
}

func NewGate(minApproverGrade int) *Gate {
	return &Gate{minApproverGrade: minApproverGrade, rules: buildRules()}
}

func (g *Gate) Can(u *user.User, action Action, s Subject) Decision {
	if u == nil || u.UserID == "" {
		return deny("authentication required")
	}
	r, ok := g.rules[ruleKey{kind: s.Kind, action: action}]
	if !ok {
		return deny(fmt.Sprintf("action %q is not defined for %s applications", action, s.Kind))
	}

	// Grade gate first: an insufficient grade denies regardless of role.
	if r.minGrade && u.GradeLevel < g.minApproverGrade {
		return deny(fmt.Sprintf("grade level %d is below the minimum approver grade %d", u.GradeLevel, g.minApproverGrade))
	}

	if !r.anyAuthenticated && !g.identityAllowed(u, r, s) {
		return deny(identityReason(r))
	}

	if len(r.statuses) > 0 && !containsStatus(r.statuses, s.Status) {
		return deny(fmt.Sprintf("action %q is not allowed while the application status is %q", action, s.Status))
	}
	return allow()
}

// CanEquipment gates physical issue/return against the asset's own status.
func (g *Gate) CanEquipment(u *user.User, action Action, e *equipment.Equipment) Decision {
	if u == nil || u.UserID == "" {
		return deny("authentication required")
	}
	if !u.HasAnyRole(user.RoleBPMStaff, user.RoleAdmin) {
		return deny("requires one of roles: bpm_staff, admin")
	}
	switch action {
	case ActionIssue:
		if e.Status != equipment.StatusAvailable {
			return deny(fmt.Sprintf("equipment %s is %q: %v", e.TagID, e.Status, equipment.ErrNotAvailable))
		}
		return allow()
	case ActionProcessReturn:
		if e.Status != equipment.StatusOnLoan {
			return deny(fmt.Sprintf("equipment %s is %q: %v", e.TagID, e.Status, equipment.ErrNotOnLoan))
		}
		return allow()
	default:
		return deny(fmt.Sprintf("action %q is not defined for equipment", action))
	}
}

func (g *Gate) identityAllowed(u *user.User, r rule, s Subject) bool {
	if r.allowOwner && u.UserID == s.OwnerID {
		return true
	}
	if r.allowAdminFlag && u.IsAdmin {
		return true
	}
	if len(r.roles) > 0 && u.HasAnyRole(r.roles...) {
		return true
	}
	return false
}

func identityReason(r rule) string {
	switch {
	case r.allowOwner && len(r.roles) == 0:
		return "only the applicant may perform this action"
	case len(r.roles) > 0:
		return fmt.Sprintf("requires one of roles: %s", roleNames(r.roles))
	default:
		return "not permitted"
	}
}

func roleNames(roles []user.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += ", "
		}
		out += string(r)
	}
	return out
}

func containsStatus(list []string, status string) bool {
	for _, s := range list {
		if s == status {
			return true
		}
	}
	return false
}
