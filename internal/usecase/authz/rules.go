package authz

import (
	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/user"
)

type ruleKey struct {
	kind   approval.ApprovableKind
	action Action
}

// rule is one row of the authorization table: who may do it (identity leg,
// OR-combined), the grade floor, and from which subject statuses.
type rule struct {
	anyAuthenticated bool
	allowOwner       bool
	allowAdminFlag   bool
	roles            []user.Role
	minGrade         bool
	statuses         []string
}

// emailStatusesWhere and loanStatusesWhere build a rule's status leg from a
// domain predicate so the table cannot drift from the domain's definition.
func emailStatusesWhere(pred func(application.EmailStatus) bool) []string {
	var out []string
	for _, s := range application.AllEmailStatuses {
		if pred(s) {
			out = append(out, string(s))
		}
	}
	return out
}

func loanStatusesWhere(pred func(application.LoanStatus) bool) []string {
	var out []string
	for _, s := range application.AllLoanStatuses {
		if pred(s) {
			out = append(out, string(s))
		}
	}
	return out
}

func buildRules() map[ruleKey]rule {
	rules := map[ruleKey]rule{}

	// Rules common to both application kinds.
	for _, kind := range []approval.ApprovableKind{approval.KindEmail, approval.KindLoan} {
		rules[ruleKey{kind, ActionCreate}] = rule{anyAuthenticated: true}
		rules[ruleKey{kind, ActionUpdate}] = rule{allowOwner: true, statuses: []string{"draft"}}
		rules[ruleKey{kind, ActionDelete}] = rule{allowOwner: true, statuses: []string{"draft"}}
		rules[ruleKey{kind, ActionApprove}] = rule{
			roles:    []user.Role{user.RoleApprover, user.RoleAdmin},
			minGrade: true,
			statuses: []string{"pending_support"},
		}
	}

	// Cancel is open to the owner while the application is still draft or
	// awaiting a decision; reject covers both pending stages.
	rules[ruleKey{approval.KindEmail, ActionCancel}] = rule{
		allowOwner: true,
		statuses:   append([]string{"draft"}, emailStatusesWhere(application.EmailStatus.IsPending)...),
	}
	rules[ruleKey{approval.KindLoan, ActionCancel}] = rule{
		allowOwner: true,
		statuses:   append([]string{"draft"}, loanStatusesWhere(application.LoanStatus.IsPending)...),
	}
	rules[ruleKey{approval.KindEmail, ActionReject}] = rule{
		roles:    []user.Role{user.RoleApprover, user.RoleAdmin},
		minGrade: true,
		statuses: emailStatusesWhere(application.EmailStatus.IsPending),
	}
	rules[ruleKey{approval.KindLoan, ActionReject}] = rule{
		roles:    []user.Role{user.RoleApprover, user.RoleAdmin},
		minGrade: true,
		statuses: loanStatusesWhere(application.LoanStatus.IsPending),
	}

	rules[ruleKey{approval.KindEmail, ActionView}] = rule{
		allowOwner:     true,
		allowAdminFlag: true,
		roles:          []user.Role{user.RoleITAdmin},
	}
	rules[ruleKey{approval.KindLoan, ActionView}] = rule{
		allowOwner:     true,
		allowAdminFlag: true,
		roles:          []user.Role{user.RoleBPMStaff},
	}

	rules[ruleKey{approval.KindEmail, ActionProcess}] = rule{
		roles:    []user.Role{user.RoleITAdmin, user.RoleAdmin},
		statuses: []string{string(application.EmailStatusPendingAdmin)},
	}
	rules[ruleKey{approval.KindEmail, ActionUpdateAssignment}] = rule{
		roles: []user.Role{user.RoleITAdmin, user.RoleAdmin},
		statuses: []string{
			string(application.EmailStatusPendingAdmin),
			string(application.EmailStatusAssignmentMissing),
		},
	}
	rules[ruleKey{approval.KindLoan, ActionIssue}] = rule{
		roles:    []user.Role{user.RoleBPMStaff, user.RoleAdmin},
		statuses: loanStatusesWhere(application.LoanStatus.Issuable),
	}
	rules[ruleKey{approval.KindLoan, ActionProcessReturn}] = rule{
		roles:    []user.Role{user.RoleBPMStaff, user.RoleAdmin},
		statuses: loanStatusesWhere(application.LoanStatus.Returnable),
	}
	return rules
}
