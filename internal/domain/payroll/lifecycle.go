package payroll

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-payroll-go/internal/domain/user"
)

type transitionKey struct {
	from PayrollStatus
	to   PayrollStatus
}

type transitionRule struct {
	allowed   func(user.Role) bool
	forbidden error
	effect    func(r *PayrollRecord, actor user.Actor, now time.Time)
}

// transitions is the complete payroll state machine. Pairs not listed are rejected.
var transitions = map[transitionKey]transitionRule{
	{PayrollStatusDraft, PayrollStatusPending}: {
		allowed: user.CanSubmitPayroll,
	},
	{PayrollStatusPending, PayrollStatusApproved}: {
		allowed:   user.CanApprovePayroll,
		forbidden: ErrPayrollApprovalForbidden,
		effect:    markApproved,
	},
	{PayrollStatusPending, PayrollStatusRejected}: {
		allowed:   user.CanApprovePayroll,
		forbidden: ErrPayrollApprovalForbidden,
	},
	{PayrollStatusApproved, PayrollStatusPaid}: {
		allowed: user.CanPayPayroll,
		effect:  markPaid,
	},
}

func markApproved(r *PayrollRecord, actor user.Actor, now time.Time) {
	approvedBy := actor.UserID
	r.ApprovedBy = &approvedBy
	r.ApprovedAt = &now
}

func markPaid(r *PayrollRecord, _ user.Actor, now time.Time) {
	if r.PaymentDate == nil {
		r.PaymentDate = &now
	}
}

// CanTransition reports whether the state machine has an edge from -> to.
func CanTransition(from, to PayrollStatus) bool {
	_, ok := transitions[transitionKey{from, to}]
	return ok
}

// authorizeTarget checks role against every edge that ends in to. It runs
// before the edge lookup so a role without the right gets the same answer
// whatever state the record is in.
func authorizeTarget(to PayrollStatus, role user.Role) error {
	for key, rule := range transitions {
		if key.to != to || rule.allowed(role) {
			continue
		}
		if rule.forbidden != nil {
			return rule.forbidden
		}
		return user.ErrInsufficientPermissions
	}
	return nil
}

// ApplyTransition moves r to status `to` on behalf of actor and applies the
// edge's side effect. Moving to the current status is a no-op once the actor
// is allowed to set that status. It never touches totals.
func ApplyTransition(r *PayrollRecord, to PayrollStatus, actor user.Actor, now time.Time) error {
	if r.IsFinalized() {
		return ErrPayrollRecordFinalized
	}
	if err := authorizeTarget(to, actor.Role); err != nil {
		return err
	}
	if to == r.Status {
		return nil
	}

	rule, ok := transitions[transitionKey{r.Status, to}]
	if !ok {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, r.Status, to)
	}

	r.Status = to
	if rule.effect != nil {
		rule.effect(r, actor, now)
	}
	return nil
}
