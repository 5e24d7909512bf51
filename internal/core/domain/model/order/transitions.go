package order

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the stable error kind for any action that is not legal
// from the order's current status for the caller's role. The machine never
// silently ignores an illegal action.
var ErrInvalidTransition = errors.New("transition is not allowed")

// Role identifies the kind of actor invoking a transition.
type Role int

const (
	RoleUnknown Role = iota
	RoleRequester
	RoleBroker
	RoleCustomerService
	RoleAccountant
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:         "Unknown",
		RoleRequester:       "Requester",
		RoleBroker:          "Broker",
		RoleCustomerService: "CustomerService",
		RoleAccountant:      "Accountant",
		RoleAdmin:           "Admin",
	}
}

// String implements fmt.Stringer; safe on any value.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// RoleFromString parses a role name as carried by the transport layer.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%q is not a valid role", s)
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return fmt.Errorf("%d is not a valid role", r)
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return fmt.Errorf("%d is not a valid role", r)
	}
	return nil
}

// Action identifies a requested lifecycle transition.
type Action int

const (
	ActionUnknown Action = iota
	ActionSubmitBid
	ActionAcceptBid
	ActionMarkCheckpoint
	ActionCompleteExecution
	ActionCancelExecution
	ActionApproveExecution
	ActionRejectExecution
	ActionApproveTransfer
	ActionRejectTransfer
	ActionRouteTransfer
	ActionRouteDelete
	ActionRouteReopen
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionUnknown:           "Unknown",
		ActionSubmitBid:         "SubmitBid",
		ActionAcceptBid:         "AcceptBid",
		ActionMarkCheckpoint:    "MarkCheckpoint",
		ActionCompleteExecution: "CompleteExecution",
		ActionCancelExecution:   "CancelExecution",
		ActionApproveExecution:  "ApproveExecution",
		ActionRejectExecution:   "RejectExecution",
		ActionApproveTransfer:   "ApproveTransfer",
		ActionRejectTransfer:    "RejectTransfer",
		ActionRouteTransfer:     "RouteTransfer",
		ActionRouteDelete:       "RouteDelete",
		ActionRouteReopen:       "RouteReopen",
	}
}

// ActionFromString parses an action name as carried by the transport layer.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if action != ActionUnknown && str == s {
			return action, nil
		}
	}
	return ActionUnknown, fmt.Errorf("%q is not a valid action", s)
}

// String implements fmt.Stringer; safe on any value.
func (a Action) String() string {
	if str, ok := getActionStrings()[a]; ok {
		return str
	}
	return "Unknown"
}

// transitionRule describes which roles may request an action and from which statuses.
type transitionRule struct {
	roles map[Role]bool
	from  map[Status]bool
}

func roleSet(roles ...Role) map[Role]bool {
	set := make(map[Role]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	return set
}

func statusSet(statuses ...Status) map[Status]bool {
	set := make(map[Status]bool, len(statuses))
	for _, s := range statuses {
		set[s] = true
	}
	return set
}

// transitionTable is the single authority on transition legality. All callers —
// HTTP handlers, the bid ledger, the scheduler's fire handlers — go through it
// via Authorize; legality rules are never duplicated at call sites.
func transitionTable() map[Action]transitionRule {
	return map[Action]transitionRule{
		ActionSubmitBid: {
			roles: roleSet(RoleBroker),
			from:  statusSet(Pending),
		},
		ActionAcceptBid: {
			roles: roleSet(RoleRequester),
			from:  statusSet(Pending),
		},
		ActionMarkCheckpoint: {
			roles: roleSet(RoleBroker),
			from:  statusSet(UnderExecution),
		},
		ActionCompleteExecution: {
			roles: roleSet(RoleBroker),
			from:  statusSet(UnderExecution),
		},
		ActionCancelExecution: {
			roles: roleSet(RoleBroker),
			from:  statusSet(UnderExecution),
		},
		ActionApproveExecution: {
			roles: roleSet(RoleCustomerService),
			from:  statusSet(Executed),
		},
		ActionRejectExecution: {
			roles: roleSet(RoleCustomerService),
			from:  statusSet(Executed),
		},
		ActionApproveTransfer: {
			roles: roleSet(RoleAccountant),
			from:  statusSet(AccountingTransferred),
		},
		ActionRejectTransfer: {
			roles: roleSet(RoleAccountant),
			from:  statusSet(AccountingTransferred),
		},
		ActionRouteTransfer: {
			roles: roleSet(RoleCustomerService, RoleAdmin),
			from:  statusSet(Executed, AccountingRejected),
		},
		ActionRouteDelete: {
			roles: roleSet(RoleCustomerService, RoleAdmin),
			from:  statusSet(Executed, AccountingRejected),
		},
		ActionRouteReopen: {
			roles: roleSet(RoleCustomerService, RoleAdmin),
			from:  statusSet(Executed, AccountingRejected),
		},
	}
}

// Authorize checks the transition table for (status, role, action).
// Returns an error wrapping ErrInvalidTransition with a human-readable reason
// when the action is not legal; never mutates anything.
func (s Status) Authorize(role Role, action Action) error {
	rule, ok := transitionTable()[action]
	if !ok {
		return fmt.Errorf("%w: unknown action %s", ErrInvalidTransition, action)
	}
	if !rule.roles[role] {
		return fmt.Errorf("%w: role %s may not perform %s", ErrInvalidTransition, role, action)
	}
	if !rule.from[s] {
		return fmt.Errorf("%w: %s is not allowed while the order is %s", ErrInvalidTransition, action, s)
	}
	return nil
}
