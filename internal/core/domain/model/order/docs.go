// Package order contains the clearance order aggregate and its lifecycle state machine.
//
// An order moves from Pending through broker execution and the customer-service and
// accounting reviews to one of the terminal states. Every mutation goes through a
// role-gated transition: the single (status, role, action) legality table in
// transitions.go is the only authority on which actions are allowed, and each
// transition returns the side effects (logs, notifications, job scheduling and
// cancellation) the caller must carry out after committing the change.
package order
