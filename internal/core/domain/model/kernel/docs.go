// Package kernel contains shared value objects used across aggregates.
//
// The clearance domain identifies actors (requesters, brokers, customer-service
// and accounting staff) and scheduled-job handles by UUID; orders, bids and notes
// use store-assigned integer identity and therefore need no value object here.
package kernel
