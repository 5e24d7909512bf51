// Package services contains stateless domain services coordinating rules that
// span the order aggregate and its bid rows: the bid ledger enforces "exactly
// one accepted bid per order", detects a broker's first bid for reminder
// scheduling, and selects the accepted bids to purge when an order reopens.
package services
